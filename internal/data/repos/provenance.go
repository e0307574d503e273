package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

type SubjectRepo interface {
	EnsureExists(ctx context.Context, tx *gorm.DB, subjectID string) (*types.Subject, error)
	GetByID(ctx context.Context, tx *gorm.DB, subjectID string) (*types.Subject, error)
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	return &subjectRepo{db: db, log: baseLog.With("repo", "SubjectRepo")}
}

// EnsureExists creates the subject on first ingestion and returns the
// existing row on every later one. Subjects are never deleted.
func (r *subjectRepo) EnsureExists(ctx context.Context, tx *gorm.DB, subjectID string) (*types.Subject, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var existing types.Subject
	err := t.WithContext(ctx).Where("id = ?", subjectID).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	row := &types.Subject{ID: subjectID}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (r *subjectRepo) GetByID(ctx context.Context, tx *gorm.DB, subjectID string) (*types.Subject, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.Subject
	if err := t.WithContext(ctx).Where("id = ?", subjectID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

type CreditFileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.CreditFile) ([]*types.CreditFile, error)
}

type creditFileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreditFileRepo(db *gorm.DB, baseLog *logger.Logger) CreditFileRepo {
	return &creditFileRepo{db: db, log: baseLog.With("repo", "CreditFileRepo")}
}

func (r *creditFileRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CreditFile) ([]*types.CreditFile, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.CreditFile{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type ImportBatchRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ImportBatch) ([]*types.ImportBatch, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.ImportBatch, error)
}

type importBatchRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewImportBatchRepo(db *gorm.DB, baseLog *logger.Logger) ImportBatchRepo {
	return &importBatchRepo{db: db, log: baseLog.With("repo", "ImportBatchRepo")}
}

func (r *importBatchRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ImportBatch) ([]*types.ImportBatch, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ImportBatch{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *importBatchRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.ImportBatch, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.ImportBatch
	if err := t.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("imported_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type RawArtifactRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.RawArtifact) ([]*types.RawArtifact, error)
}

type rawArtifactRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRawArtifactRepo(db *gorm.DB, baseLog *logger.Logger) RawArtifactRepo {
	return &rawArtifactRepo{db: db, log: baseLog.With("repo", "RawArtifactRepo")}
}

func (r *rawArtifactRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.RawArtifact) ([]*types.RawArtifact, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.RawArtifact{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
