package repos

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

type GeneratedInsightRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.GeneratedInsight) ([]*types.GeneratedInsight, error)
	CreateEntities(ctx context.Context, tx *gorm.DB, rows []*types.GeneratedInsightEntity) ([]*types.GeneratedInsightEntity, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.GeneratedInsight, error)
	GetEntitiesByInsightIDs(ctx context.Context, tx *gorm.DB, insightIDs []string) ([]*types.GeneratedInsightEntity, error)
}

type generatedInsightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGeneratedInsightRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedInsightRepo {
	return &generatedInsightRepo{db: db, log: baseLog.With("repo", "GeneratedInsightRepo")}
}

func (r *generatedInsightRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.GeneratedInsight) ([]*types.GeneratedInsight, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.GeneratedInsight{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *generatedInsightRepo) CreateEntities(ctx context.Context, tx *gorm.DB, rows []*types.GeneratedInsightEntity) ([]*types.GeneratedInsightEntity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.GeneratedInsightEntity{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBySubject returns insights newest first.
func (r *generatedInsightRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.GeneratedInsight, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.GeneratedInsight
	if err := t.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *generatedInsightRepo) GetEntitiesByInsightIDs(ctx context.Context, tx *gorm.DB, insightIDs []string) ([]*types.GeneratedInsightEntity, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(insightIDs) == 0 {
		return []*types.GeneratedInsightEntity{}, nil
	}
	var out []*types.GeneratedInsightEntity
	if err := t.WithContext(ctx).
		Where("insight_id IN ?", insightIDs).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type IngestReceiptRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.IngestReceipt) (*types.IngestReceipt, error)
	GetByDigest(ctx context.Context, tx *gorm.DB, digest string) (*types.IngestReceipt, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.IngestReceipt, error)
}

type ingestReceiptRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngestReceiptRepo(db *gorm.DB, baseLog *logger.Logger) IngestReceiptRepo {
	return &ingestReceiptRepo{db: db, log: baseLog.With("repo", "IngestReceiptRepo")}
}

func (r *ingestReceiptRepo) Create(ctx context.Context, tx *gorm.DB, row *types.IngestReceipt) (*types.IngestReceipt, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if err := t.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// GetByDigest returns nil when no receipt carries the digest.
func (r *ingestReceiptRepo) GetByDigest(ctx context.Context, tx *gorm.DB, digest string) (*types.IngestReceipt, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var row types.IngestReceipt
	if err := t.WithContext(ctx).Where("payload_digest = ?", digest).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetBySubject returns receipts newest first.
func (r *ingestReceiptRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.IngestReceipt, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.IngestReceipt
	if err := t.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
