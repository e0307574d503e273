package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

type OrganisationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Organisation) ([]*types.Organisation, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.Organisation, error)
}

type organisationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOrganisationRepo(db *gorm.DB, baseLog *logger.Logger) OrganisationRepo {
	return &organisationRepo{db: db, log: baseLog.With("repo", "OrganisationRepo")}
}

func (r *organisationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Organisation) ([]*types.Organisation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Organisation{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *organisationRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.Organisation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Organisation
	if err := t.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type TradelineRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Tradeline) ([]*types.Tradeline, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.Tradeline, error)
}

type tradelineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradelineRepo(db *gorm.DB, baseLog *logger.Logger) TradelineRepo {
	return &tradelineRepo{db: db, log: baseLog.With("repo", "TradelineRepo")}
}

func (r *tradelineRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Tradeline) ([]*types.Tradeline, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Tradeline{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tradelineRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.Tradeline, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Tradeline
	if err := t.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
