package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

type TradelineIdentifierRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineIdentifier) ([]*types.TradelineIdentifier, error)
}

type tradelineIdentifierRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradelineIdentifierRepo(db *gorm.DB, baseLog *logger.Logger) TradelineIdentifierRepo {
	return &tradelineIdentifierRepo{db: db, log: baseLog.With("repo", "TradelineIdentifierRepo")}
}

func (r *tradelineIdentifierRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineIdentifier) ([]*types.TradelineIdentifier, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TradelineIdentifier{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type TradelinePartyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineParty) ([]*types.TradelineParty, error)
}

type tradelinePartyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradelinePartyRepo(db *gorm.DB, baseLog *logger.Logger) TradelinePartyRepo {
	return &tradelinePartyRepo{db: db, log: baseLog.With("repo", "TradelinePartyRepo")}
}

func (r *tradelinePartyRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineParty) ([]*types.TradelineParty, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TradelineParty{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type TradelineTermsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineTerms) ([]*types.TradelineTerms, error)
}

type tradelineTermsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradelineTermsRepo(db *gorm.DB, baseLog *logger.Logger) TradelineTermsRepo {
	return &tradelineTermsRepo{db: db, log: baseLog.With("repo", "TradelineTermsRepo")}
}

func (r *tradelineTermsRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineTerms) ([]*types.TradelineTerms, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TradelineTerms{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type TradelineSnapshotRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineSnapshot) ([]*types.TradelineSnapshot, error)
	GetByTradelineIDs(ctx context.Context, tx *gorm.DB, tradelineIDs []string) ([]*types.TradelineSnapshot, error)
}

type tradelineSnapshotRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradelineSnapshotRepo(db *gorm.DB, baseLog *logger.Logger) TradelineSnapshotRepo {
	return &tradelineSnapshotRepo{db: db, log: baseLog.With("repo", "TradelineSnapshotRepo")}
}

func (r *tradelineSnapshotRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineSnapshot) ([]*types.TradelineSnapshot, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TradelineSnapshot{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *tradelineSnapshotRepo) GetByTradelineIDs(ctx context.Context, tx *gorm.DB, tradelineIDs []string) ([]*types.TradelineSnapshot, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.TradelineSnapshot
	if len(tradelineIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("tradeline_id IN ?", tradelineIDs).
		Order("captured_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type MonthlyMetricRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.MonthlyMetric) ([]*types.MonthlyMetric, error)
}

type monthlyMetricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMonthlyMetricRepo(db *gorm.DB, baseLog *logger.Logger) MonthlyMetricRepo {
	return &monthlyMetricRepo{db: db, log: baseLog.With("repo", "MonthlyMetricRepo")}
}

func (r *monthlyMetricRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.MonthlyMetric) ([]*types.MonthlyMetric, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.MonthlyMetric{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type TradelineEventRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineEvent) ([]*types.TradelineEvent, error)
}

type tradelineEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTradelineEventRepo(db *gorm.DB, baseLog *logger.Logger) TradelineEventRepo {
	return &tradelineEventRepo{db: db, log: baseLog.With("repo", "TradelineEventRepo")}
}

func (r *tradelineEventRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.TradelineEvent) ([]*types.TradelineEvent, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.TradelineEvent{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
