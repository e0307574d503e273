package repos

import (
	"context"
	"time"

	"gorm.io/gorm"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

type SearchRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.SearchRecord) ([]*types.SearchRecord, error)
	GetBySubjectVisibilitySince(ctx context.Context, tx *gorm.DB, subjectID string, visibility types.SearchVisibility, since time.Time) ([]*types.SearchRecord, error)
}

type searchRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSearchRecordRepo(db *gorm.DB, baseLog *logger.Logger) SearchRecordRepo {
	return &searchRecordRepo{db: db, log: baseLog.With("repo", "SearchRecordRepo")}
}

func (r *searchRecordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.SearchRecord) ([]*types.SearchRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.SearchRecord{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *searchRecordRepo) GetBySubjectVisibilitySince(ctx context.Context, tx *gorm.DB, subjectID string, visibility types.SearchVisibility, since time.Time) ([]*types.SearchRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.SearchRecord
	if err := t.WithContext(ctx).
		Where("subject_id = ? AND visibility = ? AND searched_at > ?", subjectID, visibility, since).
		Order("searched_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type CreditScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.CreditScore) ([]*types.CreditScore, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.CreditScore, error)
}

type creditScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCreditScoreRepo(db *gorm.DB, baseLog *logger.Logger) CreditScoreRepo {
	return &creditScoreRepo{db: db, log: baseLog.With("repo", "CreditScoreRepo")}
}

func (r *creditScoreRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.CreditScore) ([]*types.CreditScore, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.CreditScore{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBySubject returns scores newest first.
func (r *creditScoreRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.CreditScore, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.CreditScore
	if err := t.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("recorded_at DESC, id DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type PublicRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PublicRecord) ([]*types.PublicRecord, error)
}

type publicRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPublicRecordRepo(db *gorm.DB, baseLog *logger.Logger) PublicRecordRepo {
	return &publicRecordRepo{db: db, log: baseLog.With("repo", "PublicRecordRepo")}
}

func (r *publicRecordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PublicRecord) ([]*types.PublicRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.PublicRecord{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type NoticeOfCorrectionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.NoticeOfCorrection) ([]*types.NoticeOfCorrection, error)
}

type noticeOfCorrectionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNoticeOfCorrectionRepo(db *gorm.DB, baseLog *logger.Logger) NoticeOfCorrectionRepo {
	return &noticeOfCorrectionRepo{db: db, log: baseLog.With("repo", "NoticeOfCorrectionRepo")}
}

func (r *noticeOfCorrectionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.NoticeOfCorrection) ([]*types.NoticeOfCorrection, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.NoticeOfCorrection{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type PropertyRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PropertyRecord) ([]*types.PropertyRecord, error)
}

type propertyRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPropertyRecordRepo(db *gorm.DB, baseLog *logger.Logger) PropertyRecordRepo {
	return &propertyRecordRepo{db: db, log: baseLog.With("repo", "PropertyRecordRepo")}
}

func (r *propertyRecordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PropertyRecord) ([]*types.PropertyRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.PropertyRecord{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type GoneAwayRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.GoneAwayRecord) ([]*types.GoneAwayRecord, error)
}

type goneAwayRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGoneAwayRecordRepo(db *gorm.DB, baseLog *logger.Logger) GoneAwayRecordRepo {
	return &goneAwayRecordRepo{db: db, log: baseLog.With("repo", "GoneAwayRecordRepo")}
}

func (r *goneAwayRecordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.GoneAwayRecord) ([]*types.GoneAwayRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.GoneAwayRecord{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type FraudMarkerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.FraudMarker) ([]*types.FraudMarker, error)
}

type fraudMarkerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFraudMarkerRepo(db *gorm.DB, baseLog *logger.Logger) FraudMarkerRepo {
	return &fraudMarkerRepo{db: db, log: baseLog.With("repo", "FraudMarkerRepo")}
}

func (r *fraudMarkerRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.FraudMarker) ([]*types.FraudMarker, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.FraudMarker{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type AttributableItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.AttributableItem) ([]*types.AttributableItem, error)
}

type attributableItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAttributableItemRepo(db *gorm.DB, baseLog *logger.Logger) AttributableItemRepo {
	return &attributableItemRepo{db: db, log: baseLog.With("repo", "AttributableItemRepo")}
}

func (r *attributableItemRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AttributableItem) ([]*types.AttributableItem, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.AttributableItem{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type DisputeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Dispute) ([]*types.Dispute, error)
}

type disputeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDisputeRepo(db *gorm.DB, baseLog *logger.Logger) DisputeRepo {
	return &disputeRepo{db: db, log: baseLog.With("repo", "DisputeRepo")}
}

func (r *disputeRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Dispute) ([]*types.Dispute, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Dispute{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
