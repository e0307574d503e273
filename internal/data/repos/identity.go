package repos

import (
	"context"

	"gorm.io/gorm"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

type PersonNameRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PersonName) ([]*types.PersonName, error)
}

type personNameRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPersonNameRepo(db *gorm.DB, baseLog *logger.Logger) PersonNameRepo {
	return &personNameRepo{db: db, log: baseLog.With("repo", "PersonNameRepo")}
}

func (r *personNameRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PersonName) ([]*types.PersonName, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.PersonName{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type IdentityRecordRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.IdentityRecord) ([]*types.IdentityRecord, error)
}

type identityRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdentityRecordRepo(db *gorm.DB, baseLog *logger.Logger) IdentityRecordRepo {
	return &identityRecordRepo{db: db, log: baseLog.With("repo", "IdentityRecordRepo")}
}

func (r *identityRecordRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.IdentityRecord) ([]*types.IdentityRecord, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.IdentityRecord{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type AddressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Address) ([]*types.Address, error)
	GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.Address, error)
}

type addressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressRepo(db *gorm.DB, baseLog *logger.Logger) AddressRepo {
	return &addressRepo{db: db, log: baseLog.With("repo", "AddressRepo")}
}

func (r *addressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Address) ([]*types.Address, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.Address{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *addressRepo) GetBySubject(ctx context.Context, tx *gorm.DB, subjectID string) ([]*types.Address, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.Address
	if err := t.WithContext(ctx).
		Where("subject_id = ?", subjectID).
		Order("created_at ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

type AddressAssociationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.AddressAssociation) ([]*types.AddressAssociation, error)
}

type addressAssociationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressAssociationRepo(db *gorm.DB, baseLog *logger.Logger) AddressAssociationRepo {
	return &addressAssociationRepo{db: db, log: baseLog.With("repo", "AddressAssociationRepo")}
}

func (r *addressAssociationRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AddressAssociation) ([]*types.AddressAssociation, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.AddressAssociation{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type AddressLinkRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.AddressLink) ([]*types.AddressLink, error)
}

type addressLinkRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAddressLinkRepo(db *gorm.DB, baseLog *logger.Logger) AddressLinkRepo {
	return &addressLinkRepo{db: db, log: baseLog.With("repo", "AddressLinkRepo")}
}

func (r *addressLinkRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.AddressLink) ([]*types.AddressLink, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.AddressLink{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type FinancialAssociateRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.FinancialAssociate) ([]*types.FinancialAssociate, error)
}

type financialAssociateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFinancialAssociateRepo(db *gorm.DB, baseLog *logger.Logger) FinancialAssociateRepo {
	return &financialAssociateRepo{db: db, log: baseLog.With("repo", "FinancialAssociateRepo")}
}

func (r *financialAssociateRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.FinancialAssociate) ([]*types.FinancialAssociate, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.FinancialAssociate{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

type ElectoralRollRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ElectoralRollEntry) ([]*types.ElectoralRollEntry, error)
}

type electoralRollRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewElectoralRollRepo(db *gorm.DB, baseLog *logger.Logger) ElectoralRollRepo {
	return &electoralRollRepo{db: db, log: baseLog.With("repo", "ElectoralRollRepo")}
}

func (r *electoralRollRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ElectoralRollEntry) ([]*types.ElectoralRollEntry, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.ElectoralRollEntry{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
