package domain

import "time"

// SearchRecord is one credit search against the subject.
type SearchRecord struct {
	ID             string           `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string           `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string           `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string           `gorm:"not null;column:source_system" json:"source_system"`
	OrganisationID string           `gorm:"not null;index;column:organisation_id" json:"organisation_id"`
	AddressID      *string          `gorm:"column:address_id" json:"address_id,omitempty"`
	Visibility     SearchVisibility `gorm:"not null;index;column:visibility" json:"visibility"`
	Purpose        string           `gorm:"column:purpose" json:"purpose,omitempty"`
	SearchedAt     time.Time        `gorm:"not null;index;column:searched_at" json:"searched_at"`
	CreatedAt      time.Time        `gorm:"not null" json:"created_at"`
}

func (SearchRecord) TableName() string { return "search_record" }

// CreditScore is one agency score reading.
type CreditScore struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string    `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;index;column:source_system" json:"source_system"`
	Score          int       `gorm:"not null;column:score" json:"score"`
	ScoreMax       *int      `gorm:"column:score_max" json:"score_max,omitempty"`
	ScoreType      string    `gorm:"column:score_type" json:"score_type,omitempty"`
	RecordedAt     time.Time `gorm:"not null;index;column:recorded_at" json:"recorded_at"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (CreditScore) TableName() string { return "credit_score" }

// PublicRecord is a court or insolvency record (CCJ, bankruptcy, IVA...).
type PublicRecord struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	RecordType     string     `gorm:"not null;column:record_type" json:"record_type"`
	AddressID      *string    `gorm:"column:address_id" json:"address_id,omitempty"`
	AmountMinor    *int64     `gorm:"column:amount_minor" json:"amount_minor,omitempty"`
	Status         string     `gorm:"column:status" json:"status,omitempty"`
	FiledAt        *time.Time `gorm:"column:filed_at" json:"filed_at,omitempty"`
	SatisfiedAt    *time.Time `gorm:"column:satisfied_at" json:"satisfied_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (PublicRecord) TableName() string { return "public_record" }

// NoticeOfCorrection is a consumer statement attached to the file.
type NoticeOfCorrection struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	Text           string     `gorm:"not null;column:text" json:"text"`
	AppliedAt      *time.Time `gorm:"column:applied_at" json:"applied_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (NoticeOfCorrection) TableName() string { return "notice_of_correction" }

// PropertyRecord is a property ownership or valuation record.
type PropertyRecord struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	AddressID      *string    `gorm:"column:address_id" json:"address_id,omitempty"`
	Tenure         string     `gorm:"column:tenure" json:"tenure,omitempty"`
	ValueMinor     *int64     `gorm:"column:value_minor" json:"value_minor,omitempty"`
	RecordedAt     *time.Time `gorm:"column:recorded_at" json:"recorded_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (PropertyRecord) TableName() string { return "property_record" }

// GoneAwayRecord flags the subject as unreachable at an address.
type GoneAwayRecord struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	AddressID      *string    `gorm:"column:address_id" json:"address_id,omitempty"`
	ReportedAt     *time.Time `gorm:"column:reported_at" json:"reported_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (GoneAwayRecord) TableName() string { return "gone_away_record" }

// FraudMarker is a protective registration or fraud warning.
type FraudMarker struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	MarkerType     string     `gorm:"not null;column:marker_type" json:"marker_type"`
	AddressID      *string    `gorm:"column:address_id" json:"address_id,omitempty"`
	StartedAt      *time.Time `gorm:"column:started_at" json:"started_at,omitempty"`
	ExpiresAt      *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (FraudMarker) TableName() string { return "fraud_marker" }

// AttributableItem is data reported for the subject that may belong to a
// different person (disassociation candidates).
type AttributableItem struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string    `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;column:source_system" json:"source_system"`
	ItemType       string    `gorm:"not null;column:item_type" json:"item_type"`
	Description    string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (AttributableItem) TableName() string { return "attributable_item" }

// Dispute is a raised data dispute, optionally tied to a tradeline.
type Dispute struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	TradelineID    *string    `gorm:"column:tradeline_id" json:"tradeline_id,omitempty"`
	Status         string     `gorm:"column:status" json:"status,omitempty"`
	Reason         string     `gorm:"column:reason" json:"reason,omitempty"`
	OpenedAt       *time.Time `gorm:"column:opened_at" json:"opened_at,omitempty"`
	ResolvedAt     *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (Dispute) TableName() string { return "dispute" }
