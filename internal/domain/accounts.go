package domain

import "time"

// Organisation is a furnisher or searcher entity, scoped to a subject. A
// source import is optional here: some organisations are synthesized from
// cross-agency matching rather than reported directly.
type Organisation struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID *string   `gorm:"index;column:source_import_id" json:"source_import_id,omitempty"`
	SourceSystem   string    `gorm:"column:source_system" json:"source_system,omitempty"`
	Name           string    `gorm:"not null;column:name" json:"name"`
	Kind           string    `gorm:"column:kind" json:"kind,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Organisation) TableName() string { return "organisation" }

// Tradeline is one reported credit account. CanonicalID correlates rows
// reported by different agencies for the same underlying account.
type Tradeline struct {
	ID             string      `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string      `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string      `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string      `gorm:"not null;index;column:source_system" json:"source_system"`
	OrganisationID string      `gorm:"not null;index;column:organisation_id" json:"organisation_id"`
	CanonicalID    *string     `gorm:"index;column:canonical_id" json:"canonical_id,omitempty"`
	AccountType    AccountType `gorm:"not null;column:account_type" json:"account_type"`
	StatusCurrent  string      `gorm:"column:status_current" json:"status_current,omitempty"`
	OpenedAt       *time.Time  `gorm:"column:opened_at" json:"opened_at,omitempty"`
	ClosedAt       *time.Time  `gorm:"column:closed_at" json:"closed_at,omitempty"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
}

func (Tradeline) TableName() string { return "tradeline" }

// TradelineIdentifier is an account-level identifier (masked account
// number, sort code reference, etc.).
type TradelineIdentifier struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	TradelineID    string    `gorm:"not null;index;column:tradeline_id" json:"tradeline_id"`
	SourceImportID string    `gorm:"not null;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;column:source_system" json:"source_system"`
	Kind           string    `gorm:"column:kind" json:"kind,omitempty"`
	Value          string    `gorm:"not null;column:value" json:"value"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (TradelineIdentifier) TableName() string { return "tradeline_identifier" }

// TradelineParty is a party on the account (holder, guarantor, joint).
type TradelineParty struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	TradelineID    string    `gorm:"not null;index;column:tradeline_id" json:"tradeline_id"`
	SourceImportID string    `gorm:"not null;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;column:source_system" json:"source_system"`
	Role           string    `gorm:"column:role" json:"role,omitempty"`
	Name           string    `gorm:"column:name" json:"name,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (TradelineParty) TableName() string { return "tradeline_party" }

// TradelineTerms holds the (single) reported terms for a tradeline.
type TradelineTerms struct {
	ID                  string    `gorm:"primaryKey;column:id" json:"id"`
	TradelineID         string    `gorm:"not null;uniqueIndex;column:tradeline_id" json:"tradeline_id"`
	SourceImportID      string    `gorm:"not null;column:source_import_id" json:"source_import_id"`
	SourceSystem        string    `gorm:"not null;column:source_system" json:"source_system"`
	PaymentFrequency    string    `gorm:"column:payment_frequency" json:"payment_frequency,omitempty"`
	TermMonths          *int      `gorm:"column:term_months" json:"term_months,omitempty"`
	MonthlyPaymentMinor *int64    `gorm:"column:monthly_payment_minor" json:"monthly_payment_minor,omitempty"`
	CreatedAt           time.Time `gorm:"not null" json:"created_at"`
}

func (TradelineTerms) TableName() string { return "tradeline_terms" }

// TradelineSnapshot is a point-in-time balance/limit/status record. Money
// amounts are minor currency units.
type TradelineSnapshot struct {
	ID               string    `gorm:"primaryKey;column:id" json:"id"`
	TradelineID      string    `gorm:"not null;index;column:tradeline_id" json:"tradeline_id"`
	SourceImportID   string    `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem     string    `gorm:"not null;column:source_system" json:"source_system"`
	CapturedAt       time.Time `gorm:"not null;index;column:captured_at" json:"captured_at"`
	BalanceMinor     *int64    `gorm:"column:balance_minor" json:"balance_minor,omitempty"`
	CreditLimitMinor *int64    `gorm:"column:credit_limit_minor" json:"credit_limit_minor,omitempty"`
	StatusCurrent    string    `gorm:"column:status_current" json:"status_current,omitempty"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

func (TradelineSnapshot) TableName() string { return "tradeline_snapshot" }

// MonthlyMetric is one dated, typed value reported for a tradeline in a
// calendar period. The derived value key participates in the uniqueness
// constraint so re-reported identical values collapse while genuinely
// different readings coexist.
type MonthlyMetric struct {
	ID              string     `gorm:"primaryKey;column:id" json:"id"`
	TradelineID     string     `gorm:"not null;index;uniqueIndex:uq_monthly_metric;column:tradeline_id" json:"tradeline_id"`
	Period          string     `gorm:"not null;uniqueIndex:uq_monthly_metric;column:period" json:"period"`
	MetricType      MetricType `gorm:"not null;uniqueIndex:uq_monthly_metric;column:metric_type" json:"metric_type"`
	SourceImportID  string     `gorm:"not null;uniqueIndex:uq_monthly_metric;column:source_import_id" json:"source_import_id"`
	DerivedValueKey string     `gorm:"not null;uniqueIndex:uq_monthly_metric;column:derived_value_key" json:"derived_value_key"`
	SourceSystem    string     `gorm:"not null;column:source_system" json:"source_system"`
	StatusCode      string     `gorm:"column:status_code" json:"status_code,omitempty"`
	StatusCanonical string     `gorm:"column:status_canonical" json:"status_canonical,omitempty"`
	ValueNumber     *float64   `gorm:"column:value_number" json:"value_number,omitempty"`
	ValueText       string     `gorm:"column:value_text" json:"value_text,omitempty"`
	CreatedAt       time.Time  `gorm:"not null" json:"created_at"`
}

func (MonthlyMetric) TableName() string { return "monthly_metric" }

// TradelineEvent is a dated account event (default registered, settled,
// limit changed, ...).
type TradelineEvent struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	TradelineID    string    `gorm:"not null;index;column:tradeline_id" json:"tradeline_id"`
	SourceImportID string    `gorm:"not null;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;column:source_system" json:"source_system"`
	EventType      string    `gorm:"not null;column:event_type" json:"event_type"`
	OccurredAt     time.Time `gorm:"not null;column:occurred_at" json:"occurred_at"`
	Description    string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (TradelineEvent) TableName() string { return "tradeline_event" }
