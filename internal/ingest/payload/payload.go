// Package payload defines the wire shape of one credit-file ingestion
// payload: one subject, one or more import batches, and every entity
// collection the batches report. All cross-references (source_import_id,
// address_id, organisation_id) must resolve within the same payload.
package payload

import "time"

type CreditFile struct {
	SubjectID   string `json:"subject_id" validate:"required"`
	FileID      string `json:"file_id" validate:"required"`
	Description string `json:"description,omitempty"`

	ImportBatches []ImportBatch `json:"import_batches" validate:"required,min=1,dive"`

	Names               []PersonName          `json:"names,omitempty" validate:"dive"`
	IdentityRecords     []IdentityRecord      `json:"identity_records,omitempty" validate:"dive"`
	Addresses           []Address             `json:"addresses,omitempty" validate:"dive"`
	AddressAssociations []AddressAssociation  `json:"address_associations,omitempty" validate:"dive"`
	AddressLinks        []AddressLink         `json:"address_links,omitempty" validate:"dive"`
	FinancialAssociates []FinancialAssociate  `json:"financial_associates,omitempty" validate:"dive"`
	ElectoralRoll       []ElectoralRollEntry  `json:"electoral_roll,omitempty" validate:"dive"`
	Organisations       []Organisation        `json:"organisations,omitempty" validate:"dive"`
	Tradelines          []Tradeline           `json:"tradelines,omitempty" validate:"dive"`
	Searches            []SearchRecord        `json:"searches,omitempty" validate:"dive"`
	CreditScores        []CreditScore         `json:"credit_scores,omitempty" validate:"dive"`
	PublicRecords       []PublicRecord        `json:"public_records,omitempty" validate:"dive"`
	NoticesOfCorrection []NoticeOfCorrection  `json:"notices_of_correction,omitempty" validate:"dive"`
	PropertyRecords     []PropertyRecord      `json:"property_records,omitempty" validate:"dive"`
	GoneAwayRecords     []GoneAwayRecord      `json:"gone_away_records,omitempty" validate:"dive"`
	FraudMarkers        []FraudMarker         `json:"fraud_markers,omitempty" validate:"dive"`
	AttributableItems   []AttributableItem    `json:"attributable_items,omitempty" validate:"dive"`
	Disputes            []Dispute             `json:"disputes,omitempty" validate:"dive"`
}

type ImportBatch struct {
	ImportID          string        `json:"import_id" validate:"required"`
	SourceSystem      string        `json:"source_system" validate:"required"`
	ImportedAt        time.Time     `json:"imported_at" validate:"required"`
	AcquisitionMethod string        `json:"acquisition_method,omitempty"`
	RawArtifacts      []RawArtifact `json:"raw_artifacts,omitempty" validate:"dive"`
}

type RawArtifact struct {
	ArtifactID string                 `json:"artifact_id" validate:"required"`
	Kind       string                 `json:"kind,omitempty"`
	Content    map[string]interface{} `json:"content,omitempty"`
}

type PersonName struct {
	NameID         string `json:"name_id" validate:"required"`
	SourceImportID string `json:"source_import_id" validate:"required"`
	FullName       string `json:"full_name" validate:"required"`
	NameType       string `json:"name_type,omitempty"`
}

type IdentityRecord struct {
	RecordID       string `json:"record_id" validate:"required"`
	SourceImportID string `json:"source_import_id" validate:"required"`
	IdentifierType string `json:"identifier_type" validate:"required"`
	Value          string `json:"value" validate:"required"`
}

type Address struct {
	AddressID      string `json:"address_id" validate:"required"`
	SourceImportID string `json:"source_import_id" validate:"required"`
	Line1          string `json:"line1,omitempty"`
	Line2          string `json:"line2,omitempty"`
	City           string `json:"city,omitempty"`
	Postcode       string `json:"postcode,omitempty"`
	CountryCode    string `json:"country_code,omitempty"`
}

type AddressAssociation struct {
	AssociationID  string     `json:"association_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	AddressID      string     `json:"address_id" validate:"required"`
	Role           string     `json:"role,omitempty"`
	FromDate       *time.Time `json:"from_date,omitempty"`
	ToDate         *time.Time `json:"to_date,omitempty"`
}

type AddressLink struct {
	LinkID         string     `json:"link_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	FromAddressID  string     `json:"from_address_id" validate:"required"`
	ToAddressID    string     `json:"to_address_id" validate:"required"`
	MovedAt        *time.Time `json:"moved_at,omitempty"`
}

type FinancialAssociate struct {
	AssociateID     string `json:"associate_id" validate:"required"`
	SourceImportID  string `json:"source_import_id" validate:"required"`
	Name            string `json:"name,omitempty"`
	AssociationType string `json:"association_type,omitempty"`
}

type ElectoralRollEntry struct {
	EntryID        string     `json:"entry_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	AddressID      string     `json:"address_id" validate:"required"`
	FromDate       *time.Time `json:"from_date,omitempty"`
	ToDate         *time.Time `json:"to_date,omitempty"`
}

type Organisation struct {
	OrganisationID string `json:"organisation_id" validate:"required"`
	SourceImportID string `json:"source_import_id,omitempty"`
	Name           string `json:"name" validate:"required"`
	Kind           string `json:"kind,omitempty"`
}

type Tradeline struct {
	TradelineID    string     `json:"tradeline_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	OrganisationID string     `json:"organisation_id" validate:"required"`
	CanonicalID    *string    `json:"canonical_id,omitempty"`
	AccountType    string     `json:"account_type" validate:"required"`
	StatusCurrent  string     `json:"status_current,omitempty"`
	OpenedAt       *time.Time `json:"opened_at,omitempty"`
	ClosedAt       *time.Time `json:"closed_at,omitempty"`

	Identifiers    []TradelineIdentifier `json:"identifiers,omitempty" validate:"dive"`
	Parties        []TradelineParty      `json:"parties,omitempty" validate:"dive"`
	Terms          *TradelineTerms       `json:"terms,omitempty"`
	Snapshots      []TradelineSnapshot   `json:"snapshots,omitempty" validate:"dive"`
	MonthlyMetrics []MonthlyMetric       `json:"monthly_metrics,omitempty" validate:"dive"`
	Events         []TradelineEvent      `json:"events,omitempty" validate:"dive"`
}

type TradelineIdentifier struct {
	IdentifierID   string `json:"identifier_id" validate:"required"`
	SourceImportID string `json:"source_import_id" validate:"required"`
	Kind           string `json:"kind,omitempty"`
	Value          string `json:"value" validate:"required"`
}

type TradelineParty struct {
	PartyID        string `json:"party_id" validate:"required"`
	SourceImportID string `json:"source_import_id" validate:"required"`
	Role           string `json:"role,omitempty"`
	Name           string `json:"name,omitempty"`
}

type TradelineTerms struct {
	TermsID             string `json:"terms_id" validate:"required"`
	SourceImportID      string `json:"source_import_id" validate:"required"`
	PaymentFrequency    string `json:"payment_frequency,omitempty"`
	TermMonths          *int   `json:"term_months,omitempty"`
	MonthlyPaymentMinor *int64 `json:"monthly_payment_minor,omitempty"`
}

type TradelineSnapshot struct {
	SnapshotID       string    `json:"snapshot_id" validate:"required"`
	SourceImportID   string    `json:"source_import_id" validate:"required"`
	CapturedAt       time.Time `json:"captured_at" validate:"required"`
	BalanceMinor     *int64    `json:"balance_minor,omitempty"`
	CreditLimitMinor *int64    `json:"credit_limit_minor,omitempty"`
	StatusCurrent    string    `json:"status_current,omitempty"`
}

type MonthlyMetric struct {
	MetricID       string   `json:"metric_id" validate:"required"`
	SourceImportID string   `json:"source_import_id" validate:"required"`
	Period         string   `json:"period" validate:"required"`
	MetricType     string   `json:"metric_type" validate:"required"`
	StatusCode     string   `json:"status_code,omitempty"`
	StatusText     string   `json:"status_text,omitempty"`
	ValueNumber    *float64 `json:"value_number,omitempty"`
	ValueText      string   `json:"value_text,omitempty"`
}

type TradelineEvent struct {
	EventID        string    `json:"event_id" validate:"required"`
	SourceImportID string    `json:"source_import_id" validate:"required"`
	EventType      string    `json:"event_type" validate:"required"`
	OccurredAt     time.Time `json:"occurred_at" validate:"required"`
	Description    string    `json:"description,omitempty"`
}

type SearchRecord struct {
	SearchID       string    `json:"search_id" validate:"required"`
	SourceImportID string    `json:"source_import_id" validate:"required"`
	OrganisationID string    `json:"organisation_id" validate:"required"`
	AddressID      *string   `json:"address_id,omitempty"`
	Visibility     string    `json:"visibility,omitempty"`
	Purpose        string    `json:"purpose,omitempty"`
	SearchedAt     time.Time `json:"searched_at" validate:"required"`
}

type CreditScore struct {
	ScoreID        string    `json:"score_id" validate:"required"`
	SourceImportID string    `json:"source_import_id" validate:"required"`
	Score          int       `json:"score"`
	ScoreMax       *int      `json:"score_max,omitempty"`
	ScoreType      string    `json:"score_type,omitempty"`
	RecordedAt     time.Time `json:"recorded_at" validate:"required"`
}

type PublicRecord struct {
	RecordID       string     `json:"record_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	RecordType     string     `json:"record_type" validate:"required"`
	AddressID      *string    `json:"address_id,omitempty"`
	AmountMinor    *int64     `json:"amount_minor,omitempty"`
	Status         string     `json:"status,omitempty"`
	FiledAt        *time.Time `json:"filed_at,omitempty"`
	SatisfiedAt    *time.Time `json:"satisfied_at,omitempty"`
}

type NoticeOfCorrection struct {
	NoticeID       string     `json:"notice_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	Text           string     `json:"text" validate:"required"`
	AppliedAt      *time.Time `json:"applied_at,omitempty"`
}

type PropertyRecord struct {
	RecordID       string     `json:"record_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	AddressID      *string    `json:"address_id,omitempty"`
	Tenure         string     `json:"tenure,omitempty"`
	ValueMinor     *int64     `json:"value_minor,omitempty"`
	RecordedAt     *time.Time `json:"recorded_at,omitempty"`
}

type GoneAwayRecord struct {
	RecordID       string     `json:"record_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	AddressID      *string    `json:"address_id,omitempty"`
	ReportedAt     *time.Time `json:"reported_at,omitempty"`
}

type FraudMarker struct {
	MarkerID       string     `json:"marker_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	MarkerType     string     `json:"marker_type" validate:"required"`
	AddressID      *string    `json:"address_id,omitempty"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

type AttributableItem struct {
	ItemID         string `json:"item_id" validate:"required"`
	SourceImportID string `json:"source_import_id" validate:"required"`
	ItemType       string `json:"item_type" validate:"required"`
	Description    string `json:"description,omitempty"`
}

type Dispute struct {
	DisputeID      string     `json:"dispute_id" validate:"required"`
	SourceImportID string     `json:"source_import_id" validate:"required"`
	TradelineID    *string    `json:"tradeline_id,omitempty"`
	Status         string     `json:"status,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	OpenedAt       *time.Time `json:"opened_at,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// ImportIDs lists the payload's import batch IDs in declaration order.
func (f *CreditFile) ImportIDs() []string {
	out := make([]string, 0, len(f.ImportBatches))
	for _, b := range f.ImportBatches {
		out = append(out, b.ImportID)
	}
	return out
}

// AgencyByImport maps import batch ID to its source system.
func (f *CreditFile) AgencyByImport() map[string]string {
	out := make(map[string]string, len(f.ImportBatches))
	for _, b := range f.ImportBatches {
		out[b.ImportID] = b.SourceSystem
	}
	return out
}
