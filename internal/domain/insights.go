package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GeneratedInsight is one observation produced by a quality warning or an
// anomaly rule during ingestion. Rows are written fresh by every ingestion
// and never revised.
type GeneratedInsight struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID  string         `gorm:"not null;index;column:subject_id" json:"subject_id"`
	ImportID   *string        `gorm:"index;column:import_id" json:"import_id,omitempty"`
	RuleID     string         `gorm:"index;column:rule_id" json:"rule_id,omitempty"`
	Kind       string         `gorm:"not null;index;column:kind" json:"kind"`
	Severity   Severity       `gorm:"not null;index;column:severity" json:"severity"`
	Summary    string         `gorm:"not null;column:summary" json:"summary"`
	Extensions datatypes.JSON `gorm:"column:extensions;type:jsonb" json:"extensions,omitempty"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (GeneratedInsight) TableName() string { return "generated_insight" }

// GeneratedInsightEntity links an insight to one source entity row.
type GeneratedInsightEntity struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	InsightID  uuid.UUID `gorm:"type:uuid;not null;index;column:insight_id" json:"insight_id"`
	EntityType string    `gorm:"not null;column:entity_type" json:"entity_type"`
	EntityID   string    `gorm:"not null;index;column:entity_id" json:"entity_id"`
}

func (GeneratedInsightEntity) TableName() string { return "generated_insight_entity" }

// IngestReceipt records one successful ingestion attempt. The payload
// digest backs the dedup gate.
type IngestReceipt struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SubjectID     string         `gorm:"not null;index;column:subject_id" json:"subject_id"`
	PayloadDigest string         `gorm:"not null;uniqueIndex;column:payload_digest" json:"payload_digest"`
	Status        string         `gorm:"not null;column:status" json:"status"`
	DurationMs    int64          `gorm:"not null;column:duration_ms" json:"duration_ms"`
	ImportIDs     datatypes.JSON `gorm:"column:import_ids;type:jsonb" json:"import_ids,omitempty"`
	Summary       datatypes.JSON `gorm:"column:summary;type:jsonb" json:"summary,omitempty"`
	CreatedAt     time.Time      `gorm:"not null;index" json:"created_at"`
}

func (IngestReceipt) TableName() string { return "ingest_receipt" }

// EntityRef points an insight at one entity row.
type EntityRef struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// InsightDraft is the in-memory shape insights pass through before they are
// persisted. Quality warnings and anomaly rules both produce these.
type InsightDraft struct {
	Kind       string
	Severity   Severity
	Summary    string
	RuleID     string
	Extensions map[string]interface{}
	Entities   []EntityRef
}
