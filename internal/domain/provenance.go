package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Subject is one real-world person across all agencies and time. Created on
// first ingestion, never deleted, accreted by every later ingestion.
type Subject struct {
	ID        string    `gorm:"primaryKey;column:id" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Subject) TableName() string { return "subject" }

// CreditFile is the persisted root of one ingested payload.
type CreditFile struct {
	ID          string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID   string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (CreditFile) TableName() string { return "credit_file" }

// ImportBatch is one ingestion event for one agency at one point in time.
// Everything it owns is written exactly once and never mutated.
type ImportBatch struct {
	ID                string    `gorm:"primaryKey;column:id" json:"id"`
	CreditFileID      string    `gorm:"not null;index;column:credit_file_id" json:"credit_file_id"`
	SubjectID         string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceSystem      string    `gorm:"not null;index;column:source_system" json:"source_system"`
	ImportedAt        time.Time `gorm:"not null;index;column:imported_at" json:"imported_at"`
	AcquisitionMethod string    `gorm:"column:acquisition_method" json:"acquisition_method,omitempty"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
}

func (ImportBatch) TableName() string { return "import_batch" }

// RawArtifact is a raw source document owned by an import batch.
type RawArtifact struct {
	ID             string         `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string         `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string         `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string         `gorm:"not null;column:source_system" json:"source_system"`
	Kind           string         `gorm:"column:kind" json:"kind,omitempty"`
	Content        datatypes.JSON `gorm:"column:content;type:jsonb" json:"content,omitempty"`
	CreatedAt      time.Time      `gorm:"not null" json:"created_at"`
}

func (RawArtifact) TableName() string { return "raw_artifact" }
