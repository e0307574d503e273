package domain

import "time"

// PersonName is one reported name for a subject.
type PersonName struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string    `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;column:source_system" json:"source_system"`
	FullName       string    `gorm:"not null;column:full_name" json:"full_name"`
	NameType       string    `gorm:"column:name_type" json:"name_type,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (PersonName) TableName() string { return "person_name" }

// IdentityRecord is a subject-level identifier (national insurance number,
// date of birth record, etc.) as reported by one agency.
type IdentityRecord struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string    `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;column:source_system" json:"source_system"`
	IdentifierType string    `gorm:"not null;column:identifier_type" json:"identifier_type"`
	Value          string    `gorm:"not null;column:value" json:"value"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (IdentityRecord) TableName() string { return "identity_record" }

// Address is one reported address, referenced by associations, links and
// several fact record types within the same payload.
type Address struct {
	ID             string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string    `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string    `gorm:"not null;column:source_system" json:"source_system"`
	Line1          string    `gorm:"column:line1" json:"line1,omitempty"`
	Line2          string    `gorm:"column:line2" json:"line2,omitempty"`
	City           string    `gorm:"column:city" json:"city,omitempty"`
	Postcode       string    `gorm:"index;column:postcode" json:"postcode,omitempty"`
	CountryCode    string    `gorm:"column:country_code" json:"country_code,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
}

func (Address) TableName() string { return "address" }

// AddressAssociation ties the subject to an address over a period.
type AddressAssociation struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	AddressID      string     `gorm:"not null;index;column:address_id" json:"address_id"`
	Role           string     `gorm:"column:role" json:"role,omitempty"`
	FromDate       *time.Time `gorm:"column:from_date" json:"from_date,omitempty"`
	ToDate         *time.Time `gorm:"column:to_date" json:"to_date,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (AddressAssociation) TableName() string { return "address_association" }

// AddressLink records a reported move between two addresses.
type AddressLink struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	FromAddressID  string     `gorm:"not null;column:from_address_id" json:"from_address_id"`
	ToAddressID    string     `gorm:"not null;column:to_address_id" json:"to_address_id"`
	MovedAt        *time.Time `gorm:"column:moved_at" json:"moved_at,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (AddressLink) TableName() string { return "address_link" }

// FinancialAssociate is a person financially linked to the subject.
type FinancialAssociate struct {
	ID              string    `gorm:"primaryKey;column:id" json:"id"`
	SubjectID       string    `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID  string    `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem    string    `gorm:"not null;column:source_system" json:"source_system"`
	Name            string    `gorm:"column:name" json:"name,omitempty"`
	AssociationType string    `gorm:"column:association_type" json:"association_type,omitempty"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
}

func (FinancialAssociate) TableName() string { return "financial_associate" }

// ElectoralRollEntry is an electoral register appearance at an address.
type ElectoralRollEntry struct {
	ID             string     `gorm:"primaryKey;column:id" json:"id"`
	SubjectID      string     `gorm:"not null;index;column:subject_id" json:"subject_id"`
	SourceImportID string     `gorm:"not null;index;column:source_import_id" json:"source_import_id"`
	SourceSystem   string     `gorm:"not null;column:source_system" json:"source_system"`
	AddressID      string     `gorm:"not null;index;column:address_id" json:"address_id"`
	FromDate       *time.Time `gorm:"column:from_date" json:"from_date,omitempty"`
	ToDate         *time.Time `gorm:"column:to_date" json:"to_date,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (ElectoralRollEntry) TableName() string { return "electoral_roll_entry" }
