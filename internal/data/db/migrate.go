package db

import (
	types "github.com/yungbote/credfile-backend/internal/domain"
	"gorm.io/gorm"
)

// migratedModels is the full schema, in dependency order. The DDL hash is
// derived from this list, so additions here invalidate stale databases.
func migratedModels() []interface{} {
	return []interface{}{
		// Provenance
		&types.Subject{},
		&types.CreditFile{},
		&types.ImportBatch{},
		&types.RawArtifact{},

		// Identity
		&types.PersonName{},
		&types.IdentityRecord{},
		&types.Address{},
		&types.AddressAssociation{},
		&types.AddressLink{},
		&types.FinancialAssociate{},
		&types.ElectoralRollEntry{},

		// Accounts
		&types.Organisation{},
		&types.Tradeline{},
		&types.TradelineIdentifier{},
		&types.TradelineParty{},
		&types.TradelineTerms{},
		&types.TradelineSnapshot{},
		&types.MonthlyMetric{},
		&types.TradelineEvent{},

		// Fact records
		&types.SearchRecord{},
		&types.CreditScore{},
		&types.PublicRecord{},
		&types.NoticeOfCorrection{},
		&types.PropertyRecord{},
		&types.GoneAwayRecord{},
		&types.FraudMarker{},
		&types.AttributableItem{},
		&types.Dispute{},

		// Outputs
		&types.GeneratedInsight{},
		&types.GeneratedInsightEntity{},
		&types.IngestReceipt{},
	}
}

// AutoMigrateAll migrates every model plus the schema metadata table.
func AutoMigrateAll(db *gorm.DB) error {
	models := append([]interface{}{&SchemaMeta{}}, migratedModels()...)
	return db.AutoMigrate(models...)
}
