package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

// Set bundles every repository so services and main wire one value instead
// of thirty constructors.
type Set struct {
	Subjects            SubjectRepo
	CreditFiles         CreditFileRepo
	ImportBatches       ImportBatchRepo
	RawArtifacts        RawArtifactRepo
	PersonNames         PersonNameRepo
	IdentityRecords     IdentityRecordRepo
	Addresses           AddressRepo
	AddressAssociations AddressAssociationRepo
	AddressLinks        AddressLinkRepo
	FinancialAssociates FinancialAssociateRepo
	ElectoralRoll       ElectoralRollRepo
	Organisations       OrganisationRepo
	Tradelines          TradelineRepo
	TradelineIdents     TradelineIdentifierRepo
	TradelineParties    TradelinePartyRepo
	TradelineTerms      TradelineTermsRepo
	TradelineSnapshots  TradelineSnapshotRepo
	MonthlyMetrics      MonthlyMetricRepo
	TradelineEvents     TradelineEventRepo
	Searches            SearchRecordRepo
	CreditScores        CreditScoreRepo
	PublicRecords       PublicRecordRepo
	Notices             NoticeOfCorrectionRepo
	PropertyRecords     PropertyRecordRepo
	GoneAwayRecords     GoneAwayRecordRepo
	FraudMarkers        FraudMarkerRepo
	AttributableItems   AttributableItemRepo
	Disputes            DisputeRepo
	Insights            GeneratedInsightRepo
	IngestReceipts      IngestReceiptRepo
}

func NewSet(db *gorm.DB, baseLog *logger.Logger) *Set {
	return &Set{
		Subjects:            NewSubjectRepo(db, baseLog),
		CreditFiles:         NewCreditFileRepo(db, baseLog),
		ImportBatches:       NewImportBatchRepo(db, baseLog),
		RawArtifacts:        NewRawArtifactRepo(db, baseLog),
		PersonNames:         NewPersonNameRepo(db, baseLog),
		IdentityRecords:     NewIdentityRecordRepo(db, baseLog),
		Addresses:           NewAddressRepo(db, baseLog),
		AddressAssociations: NewAddressAssociationRepo(db, baseLog),
		AddressLinks:        NewAddressLinkRepo(db, baseLog),
		FinancialAssociates: NewFinancialAssociateRepo(db, baseLog),
		ElectoralRoll:       NewElectoralRollRepo(db, baseLog),
		Organisations:       NewOrganisationRepo(db, baseLog),
		Tradelines:          NewTradelineRepo(db, baseLog),
		TradelineIdents:     NewTradelineIdentifierRepo(db, baseLog),
		TradelineParties:    NewTradelinePartyRepo(db, baseLog),
		TradelineTerms:      NewTradelineTermsRepo(db, baseLog),
		TradelineSnapshots:  NewTradelineSnapshotRepo(db, baseLog),
		MonthlyMetrics:      NewMonthlyMetricRepo(db, baseLog),
		TradelineEvents:     NewTradelineEventRepo(db, baseLog),
		Searches:            NewSearchRecordRepo(db, baseLog),
		CreditScores:        NewCreditScoreRepo(db, baseLog),
		PublicRecords:       NewPublicRecordRepo(db, baseLog),
		Notices:             NewNoticeOfCorrectionRepo(db, baseLog),
		PropertyRecords:     NewPropertyRecordRepo(db, baseLog),
		GoneAwayRecords:     NewGoneAwayRecordRepo(db, baseLog),
		FraudMarkers:        NewFraudMarkerRepo(db, baseLog),
		AttributableItems:   NewAttributableItemRepo(db, baseLog),
		Disputes:            NewDisputeRepo(db, baseLog),
		Insights:            NewGeneratedInsightRepo(db, baseLog),
		IngestReceipts:      NewIngestReceiptRepo(db, baseLog),
	}
}
