// Package services holds the orchestration layer: ingestion end to end,
// plus the read paths handlers expose.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/credfile-backend/internal/anomaly"
	"github.com/yungbote/credfile-backend/internal/data/db"
	"github.com/yungbote/credfile-backend/internal/data/repos"
	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/ingest/integrity"
	"github.com/yungbote/credfile-backend/internal/ingest/payload"
	"github.com/yungbote/credfile-backend/internal/ingest/quality"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
	"github.com/yungbote/credfile-backend/internal/settings"
)

// AnalysisResult summarises the insight generation half of an ingestion.
type AnalysisResult struct {
	InsightCount int                 `json:"insight_count"`
	RuleErrors   []anomaly.RuleError `json:"rule_errors,omitempty"`
}

// IngestResult is the receipt-shaped outcome of one ingestion call.
// Duplicate results replay the stored receipt of the earlier identical
// payload; nothing is written for them.
type IngestResult struct {
	SubjectID    string         `json:"subject_id"`
	ReceiptID    uuid.UUID      `json:"receipt_id"`
	Duplicate    bool           `json:"duplicate"`
	ImportIDs    []string       `json:"import_ids"`
	DurationMs   int64          `json:"duration_ms"`
	EntityCounts map[string]int `json:"entity_counts"`
	Analysis     AnalysisResult `json:"analysis"`
}

type IngestionService interface {
	Ingest(ctx context.Context, f *payload.CreditFile) (*IngestResult, error)
}

type ingestionService struct {
	db        *gorm.DB
	log       *logger.Logger
	validator payload.SchemaValidator
	engine    *anomaly.Engine
	settings  settings.Store
	repos     *repos.Set
	clock     func() time.Time
}

func NewIngestionService(database *gorm.DB, set *repos.Set, store settings.Store, log *logger.Logger) IngestionService {
	return &ingestionService{
		db:        database,
		log:       log.With("service", "IngestionService"),
		validator: payload.NewSchemaValidator(),
		engine:    anomaly.NewEngine(log, anomaly.DefaultRules()),
		settings:  store,
		repos:     set,
		clock:     time.Now,
	}
}

// Ingest validates, dedups and persists one credit-file payload, then runs
// quality checks and anomaly rules inside the same transaction. An
// identical payload seen before short-circuits to its stored receipt.
func (s *ingestionService) Ingest(ctx context.Context, f *payload.CreditFile) (*IngestResult, error) {
	start := s.clock()

	if ok, schemaErrs := s.validator.Validate(f); !ok {
		return nil, &SchemaInvalidError{Errors: schemaErrs}
	}
	if res := integrity.Check(f); !res.Valid {
		return nil, &ReferentialInvalidError{Errors: res.Errors}
	}

	digest, err := payload.Digest(f)
	if err != nil {
		return nil, fmt.Errorf("digest payload: %w", err)
	}
	if prior, err := s.repos.IngestReceipts.GetByDigest(ctx, nil, digest); err != nil {
		return nil, err
	} else if prior != nil {
		s.log.Info("duplicate payload", "subject_id", f.SubjectID, "digest", digest)
		return duplicateResult(prior), nil
	}

	var out *IngestResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, txErr := s.ingestTx(ctx, tx, f, digest, start)
		if txErr != nil {
			return txErr
		}
		out = r
		return nil
	})
	if err != nil {
		if db.IsConflict(err) {
			// A concurrent ingestion of the same payload may have won the
			// receipt digest; replay it as a duplicate.
			if prior, gerr := s.repos.IngestReceipts.GetByDigest(ctx, nil, digest); gerr == nil && prior != nil {
				return duplicateResult(prior), nil
			}
			return nil, &StorageConflictError{Err: err}
		}
		return nil, err
	}

	s.log.Info("payload ingested",
		"subject_id", out.SubjectID,
		"receipt_id", out.ReceiptID,
		"import_count", len(out.ImportIDs),
		"insight_count", out.Analysis.InsightCount,
		"duration_ms", out.DurationMs)
	return out, nil
}

func (s *ingestionService) ingestTx(ctx context.Context, tx *gorm.DB, f *payload.CreditFile, digest string, start time.Time) (*IngestResult, error) {
	agency := f.AgencyByImport()
	counts := map[string]int{}

	if _, err := s.repos.Subjects.EnsureExists(ctx, tx, f.SubjectID); err != nil {
		return nil, err
	}
	if err := s.writeProvenance(ctx, tx, f, counts); err != nil {
		return nil, err
	}
	if err := s.writeIdentity(ctx, tx, f, agency, counts); err != nil {
		return nil, err
	}
	if err := s.writeAccounts(ctx, tx, f, agency, counts); err != nil {
		return nil, err
	}
	if err := s.writeRecords(ctx, tx, f, agency, counts); err != nil {
		return nil, err
	}

	drafts := quality.Warnings(f)
	rc := &anomaly.Context{
		Ctx:            ctx,
		Log:            s.log,
		Payload:        f,
		SubjectID:      f.SubjectID,
		ImportIDs:      f.ImportIDs(),
		AgencyByImport: agency,
		Config:         anomaly.ResolveConfig(ctx, s.settings),
		History:        newHistoryReader(tx, f.SubjectID, s.repos),
	}
	ares := s.engine.Run(rc)
	drafts = append(drafts, ares.Insights...)

	if err := s.writeInsights(ctx, tx, f, drafts, counts); err != nil {
		return nil, err
	}

	analysis := AnalysisResult{InsightCount: len(drafts), RuleErrors: ares.RuleErrors}
	receipt, err := s.writeReceipt(ctx, tx, f, digest, start, counts, analysis)
	if err != nil {
		return nil, err
	}

	return &IngestResult{
		SubjectID:    f.SubjectID,
		ReceiptID:    receipt.ID,
		ImportIDs:    f.ImportIDs(),
		DurationMs:   receipt.DurationMs,
		EntityCounts: counts,
		Analysis:     analysis,
	}, nil
}

func (s *ingestionService) writeProvenance(ctx context.Context, tx *gorm.DB, f *payload.CreditFile, counts map[string]int) error {
	files := []*types.CreditFile{{ID: f.FileID, SubjectID: f.SubjectID, Description: f.Description}}
	if _, err := s.repos.CreditFiles.Create(ctx, tx, files); err != nil {
		return err
	}
	counts["credit_file"] += len(files)

	batches := make([]*types.ImportBatch, 0, len(f.ImportBatches))
	var artifacts []*types.RawArtifact
	for _, b := range f.ImportBatches {
		batches = append(batches, &types.ImportBatch{
			ID:                b.ImportID,
			CreditFileID:      f.FileID,
			SubjectID:         f.SubjectID,
			SourceSystem:      b.SourceSystem,
			ImportedAt:        b.ImportedAt,
			AcquisitionMethod: b.AcquisitionMethod,
		})
		for _, a := range b.RawArtifacts {
			content, err := marshalJSON(a.Content)
			if err != nil {
				return fmt.Errorf("raw artifact %s: %w", a.ArtifactID, err)
			}
			artifacts = append(artifacts, &types.RawArtifact{
				ID:             a.ArtifactID,
				SubjectID:      f.SubjectID,
				SourceImportID: b.ImportID,
				SourceSystem:   b.SourceSystem,
				Kind:           a.Kind,
				Content:        content,
			})
		}
	}
	if _, err := s.repos.ImportBatches.Create(ctx, tx, batches); err != nil {
		return err
	}
	counts["import_batch"] += len(batches)
	if _, err := s.repos.RawArtifacts.Create(ctx, tx, artifacts); err != nil {
		return err
	}
	counts["raw_artifact"] += len(artifacts)
	return nil
}

func (s *ingestionService) writeIdentity(ctx context.Context, tx *gorm.DB, f *payload.CreditFile, agency map[string]string, counts map[string]int) error {
	names := make([]*types.PersonName, 0, len(f.Names))
	for _, p := range f.Names {
		names = append(names, &types.PersonName{
			ID:             p.NameID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			FullName:       p.FullName,
			NameType:       p.NameType,
		})
	}
	if _, err := s.repos.PersonNames.Create(ctx, tx, names); err != nil {
		return err
	}
	counts["person_name"] += len(names)

	idents := make([]*types.IdentityRecord, 0, len(f.IdentityRecords))
	for _, p := range f.IdentityRecords {
		idents = append(idents, &types.IdentityRecord{
			ID:             p.RecordID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			IdentifierType: p.IdentifierType,
			Value:          p.Value,
		})
	}
	if _, err := s.repos.IdentityRecords.Create(ctx, tx, idents); err != nil {
		return err
	}
	counts["identity_record"] += len(idents)

	addresses := make([]*types.Address, 0, len(f.Addresses))
	for _, p := range f.Addresses {
		addresses = append(addresses, &types.Address{
			ID:             p.AddressID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			Line1:          p.Line1,
			Line2:          p.Line2,
			City:           p.City,
			Postcode:       p.Postcode,
			CountryCode:    p.CountryCode,
		})
	}
	if _, err := s.repos.Addresses.Create(ctx, tx, addresses); err != nil {
		return err
	}
	counts["address"] += len(addresses)

	assocs := make([]*types.AddressAssociation, 0, len(f.AddressAssociations))
	for _, p := range f.AddressAssociations {
		assocs = append(assocs, &types.AddressAssociation{
			ID:             p.AssociationID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			AddressID:      p.AddressID,
			Role:           p.Role,
			FromDate:       p.FromDate,
			ToDate:         p.ToDate,
		})
	}
	if _, err := s.repos.AddressAssociations.Create(ctx, tx, assocs); err != nil {
		return err
	}
	counts["address_association"] += len(assocs)

	links := make([]*types.AddressLink, 0, len(f.AddressLinks))
	for _, p := range f.AddressLinks {
		links = append(links, &types.AddressLink{
			ID:             p.LinkID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			FromAddressID:  p.FromAddressID,
			ToAddressID:    p.ToAddressID,
			MovedAt:        p.MovedAt,
		})
	}
	if _, err := s.repos.AddressLinks.Create(ctx, tx, links); err != nil {
		return err
	}
	counts["address_link"] += len(links)

	associates := make([]*types.FinancialAssociate, 0, len(f.FinancialAssociates))
	for _, p := range f.FinancialAssociates {
		associates = append(associates, &types.FinancialAssociate{
			ID:              p.AssociateID,
			SubjectID:       f.SubjectID,
			SourceImportID:  p.SourceImportID,
			SourceSystem:    agency[p.SourceImportID],
			Name:            p.Name,
			AssociationType: p.AssociationType,
		})
	}
	if _, err := s.repos.FinancialAssociates.Create(ctx, tx, associates); err != nil {
		return err
	}
	counts["financial_associate"] += len(associates)

	roll := make([]*types.ElectoralRollEntry, 0, len(f.ElectoralRoll))
	for _, p := range f.ElectoralRoll {
		roll = append(roll, &types.ElectoralRollEntry{
			ID:             p.EntryID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			AddressID:      p.AddressID,
			FromDate:       p.FromDate,
			ToDate:         p.ToDate,
		})
	}
	if _, err := s.repos.ElectoralRoll.Create(ctx, tx, roll); err != nil {
		return err
	}
	counts["electoral_roll_entry"] += len(roll)
	return nil
}

func (s *ingestionService) writeAccounts(ctx context.Context, tx *gorm.DB, f *payload.CreditFile, agency map[string]string, counts map[string]int) error {
	orgs := make([]*types.Organisation, 0, len(f.Organisations))
	for _, p := range f.Organisations {
		row := &types.Organisation{
			ID:        p.OrganisationID,
			SubjectID: f.SubjectID,
			Name:      p.Name,
			Kind:      p.Kind,
		}
		if p.SourceImportID != "" {
			importID := p.SourceImportID
			row.SourceImportID = &importID
			row.SourceSystem = agency[importID]
		}
		orgs = append(orgs, row)
	}
	if _, err := s.repos.Organisations.Create(ctx, tx, orgs); err != nil {
		return err
	}
	counts["organisation"] += len(orgs)

	tradelines := make([]*types.Tradeline, 0, len(f.Tradelines))
	var (
		identifiers []*types.TradelineIdentifier
		parties     []*types.TradelineParty
		terms       []*types.TradelineTerms
		snapshots   []*types.TradelineSnapshot
		metrics     []*types.MonthlyMetric
		events      []*types.TradelineEvent
	)
	for _, tl := range f.Tradelines {
		tradelines = append(tradelines, &types.Tradeline{
			ID:             tl.TradelineID,
			SubjectID:      f.SubjectID,
			SourceImportID: tl.SourceImportID,
			SourceSystem:   agency[tl.SourceImportID],
			OrganisationID: tl.OrganisationID,
			CanonicalID:    tl.CanonicalID,
			AccountType:    types.AccountType(tl.AccountType),
			StatusCurrent:  tl.StatusCurrent,
			OpenedAt:       tl.OpenedAt,
			ClosedAt:       tl.ClosedAt,
		})
		for _, p := range tl.Identifiers {
			identifiers = append(identifiers, &types.TradelineIdentifier{
				ID:             p.IdentifierID,
				TradelineID:    tl.TradelineID,
				SourceImportID: p.SourceImportID,
				SourceSystem:   agency[p.SourceImportID],
				Kind:           p.Kind,
				Value:          p.Value,
			})
		}
		for _, p := range tl.Parties {
			parties = append(parties, &types.TradelineParty{
				ID:             p.PartyID,
				TradelineID:    tl.TradelineID,
				SourceImportID: p.SourceImportID,
				SourceSystem:   agency[p.SourceImportID],
				Role:           p.Role,
				Name:           p.Name,
			})
		}
		if t := tl.Terms; t != nil {
			terms = append(terms, &types.TradelineTerms{
				ID:                  t.TermsID,
				TradelineID:         tl.TradelineID,
				SourceImportID:      t.SourceImportID,
				SourceSystem:        agency[t.SourceImportID],
				PaymentFrequency:    t.PaymentFrequency,
				TermMonths:          t.TermMonths,
				MonthlyPaymentMinor: t.MonthlyPaymentMinor,
			})
		}
		for _, p := range tl.Snapshots {
			snapshots = append(snapshots, &types.TradelineSnapshot{
				ID:               p.SnapshotID,
				TradelineID:      tl.TradelineID,
				SourceImportID:   p.SourceImportID,
				SourceSystem:     agency[p.SourceImportID],
				CapturedAt:       p.CapturedAt,
				BalanceMinor:     p.BalanceMinor,
				CreditLimitMinor: p.CreditLimitMinor,
				StatusCurrent:    p.StatusCurrent,
			})
		}
		for i := range tl.MonthlyMetrics {
			m := &tl.MonthlyMetrics[i]
			row := &types.MonthlyMetric{
				ID:              m.MetricID,
				TradelineID:     tl.TradelineID,
				Period:          m.Period,
				MetricType:      types.MetricType(m.MetricType),
				SourceImportID:  m.SourceImportID,
				DerivedValueKey: payload.DerivedValueKey(m),
				SourceSystem:    agency[m.SourceImportID],
				StatusCode:      m.StatusCode,
				ValueNumber:     m.ValueNumber,
				ValueText:       m.ValueText,
			}
			if row.MetricType == types.MetricPaymentStatus {
				row.StatusCanonical = string(types.NormalizeStatus(m.StatusText))
			}
			metrics = append(metrics, row)
		}
		for _, p := range tl.Events {
			events = append(events, &types.TradelineEvent{
				ID:             p.EventID,
				TradelineID:    tl.TradelineID,
				SourceImportID: p.SourceImportID,
				SourceSystem:   agency[p.SourceImportID],
				EventType:      p.EventType,
				OccurredAt:     p.OccurredAt,
				Description:    p.Description,
			})
		}
	}
	if _, err := s.repos.Tradelines.Create(ctx, tx, tradelines); err != nil {
		return err
	}
	counts["tradeline"] += len(tradelines)
	if _, err := s.repos.TradelineIdents.Create(ctx, tx, identifiers); err != nil {
		return err
	}
	counts["tradeline_identifier"] += len(identifiers)
	if _, err := s.repos.TradelineParties.Create(ctx, tx, parties); err != nil {
		return err
	}
	counts["tradeline_party"] += len(parties)
	if _, err := s.repos.TradelineTerms.Create(ctx, tx, terms); err != nil {
		return err
	}
	counts["tradeline_terms"] += len(terms)
	if _, err := s.repos.TradelineSnapshots.Create(ctx, tx, snapshots); err != nil {
		return err
	}
	counts["tradeline_snapshot"] += len(snapshots)
	if _, err := s.repos.MonthlyMetrics.Create(ctx, tx, metrics); err != nil {
		return err
	}
	counts["monthly_metric"] += len(metrics)
	if _, err := s.repos.TradelineEvents.Create(ctx, tx, events); err != nil {
		return err
	}
	counts["tradeline_event"] += len(events)
	return nil
}

func (s *ingestionService) writeRecords(ctx context.Context, tx *gorm.DB, f *payload.CreditFile, agency map[string]string, counts map[string]int) error {
	searches := make([]*types.SearchRecord, 0, len(f.Searches))
	for _, p := range f.Searches {
		searches = append(searches, &types.SearchRecord{
			ID:             p.SearchID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			OrganisationID: p.OrganisationID,
			AddressID:      p.AddressID,
			Visibility:     visibilityOf(p.Visibility),
			Purpose:        p.Purpose,
			SearchedAt:     p.SearchedAt,
		})
	}
	if _, err := s.repos.Searches.Create(ctx, tx, searches); err != nil {
		return err
	}
	counts["search_record"] += len(searches)

	scores := make([]*types.CreditScore, 0, len(f.CreditScores))
	for _, p := range f.CreditScores {
		scores = append(scores, &types.CreditScore{
			ID:             p.ScoreID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			Score:          p.Score,
			ScoreMax:       p.ScoreMax,
			ScoreType:      p.ScoreType,
			RecordedAt:     p.RecordedAt,
		})
	}
	if _, err := s.repos.CreditScores.Create(ctx, tx, scores); err != nil {
		return err
	}
	counts["credit_score"] += len(scores)

	publics := make([]*types.PublicRecord, 0, len(f.PublicRecords))
	for _, p := range f.PublicRecords {
		publics = append(publics, &types.PublicRecord{
			ID:             p.RecordID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			RecordType:     p.RecordType,
			AddressID:      p.AddressID,
			AmountMinor:    p.AmountMinor,
			Status:         p.Status,
			FiledAt:        p.FiledAt,
			SatisfiedAt:    p.SatisfiedAt,
		})
	}
	if _, err := s.repos.PublicRecords.Create(ctx, tx, publics); err != nil {
		return err
	}
	counts["public_record"] += len(publics)

	notices := make([]*types.NoticeOfCorrection, 0, len(f.NoticesOfCorrection))
	for _, p := range f.NoticesOfCorrection {
		notices = append(notices, &types.NoticeOfCorrection{
			ID:             p.NoticeID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			Text:           p.Text,
			AppliedAt:      p.AppliedAt,
		})
	}
	if _, err := s.repos.Notices.Create(ctx, tx, notices); err != nil {
		return err
	}
	counts["notice_of_correction"] += len(notices)

	properties := make([]*types.PropertyRecord, 0, len(f.PropertyRecords))
	for _, p := range f.PropertyRecords {
		properties = append(properties, &types.PropertyRecord{
			ID:             p.RecordID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			AddressID:      p.AddressID,
			Tenure:         p.Tenure,
			ValueMinor:     p.ValueMinor,
			RecordedAt:     p.RecordedAt,
		})
	}
	if _, err := s.repos.PropertyRecords.Create(ctx, tx, properties); err != nil {
		return err
	}
	counts["property_record"] += len(properties)

	goneAway := make([]*types.GoneAwayRecord, 0, len(f.GoneAwayRecords))
	for _, p := range f.GoneAwayRecords {
		goneAway = append(goneAway, &types.GoneAwayRecord{
			ID:             p.RecordID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			AddressID:      p.AddressID,
			ReportedAt:     p.ReportedAt,
		})
	}
	if _, err := s.repos.GoneAwayRecords.Create(ctx, tx, goneAway); err != nil {
		return err
	}
	counts["gone_away_record"] += len(goneAway)

	markers := make([]*types.FraudMarker, 0, len(f.FraudMarkers))
	for _, p := range f.FraudMarkers {
		markers = append(markers, &types.FraudMarker{
			ID:             p.MarkerID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			MarkerType:     p.MarkerType,
			AddressID:      p.AddressID,
			StartedAt:      p.StartedAt,
			ExpiresAt:      p.ExpiresAt,
		})
	}
	if _, err := s.repos.FraudMarkers.Create(ctx, tx, markers); err != nil {
		return err
	}
	counts["fraud_marker"] += len(markers)

	items := make([]*types.AttributableItem, 0, len(f.AttributableItems))
	for _, p := range f.AttributableItems {
		items = append(items, &types.AttributableItem{
			ID:             p.ItemID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			ItemType:       p.ItemType,
			Description:    p.Description,
		})
	}
	if _, err := s.repos.AttributableItems.Create(ctx, tx, items); err != nil {
		return err
	}
	counts["attributable_item"] += len(items)

	disputes := make([]*types.Dispute, 0, len(f.Disputes))
	for _, p := range f.Disputes {
		disputes = append(disputes, &types.Dispute{
			ID:             p.DisputeID,
			SubjectID:      f.SubjectID,
			SourceImportID: p.SourceImportID,
			SourceSystem:   agency[p.SourceImportID],
			TradelineID:    p.TradelineID,
			Status:         p.Status,
			Reason:         p.Reason,
			OpenedAt:       p.OpenedAt,
			ResolvedAt:     p.ResolvedAt,
		})
	}
	if _, err := s.repos.Disputes.Create(ctx, tx, disputes); err != nil {
		return err
	}
	counts["dispute"] += len(disputes)
	return nil
}

func (s *ingestionService) writeInsights(ctx context.Context, tx *gorm.DB, f *payload.CreditFile, drafts []types.InsightDraft, counts map[string]int) error {
	var importID *string
	if ids := f.ImportIDs(); len(ids) == 1 {
		importID = &ids[0]
	}

	insights := make([]*types.GeneratedInsight, 0, len(drafts))
	var entities []*types.GeneratedInsightEntity
	for _, d := range drafts {
		extensions, err := marshalJSON(d.Extensions)
		if err != nil {
			return fmt.Errorf("insight %s: %w", d.Kind, err)
		}
		row := &types.GeneratedInsight{
			ID:         uuid.New(),
			SubjectID:  f.SubjectID,
			ImportID:   importID,
			RuleID:     d.RuleID,
			Kind:       d.Kind,
			Severity:   d.Severity,
			Summary:    d.Summary,
			Extensions: extensions,
		}
		insights = append(insights, row)
		for _, ref := range d.Entities {
			entities = append(entities, &types.GeneratedInsightEntity{
				ID:         uuid.New(),
				InsightID:  row.ID,
				EntityType: ref.Type,
				EntityID:   ref.ID,
			})
		}
	}
	if _, err := s.repos.Insights.Create(ctx, tx, insights); err != nil {
		return err
	}
	counts["generated_insight"] += len(insights)
	if _, err := s.repos.Insights.CreateEntities(ctx, tx, entities); err != nil {
		return err
	}
	return nil
}

func (s *ingestionService) writeReceipt(ctx context.Context, tx *gorm.DB, f *payload.CreditFile, digest string, start time.Time, counts map[string]int, analysis AnalysisResult) (*types.IngestReceipt, error) {
	importIDs, err := json.Marshal(f.ImportIDs())
	if err != nil {
		return nil, err
	}
	summary, err := json.Marshal(receiptSummary{EntityCounts: counts, Analysis: analysis})
	if err != nil {
		return nil, err
	}
	receipt := &types.IngestReceipt{
		ID:            uuid.New(),
		SubjectID:     f.SubjectID,
		PayloadDigest: digest,
		Status:        "succeeded",
		DurationMs:    s.clock().Sub(start).Milliseconds(),
		ImportIDs:     datatypes.JSON(importIDs),
		Summary:       datatypes.JSON(summary),
	}
	return s.repos.IngestReceipts.Create(ctx, tx, receipt)
}

// receiptSummary is the JSON shape stored on a receipt and replayed for
// duplicate payloads.
type receiptSummary struct {
	EntityCounts map[string]int `json:"entity_counts"`
	Analysis     AnalysisResult `json:"analysis"`
}

func duplicateResult(receipt *types.IngestReceipt) *IngestResult {
	out := &IngestResult{
		SubjectID:  receipt.SubjectID,
		ReceiptID:  receipt.ID,
		Duplicate:  true,
		DurationMs: receipt.DurationMs,
	}
	_ = json.Unmarshal(receipt.ImportIDs, &out.ImportIDs)
	var summary receiptSummary
	if err := json.Unmarshal(receipt.Summary, &summary); err == nil {
		out.EntityCounts = summary.EntityCounts
		out.Analysis = summary.Analysis
	}
	return out
}

func marshalJSON(m map[string]interface{}) (datatypes.JSON, error) {
	if len(m) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func visibilityOf(raw string) types.SearchVisibility {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "hard":
		return types.SearchHard
	case "soft":
		return types.SearchSoft
	}
	return types.SearchUnknown
}
