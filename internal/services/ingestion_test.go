package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/credfile-backend/internal/data/repos"
	"github.com/yungbote/credfile-backend/internal/data/repos/testutil"
	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/ingest/payload"
	"github.com/yungbote/credfile-backend/internal/settings"
)

var ingestBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (IngestionService, *repos.Set, *gorm.DB) {
	t.Helper()
	conn := testutil.DB(t)
	log := testutil.Logger(t)
	set := repos.NewSet(conn, log)
	return NewIngestionService(conn, set, settings.StaticStore{}, log), set, conn
}

func i64ptr(v int64) *int64 { return &v }

// fullFile is a one-batch payload touching most entity collections.
func fullFile(subjectID string) *payload.CreditFile {
	return &payload.CreditFile{
		SubjectID: subjectID,
		FileID:    subjectID + "_file_1",
		ImportBatches: []payload.ImportBatch{{
			ImportID:     subjectID + "_imp_1",
			SourceSystem: "equifax",
			ImportedAt:   ingestBase,
			RawArtifacts: []payload.RawArtifact{{
				ArtifactID: subjectID + "_art_1",
				Kind:       "report_json",
				Content:    map[string]interface{}{"page_count": 4},
			}},
		}},
		Names: []payload.PersonName{{
			NameID: subjectID + "_nm_1", SourceImportID: subjectID + "_imp_1",
			FullName: "Jordan Example", NameType: "current",
		}},
		Addresses: []payload.Address{{
			AddressID: subjectID + "_addr_1", SourceImportID: subjectID + "_imp_1",
			Line1: "1 High Street", City: "London", Postcode: "N1 1AA", CountryCode: "GB",
		}},
		Organisations: []payload.Organisation{{
			OrganisationID: subjectID + "_org_1", SourceImportID: subjectID + "_imp_1",
			Name: "Acme Bank", Kind: "lender",
		}},
		Tradelines: []payload.Tradeline{{
			TradelineID:    subjectID + "_tl_1",
			SourceImportID: subjectID + "_imp_1",
			OrganisationID: subjectID + "_org_1",
			AccountType:    "credit_card",
			StatusCurrent:  "up_to_date",
			Snapshots: []payload.TradelineSnapshot{{
				SnapshotID: subjectID + "_snap_1", SourceImportID: subjectID + "_imp_1",
				CapturedAt: ingestBase, BalanceMinor: i64ptr(45000), CreditLimitMinor: i64ptr(200000),
				StatusCurrent: "up_to_date",
			}},
			MonthlyMetrics: []payload.MonthlyMetric{{
				MetricID: subjectID + "_m_1", SourceImportID: subjectID + "_imp_1",
				Period: "2026-02", MetricType: "payment_status", StatusText: "Up To Date",
			}},
		}},
		Searches: []payload.SearchRecord{{
			SearchID: subjectID + "_srch_1", SourceImportID: subjectID + "_imp_1",
			OrganisationID: subjectID + "_org_1", Visibility: "hard",
			SearchedAt: ingestBase.AddDate(0, 0, -3),
		}},
		CreditScores: []payload.CreditScore{{
			ScoreID: subjectID + "_sc_1", SourceImportID: subjectID + "_imp_1",
			Score: 612, RecordedAt: ingestBase,
		}},
	}
}

func TestIngestionService_PersistsPayloadAndWritesReceipt(t *testing.T) {
	svc, set, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Ingest(ctx, fullFile("subj_ok"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if res.Duplicate {
		t.Fatalf("first ingest must not be a duplicate")
	}
	if res.SubjectID != "subj_ok" {
		t.Fatalf("unexpected subject: %q", res.SubjectID)
	}
	if len(res.ImportIDs) != 1 || res.ImportIDs[0] != "subj_ok_imp_1" {
		t.Fatalf("unexpected import IDs: %v", res.ImportIDs)
	}
	for table, want := range map[string]int{
		"credit_file":        1,
		"import_batch":       1,
		"raw_artifact":       1,
		"person_name":        1,
		"address":            1,
		"organisation":       1,
		"tradeline":          1,
		"tradeline_snapshot": 1,
		"monthly_metric":     1,
		"search_record":      1,
		"credit_score":       1,
	} {
		if res.EntityCounts[table] != want {
			t.Fatalf("expected %d %s rows, got %d", want, table, res.EntityCounts[table])
		}
	}
	if res.EntityCounts["generated_insight"] != res.Analysis.InsightCount {
		t.Fatalf("insight count mismatch: %d vs %d",
			res.EntityCounts["generated_insight"], res.Analysis.InsightCount)
	}
	if len(res.Analysis.RuleErrors) != 0 {
		t.Fatalf("no rule should fail: %+v", res.Analysis.RuleErrors)
	}

	subject, err := set.Subjects.GetByID(ctx, nil, "subj_ok")
	if err != nil {
		t.Fatalf("get subject: %v", err)
	}
	if subject == nil {
		t.Fatalf("subject not created")
	}
	receipts, err := set.IngestReceipts.GetBySubject(ctx, nil, "subj_ok")
	if err != nil {
		t.Fatalf("get receipts: %v", err)
	}
	if len(receipts) != 1 || receipts[0].ID != res.ReceiptID {
		t.Fatalf("expected the returned receipt stored, got %+v", receipts)
	}
	if receipts[0].Status != "succeeded" || len(receipts[0].PayloadDigest) != 64 {
		t.Fatalf("unexpected receipt: %+v", receipts[0])
	}
}

func TestIngestionService_NormalizesDerivedFields(t *testing.T) {
	svc, set, conn := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, fullFile("subj_norm")); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	var metrics []*types.MonthlyMetric
	if err := conn.Where("tradeline_id = ?", "subj_norm_tl_1").Find(&metrics).Error; err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	if len(metrics) != 1 {
		t.Fatalf("expected one metric, got %d", len(metrics))
	}
	if metrics[0].StatusCanonical != "up_to_date" {
		t.Fatalf("payment status not normalized: %q", metrics[0].StatusCanonical)
	}
	if metrics[0].DerivedValueKey == "" {
		t.Fatalf("derived value key missing")
	}

	searches, err := set.Searches.GetBySubjectVisibilitySince(ctx, nil, "subj_norm", types.SearchHard, ingestBase.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("get searches: %v", err)
	}
	if len(searches) != 1 {
		t.Fatalf("hard visibility not normalized: %+v", searches)
	}
}

func TestIngestionService_DuplicatePayloadReplaysReceipt(t *testing.T) {
	svc, set, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Ingest(ctx, fullFile("subj_dup"))
	if err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	second, err := svc.Ingest(ctx, fullFile("subj_dup"))
	if err != nil {
		t.Fatalf("second ingest: %v", err)
	}

	if !second.Duplicate {
		t.Fatalf("identical payload must be reported as duplicate")
	}
	if second.ReceiptID != first.ReceiptID {
		t.Fatalf("duplicate must replay the original receipt, got %s and %s", first.ReceiptID, second.ReceiptID)
	}
	if second.EntityCounts["tradeline"] != first.EntityCounts["tradeline"] {
		t.Fatalf("replayed counts diverge: %+v vs %+v", first.EntityCounts, second.EntityCounts)
	}

	batches, err := set.ImportBatches.GetBySubject(ctx, nil, "subj_dup")
	if err != nil {
		t.Fatalf("get batches: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("duplicate ingest must write nothing, found %d batches", len(batches))
	}
	receipts, err := set.IngestReceipts.GetBySubject(ctx, nil, "subj_dup")
	if err != nil {
		t.Fatalf("get receipts: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("duplicate ingest must not add receipts, found %d", len(receipts))
	}
}

func TestIngestionService_RejectsSchemaViolations(t *testing.T) {
	svc, _, _ := newTestService(t)

	f := fullFile("subj_schema")
	f.SubjectID = ""
	_, err := svc.Ingest(context.Background(), f)
	if err == nil {
		t.Fatalf("expected a schema error")
	}
	var schemaErr *SchemaInvalidError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaInvalidError, got %v", err)
	}
	if len(schemaErr.Errors) == 0 {
		t.Fatalf("schema error carries no details")
	}
}

func TestIngestionService_RejectsUnresolvedReferences(t *testing.T) {
	svc, set, _ := newTestService(t)
	ctx := context.Background()

	f := fullFile("subj_refs")
	f.Tradelines[0].SourceImportID = "imp_missing"
	_, err := svc.Ingest(ctx, f)
	if err == nil {
		t.Fatalf("expected a referential error")
	}
	var refErr *ReferentialInvalidError
	if !errors.As(err, &refErr) {
		t.Fatalf("expected ReferentialInvalidError, got %v", err)
	}

	// Nothing may be written when validation fails.
	subject, err := set.Subjects.GetByID(ctx, nil, "subj_refs")
	if err != nil {
		t.Fatalf("get subject: %v", err)
	}
	if subject != nil {
		t.Fatalf("failed validation must not create the subject")
	}
}

func TestIngestionService_ReusedIDRollsBackWholePayload(t *testing.T) {
	svc, set, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, fullFile("subj_conflict")); err != nil {
		t.Fatalf("first ingest: %v", err)
	}

	// A different payload that reuses the stored tradeline ID.
	f := fullFile("subj_conflict")
	f.FileID = "subj_conflict_file_2"
	f.ImportBatches[0].ImportID = "subj_conflict_imp_2"
	f.ImportBatches[0].RawArtifacts[0].ArtifactID = "subj_conflict_art_2"
	f.ImportBatches[0].ImportedAt = ingestBase.AddDate(0, 0, 30)
	f.Names[0].NameID = "subj_conflict_nm_2"
	f.Addresses[0].AddressID = "subj_conflict_addr_2"
	f.Organisations[0].OrganisationID = "subj_conflict_org_2"
	f.Searches = nil
	f.CreditScores = nil
	tl := &f.Tradelines[0]
	tl.OrganisationID = "subj_conflict_org_2"
	tl.Snapshots[0].SnapshotID = "subj_conflict_snap_2"
	tl.MonthlyMetrics[0].MetricID = "subj_conflict_m_2"
	for i := range f.Names {
		f.Names[i].SourceImportID = "subj_conflict_imp_2"
	}
	for i := range f.Addresses {
		f.Addresses[i].SourceImportID = "subj_conflict_imp_2"
	}
	f.Organisations[0].SourceImportID = "subj_conflict_imp_2"
	tl.SourceImportID = "subj_conflict_imp_2"
	tl.Snapshots[0].SourceImportID = "subj_conflict_imp_2"
	tl.MonthlyMetrics[0].SourceImportID = "subj_conflict_imp_2"

	_, err := svc.Ingest(ctx, f)
	if err == nil {
		t.Fatalf("expected a storage conflict on the reused tradeline ID")
	}
	var conflictErr *StorageConflictError
	if !errors.As(err, &conflictErr) {
		t.Fatalf("expected StorageConflictError, got %v", err)
	}

	// The failed payload must leave no partial rows behind.
	batches, err := set.ImportBatches.GetBySubject(ctx, nil, "subj_conflict")
	if err != nil {
		t.Fatalf("get batches: %v", err)
	}
	if len(batches) != 1 {
		t.Fatalf("conflicting ingest must roll back, found %d batches", len(batches))
	}
}

func TestSubjectService_OverviewAfterIngest(t *testing.T) {
	svc, set, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Ingest(ctx, fullFile("subj_view")); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	subjects := NewSubjectService(set, testutil.Logger(t))
	overview, err := subjects.GetOverview(ctx, "subj_view")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview == nil {
		t.Fatalf("expected an overview for an ingested subject")
	}
	if overview.TradelineCount != 1 || overview.AddressCount != 1 {
		t.Fatalf("unexpected counts: %+v", overview)
	}
	if len(overview.ImportBatches) != 1 {
		t.Fatalf("expected one import batch, got %d", len(overview.ImportBatches))
	}

	missing, err := subjects.GetOverview(ctx, "subj_never_seen")
	if err != nil {
		t.Fatalf("overview for unknown subject: %v", err)
	}
	if missing != nil {
		t.Fatalf("unknown subject must yield nil, got %+v", missing)
	}
}

func TestInsightService_JoinsEntities(t *testing.T) {
	svc, set, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Ingest(ctx, fullFile("subj_insights"))
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	insights := NewInsightService(set, testutil.Logger(t))
	views, err := insights.GetBySubject(ctx, "subj_insights")
	if err != nil {
		t.Fatalf("get insights: %v", err)
	}
	if len(views) != res.Analysis.InsightCount {
		t.Fatalf("expected %d views, got %d", res.Analysis.InsightCount, len(views))
	}
	for _, v := range views {
		if v.Kind == "" || v.Severity == "" || v.Summary == "" {
			t.Fatalf("incomplete view: %+v", v)
		}
	}
}
