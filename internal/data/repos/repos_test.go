package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/credfile-backend/internal/data/db"
	"github.com/yungbote/credfile-backend/internal/data/repos/testutil"
	types "github.com/yungbote/credfile-backend/internal/domain"
)

var repoBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSubjectRepo_EnsureExistsIsIdempotent(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewSubjectRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	first, err := repo.EnsureExists(ctx, nil, "subj_1")
	if err != nil {
		t.Fatalf("first ensure: %v", err)
	}
	second, err := repo.EnsureExists(ctx, nil, "subj_1")
	if err != nil {
		t.Fatalf("second ensure: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same subject, got %q and %q", first.ID, second.ID)
	}

	got, err := repo.GetByID(ctx, nil, "subj_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.ID != "subj_1" {
		t.Fatalf("expected stored subject, got %+v", got)
	}
}

func TestSubjectRepo_GetByIDMissingReturnsNil(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewSubjectRepo(conn, testutil.Logger(t))

	got, err := repo.GetByID(context.Background(), nil, "subj_missing")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown subject, got %+v", got)
	}
}

func TestImportBatchRepo_GetBySubjectOrdersByImportedAt(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewImportBatchRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	rows := []*types.ImportBatch{
		{ID: "imp_b", CreditFileID: "cf_1", SubjectID: "subj_1", SourceSystem: "equifax", ImportedAt: repoBase},
		{ID: "imp_a", CreditFileID: "cf_1", SubjectID: "subj_1", SourceSystem: "equifax", ImportedAt: repoBase.AddDate(0, 0, -30)},
		{ID: "imp_c", CreditFileID: "cf_1", SubjectID: "subj_2", SourceSystem: "experian", ImportedAt: repoBase},
	}
	if _, err := repo.Create(ctx, nil, rows); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetBySubject(ctx, nil, "subj_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two batches, got %d", len(got))
	}
	if got[0].ID != "imp_a" || got[1].ID != "imp_b" {
		t.Fatalf("expected chronological order, got %q then %q", got[0].ID, got[1].ID)
	}
}

func TestImportBatchRepo_CreateEmptySliceIsNoop(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewImportBatchRepo(conn, testutil.Logger(t))

	got, err := repo.Create(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %d", len(got))
	}
}

func TestSearchRecordRepo_FiltersVisibilityAndWindow(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewSearchRecordRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	rows := []*types.SearchRecord{
		{ID: "s_old_hard", SubjectID: "subj_1", SourceImportID: "imp_1", SourceSystem: "equifax", OrganisationID: "org_1", Visibility: types.SearchHard, SearchedAt: repoBase.AddDate(0, 0, -60)},
		{ID: "s_soft", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "equifax", OrganisationID: "org_1", Visibility: types.SearchSoft, SearchedAt: repoBase.AddDate(0, 0, -5)},
		{ID: "s_recent_2", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "equifax", OrganisationID: "org_1", Visibility: types.SearchHard, SearchedAt: repoBase.AddDate(0, 0, -2)},
		{ID: "s_recent_1", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "equifax", OrganisationID: "org_2", Visibility: types.SearchHard, SearchedAt: repoBase.AddDate(0, 0, -10)},
		{ID: "s_other_subj", SubjectID: "subj_2", SourceImportID: "imp_9", SourceSystem: "equifax", OrganisationID: "org_1", Visibility: types.SearchHard, SearchedAt: repoBase.AddDate(0, 0, -2)},
	}
	if _, err := repo.Create(ctx, nil, rows); err != nil {
		t.Fatalf("create: %v", err)
	}

	since := repoBase.AddDate(0, 0, -30)
	got, err := repo.GetBySubjectVisibilitySince(ctx, nil, "subj_1", types.SearchHard, since)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two hard searches inside the window, got %d", len(got))
	}
	if got[0].ID != "s_recent_1" || got[1].ID != "s_recent_2" {
		t.Fatalf("expected oldest first, got %q then %q", got[0].ID, got[1].ID)
	}
}

func TestCreditScoreRepo_GetBySubjectNewestFirst(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewCreditScoreRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	rows := []*types.CreditScore{
		{ID: "sc_1", SubjectID: "subj_1", SourceImportID: "imp_1", SourceSystem: "equifax", Score: 620, RecordedAt: repoBase.AddDate(0, 0, -90)},
		{ID: "sc_3", SubjectID: "subj_1", SourceImportID: "imp_3", SourceSystem: "equifax", Score: 580, RecordedAt: repoBase},
		{ID: "sc_2", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "experian", Score: 700, RecordedAt: repoBase.AddDate(0, 0, -45)},
	}
	if _, err := repo.Create(ctx, nil, rows); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetBySubject(ctx, nil, "subj_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected three scores, got %d", len(got))
	}
	if got[0].ID != "sc_3" || got[1].ID != "sc_2" || got[2].ID != "sc_1" {
		t.Fatalf("expected newest first, got %q %q %q", got[0].ID, got[1].ID, got[2].ID)
	}
}

func TestIngestReceiptRepo_GetByDigestMissingReturnsNil(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewIngestReceiptRepo(conn, testutil.Logger(t))

	got, err := repo.GetByDigest(context.Background(), nil, "0000000000000000000000000000000000000000000000000000000000000000")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for unknown digest, got %+v", got)
	}
}

func TestIngestReceiptRepo_DuplicateDigestIsConflict(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewIngestReceiptRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	digest := "5c2e5b9f6e0d8f6a3a1b1d9f2c4e6a8b0d2f4a6c8e0b2d4f6a8c0e2b4d6f8a0c"
	if _, err := repo.Create(ctx, nil, &types.IngestReceipt{
		ID: uuid.New(), SubjectID: "subj_1", PayloadDigest: digest, Status: "succeeded",
	}); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := repo.Create(ctx, nil, &types.IngestReceipt{
		ID: uuid.New(), SubjectID: "subj_1", PayloadDigest: digest, Status: "succeeded",
	})
	if err == nil {
		t.Fatalf("expected a conflict on the second receipt")
	}
	if !db.IsConflict(err) {
		t.Fatalf("expected a unique violation, got %v", err)
	}

	got, err := repo.GetByDigest(ctx, nil, digest)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.SubjectID != "subj_1" {
		t.Fatalf("expected the first receipt to survive, got %+v", got)
	}
}

func TestGeneratedInsightRepo_EntitiesJoinByInsightID(t *testing.T) {
	conn := testutil.DB(t)
	repo := NewGeneratedInsightRepo(conn, testutil.Logger(t))
	ctx := context.Background()

	a, b := uuid.New(), uuid.New()
	if _, err := repo.Create(ctx, nil, []*types.GeneratedInsight{
		{ID: a, SubjectID: "subj_1", RuleID: "hard_search_spike", Kind: "hard_search_spike", Severity: types.SeverityLow, Summary: "one hard search"},
		{ID: b, SubjectID: "subj_1", RuleID: "new_tradeline", Kind: "new_tradeline", Severity: types.SeverityInfo, Summary: "new credit card"},
	}); err != nil {
		t.Fatalf("create insights: %v", err)
	}
	if _, err := repo.CreateEntities(ctx, nil, []*types.GeneratedInsightEntity{
		{ID: uuid.New(), InsightID: a, EntityType: "search_record", EntityID: "s_1"},
		{ID: uuid.New(), InsightID: a, EntityType: "search_record", EntityID: "s_2"},
		{ID: uuid.New(), InsightID: b, EntityType: "tradeline", EntityID: "tl_1"},
	}); err != nil {
		t.Fatalf("create entities: %v", err)
	}

	got, err := repo.GetEntitiesByInsightIDs(ctx, nil, []string{a.String()})
	if err != nil {
		t.Fatalf("get entities: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two entities for the first insight, got %d", len(got))
	}
	for _, e := range got {
		if e.InsightID != a {
			t.Fatalf("entity belongs to the wrong insight: %+v", e)
		}
	}
}
