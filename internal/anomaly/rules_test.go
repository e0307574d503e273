package anomaly

import (
	"context"
	"testing"
	"time"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/pkg/logger"
)

var testBase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeHistory struct {
	batches    []*types.ImportBatch
	orgs       []*types.Organisation
	tradelines []*types.Tradeline
	snapshots  map[string][]*types.TradelineSnapshot
	searches   []*types.SearchRecord
	scores     []*types.CreditScore
}

func (h *fakeHistory) ImportBatches(context.Context) ([]*types.ImportBatch, error) {
	return h.batches, nil
}

func (h *fakeHistory) Organisations(context.Context) ([]*types.Organisation, error) {
	return h.orgs, nil
}

func (h *fakeHistory) Tradelines(context.Context) ([]*types.Tradeline, error) {
	return h.tradelines, nil
}

func (h *fakeHistory) SnapshotsByTradeline(_ context.Context, ids []string) (map[string][]*types.TradelineSnapshot, error) {
	out := make(map[string][]*types.TradelineSnapshot, len(ids))
	for _, id := range ids {
		if snaps, ok := h.snapshots[id]; ok {
			out[id] = snaps
		}
	}
	return out, nil
}

func (h *fakeHistory) HardSearchesSince(_ context.Context, since time.Time) ([]*types.SearchRecord, error) {
	var out []*types.SearchRecord
	for _, s := range h.searches {
		if s.Visibility == types.SearchHard && s.SearchedAt.After(since) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (h *fakeHistory) Scores(context.Context) ([]*types.CreditScore, error) {
	return h.scores, nil
}

func testContext(t *testing.T, h HistoryReader, currentImportIDs ...string) *Context {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return &Context{
		Ctx:       context.Background(),
		Log:       log,
		SubjectID: "subj_1",
		ImportIDs: currentImportIDs,
		Config:    DefaultConfig(),
		History:   h,
	}
}

func strptr(s string) *string { return &s }
func i64(v int64) *int64      { return &v }

// twoImportBatches is a prior import 100 days back plus the current one.
func twoImportBatches() []*types.ImportBatch {
	return []*types.ImportBatch{
		{ID: "imp_1", SubjectID: "subj_1", SourceSystem: "equifax", ImportedAt: testBase.AddDate(0, 0, -100)},
		{ID: "imp_2", SubjectID: "subj_1", SourceSystem: "equifax", ImportedAt: testBase},
	}
}

func TestHardSearchRule_BurstIsHigh(t *testing.T) {
	h := &fakeHistory{batches: twoImportBatches()}
	for _, id := range []string{"s1", "s2", "s3"} {
		h.searches = append(h.searches, &types.SearchRecord{
			ID: id, SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_x",
			Visibility: types.SearchHard, SearchedAt: testBase.AddDate(0, 0, -5),
		})
	}

	out, err := (&HardSearchRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one insight, got %d", len(out))
	}
	d := out[0]
	if d.Severity != types.SeverityHigh {
		t.Fatalf("expected high, got %s", d.Severity)
	}
	if d.Extensions["searchCount"] != 3 {
		t.Fatalf("expected searchCount=3, got %v", d.Extensions["searchCount"])
	}
	if len(d.Entities) != 3 {
		t.Fatalf("expected one entity per search, got %v", d.Entities)
	}
}

func TestHardSearchRule_SingleSearchIsLow(t *testing.T) {
	h := &fakeHistory{
		batches: twoImportBatches(),
		searches: []*types.SearchRecord{{
			ID: "s1", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_x",
			Visibility: types.SearchHard, SearchedAt: testBase.AddDate(0, 0, -5),
		}},
	}
	out, err := (&HardSearchRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityLow {
		t.Fatalf("expected one low insight, got %+v", out)
	}
}

func TestHardSearchRule_NoSearchesNoInsight(t *testing.T) {
	out, err := (&HardSearchRule{}).Evaluate(testContext(t, &fakeHistory{batches: twoImportBatches()}, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected nothing, got %+v", out)
	}
}

func TestHardSearchRule_CountsKnownLenders(t *testing.T) {
	h := &fakeHistory{
		batches: twoImportBatches(),
		orgs: []*types.Organisation{
			{ID: "org_1", SubjectID: "subj_1", Name: "Acme Bank"},
			{ID: "org_2", SubjectID: "subj_1", Name: "Stranger Loans"},
		},
		tradelines: []*types.Tradeline{
			{ID: "tl_1", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card"},
		},
		searches: []*types.SearchRecord{
			{ID: "s1", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_1", Visibility: types.SearchHard, SearchedAt: testBase.AddDate(0, 0, -2)},
			{ID: "s2", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_2", Visibility: types.SearchHard, SearchedAt: testBase.AddDate(0, 0, -1)},
		},
	}
	out, err := (&HardSearchRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if out[0].Extensions["knownLenderCount"] != 1 {
		t.Fatalf("expected knownLenderCount=1, got %v", out[0].Extensions["knownLenderCount"])
	}
}

func balanceHistory(oldBalance, newBalance int64) *fakeHistory {
	return &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_1", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card"},
		},
		snapshots: map[string][]*types.TradelineSnapshot{
			"tl_1": {
				{ID: "snap_1", TradelineID: "tl_1", SourceImportID: "imp_1", CapturedAt: testBase.AddDate(0, 0, -100), BalanceMinor: i64(oldBalance)},
				{ID: "snap_2", TradelineID: "tl_1", SourceImportID: "imp_2", CapturedAt: testBase, BalanceMinor: i64(newBalance)},
			},
		},
	}
}

func TestBalanceChangeRule_TriplingIsHighIncrease(t *testing.T) {
	out, err := (&BalanceChangeRule{}).Evaluate(testContext(t, balanceHistory(50000, 150000), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one insight, got %d", len(out))
	}
	d := out[0]
	if d.Severity != types.SeverityHigh {
		t.Fatalf("expected high, got %s", d.Severity)
	}
	if d.Extensions["direction"] != "increase" {
		t.Fatalf("expected increase, got %v", d.Extensions["direction"])
	}
	if d.Extensions["pct"].(float64) != 200 {
		t.Fatalf("expected pct=200, got %v", d.Extensions["pct"])
	}
}

func TestBalanceChangeRule_SmallPctBelowThreshold(t *testing.T) {
	out, err := (&BalanceChangeRule{}).Evaluate(testContext(t, balanceHistory(100000, 110000), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("10%% move should not flag, got %+v", out)
	}
}

func TestBalanceChangeRule_SmallAbsBelowMinimum(t *testing.T) {
	// 400% jump but only 4000 minor units: absolute floor keeps it quiet.
	out, err := (&BalanceChangeRule{}).Evaluate(testContext(t, balanceHistory(1000, 5000), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("small account noise should not flag, got %+v", out)
	}
}

func TestBalanceChangeRule_IgnoresHistoricalPairs(t *testing.T) {
	h := balanceHistory(50000, 150000)
	// Both snapshots predate this ingestion.
	h.snapshots["tl_1"][1].SourceImportID = "imp_1"
	out, err := (&BalanceChangeRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("pairs from prior imports must not re-flag, got %+v", out)
	}
}

func TestCrossAgencyRule_StatusMismatchIsHigh(t *testing.T) {
	h := &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_eq", SubjectID: "subj_1", SourceImportID: "imp_1", SourceSystem: "equifax", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card", StatusCurrent: "up_to_date"},
			{ID: "tl_ex", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "experian", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card", StatusCurrent: "default"},
		},
	}
	out, err := (&CrossAgencyRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one insight per canonical group, got %d", len(out))
	}
	if out[0].Severity != types.SeverityHigh {
		t.Fatalf("expected high, got %s", out[0].Severity)
	}
	if len(out[0].Entities) != 2 {
		t.Fatalf("expected both tradelines referenced, got %v", out[0].Entities)
	}
}

func TestCrossAgencyRule_BalanceGapIsMedium(t *testing.T) {
	h := &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_eq", SubjectID: "subj_1", SourceImportID: "imp_1", SourceSystem: "equifax", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card", StatusCurrent: "up_to_date"},
			{ID: "tl_ex", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "experian", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card", StatusCurrent: "up_to_date"},
		},
		snapshots: map[string][]*types.TradelineSnapshot{
			"tl_eq": {{ID: "sn_eq", TradelineID: "tl_eq", SourceImportID: "imp_1", CapturedAt: testBase, BalanceMinor: i64(100000)}},
			"tl_ex": {{ID: "sn_ex", TradelineID: "tl_ex", SourceImportID: "imp_2", CapturedAt: testBase, BalanceMinor: i64(70000)}},
		},
	}
	out, err := (&CrossAgencyRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityMedium {
		t.Fatalf("expected one medium insight, got %+v", out)
	}
}

func TestCrossAgencyRule_SingleAgencyGroupIgnored(t *testing.T) {
	h := &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_1", SubjectID: "subj_1", SourceImportID: "imp_1", SourceSystem: "equifax", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card", StatusCurrent: "up_to_date"},
			{ID: "tl_2", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "equifax", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card", StatusCurrent: "default"},
		},
	}
	out, err := (&CrossAgencyRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("same-agency groups must not flag, got %+v", out)
	}
}

func TestNewTradelineRule_SkipsFirstImport(t *testing.T) {
	h := &fakeHistory{
		batches: []*types.ImportBatch{
			{ID: "imp_1", SubjectID: "subj_1", SourceSystem: "equifax", ImportedAt: testBase},
		},
		tradelines: []*types.Tradeline{
			{ID: "tl_1", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card"},
		},
	}
	out, err := (&NewTradelineRule{}).Evaluate(testContext(t, h, "imp_1"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("first import must produce no new-tradeline insights, got %+v", out)
	}
}

func TestNewTradelineRule_RecentOpenIsExpected(t *testing.T) {
	opened := testBase.AddDate(0, 0, -20)
	h := &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_old", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card"},
			{ID: "tl_new", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_1", AccountType: "unsecured_loan", OpenedAt: &opened},
		},
	}
	out, err := (&NewTradelineRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one insight, got %d", len(out))
	}
	if out[0].Severity != types.SeverityInfo {
		t.Fatalf("expected info, got %s", out[0].Severity)
	}
	if out[0].Extensions["classification"] != "expected" {
		t.Fatalf("expected classification=expected, got %v", out[0].Extensions["classification"])
	}
}

func TestNewTradelineRule_StaleOpenIsUnexpected(t *testing.T) {
	opened := testBase.AddDate(-6, 0, 0)
	h := &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_old", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card"},
			{ID: "tl_new", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_1", AccountType: "mortgage", OpenedAt: &opened},
		},
	}
	out, err := (&NewTradelineRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityLow {
		t.Fatalf("expected one low insight, got %+v", out)
	}
	if out[0].Extensions["classification"] != "unexpected" {
		t.Fatalf("expected classification=unexpected, got %v", out[0].Extensions["classification"])
	}
}

func TestNewTradelineRule_MultipleUnexpectedEscalate(t *testing.T) {
	opened := testBase.AddDate(-6, 0, 0)
	h := &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_old", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card"},
			{ID: "tl_a", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_1", AccountType: "mortgage", OpenedAt: &opened},
			{ID: "tl_b", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_1", AccountType: "secured_loan", OpenedAt: &opened},
		},
	}
	out, err := (&NewTradelineRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected two insights, got %d", len(out))
	}
	for _, d := range out {
		if d.Severity != types.SeverityMedium {
			t.Fatalf("expected medium for every unexpected tradeline, got %+v", d)
		}
	}
}

func TestNewTradelineRule_KnownCanonicalNotNew(t *testing.T) {
	h := &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_eq", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card"},
			{ID: "tl_ex", SubjectID: "subj_1", SourceImportID: "imp_2", OrganisationID: "org_1", CanonicalID: strptr("can_1"), AccountType: "credit_card"},
		},
	}
	out, err := (&NewTradelineRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("canonical match across agencies is not a new tradeline, got %+v", out)
	}
}

func degradationHistory(oldStatus, newStatus string) *fakeHistory {
	return &fakeHistory{
		batches: twoImportBatches(),
		tradelines: []*types.Tradeline{
			{ID: "tl_1", SubjectID: "subj_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card"},
		},
		snapshots: map[string][]*types.TradelineSnapshot{
			"tl_1": {
				{ID: "snap_1", TradelineID: "tl_1", SourceImportID: "imp_1", CapturedAt: testBase.AddDate(0, 0, -100), StatusCurrent: oldStatus},
				{ID: "snap_2", TradelineID: "tl_1", SourceImportID: "imp_2", CapturedAt: testBase, StatusCurrent: newStatus},
			},
		},
	}
}

func TestPaymentDegradationRule_ToDefaultIsHigh(t *testing.T) {
	out, err := (&PaymentDegradationRule{}).Evaluate(testContext(t, degradationHistory("up_to_date", "default"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityHigh {
		t.Fatalf("expected one high insight, got %+v", out)
	}
	if out[0].Extensions["rankDelta"] != 7 {
		t.Fatalf("expected rankDelta=7, got %v", out[0].Extensions["rankDelta"])
	}
}

func TestPaymentDegradationRule_SmallSlipIsLow(t *testing.T) {
	out, err := (&PaymentDegradationRule{}).Evaluate(testContext(t, degradationHistory("up_to_date", "in_arrears_1"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityLow {
		t.Fatalf("expected one low insight, got %+v", out)
	}
}

func TestPaymentDegradationRule_ImprovementIgnored(t *testing.T) {
	out, err := (&PaymentDegradationRule{}).Evaluate(testContext(t, degradationHistory("in_arrears_3", "up_to_date"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("improvements must not flag, got %+v", out)
	}
}

func TestPaymentDegradationRule_UnrankedStatusIgnored(t *testing.T) {
	out, err := (&PaymentDegradationRule{}).Evaluate(testContext(t, degradationHistory("no_update", "default"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("unranked statuses never degrade, got %+v", out)
	}
}

func TestStatusBandRule_ActiveToAdverseIsHigh(t *testing.T) {
	out, err := (&StatusBandRule{}).Evaluate(testContext(t, degradationHistory("up_to_date", "default"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityHigh {
		t.Fatalf("expected one high insight, got %+v", out)
	}
	if out[0].Extensions["transitionType"] != "active_to_adverse" {
		t.Fatalf("unexpected transition: %v", out[0].Extensions["transitionType"])
	}
}

func TestStatusBandRule_UnknownBandIgnored(t *testing.T) {
	out, err := (&StatusBandRule{}).Evaluate(testContext(t, degradationHistory("up_to_date", "no_update"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("transitions touching unknown must not flag, got %+v", out)
	}
}

func TestStatusBandRule_RecoveryIsInfo(t *testing.T) {
	out, err := (&StatusBandRule{}).Evaluate(testContext(t, degradationHistory("default", "up_to_date"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityInfo {
		t.Fatalf("expected one info insight, got %+v", out)
	}
	if out[0].Extensions["transitionType"] != "adverse_to_active" {
		t.Fatalf("unexpected transition: %v", out[0].Extensions["transitionType"])
	}
}

func TestStatusBandRule_CleanCloseIsInfo(t *testing.T) {
	out, err := (&StatusBandRule{}).Evaluate(testContext(t, degradationHistory("up_to_date", "settled"), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityInfo {
		t.Fatalf("expected one info insight, got %+v", out)
	}
}

func scoreHistory(oldScore, newScore int) *fakeHistory {
	// Newest first, matching the reader contract.
	return &fakeHistory{
		batches: twoImportBatches(),
		scores: []*types.CreditScore{
			{ID: "sc_2", SubjectID: "subj_1", SourceImportID: "imp_2", SourceSystem: "equifax", Score: newScore, RecordedAt: testBase},
			{ID: "sc_1", SubjectID: "subj_1", SourceImportID: "imp_1", SourceSystem: "equifax", Score: oldScore, RecordedAt: testBase.AddDate(0, 0, -100)},
		},
	}
}

func TestScoreMovementRule_ModerateDropIsMedium(t *testing.T) {
	out, err := (&ScoreMovementRule{}).Evaluate(testContext(t, scoreHistory(600, 540), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityMedium {
		t.Fatalf("expected one medium insight, got %+v", out)
	}
	if out[0].Extensions["direction"] != "decrease" {
		t.Fatalf("expected decrease, got %v", out[0].Extensions["direction"])
	}
}

func TestScoreMovementRule_ThresholdDropIsLow(t *testing.T) {
	out, err := (&ScoreMovementRule{}).Evaluate(testContext(t, scoreHistory(600, 550), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityLow {
		t.Fatalf("expected one low insight, got %+v", out)
	}
}

func TestScoreMovementRule_LargeDropIsHigh(t *testing.T) {
	out, err := (&ScoreMovementRule{}).Evaluate(testContext(t, scoreHistory(700, 580), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityHigh {
		t.Fatalf("expected one high insight, got %+v", out)
	}
}

func TestScoreMovementRule_IncreaseIsInfo(t *testing.T) {
	out, err := (&ScoreMovementRule{}).Evaluate(testContext(t, scoreHistory(540, 600), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 1 || out[0].Severity != types.SeverityInfo {
		t.Fatalf("expected one info insight, got %+v", out)
	}
}

func TestScoreMovementRule_BelowThresholdIgnored(t *testing.T) {
	out, err := (&ScoreMovementRule{}).Evaluate(testContext(t, scoreHistory(600, 570), "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("movement under threshold must not flag, got %+v", out)
	}
}

func TestScoreMovementRule_HistoricalPairIgnored(t *testing.T) {
	h := scoreHistory(600, 500)
	h.scores[0].SourceImportID = "imp_1"
	out, err := (&ScoreMovementRule{}).Evaluate(testContext(t, h, "imp_2"))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("pairs from prior imports must not re-flag, got %+v", out)
	}
}
