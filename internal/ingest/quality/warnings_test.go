package quality

import (
	"testing"
	"time"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/ingest/payload"
)

func baseFile() *payload.CreditFile {
	return &payload.CreditFile{
		SubjectID: "subj_1",
		FileID:    "file_1",
		ImportBatches: []payload.ImportBatch{
			{ImportID: "imp_1", SourceSystem: "equifax", ImportedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
		Organisations: []payload.Organisation{
			{OrganisationID: "org_1", SourceImportID: "imp_1", Name: "Acme Bank"},
		},
	}
}

func kinds(drafts []types.InsightDraft) map[string]int {
	out := map[string]int{}
	for _, d := range drafts {
		out[d.Kind]++
	}
	return out
}

func findKind(drafts []types.InsightDraft, kind string) *types.InsightDraft {
	for i := range drafts {
		if drafts[i].Kind == kind {
			return &drafts[i]
		}
	}
	return nil
}

func TestWarnings_EmptyFile(t *testing.T) {
	drafts := Warnings(baseFile())
	if len(drafts) != 1 {
		t.Fatalf("expected only the no-tradelines warning, got %v", drafts)
	}
	d := drafts[0]
	if d.Kind != types.KindFileNoTradelines || d.Severity != types.SeverityInfo {
		t.Fatalf("unexpected draft: %+v", d)
	}
	if len(d.Entities) != 1 || d.Entities[0].ID != "file_1" {
		t.Fatalf("expected credit_file entity ref, got %v", d.Entities)
	}
}

func TestWarnings_SparseTradeline(t *testing.T) {
	f := baseFile()
	f.Tradelines = []payload.Tradeline{
		{TradelineID: "tl_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "utility"},
	}
	got := kinds(Warnings(f))
	if got[types.KindTradelineNoSnapshots] != 1 {
		t.Fatalf("expected no-snapshots warning, got %v", got)
	}
	if got[types.KindTradelineNoMetrics] != 1 {
		t.Fatalf("expected no-metrics warning, got %v", got)
	}
	if got[types.KindFileNoTradelines] != 0 {
		t.Fatalf("file has tradelines, got %v", got)
	}
}

func TestWarnings_NegativeBalance(t *testing.T) {
	f := baseFile()
	neg := int64(-500)
	f.Tradelines = []payload.Tradeline{{
		TradelineID: "tl_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "utility",
		Snapshots: []payload.TradelineSnapshot{
			{SnapshotID: "snap_1", SourceImportID: "imp_1", CapturedAt: time.Now(), BalanceMinor: &neg},
		},
		MonthlyMetrics: []payload.MonthlyMetric{
			{MetricID: "m_1", SourceImportID: "imp_1", Period: "2026-02", MetricType: "balance"},
		},
	}}
	d := findKind(Warnings(f), types.KindNegativeBalance)
	if d == nil {
		t.Fatalf("expected negative balance warning")
	}
	if d.Severity != types.SeverityLow {
		t.Fatalf("expected low severity, got %s", d.Severity)
	}
}

func TestWarnings_ZeroCreditLimitOncePerTradeline(t *testing.T) {
	f := baseFile()
	zero := int64(0)
	f.Tradelines = []payload.Tradeline{{
		TradelineID: "tl_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card",
		Snapshots: []payload.TradelineSnapshot{
			{SnapshotID: "snap_1", SourceImportID: "imp_1", CapturedAt: time.Now(), CreditLimitMinor: &zero},
			{SnapshotID: "snap_2", SourceImportID: "imp_1", CapturedAt: time.Now(), CreditLimitMinor: &zero},
		},
		MonthlyMetrics: []payload.MonthlyMetric{
			{MetricID: "m_1", SourceImportID: "imp_1", Period: "2026-02", MetricType: "balance"},
		},
	}}
	got := kinds(Warnings(f))
	if got[types.KindZeroCreditLimit] != 1 {
		t.Fatalf("expected exactly one zero-limit warning, got %v", got)
	}
}

func TestWarnings_ZeroCreditLimitIgnoredForNonCreditBearing(t *testing.T) {
	f := baseFile()
	zero := int64(0)
	f.Tradelines = []payload.Tradeline{{
		TradelineID: "tl_1", SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "utility",
		Snapshots: []payload.TradelineSnapshot{
			{SnapshotID: "snap_1", SourceImportID: "imp_1", CapturedAt: time.Now(), CreditLimitMinor: &zero},
		},
		MonthlyMetrics: []payload.MonthlyMetric{
			{MetricID: "m_1", SourceImportID: "imp_1", Period: "2026-02", MetricType: "balance"},
		},
	}}
	if got := kinds(Warnings(f)); got[types.KindZeroCreditLimit] != 0 {
		t.Fatalf("utility accounts should not warn on zero limit, got %v", got)
	}
}

func TestWarnings_DuplicateSignature(t *testing.T) {
	f := baseFile()
	mkTradeline := func(id string) payload.Tradeline {
		return payload.Tradeline{
			TradelineID: id, SourceImportID: "imp_1", OrganisationID: "org_1", AccountType: "credit_card",
			Snapshots: []payload.TradelineSnapshot{
				{SnapshotID: "snap_" + id, SourceImportID: "imp_1", CapturedAt: time.Now()},
			},
			MonthlyMetrics: []payload.MonthlyMetric{
				{MetricID: "m_" + id, SourceImportID: "imp_1", Period: "2026-02", MetricType: "balance"},
			},
		}
	}
	f.Tradelines = []payload.Tradeline{mkTradeline("tl_1"), mkTradeline("tl_2"), mkTradeline("tl_3")}

	drafts := Warnings(f)
	if got := kinds(drafts); got[types.KindDuplicateSignature] != 1 {
		t.Fatalf("expected one warning per signature, got %v", got)
	}
	d := findKind(drafts, types.KindDuplicateSignature)
	if len(d.Entities) != 3 {
		t.Fatalf("expected all 3 tradelines referenced, got %v", d.Entities)
	}
	if d.Severity != types.SeverityInfo {
		t.Fatalf("expected info severity, got %s", d.Severity)
	}
}
