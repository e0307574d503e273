package anomaly

import (
	"fmt"
	"time"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// NewTradelineRule detects tradelines first seen in this import. Skipped
// entirely on a subject's first-ever import: without a baseline every
// tradeline would be "new".
type NewTradelineRule struct{}

func (r *NewTradelineRule) ID() string   { return "new_tradeline" }
func (r *NewTradelineRule) Name() string { return "New tradeline detection" }

func (r *NewTradelineRule) Evaluate(rc *Context) ([]types.InsightDraft, error) {
	batches, err := rc.History.ImportBatches(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load import batches: %w", err)
	}
	importDates := make(map[string]time.Time, len(batches))
	hasPrior := false
	for _, b := range batches {
		importDates[b.ID] = b.ImportedAt
		if !rc.FromCurrentImport(b.ID) {
			hasPrior = true
		}
	}
	if !hasPrior {
		return nil, nil
	}

	tradelines, err := rc.History.Tradelines(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load tradelines: %w", err)
	}

	priorIDs := make(map[string]struct{})
	priorCanonical := make(map[string]struct{})
	var current []*types.Tradeline
	for _, tl := range tradelines {
		if rc.FromCurrentImport(tl.SourceImportID) {
			current = append(current, tl)
			continue
		}
		priorIDs[tl.ID] = struct{}{}
		if tl.CanonicalID != nil && *tl.CanonicalID != "" {
			priorCanonical[*tl.CanonicalID] = struct{}{}
		}
	}

	type finding struct {
		tradeline  *types.Tradeline
		expected   bool
		importDate time.Time
	}
	var findings []finding
	unexpectedCount := 0
	for _, tl := range current {
		if _, known := priorIDs[tl.ID]; known {
			continue
		}
		if tl.CanonicalID != nil {
			if _, known := priorCanonical[*tl.CanonicalID]; known {
				continue
			}
		}
		importDate := importDates[tl.SourceImportID]
		expected := tl.OpenedAt != nil &&
			!tl.OpenedAt.Before(importDate.AddDate(0, 0, -rc.Config.NewTradelineExpectedWindowDays)) &&
			!tl.OpenedAt.After(importDate.AddDate(0, 0, rc.Config.NewTradelineExpectedWindowDays))
		if !expected {
			unexpectedCount++
		}
		findings = append(findings, finding{tradeline: tl, expected: expected, importDate: importDate})
	}

	var out []types.InsightDraft
	for _, f := range findings {
		classification := "expected"
		severity := types.SeverityInfo
		if !f.expected {
			classification = "unexpected"
			severity = types.SeverityLow
			if unexpectedCount > 1 {
				severity = types.SeverityMedium
			}
		}
		ext := map[string]interface{}{
			"classification": classification,
			"importDate":     f.importDate.Format(time.RFC3339),
		}
		if f.tradeline.OpenedAt != nil {
			ext["openedAt"] = f.tradeline.OpenedAt.Format(time.RFC3339)
		}
		out = append(out, types.InsightDraft{
			Kind:     types.KindNewTradeline,
			Severity: severity,
			Summary: fmt.Sprintf("tradeline %s (%s) appears for the first time in this import (%s)",
				f.tradeline.ID, f.tradeline.AccountType, classification),
			Extensions: ext,
			Entities:   []types.EntityRef{{Type: "tradeline", ID: f.tradeline.ID}},
		})
	}
	return out, nil
}
