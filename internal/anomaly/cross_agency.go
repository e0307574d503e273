package anomaly

import (
	"fmt"
	"sort"
	"strings"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// CrossAgencyRule compares tradelines that share a canonical ID but come
// from different agencies. One insight per canonical group, listing every
// discrepant field across every agency pair.
type CrossAgencyRule struct{}

func (r *CrossAgencyRule) ID() string   { return "cross_agency_discrepancy" }
func (r *CrossAgencyRule) Name() string { return "Cross-agency discrepancy" }

type agencyView struct {
	tradeline *types.Tradeline
	latest    *types.TradelineSnapshot
}

func (r *CrossAgencyRule) Evaluate(rc *Context) ([]types.InsightDraft, error) {
	tradelines, err := rc.History.Tradelines(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load tradelines: %w", err)
	}

	groups := make(map[string][]*types.Tradeline)
	ids := make([]string, 0, len(tradelines))
	for _, tl := range tradelines {
		ids = append(ids, tl.ID)
		if tl.CanonicalID == nil || *tl.CanonicalID == "" {
			continue
		}
		groups[*tl.CanonicalID] = append(groups[*tl.CanonicalID], tl)
	}
	snapshots, err := rc.History.SnapshotsByTradeline(rc.Ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}

	canonicalIDs := make([]string, 0, len(groups))
	for id := range groups {
		canonicalIDs = append(canonicalIDs, id)
	}
	sort.Strings(canonicalIDs)

	var out []types.InsightDraft
	for _, canonicalID := range canonicalIDs {
		group := groups[canonicalID]
		agencies := make(map[string]struct{}, len(group))
		views := make([]agencyView, 0, len(group))
		for _, tl := range group {
			agencies[tl.SourceSystem] = struct{}{}
			var latest *types.TradelineSnapshot
			if snaps := snapshots[tl.ID]; len(snaps) > 0 {
				latest = snaps[len(snaps)-1]
			}
			views = append(views, agencyView{tradeline: tl, latest: latest})
		}
		if len(agencies) < 2 {
			continue
		}

		var discrepancies []string
		severity := types.SeverityLow
		for i := 0; i < len(views); i++ {
			for j := i + 1; j < len(views); j++ {
				a, b := views[i], views[j]
				if a.tradeline.SourceSystem == b.tradeline.SourceSystem {
					continue
				}
				pair := fmt.Sprintf("%s vs %s", a.tradeline.SourceSystem, b.tradeline.SourceSystem)

				if a.latest != nil && b.latest != nil {
					if pct, ok := pctDiff(a.latest.BalanceMinor, b.latest.BalanceMinor); ok && pct >= rc.Config.CrossAgencyBalancePctThreshold {
						discrepancies = append(discrepancies, fmt.Sprintf("balance differs %.1f%% (%s)", pct, pair))
						if pct > 25 {
							severity = maxSeverity(severity, types.SeverityMedium)
						}
					}
					if pct, ok := pctDiff(a.latest.CreditLimitMinor, b.latest.CreditLimitMinor); ok && pct >= rc.Config.CrossAgencyLimitPctThreshold {
						discrepancies = append(discrepancies, fmt.Sprintf("credit limit differs %.1f%% (%s)", pct, pair))
						if pct > 25 {
							severity = maxSeverity(severity, types.SeverityMedium)
						}
					}
				}
				if a.tradeline.StatusCurrent != b.tradeline.StatusCurrent {
					discrepancies = append(discrepancies, fmt.Sprintf("status %q vs %q (%s)",
						a.tradeline.StatusCurrent, b.tradeline.StatusCurrent, pair))
					severity = types.SeverityHigh
				}
			}
		}
		if len(discrepancies) == 0 {
			continue
		}

		refs := make([]types.EntityRef, 0, len(group))
		for _, tl := range group {
			refs = append(refs, types.EntityRef{Type: "tradeline", ID: tl.ID})
		}
		out = append(out, types.InsightDraft{
			Kind:     types.KindCrossAgency,
			Severity: severity,
			Summary: fmt.Sprintf("agencies disagree on account %s: %s",
				canonicalID, strings.Join(discrepancies, "; ")),
			Extensions: map[string]interface{}{
				"canonicalId":   canonicalID,
				"discrepancies": discrepancies,
			},
			Entities: refs,
		})
	}
	return out, nil
}

// pctDiff returns |a-b| / max(|a|,|b|,1) * 100. Missing values compare as
// not comparable rather than as zero.
func pctDiff(a, b *int64) (float64, bool) {
	if a == nil || b == nil {
		return 0, false
	}
	av, bv := *a, *b
	diff := av - bv
	if diff < 0 {
		diff = -diff
	}
	base := av
	if base < 0 {
		base = -base
	}
	if bAbs := abs64(bv); bAbs > base {
		base = bAbs
	}
	if base < 1 {
		base = 1
	}
	return float64(diff) / float64(base) * 100, true
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

var severityOrder = map[types.Severity]int{
	types.SeverityInfo:   0,
	types.SeverityLow:    1,
	types.SeverityMedium: 2,
	types.SeverityHigh:   3,
}

func maxSeverity(a, b types.Severity) types.Severity {
	if severityOrder[b] > severityOrder[a] {
		return b
	}
	return a
}
