package anomaly

import (
	"fmt"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// BalanceChangeRule flags material balance swings between adjacent
// snapshots. Both the percentage threshold and the absolute minimum must be
// met: tiny accounts should not trigger on percentage alone, and large
// accounts should not trigger on noise.
type BalanceChangeRule struct{}

func (r *BalanceChangeRule) ID() string   { return "unexpected_balance_change" }
func (r *BalanceChangeRule) Name() string { return "Balance change" }

func (r *BalanceChangeRule) Evaluate(rc *Context) ([]types.InsightDraft, error) {
	tradelines, err := rc.History.Tradelines(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load tradelines: %w", err)
	}
	ids := make([]string, 0, len(tradelines))
	for _, tl := range tradelines {
		ids = append(ids, tl.ID)
	}
	snapshots, err := rc.History.SnapshotsByTradeline(rc.Ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}

	var out []types.InsightDraft
	for _, tl := range tradelines {
		snaps := snapshots[tl.ID]
		for i := 1; i < len(snaps); i++ {
			prev, cur := snaps[i-1], snaps[i]
			// Only pairs completed by this ingestion; older pairs were
			// reported when their snapshots arrived.
			if !rc.FromCurrentImport(cur.SourceImportID) {
				continue
			}
			if prev.BalanceMinor == nil || cur.BalanceMinor == nil {
				continue
			}
			old, new := *prev.BalanceMinor, *cur.BalanceMinor
			absDelta := new - old
			if absDelta < 0 {
				absDelta = -absDelta
			}
			base := old
			if base < 0 {
				base = -base
			}
			if base < 1 {
				base = 1
			}
			pct := float64(absDelta) / float64(base) * 100

			if pct < rc.Config.BalanceChangePctThreshold || absDelta < rc.Config.BalanceChangeAbsMinimum {
				continue
			}

			severity := types.SeverityLow
			switch {
			case pct >= 100:
				severity = types.SeverityHigh
			case pct >= 50:
				severity = types.SeverityMedium
			}
			direction := "increase"
			if new < old {
				direction = "decrease"
			}

			out = append(out, types.InsightDraft{
				Kind:     types.KindBalanceChange,
				Severity: severity,
				Summary: fmt.Sprintf("balance on tradeline %s moved from %d to %d (%.1f%% %s)",
					tl.ID, old, new, pct, direction),
				Extensions: map[string]interface{}{
					"oldBalance": old,
					"newBalance": new,
					"absDelta":   absDelta,
					"pct":        pct,
					"direction":  direction,
				},
				Entities: []types.EntityRef{
					{Type: "tradeline", ID: tl.ID},
					{Type: "tradeline_snapshot", ID: prev.ID},
					{Type: "tradeline_snapshot", ID: cur.ID},
				},
			})
		}
	}
	return out, nil
}
