package anomaly

import (
	"fmt"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// StatusBandRule reports a band change between the two most recent
// snapshots of each tradeline. Same-band changes and any transition
// touching the unknown band are ignored.
type StatusBandRule struct{}

func (r *StatusBandRule) ID() string   { return "tradeline_status_change" }
func (r *StatusBandRule) Name() string { return "Status-band transition" }

func (r *StatusBandRule) Evaluate(rc *Context) ([]types.InsightDraft, error) {
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
		if len(snaps) < 2 {
			continue
		}
		prev, cur := snaps[len(snaps)-2], snaps[len(snaps)-1]
		if !rc.FromCurrentImport(cur.SourceImportID) {
			continue
		}
		oldBand := types.BandOf(types.NormalizeStatus(prev.StatusCurrent))
		newBand := types.BandOf(types.NormalizeStatus(cur.StatusCurrent))
		if oldBand == newBand || oldBand == types.BandUnknown || newBand == types.BandUnknown {
			continue
		}

		transition := fmt.Sprintf("%s_to_%s", oldBand, newBand)
		severity := types.SeverityLow
		switch {
		case oldBand == types.BandActive && newBand == types.BandAdverse:
			severity = types.SeverityHigh
		case oldBand == types.BandActive && newBand == types.BandClosed:
			severity = types.SeverityInfo
		case newBand == types.BandActive:
			// Recovery from adverse or reopened from closed.
			severity = types.SeverityInfo
		}

		out = append(out, types.InsightDraft{
			Kind:     types.KindTradelineStatusChange,
			Severity: severity,
			Summary: fmt.Sprintf("tradeline %s moved from %s (%s) to %s (%s)",
				tl.ID, prev.StatusCurrent, oldBand, cur.StatusCurrent, newBand),
			Extensions: map[string]interface{}{
				"transitionType": transition,
				"oldStatus":      prev.StatusCurrent,
				"newStatus":      cur.StatusCurrent,
			},
			Entities: []types.EntityRef{
				{Type: "tradeline", ID: tl.ID},
				{Type: "tradeline_snapshot", ID: prev.ID},
				{Type: "tradeline_snapshot", ID: cur.ID},
			},
		})
	}
	return out, nil
}
