package anomaly

import (
	"fmt"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// PaymentDegradationRule reports worsening payment status between adjacent
// snapshots. Unranked statuses (no_update, free text) never count as
// degradation in either direction; improvements and lateral moves are not
// flagged here.
type PaymentDegradationRule struct{}

func (r *PaymentDegradationRule) ID() string   { return "payment_status_degradation" }
func (r *PaymentDegradationRule) Name() string { return "Payment status degradation" }

func (r *PaymentDegradationRule) Evaluate(rc *Context) ([]types.InsightDraft, error) {
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
			if !rc.FromCurrentImport(cur.SourceImportID) {
				continue
			}
			oldStatus := types.NormalizeStatus(prev.StatusCurrent)
			newStatus := types.NormalizeStatus(cur.StatusCurrent)
			oldRank, newRank := types.StatusRank(oldStatus), types.StatusRank(newStatus)
			if oldRank == 0 || newRank == 0 {
				continue
			}
			delta := newRank - oldRank
			if delta <= 0 {
				continue
			}

			severity := types.SeverityLow
			switch {
			case newStatus == types.StatusDefault || newStatus == types.StatusWrittenOff ||
				newStatus == types.StatusRepossession || delta >= 6:
				severity = types.SeverityHigh
			case delta >= 3:
				severity = types.SeverityMedium
			}

			out = append(out, types.InsightDraft{
				Kind:     types.KindPaymentDegradation,
				Severity: severity,
				Summary: fmt.Sprintf("payment status on tradeline %s degraded from %s to %s",
					tl.ID, oldStatus, newStatus),
				Extensions: map[string]interface{}{
					"oldStatus": string(oldStatus),
					"newStatus": string(newStatus),
					"rankDelta": delta,
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
