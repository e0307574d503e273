// Package quality generates advisory structural warnings over a single
// payload. Pure: no storage access, no history. Warnings are persisted as
// ordinary insights inside the ingest transaction.
package quality

import (
	"fmt"

	types "github.com/yungbote/credfile-backend/internal/domain"
	"github.com/yungbote/credfile-backend/internal/ingest/payload"
)

// Warnings inspects one payload for sparse data, missing children and
// suspicious duplicates. Everything it emits is informational or low
// severity by construction.
func Warnings(f *payload.CreditFile) []types.InsightDraft {
	var out []types.InsightDraft

	if len(f.Tradelines) == 0 {
		out = append(out, types.InsightDraft{
			Kind:     types.KindFileNoTradelines,
			Severity: types.SeverityInfo,
			Summary:  "credit file contains no tradelines",
			Entities: []types.EntityRef{{Type: "credit_file", ID: f.FileID}},
		})
	}

	orgNames := make(map[string]string, len(f.Organisations))
	for _, o := range f.Organisations {
		orgNames[o.OrganisationID] = o.Name
	}

	signatures := make(map[string][]string)
	for _, tl := range f.Tradelines {
		ref := []types.EntityRef{{Type: "tradeline", ID: tl.TradelineID}}

		if len(tl.Snapshots) == 0 {
			out = append(out, types.InsightDraft{
				Kind:     types.KindTradelineNoSnapshots,
				Severity: types.SeverityLow,
				Summary:  fmt.Sprintf("tradeline %s has no snapshots", tl.TradelineID),
				Entities: ref,
			})
		}
		if len(tl.MonthlyMetrics) == 0 {
			out = append(out, types.InsightDraft{
				Kind:     types.KindTradelineNoMetrics,
				Severity: types.SeverityLow,
				Summary:  fmt.Sprintf("tradeline %s has no monthly metrics", tl.TradelineID),
				Entities: ref,
			})
		}

		for _, s := range tl.Snapshots {
			if s.BalanceMinor != nil && *s.BalanceMinor < 0 {
				out = append(out, types.InsightDraft{
					Kind:     types.KindNegativeBalance,
					Severity: types.SeverityLow,
					Summary:  fmt.Sprintf("snapshot %s on tradeline %s reports a negative balance (%d)", s.SnapshotID, tl.TradelineID, *s.BalanceMinor),
					Entities: []types.EntityRef{
						{Type: "tradeline", ID: tl.TradelineID},
						{Type: "tradeline_snapshot", ID: s.SnapshotID},
					},
				})
			}
		}

		// Warn once per tradeline, however many snapshots report the zero.
		if types.AccountType(tl.AccountType).CreditBearing() {
			for _, s := range tl.Snapshots {
				if s.CreditLimitMinor != nil && *s.CreditLimitMinor == 0 {
					out = append(out, types.InsightDraft{
						Kind:     types.KindZeroCreditLimit,
						Severity: types.SeverityLow,
						Summary:  fmt.Sprintf("credit-bearing tradeline %s (%s) reports a zero credit limit", tl.TradelineID, tl.AccountType),
						Entities: ref,
					})
					break
				}
			}
		}

		sig := tl.AccountType + "|" + orgNames[tl.OrganisationID]
		signatures[sig] = append(signatures[sig], tl.TradelineID)
	}

	for sig, ids := range signatures {
		if len(ids) < 2 {
			continue
		}
		refs := make([]types.EntityRef, 0, len(ids))
		for _, id := range ids {
			refs = append(refs, types.EntityRef{Type: "tradeline", ID: id})
		}
		out = append(out, types.InsightDraft{
			Kind:     types.KindDuplicateSignature,
			Severity: types.SeverityInfo,
			Summary:  fmt.Sprintf("%d tradelines share the same account type and furnisher (%s)", len(ids), sig),
			Extensions: map[string]interface{}{
				"signature":     sig,
				"tradeline_ids": ids,
			},
			Entities: refs,
		})
	}

	return out
}
