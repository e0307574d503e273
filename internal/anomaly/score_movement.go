package anomaly

import (
	"fmt"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// ScoreMovementRule compares each agency's two most recent scores. A
// movement at or above the configured absolute delta is reported:
// decreases escalate with magnitude, increases stay informational.
type ScoreMovementRule struct{}

func (r *ScoreMovementRule) ID() string   { return "score_movement" }
func (r *ScoreMovementRule) Name() string { return "Score movement" }

func (r *ScoreMovementRule) Evaluate(rc *Context) ([]types.InsightDraft, error) {
	scores, err := rc.History.Scores(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}

	// Scores arrive ordered newest first; keep the two most recent per
	// agency.
	latest := make(map[string][]*types.CreditScore)
	for _, s := range scores {
		if len(latest[s.SourceSystem]) < 2 {
			latest[s.SourceSystem] = append(latest[s.SourceSystem], s)
		}
	}

	threshold := rc.Config.ScoreDeltaThreshold
	var out []types.InsightDraft
	for agency, pair := range latest {
		if len(pair) < 2 {
			continue
		}
		newScore, oldScore := pair[0], pair[1]
		if !rc.FromCurrentImport(newScore.SourceImportID) {
			continue
		}
		delta := newScore.Score - oldScore.Score
		magnitude := delta
		if magnitude < 0 {
			magnitude = -magnitude
		}
		if magnitude < threshold {
			continue
		}

		var severity types.Severity
		direction := "increase"
		if delta < 0 {
			direction = "decrease"
			switch {
			case magnitude >= 2*threshold:
				severity = types.SeverityHigh
			case magnitude > threshold:
				severity = types.SeverityMedium
			default:
				severity = types.SeverityLow
			}
		} else {
			severity = types.SeverityInfo
			if magnitude >= 2*threshold {
				severity = types.SeverityLow
			}
		}

		out = append(out, types.InsightDraft{
			Kind:     types.KindScoreMovement,
			Severity: severity,
			Summary: fmt.Sprintf("%s score moved from %d to %d (%s of %d)",
				agency, oldScore.Score, newScore.Score, direction, magnitude),
			Extensions: map[string]interface{}{
				"agency":    agency,
				"oldScore":  oldScore.Score,
				"newScore":  newScore.Score,
				"delta":     delta,
				"direction": direction,
			},
			Entities: []types.EntityRef{
				{Type: "credit_score", ID: oldScore.ID},
				{Type: "credit_score", ID: newScore.ID},
			},
		})
	}
	return out, nil
}
