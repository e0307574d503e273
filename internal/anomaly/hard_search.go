package anomaly

import (
	"fmt"
	"strings"
	"time"

	types "github.com/yungbote/credfile-backend/internal/domain"
)

// HardSearchRule flags a burst of hard-visibility searches since the
// previous import. Soft searches are ignored entirely.
type HardSearchRule struct{}

func (r *HardSearchRule) ID() string   { return "hard_search_spike" }
func (r *HardSearchRule) Name() string { return "Hard search burst" }

func (r *HardSearchRule) Evaluate(rc *Context) ([]types.InsightDraft, error) {
	batches, err := rc.History.ImportBatches(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load import batches: %w", err)
	}

	// Window opens at the previous import's timestamp; on a first import
	// fall back to a configured day count before the newest batch.
	var current, previous *time.Time
	for _, b := range batches {
		t := b.ImportedAt
		if rc.FromCurrentImport(b.ID) {
			if current == nil || t.After(*current) {
				current = &t
			}
			continue
		}
		if previous == nil || t.After(*previous) {
			previous = &t
		}
	}
	if current == nil {
		now := time.Now().UTC()
		current = &now
	}
	windowStart := current.AddDate(0, 0, -rc.Config.HardSearchWindowDays)
	if previous != nil {
		windowStart = *previous
	}

	searches, err := rc.History.HardSearchesSince(rc.Ctx, windowStart)
	if err != nil {
		return nil, fmt.Errorf("load hard searches: %w", err)
	}
	if len(searches) == 0 {
		return nil, nil
	}

	knownLenders, err := r.furnisherNames(rc)
	if err != nil {
		return nil, err
	}
	orgs, err := rc.History.Organisations(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load organisations: %w", err)
	}
	orgNames := make(map[string]string, len(orgs))
	for _, o := range orgs {
		orgNames[o.ID] = strings.ToLower(strings.TrimSpace(o.Name))
	}

	knownCount := 0
	refs := make([]types.EntityRef, 0, len(searches))
	for _, s := range searches {
		refs = append(refs, types.EntityRef{Type: "search_record", ID: s.ID})
		if _, ok := knownLenders[orgNames[s.OrganisationID]]; ok {
			knownCount++
		}
	}

	severity := types.SeverityLow
	switch {
	case len(searches) >= rc.Config.HardSearchBurstThreshold:
		severity = types.SeverityHigh
	case len(searches) >= rc.Config.HardSearchFrequentThreshold:
		severity = types.SeverityMedium
	}

	return []types.InsightDraft{{
		Kind:     types.KindHardSearchSpike,
		Severity: severity,
		Summary:  fmt.Sprintf("%d hard searches recorded since %s", len(searches), windowStart.Format("2006-01-02")),
		Extensions: map[string]interface{}{
			"searchCount":      len(searches),
			"knownLenderCount": knownCount,
			"windowStart":      windowStart.Format(time.RFC3339),
		},
		Entities: refs,
	}}, nil
}

// furnisherNames collects the lowercased names of every organisation that
// furnishes one of the subject's tradelines.
func (r *HardSearchRule) furnisherNames(rc *Context) (map[string]struct{}, error) {
	tradelines, err := rc.History.Tradelines(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load tradelines: %w", err)
	}
	orgs, err := rc.History.Organisations(rc.Ctx)
	if err != nil {
		return nil, fmt.Errorf("load organisations: %w", err)
	}
	byID := make(map[string]string, len(orgs))
	for _, o := range orgs {
		byID[o.ID] = strings.ToLower(strings.TrimSpace(o.Name))
	}
	out := make(map[string]struct{})
	for _, tl := range tradelines {
		if name := byID[tl.OrganisationID]; name != "" {
			out[name] = struct{}{}
		}
	}
	return out, nil
}
