// Package integrity implements the referential integrity checker: a pure
// walk over one structurally-valid payload verifying that every
// cross-reference resolves within the payload itself. No I/O, no
// short-circuiting; every violation is collected with the offending
// entity's natural path and the bad value.
package integrity

import (
	"fmt"
	"regexp"

	"github.com/yungbote/credfile-backend/internal/ingest/payload"
)

// Result is the checker verdict. Errors is empty iff Valid.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

var periodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Check verifies the payload's internal references:
//   - every source_import_id resolves to an import batch in the payload
//   - every address_id reference resolves to a payload address
//   - every organisation_id reference resolves to a payload organisation
//   - every monthly metric period is a valid YYYY-MM
//   - no two monthly metrics on one tradeline collide on
//     (period, metric_type, source_import_id, derived_value_key)
func Check(f *payload.CreditFile) Result {
	c := &checker{
		imports:       make(map[string]struct{}, len(f.ImportBatches)),
		addresses:     make(map[string]struct{}, len(f.Addresses)),
		organisations: make(map[string]struct{}, len(f.Organisations)),
	}
	for _, b := range f.ImportBatches {
		c.imports[b.ImportID] = struct{}{}
	}
	for _, a := range f.Addresses {
		c.addresses[a.AddressID] = struct{}{}
	}
	for _, o := range f.Organisations {
		c.organisations[o.OrganisationID] = struct{}{}
	}

	c.walk(f)

	return Result{Valid: len(c.errors) == 0, Errors: c.errors}
}

type checker struct {
	imports       map[string]struct{}
	addresses     map[string]struct{}
	organisations map[string]struct{}
	errors        []string
}

func (c *checker) walk(f *payload.CreditFile) {
	for _, n := range f.Names {
		c.requireImport(fmt.Sprintf("names[%s]", n.NameID), n.SourceImportID)
	}
	for _, r := range f.IdentityRecords {
		c.requireImport(fmt.Sprintf("identity_records[%s]", r.RecordID), r.SourceImportID)
	}
	for _, a := range f.Addresses {
		c.requireImport(fmt.Sprintf("addresses[%s]", a.AddressID), a.SourceImportID)
	}
	for _, aa := range f.AddressAssociations {
		path := fmt.Sprintf("address_associations[%s]", aa.AssociationID)
		c.requireImport(path, aa.SourceImportID)
		c.requireAddress(path, aa.AddressID)
	}
	for _, l := range f.AddressLinks {
		path := fmt.Sprintf("address_links[%s]", l.LinkID)
		c.requireImport(path, l.SourceImportID)
		c.requireAddress(path, l.FromAddressID)
		c.requireAddress(path, l.ToAddressID)
	}
	for _, fa := range f.FinancialAssociates {
		c.requireImport(fmt.Sprintf("financial_associates[%s]", fa.AssociateID), fa.SourceImportID)
	}
	for _, e := range f.ElectoralRoll {
		path := fmt.Sprintf("electoral_roll[%s]", e.EntryID)
		c.requireImport(path, e.SourceImportID)
		c.requireAddress(path, e.AddressID)
	}
	for _, o := range f.Organisations {
		// Organisations may be synthesized without a source import.
		if o.SourceImportID != "" {
			c.requireImport(fmt.Sprintf("organisations[%s]", o.OrganisationID), o.SourceImportID)
		}
	}

	for _, tl := range f.Tradelines {
		c.walkTradeline(&tl)
	}

	for _, s := range f.Searches {
		path := fmt.Sprintf("searches[%s]", s.SearchID)
		c.requireImport(path, s.SourceImportID)
		c.requireOrganisation(path, s.OrganisationID)
		if s.AddressID != nil {
			c.requireAddress(path, *s.AddressID)
		}
	}
	for _, s := range f.CreditScores {
		c.requireImport(fmt.Sprintf("credit_scores[%s]", s.ScoreID), s.SourceImportID)
	}
	for _, r := range f.PublicRecords {
		path := fmt.Sprintf("public_records[%s]", r.RecordID)
		c.requireImport(path, r.SourceImportID)
		if r.AddressID != nil {
			c.requireAddress(path, *r.AddressID)
		}
	}
	for _, n := range f.NoticesOfCorrection {
		c.requireImport(fmt.Sprintf("notices_of_correction[%s]", n.NoticeID), n.SourceImportID)
	}
	for _, r := range f.PropertyRecords {
		path := fmt.Sprintf("property_records[%s]", r.RecordID)
		c.requireImport(path, r.SourceImportID)
		if r.AddressID != nil {
			c.requireAddress(path, *r.AddressID)
		}
	}
	for _, r := range f.GoneAwayRecords {
		path := fmt.Sprintf("gone_away_records[%s]", r.RecordID)
		c.requireImport(path, r.SourceImportID)
		if r.AddressID != nil {
			c.requireAddress(path, *r.AddressID)
		}
	}
	for _, m := range f.FraudMarkers {
		path := fmt.Sprintf("fraud_markers[%s]", m.MarkerID)
		c.requireImport(path, m.SourceImportID)
		if m.AddressID != nil {
			c.requireAddress(path, *m.AddressID)
		}
	}
	for _, it := range f.AttributableItems {
		c.requireImport(fmt.Sprintf("attributable_items[%s]", it.ItemID), it.SourceImportID)
	}
	for _, d := range f.Disputes {
		c.requireImport(fmt.Sprintf("disputes[%s]", d.DisputeID), d.SourceImportID)
	}
}

func (c *checker) walkTradeline(tl *payload.Tradeline) {
	base := fmt.Sprintf("tradelines[%s]", tl.TradelineID)
	c.requireImport(base, tl.SourceImportID)
	c.requireOrganisation(base, tl.OrganisationID)

	for _, id := range tl.Identifiers {
		c.requireImport(fmt.Sprintf("%s.identifiers[%s]", base, id.IdentifierID), id.SourceImportID)
	}
	for _, p := range tl.Parties {
		c.requireImport(fmt.Sprintf("%s.parties[%s]", base, p.PartyID), p.SourceImportID)
	}
	if tl.Terms != nil {
		c.requireImport(fmt.Sprintf("%s.terms[%s]", base, tl.Terms.TermsID), tl.Terms.SourceImportID)
	}
	for _, s := range tl.Snapshots {
		c.requireImport(fmt.Sprintf("%s.snapshots[%s]", base, s.SnapshotID), s.SourceImportID)
	}
	for _, e := range tl.Events {
		c.requireImport(fmt.Sprintf("%s.events[%s]", base, e.EventID), e.SourceImportID)
	}

	seen := make(map[string]string, len(tl.MonthlyMetrics))
	for i := range tl.MonthlyMetrics {
		m := &tl.MonthlyMetrics[i]
		path := fmt.Sprintf("%s.monthly_metrics[%s]", base, m.MetricID)
		c.requireImport(path, m.SourceImportID)
		if !periodPattern.MatchString(m.Period) {
			c.errors = append(c.errors, fmt.Sprintf("%s: period %q is not a valid YYYY-MM", path, m.Period))
		}
		key := m.Period + "|" + m.MetricType + "|" + m.SourceImportID + "|" + payload.DerivedValueKey(m)
		if prev, dup := seen[key]; dup {
			c.errors = append(c.errors, fmt.Sprintf(
				"%s: duplicates monthly_metrics[%s] on (period=%s, metric_type=%s, source_import_id=%s, derived_value_key=%s)",
				path, prev, m.Period, m.MetricType, m.SourceImportID, payload.DerivedValueKey(m)))
			continue
		}
		seen[key] = m.MetricID
	}
}

func (c *checker) requireImport(path, importID string) {
	if _, ok := c.imports[importID]; !ok {
		c.errors = append(c.errors, fmt.Sprintf("%s: source_import_id %q does not resolve to an import batch in this payload", path, importID))
	}
}

func (c *checker) requireAddress(path, addressID string) {
	if _, ok := c.addresses[addressID]; !ok {
		c.errors = append(c.errors, fmt.Sprintf("%s: address_id %q does not resolve to an address in this payload", path, addressID))
	}
}

func (c *checker) requireOrganisation(path, organisationID string) {
	if _, ok := c.organisations[organisationID]; !ok {
		c.errors = append(c.errors, fmt.Sprintf("%s: organisation_id %q does not resolve to an organisation in this payload", path, organisationID))
	}
}
