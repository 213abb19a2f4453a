package datalake

import (
	"errors"
	"fmt"
	"slices"
)

// Violation describes one record that breaks a dataset invariant.
type Violation struct {
	Set    EntitySet
	ID     string
	Reason string
}

// String renders the violation for logs and error messages.
func (v Violation) String() string {
	return fmt.Sprintf("%s[%s]: %s", v.Set, v.ID, v.Reason)
}

// Report is the result of Verify.
type Report struct {
	Violations []Violation
}

// OK reports whether no violation was found.
func (r Report) OK() bool {
	return len(r.Violations) == 0
}

// Err returns nil for a clean report, otherwise ErrConsistencyViolated joined with one error per violation.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}

	errs := make([]error, 0, len(r.Violations)+1)
	errs = append(errs, ErrConsistencyViolated)
	for _, v := range r.Violations {
		errs = append(errs, errors.New(v.String()))
	}

	return errors.Join(errs...)
}

func (r *Report) add(set EntitySet, id string, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{Set: set, ID: id, Reason: fmt.Sprintf(format, args...)})
}

// Verify scans a Dataset for violations of the data lake invariants:
//   - identifiers are unique within each entity set
//   - every client/product reference names a record of the referenced set
//   - a transaction is not older than its client's registration nor its product's launch
//   - an interaction is not older than its client's registration
//   - a client's last interaction is not older than its registration
//   - fixed-income-like products carry risk Low and a 12-month return within their band
//   - optional fields are set only when the record's type licenses them
func Verify(d Dataset) Report {
	report := Report{}

	verifyUniqueIDs(&report, EntitySetClients, len(d.Clients), func(i int) string { return d.Clients[i].ID })
	verifyUniqueIDs(&report, EntitySetProducts, len(d.Products), func(i int) string { return d.Products[i].ID })
	verifyUniqueIDs(&report, EntitySetTransactions, len(d.Transactions), func(i int) string { return d.Transactions[i].ID })
	verifyUniqueIDs(&report, EntitySetInteractions, len(d.Interactions), func(i int) string { return d.Interactions[i].ID })

	verifyClients(&report, d.Clients)
	verifyProducts(&report, d.Products)

	clients := d.ClientIndex()
	products := d.ProductIndex()
	verifyTransactions(&report, d, clients, products)
	verifyInteractions(&report, d, clients, products)

	return report
}

func verifyUniqueIDs(report *Report, set EntitySet, n int, idAt func(i int) string) {
	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		id := idAt(i)
		if _, dup := seen[id]; dup {
			report.add(set, id, "duplicate identifier")
			continue
		}
		seen[id] = struct{}{}
	}
}

func verifyClients(report *Report, clients Clients) {
	for _, c := range clients {
		if c.LastInteractionAt.Before(c.RegisteredAt) {
			report.add(EntitySetClients, c.ID, "last interaction %s before registration %s",
				c.LastInteractionAt.Format(TimestampLayout), c.RegisteredAt.Format(TimestampLayout))
		}
	}
}

func verifyProducts(report *Report, products Products) {
	for _, p := range products {
		rule := ProductRuleFor(p.Type)

		if !slices.Contains(rule.RiskLevels, p.RiskLevel) {
			report.add(EntitySetProducts, p.ID, "risk %q not allowed for type %q", p.RiskLevel, p.Type)
		}

		if !rule.Return12M.Contains(p.Return12M) {
			report.add(EntitySetProducts, p.ID, "12-month return %.4f outside [%.2f, %.2f] for type %q",
				p.Return12M, rule.Return12M.Min, rule.Return12M.Max, p.Type)
		}

		if licensed, set := rule.LicensesBenchmark, p.BenchmarkIndex != NotApplicable; licensed != set {
			report.add(EntitySetProducts, p.ID, "benchmark index %q does not match type %q", p.BenchmarkIndex, p.Type)
		}

		if licensed, set := rule.LicensesSector, p.EconomicSector != NotApplicable; licensed != set {
			report.add(EntitySetProducts, p.ID, "economic sector %q does not match type %q", p.EconomicSector, p.Type)
		}

		if licensed, set := rule.LicensesStrategy, p.Strategy != NotApplicable; licensed != set {
			report.add(EntitySetProducts, p.ID, "strategy %q does not match type %q", p.Strategy, p.Type)
		}
	}
}

func verifyTransactions(report *Report, d Dataset, clients ClientIndex, products ProductIndex) {
	for _, t := range d.Transactions {
		ci, clientFound := clients[t.ClientID]
		if !clientFound {
			report.add(EntitySetTransactions, t.ID, "unknown client %q", t.ClientID)
		}

		pi, productFound := products[t.ProductID]
		if !productFound {
			report.add(EntitySetTransactions, t.ID, "unknown product %q", t.ProductID)
		}

		if clientFound && t.OccurredAt.Before(d.Clients[ci].RegisteredAt) {
			report.add(EntitySetTransactions, t.ID, "occurred before client %q registered", t.ClientID)
		}

		if productFound && t.OccurredAt.Before(d.Products[pi].LaunchedAt) {
			report.add(EntitySetTransactions, t.ID, "occurred before product %q launched", t.ProductID)
		}
	}
}

func verifyInteractions(report *Report, d Dataset, clients ClientIndex, products ProductIndex) {
	for _, in := range d.Interactions {
		rule := InteractionRuleFor(in.Type)

		ci, clientFound := clients[in.ClientID]
		if !clientFound {
			report.add(EntitySetInteractions, in.ID, "unknown client %q", in.ClientID)
		}

		if clientFound && in.OccurredAt.Before(d.Clients[ci].RegisteredAt) {
			report.add(EntitySetInteractions, in.ID, "occurred before client %q registered", in.ClientID)
		}

		switch {
		case rule.LinksProduct && in.ProductID == nil:
			report.add(EntitySetInteractions, in.ID, "type %q requires a product reference", in.Type)
		case !rule.LinksProduct && in.ProductID != nil:
			report.add(EntitySetInteractions, in.ID, "type %q must not reference a product", in.Type)
		case in.ProductID != nil:
			if _, ok := products[*in.ProductID]; !ok {
				report.add(EntitySetInteractions, in.ID, "unknown product %q", *in.ProductID)
			}
		}

		if rule.HasDuration != (in.DurationSeconds != nil) {
			report.add(EntitySetInteractions, in.ID, "duration does not match type %q", in.Type)
		}

		if rule.HasSearch != (in.SearchTerm != nil) {
			report.add(EntitySetInteractions, in.ID, "search term does not match type %q", in.Type)
		}
	}
}
