/*
aggregate.go - Income aggregation and annualization

PURPOSE:
  Sums a Record's income categories into one annualized gross figure.
  Partial-period incomes scale linearly with the number of months reported;
  a category with zero reporting periods contributes zero, never undefined.

DATA QUALITY CONTRACT:
  Survey data has gaps. Negative amounts, negative month counts, and unknown
  categories are zeroed and recorded as warnings so a batch over thousands of
  records degrades gracefully instead of aborting. Month counts above 14 are
  clamped (a 13th or 14th salary is legitimate; more is a reporting artifact).

SEE ALSO:
  - types.go: Record, Gross, Warning
  - tax/: Consumes the aggregated gross
*/
package income

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/entitlement-engine/statute"
)

// maxMonths tolerates 13th/14th-salary reporting before clamping.
const maxMonths = 14

// Aggregate normalizes one entity-year record into an annualized Gross.
// It never fails: malformed values become zeros plus warnings.
func Aggregate(rec Record) Gross {
	g := Gross{
		TotalAnnual: statute.ZeroAmount(),
		WageAnnual:  statute.ZeroAmount(),
		ByCategory:  make(map[Category]statute.Amount, len(rec.Entries)),
	}

	for _, cat := range Categories() {
		entry, ok := rec.Entries[cat]
		if !ok {
			continue
		}
		annual := annualize(cat, entry, &g)
		g.ByCategory[cat] = annual
		g.TotalAnnual = g.TotalAnnual.Add(annual)
		if cat == CategoryWages {
			g.WageAnnual = annual
		}
	}

	// Categories outside the closed enumeration are dropped, not summed.
	for cat := range rec.Entries {
		if !cat.Valid() {
			g.Warnings = append(g.Warnings, Warning{
				Kind:     WarnUnknownCategory,
				Category: cat,
				Detail:   fmt.Sprintf("category %q not in enumeration, ignored", cat),
			})
		}
	}

	return g
}

func annualize(cat Category, entry Entry, g *Gross) statute.Amount {
	monthly := entry.Monthly
	months := entry.Months

	if monthly.IsNegative() {
		g.Warnings = append(g.Warnings, Warning{
			Kind:     WarnNegativeAmount,
			Category: cat,
			Detail:   fmt.Sprintf("monthly amount %v treated as zero", monthly.Value),
		})
		monthly = statute.ZeroAmount()
	}

	if months < 0 {
		g.Warnings = append(g.Warnings, Warning{
			Kind:     WarnNegativeMonths,
			Category: cat,
			Detail:   fmt.Sprintf("month count %d treated as zero", months),
		})
		months = 0
	}
	if months > maxMonths {
		g.Warnings = append(g.Warnings, Warning{
			Kind:     WarnExcessiveMonths,
			Category: cat,
			Detail:   fmt.Sprintf("month count %d clamped to %d", months, maxMonths),
		})
		months = maxMonths
	}

	return monthly.Mul(decimal.NewFromInt(int64(months)))
}
