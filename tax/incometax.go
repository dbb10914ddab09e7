/*
Package tax implements the pure tax and contribution calculators.

PURPOSE:
  Three calculators, each a pure function of (income, year) plus the
  parameter registry: progressive income tax, solidarity surcharge, and
  social-insurance contributions. Nothing here holds state; the same inputs
  always produce the same outputs.

CALCULATION CHAIN:
  gross annual income
    -> taxable income   (gross less the employment standard deduction)
    -> income tax       (bracket schedule, polynomial/linear zones)
    -> surcharge        (flat rate with exemption + mitigation band)
  gross wage income
    -> insurance        (per-component capped flat rates)
  net = gross - tax - surcharge - insurance, floored at zero

ROUNDING:
  Every result is truncated to the whole currency unit. Zero income yields
  zero everywhere - never an error.

SEE ALSO:
  - statute/bracket.go: The schedule machinery these calculators drive
  - params/: The year tables they are parameterized by
*/
package tax

import (
	"github.com/warp/entitlement-engine/statute"
)

// TaxableIncome reduces annual gross by the year's employment standard
// deduction, floored at zero.
func TaxableIncome(reg *statute.Registry, gross statute.Amount, year statute.Year) (statute.Amount, error) {
	set, err := reg.Lookup(statute.ParEmploymentDeduct, year)
	if err != nil {
		return statute.ZeroAmount(), err
	}
	deduction := set.Scalars.Amount("standard_deduction")
	return gross.Sub(deduction).FloorZero(), nil
}

// IncomeTax evaluates the year's progressive schedule at the taxable income.
// The matched bracket is the last one whose lower bound <= x; values above
// the nominal top range fall into the open-ended final bracket. The result
// is truncated to the whole euro.
func IncomeTax(reg *statute.Registry, taxable statute.Amount, year statute.Year) (statute.Amount, error) {
	if !taxable.IsPositive() {
		return statute.ZeroAmount(), nil
	}
	set, err := reg.Lookup(statute.ParIncomeTax, year)
	if err != nil {
		return statute.ZeroAmount(), err
	}
	return set.Brackets.Evaluate(taxable)
}
