/*
Package allowance applies ordered statutory deductions to an income
remainder.

PURPOSE:
  The law grants each entity role a fixed sequence of allowances - basic
  personal allowance first, then role-specific supplements (spousal,
  per-sibling, asset, employment-related). Each allowance reduces the
  running remainder and is itself clamped to the remaining balance: no
  allowance can push the remainder below zero, and the breakdown records
  how much of each was actually consumed, which may be less than its
  nominal statutory value.

DESIGN:
  A pure fold over an ordered []Spec. No shared accumulator is mutated;
  each step returns (consumed, remainder) and the remainder threads
  functionally into the next step. The entitlement engine assembles the
  per-role sequences from the parameter registry.

USAGE:
  result := allowance.Apply(netMonthly, []allowance.Spec{
      {Name: allowance.BasicParents, Nominal: joint},
      {Name: allowance.Sibling, Nominal: perSibling.Mul(count)},
  })
  chargeable := result.Remainder // floored at zero by construction

SEE ALSO:
  - entitlement/engine.go: Assembles role-specific sequences
*/
package allowance

import "github.com/warp/entitlement-engine/statute"

// =============================================================================
// ALLOWANCE NAMES - Stable identifiers for the breakdown
// =============================================================================

type Name string

const (
	BasicStudent  Name = "basic_student"   // §23 own-income allowance
	BasicParents  Name = "basic_parents"   // §25 joint/single parental allowance
	BasicSpouse   Name = "basic_spouse"    // §25 spousal allowance
	Sibling       Name = "sibling"         // §25 per-sibling allowance
	SiblingIncome Name = "sibling_income"  // relief for siblings' own excess income
	Asset         Name = "asset"           // §29 asset allowance
	Employment    Name = "employment"      // employment-related standard deduction
)

// =============================================================================
// SPEC AND BREAKDOWN
// =============================================================================

// Spec is one allowance in statutory order: a name and its nominal value.
type Spec struct {
	Name    Name
	Nominal statute.Amount
}

// Applied records one allowance's actual consumption.
type Applied struct {
	Name     Name
	Nominal  statute.Amount
	Consumed statute.Amount
}

// Result is the outcome of an allowance pass: the chargeable remainder and
// the full consumption breakdown in application order.
type Result struct {
	Start     statute.Amount
	Remainder statute.Amount
	Breakdown []Applied
}

// TotalConsumed sums the consumed amounts. Never exceeds Start.
func (r Result) TotalConsumed() statute.Amount {
	total := statute.ZeroAmount()
	for _, a := range r.Breakdown {
		total = total.Add(a.Consumed)
	}
	return total
}

// =============================================================================
// THE FOLD
// =============================================================================

// Apply folds the ordered allowance sequence over the starting amount.
// Each step consumes min(nominal, remainder); a negative or zero nominal
// consumes nothing but still appears in the breakdown for auditability.
// The final remainder is floored at zero.
func Apply(start statute.Amount, specs []Spec) Result {
	remainder := start.FloorZero()
	breakdown := make([]Applied, 0, len(specs))

	for _, spec := range specs {
		nominal := spec.Nominal.FloorZero()
		consumed := nominal.Min(remainder)
		remainder = remainder.Sub(consumed)
		breakdown = append(breakdown, Applied{
			Name:     spec.Name,
			Nominal:  spec.Nominal,
			Consumed: consumed,
		})
	}

	return Result{Start: start.FloorZero(), Remainder: remainder, Breakdown: breakdown}
}
