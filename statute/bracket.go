/*
bracket.go - Bracket schedules and formula variants

PURPOSE:
  Represents one paragraph's progressive schedule as an ordered array of
  brackets and evaluates it with a single binary-search lookup. This replaces
  per-paragraph conditional branching: income tax zones, surcharge bands, and
  contribution retention all flow through the same mechanism with different
  coefficients.

KEY CONCEPTS:
  - Bracket: A contiguous value range [Lower, next.Lower) with one formula
  - Formula: Tagged variant - zero, polynomial, linear rate, capped rate, share
  - Schedule: Ordered brackets; the last bracket is open-ended

BRACKET LOOKUP:
  The matched bracket is the LAST one whose lower bound <= x. A value exactly
  on a boundary belongs to the higher bracket (lower bounds are inclusive).
  Values above the top bracket's nominal range fall into the open-ended final
  bracket.

FORMULA VARIANTS:
  FormulaZero:       result = 0 (e.g. income below the basic tax allowance)
  FormulaPolynomial: y = (x - lower) / 10000; result = (A2*y + A1)*y + A0
                     (the progressive-zone quadratic used by the tax law)
  FormulaLinear:     result = Rate*x + Intercept (flat marginal rate zones)
  FormulaCappedRate: result = Rate * min(x, Cap) (insurance ceilings)
  FormulaShare:      retained = BaseShare + PerDependent*n, capped at 1;
                     result = x * (1 - retained) (contribution retention)

SEE ALSO:
  - types.go: Amount and rounding conventions
  - registry.go: Where schedules live
*/
package statute

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// FORMULA - Tagged variant evaluated within one bracket
// =============================================================================

type FormulaKind string

const (
	FormulaZero       FormulaKind = "zero"
	FormulaPolynomial FormulaKind = "polynomial"
	FormulaLinear     FormulaKind = "linear"
	FormulaCappedRate FormulaKind = "capped_rate"
	FormulaShare      FormulaKind = "share"
)

type Formula struct {
	Kind FormulaKind

	// Polynomial coefficients in the normalized offset y = (x - lower)/10000.
	A2, A1, A0 decimal.Decimal

	// Linear / capped-rate parameters.
	Rate      decimal.Decimal
	Intercept decimal.Decimal
	Cap       *Amount

	// Share parameters (contribution retention).
	BaseShare    decimal.Decimal
	PerDependent decimal.Decimal
}

var tenThousand = decimal.NewFromInt(10000)

// Apply evaluates the formula for value x within a bracket starting at lower.
// dependents only affects FormulaShare; every other variant ignores it.
func (f Formula) Apply(x, lower Amount, dependents int) Amount {
	switch f.Kind {
	case FormulaZero:
		return ZeroAmount()

	case FormulaPolynomial:
		y := x.Sub(lower).Value.Div(tenThousand)
		v := f.A2.Mul(y).Add(f.A1).Mul(y).Add(f.A0)
		return Amount{Value: v}

	case FormulaLinear:
		return Amount{Value: f.Rate.Mul(x.Value).Add(f.Intercept)}

	case FormulaCappedRate:
		base := x
		if f.Cap != nil {
			base = base.Min(*f.Cap)
		}
		return Amount{Value: f.Rate.Mul(base.Value)}

	case FormulaShare:
		retained := f.BaseShare.Add(f.PerDependent.Mul(decimal.NewFromInt(int64(dependents))))
		if retained.GreaterThan(decimal.NewFromInt(1)) {
			retained = decimal.NewFromInt(1)
		}
		charged := decimal.NewFromInt(1).Sub(retained)
		return Amount{Value: x.Value.Mul(charged)}.FloorZero()

	default:
		return ZeroAmount()
	}
}

// =============================================================================
// BRACKET AND SCHEDULE
// =============================================================================

// Bracket is one contiguous range of a schedule. Upper bounds are implicit:
// a bracket ends where the next one begins, and the last bracket is open.
type Bracket struct {
	Lower   Amount
	Formula Formula
}

// Schedule is an ordered, contiguous, non-overlapping bracket sequence.
type Schedule struct {
	Brackets []Bracket
}

// Validate checks the schedule invariants: at least one bracket, strictly
// increasing lower bounds.
func (s Schedule) Validate() error {
	if len(s.Brackets) == 0 {
		return ErrEmptySchedule
	}
	for i := 1; i < len(s.Brackets); i++ {
		if !s.Brackets[i].Lower.GreaterThan(s.Brackets[i-1].Lower) {
			return &ScheduleOrderError{Index: i, Lower: s.Brackets[i].Lower}
		}
	}
	return nil
}

// Locate returns the bracket containing x: the last bracket whose lower bound
// is <= x. Lower bounds are inclusive, so a value exactly on a boundary
// belongs to the higher bracket.
func (s Schedule) Locate(x Amount) (Bracket, error) {
	if len(s.Brackets) == 0 {
		return Bracket{}, ErrEmptySchedule
	}
	// First bracket whose lower bound exceeds x; the match is the one before.
	idx := sort.Search(len(s.Brackets), func(i int) bool {
		return s.Brackets[i].Lower.GreaterThan(x)
	})
	if idx == 0 {
		return Bracket{}, &BelowScheduleError{Value: x, Floor: s.Brackets[0].Lower}
	}
	return s.Brackets[idx-1], nil
}

// Evaluate locates the bracket for x and applies its formula. The result is
// truncated to the whole currency unit per the statutory rounding rule.
func (s Schedule) Evaluate(x Amount) (Amount, error) {
	return s.EvaluateWithDependents(x, 0)
}

// EvaluateWithDependents is Evaluate for share schedules whose retention
// depends on a dependent count (income-relevant siblings).
func (s Schedule) EvaluateWithDependents(x Amount, dependents int) (Amount, error) {
	b, err := s.Locate(x)
	if err != nil {
		return ZeroAmount(), err
	}
	return b.Formula.Apply(x, b.Lower, dependents).TruncateEuro(), nil
}

// =============================================================================
// PARAMETER SET - One paragraph's full parameterization for one year
// =============================================================================

// ParameterSet bundles everything one paragraph defines for one validity
// year: an optional bracket schedule plus named scalar parameters.
type ParameterSet struct {
	Paragraph Paragraph
	Year      Year
	Brackets  Schedule
	Scalars   Scalars
}
