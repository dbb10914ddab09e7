/*
Package statute provides the core statutory-parameter engine.

PURPOSE:
  This package contains the domain-agnostic machinery every calculator in the
  system is built on: exact currency amounts, year-indexed parameter lookup,
  and bracket schedules with their formula variants. Whether the paragraph
  describes income tax zones, insurance ceilings, or contribution retention
  shares, the same bracket abstraction evaluates it.

KEY CONCEPTS IN THIS FILE (types.go):
  - Amount: A currency quantity backed by decimal.Decimal
  - Paragraph: Type-safe identifier for a statutory parameter family
  - Year: A statutory validity year
  - Rounding: The statutory rounding conventions (truncation, not half-up)

DESIGN PRINCIPLES:
  1. Immutability: Parameter sets are never modified after registration
  2. Precision: Uses decimal.Decimal to avoid floating-point errors
  3. Type Safety: Strong typing for paragraphs prevents mixing tables
  4. Determinism: Every operation is a total function with one defined result

USAGE:
  x := statute.NewAmount(42500)
  set, err := registry.Lookup(statute.ParIncomeTax, 2023)
  tax, err := set.Brackets.Evaluate(x)

SEE ALSO:
  - bracket.go: Bracket schedules and formula variants
  - registry.go: (paragraph, year) parameter lookup
  - errors.go: Error taxonomy
*/
package statute

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT - Currency quantity (EUR for every table in this system)
// =============================================================================

type Amount struct {
	Value decimal.Decimal
}

func NewAmount(value float64) Amount {
	return Amount{Value: decimal.NewFromFloat(value)}
}

func NewAmountFromInt(value int) Amount {
	return Amount{Value: decimal.NewFromInt(int64(value))}
}

func ZeroAmount() Amount {
	return Amount{Value: decimal.Zero}
}

func MustParseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (a Amount) Add(b Amount) Amount          { return Amount{Value: a.Value.Add(b.Value)} }
func (a Amount) Sub(b Amount) Amount          { return Amount{Value: a.Value.Sub(b.Value)} }
func (a Amount) Mul(s decimal.Decimal) Amount { return Amount{Value: a.Value.Mul(s)} }
func (a Amount) Div(s decimal.Decimal) Amount { return Amount{Value: a.Value.Div(s)} }
func (a Amount) Neg() Amount                  { return Amount{Value: a.Value.Neg()} }
func (a Amount) IsNegative() bool             { return a.Value.IsNegative() }
func (a Amount) IsZero() bool                 { return a.Value.IsZero() }
func (a Amount) IsPositive() bool             { return a.Value.IsPositive() }
func (a Amount) GreaterThan(b Amount) bool    { return a.Value.GreaterThan(b.Value) }
func (a Amount) LessThan(b Amount) bool       { return a.Value.LessThan(b.Value) }
func (a Amount) Equal(b Amount) bool          { return a.Value.Equal(b.Value) }

func (a Amount) Min(b Amount) Amount {
	if a.LessThan(b) {
		return a
	}
	return b
}

func (a Amount) Max(b Amount) Amount {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// FloorZero clamps a negative amount to zero. Statutory remainders
// (chargeable income, excess income, awards) are never negative.
func (a Amount) FloorZero() Amount {
	if a.IsNegative() {
		return ZeroAmount()
	}
	return a
}

// TruncateEuro applies the statutory rounding convention: truncation toward
// zero to the whole currency unit. The law never rounds half-up.
func (a Amount) TruncateEuro() Amount {
	return Amount{Value: a.Value.Truncate(0)}
}

// =============================================================================
// IDENTIFIERS
// =============================================================================

// Paragraph names one statutory parameter family. Each paragraph owns its own
// bracket schedule and scalar parameters, versioned by validity year.
type Paragraph string

const (
	ParIncomeTax        Paragraph = "estg_32a"       // progressive income tax zones
	ParSurcharge        Paragraph = "solz"           // solidarity surcharge
	ParSocialInsurance  Paragraph = "sgb_21"         // social insurance rates and ceilings
	ParEmploymentDeduct Paragraph = "estg_9a"        // employment standard deduction
	ParNeed             Paragraph = "bafoeg_13"      // base need and housing
	ParInsuranceSupp    Paragraph = "bafoeg_13a"     // health/care insurance supplements
	ParStudentAllowance Paragraph = "bafoeg_23"      // student own-income allowances
	ParFamilyAllowance  Paragraph = "bafoeg_25"      // parent/spouse allowances + retention
	ParAssetAllowance   Paragraph = "bafoeg_29"      // asset allowances
)

// Year is a statutory validity year. Records are evaluated against the
// parameter set valid on January 1 of their observation year.
type Year int

// =============================================================================
// SCALAR PARAMETERS - Named flat values inside a parameter set
// =============================================================================

// Scalars hold the non-bracket parameters of a paragraph (allowance amounts,
// rates, ceilings) keyed by a stable name. Missing keys read as zero so that
// a paragraph can grow new scalars across years without breaking old ones.
type Scalars map[string]decimal.Decimal

func (s Scalars) Amount(key string) Amount {
	if v, ok := s[key]; ok {
		return Amount{Value: v}
	}
	return ZeroAmount()
}

func (s Scalars) Rate(key string) decimal.Decimal {
	if v, ok := s[key]; ok {
		return v
	}
	return decimal.Zero
}
