/*
Package entitlement computes the theoretical statutory award for one
household-year.

PURPOSE:
  This is the orchestration layer: for each entity in the household it runs
  aggregation -> tax chain -> net income -> allowances, derives the family
  contribution from the chargeable incomes, computes the student's statutory
  need, and produces the final entitlement with every intermediate quantity
  preserved for audit.

KEY CONCEPTS IN THIS FILE (types.go):
  - Entity/Household: The input unit, one observation year
  - Assessment: Per-entity income chain results
  - NeedComponents: Base need, housing, insurance supplement
  - Result: Everything the export and statistics layers consume

HOUSEHOLD CONFIGURATIONS:
  Dependent:   student + one or two parents (+ sibling context)
  Independent: student alone, optionally married (spouse instead of parents)
  The two configurations are mutually exclusive; Validate enforces this.

SEE ALSO:
  - engine.go: The Compute orchestration
  - need.go: Statutory need components
  - contribution.go: Family contribution schedule
*/
package entitlement

import (
	"github.com/warp/entitlement-engine/allowance"
	"github.com/warp/entitlement-engine/income"
	"github.com/warp/entitlement-engine/statute"
	"github.com/warp/entitlement-engine/tax"
)

// =============================================================================
// ROLES AND LIVING ARRANGEMENT
// =============================================================================

type Role string

const (
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleSpouse  Role = "spouse"
)

type LivingArrangement string

const (
	LivesWithParents LivingArrangement = "with_parents"
	LivesAway        LivingArrangement = "away"
)

// =============================================================================
// INPUT - One household, one year
// =============================================================================

// Entity is one person in the household for the observation year.
type Entity struct {
	PersonID string
	Role     Role
	Age      int
	Income   income.Record

	// Net assets per the asset paragraph. Only assessed for the student.
	Assets statute.Amount
}

// Household is the evaluation unit: exactly one student plus the family
// entities the statute charges for support.
type Household struct {
	Year    statute.Year
	Student Entity

	// Dependent configuration: one or two parents.
	Parents []Entity

	// Independent configuration: optional spouse. Mutually exclusive with
	// Parents.
	Independent bool
	Spouse      *Entity

	Living LivingArrangement

	// Sibling context. SiblingExcessIncome is the siblings' aggregate own
	// excess income (monthly); it relieves parental income before the
	// contribution share applies.
	SiblingCount        int
	SiblingExcessIncome statute.Amount

	// Student's own children raise the student allowance and the asset
	// allowance add-on.
	StudentChildren int
}

// Validate enforces the entity-role invariants. A violation is fatal for
// the record, never for the batch.
func (h Household) Validate() error {
	if h.Student.Role != RoleStudent {
		return &statute.InvalidHouseholdError{Reason: "student entity must carry the student role"}
	}
	if len(h.Parents) > 2 {
		return &statute.InvalidHouseholdError{Reason: "more than two parents"}
	}
	for _, p := range h.Parents {
		if p.Role == RoleStudent {
			return &statute.InvalidHouseholdError{Reason: "more than one student"}
		}
		if p.Role != RoleParent {
			return &statute.InvalidHouseholdError{Reason: "parent entity with non-parent role"}
		}
	}
	if h.Spouse != nil {
		if h.Spouse.Role == RoleStudent {
			return &statute.InvalidHouseholdError{Reason: "more than one student"}
		}
		if h.Spouse.Role != RoleSpouse {
			return &statute.InvalidHouseholdError{Reason: "spouse entity with non-spouse role"}
		}
	}
	if h.Independent && len(h.Parents) > 0 {
		return &statute.InvalidHouseholdError{Reason: "independent student with parent entities"}
	}
	if !h.Independent && h.Spouse != nil {
		return &statute.InvalidHouseholdError{Reason: "dependent student with spouse entity"}
	}
	if h.SiblingCount < 0 {
		return &statute.InvalidHouseholdError{Reason: "negative sibling count"}
	}
	if h.StudentChildren < 0 {
		return &statute.InvalidHouseholdError{Reason: "negative child count"}
	}
	return nil
}

// =============================================================================
// OUTPUT - Every intermediate and final quantity
// =============================================================================

// Assessment is the per-entity income chain: aggregation through net income.
// Annual figures except NetMonthly.
type Assessment struct {
	PersonID  string
	Role      Role
	Gross     statute.Amount
	WageGross statute.Amount
	Taxable   statute.Amount
	IncomeTax statute.Amount
	Surcharge statute.Amount
	Insurance tax.InsuranceContributions
	NetAnnual statute.Amount
	NetMonthly statute.Amount
	Warnings  []income.Warning
}

// NeedComponents is the statutory need, independent of income. Monthly.
type NeedComponents struct {
	Base                statute.Amount
	Housing             statute.Amount
	InsuranceSupplement statute.Amount
	Total               statute.Amount
}

// Result is the full calculation output for one household-year. Monetary
// outcomes are monthly amounts.
type Result struct {
	StudentID string
	Year      statute.Year

	Eligible         bool
	IneligibleReason string

	Student Assessment
	Family  []Assessment // parents, or the spouse

	// Allowance passes with full consumption breakdowns.
	StudentAllowances allowance.Result // over student net monthly income
	AssetAllowances   allowance.Result // over student net assets
	FamilyAllowances  allowance.Result // over joint family net monthly income

	Need NeedComponents

	StudentCharge      statute.Amount // student chargeable income incl. asset excess
	AssetExcessMonthly statute.Amount
	FamilyExcess       statute.Amount // family chargeable income after allowances
	FamilyContribution statute.Amount

	MaxAward    statute.Amount
	Entitlement statute.Amount

	Warnings []income.Warning
}
