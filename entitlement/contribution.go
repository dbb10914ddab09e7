/*
contribution.go - Family contribution from chargeable income

PURPOSE:
  Parents (or the spouse) owe a contribution toward the student's need,
  derived from their joint chargeable income through the family-allowance
  paragraph's share schedule: a retention share stays with the family, the
  rest is charged. Income-relevant siblings raise the retention share.

  The schedule runs through the same bracket machinery as the tax formula,
  just with share-formula brackets and a different paragraph.
*/
package entitlement

import (
	"github.com/shopspring/decimal"

	"github.com/warp/entitlement-engine/allowance"
	"github.com/warp/entitlement-engine/statute"
)

// familyCharge applies the family allowance fold and the contribution
// schedule to the joint net monthly income of the parents or spouse.
func (e *Engine) familyCharge(h Household, jointNetMonthly statute.Amount) (allowance.Result, statute.Amount, statute.Amount, error) {
	set, err := e.registry.Lookup(statute.ParFamilyAllowance, h.Year)
	if err != nil {
		return allowance.Result{}, statute.ZeroAmount(), statute.ZeroAmount(), err
	}

	specs := e.familyAllowanceSpecs(h, set)
	fold := allowance.Apply(jointNetMonthly, specs)
	excess := fold.Remainder

	contribution, err := set.Brackets.EvaluateWithDependents(excess, incomeRelevantSiblings(h))
	if err != nil {
		return fold, excess, statute.ZeroAmount(), err
	}
	return fold, excess, contribution, nil
}

// familyAllowanceSpecs assembles the statutory allowance order for the
// family entities: basic allowance first, then sibling supplements.
func (e *Engine) familyAllowanceSpecs(h Household, set statute.ParameterSet) []allowance.Spec {
	var specs []allowance.Spec

	switch {
	case h.Spouse != nil:
		specs = append(specs, allowance.Spec{
			Name:    allowance.BasicSpouse,
			Nominal: set.Scalars.Amount("spouse"),
		})
	case len(h.Parents) == 2:
		specs = append(specs, allowance.Spec{
			Name:    allowance.BasicParents,
			Nominal: set.Scalars.Amount("joint"),
		})
	default:
		specs = append(specs, allowance.Spec{
			Name:    allowance.BasicParents,
			Nominal: set.Scalars.Amount("single"),
		})
	}

	if h.SiblingCount > 0 {
		perSibling := set.Scalars.Amount("sibling_allowance")
		specs = append(specs, allowance.Spec{
			Name:    allowance.Sibling,
			Nominal: perSibling.Mul(decimal.NewFromInt(int64(h.SiblingCount))),
		})
	}
	if h.SiblingExcessIncome.IsPositive() {
		specs = append(specs, allowance.Spec{
			Name:    allowance.SiblingIncome,
			Nominal: h.SiblingExcessIncome,
		})
	}

	return specs
}

// incomeRelevantSiblings counts the siblings that raise the retention
// share: all of them when they have own excess income, none otherwise.
func incomeRelevantSiblings(h Household) int {
	if h.SiblingExcessIncome.IsPositive() {
		return h.SiblingCount
	}
	return 0
}
