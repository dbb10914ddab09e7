/*
need.go - Statutory need components

PURPOSE:
  The student's need is a categorical base amount plus housing and insurance
  supplements, drawn from the registry by living arrangement. It is entirely
  independent of income.

FAMILY INSURANCE RULE:
  Students below the family-insurance age limit who live with their parents
  are covered by family insurance and receive no health/care supplement.
*/
package entitlement

import "github.com/warp/entitlement-engine/statute"

func (e *Engine) computeNeed(h Household) (NeedComponents, statute.Amount, error) {
	needSet, err := e.registry.Lookup(statute.ParNeed, h.Year)
	if err != nil {
		return NeedComponents{}, statute.ZeroAmount(), err
	}
	insSet, err := e.registry.Lookup(statute.ParInsuranceSupp, h.Year)
	if err != nil {
		return NeedComponents{}, statute.ZeroAmount(), err
	}

	var n NeedComponents
	if h.Living == LivesWithParents {
		n.Base = needSet.Scalars.Amount("base_home")
		n.Housing = needSet.Scalars.Amount("housing_home")
	} else {
		n.Base = needSet.Scalars.Amount("base_away")
		n.Housing = needSet.Scalars.Amount("housing_away")
	}

	n.InsuranceSupplement = insSet.Scalars.Amount("health_supplement").
		Add(insSet.Scalars.Amount("care_supplement"))
	ageLimit := insSet.Scalars.Amount("family_insurance_age_limit")
	if h.Living == LivesWithParents && statute.NewAmountFromInt(h.Student.Age).LessThan(ageLimit) {
		n.InsuranceSupplement = statute.ZeroAmount()
	}

	n.Total = n.Base.Add(n.Housing).Add(n.InsuranceSupplement)
	return n, needSet.Scalars.Amount("max_award"), nil
}
