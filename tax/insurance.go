/*
insurance.go - Social-insurance contributions

PURPOSE:
  Employee-side contributions on gross wage income: pension, health,
  long-term care, and unemployment. Each component is a flat rate assessed
  on wages up to that component's statutory ceiling; wages above the ceiling
  contribute at the ceiling value, not the actual gross.

PARAMETERS (per year, paragraph "sgb_21"):
  pension_rate / pension_ceiling
  health_rate / health_ceiling
  care_rate / care_ceiling
  unemployment_rate / unemployment_ceiling

Each component runs through the shared capped-rate formula variant so the
ceiling semantics live in exactly one place.
*/
package tax

import "github.com/warp/entitlement-engine/statute"

// InsuranceContributions is the per-component breakdown. Total is the sum
// of the capped components, truncated to the whole euro.
type InsuranceContributions struct {
	Pension      statute.Amount
	Health       statute.Amount
	Care         statute.Amount
	Unemployment statute.Amount
	Total        statute.Amount
}

// SocialInsurance computes employee contributions on annual gross wages.
// Zero or negative wage income yields zero contributions.
func SocialInsurance(reg *statute.Registry, grossWages statute.Amount, year statute.Year) (InsuranceContributions, error) {
	out := InsuranceContributions{
		Pension:      statute.ZeroAmount(),
		Health:       statute.ZeroAmount(),
		Care:         statute.ZeroAmount(),
		Unemployment: statute.ZeroAmount(),
		Total:        statute.ZeroAmount(),
	}
	if !grossWages.IsPositive() {
		return out, nil
	}

	set, err := reg.Lookup(statute.ParSocialInsurance, year)
	if err != nil {
		return out, err
	}

	out.Pension = component(set.Scalars, "pension", grossWages)
	out.Health = component(set.Scalars, "health", grossWages)
	out.Care = component(set.Scalars, "care", grossWages)
	out.Unemployment = component(set.Scalars, "unemployment", grossWages)

	out.Total = out.Pension.Add(out.Health).Add(out.Care).Add(out.Unemployment).TruncateEuro()
	return out, nil
}

func component(s statute.Scalars, name string, wages statute.Amount) statute.Amount {
	ceiling := s.Amount(name + "_ceiling")
	f := statute.Formula{
		Kind: statute.FormulaCappedRate,
		Rate: s.Rate(name + "_rate"),
		Cap:  &ceiling,
	}
	return f.Apply(wages, statute.ZeroAmount(), 0)
}

// NetIncome subtracts tax, surcharge, and insurance contributions from
// annual gross, floored at zero.
func NetIncome(gross, incomeTax, surcharge statute.Amount, insurance InsuranceContributions) statute.Amount {
	return gross.Sub(incomeTax).Sub(surcharge).Sub(insurance.Total).FloorZero()
}
