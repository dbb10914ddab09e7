/*
surcharge.go - Solidarity surcharge

PURPOSE:
  A flat percentage of income tax, but only once the tax exceeds an
  exemption threshold. A sliding band directly above the threshold caps the
  surcharge at a mitigation rate applied to the excess over the threshold,
  whichever is smaller - so the surcharge phases in instead of jumping.

PARAMETERS (per year, paragraph "solz"):
  rate            flat surcharge rate on the full tax amount
  exemption       tax amount below which no surcharge is due
  mitigation_rate marginal rate on the excess within the sliding band
*/
package tax

import "github.com/warp/entitlement-engine/statute"

// Surcharge computes the solidarity surcharge on an income tax amount.
// Below the exemption threshold the surcharge is zero; above it, the lesser
// of rate*tax and mitigation_rate*(tax - exemption) applies. Truncated to
// the whole euro.
func Surcharge(reg *statute.Registry, incomeTax statute.Amount, year statute.Year) (statute.Amount, error) {
	if !incomeTax.IsPositive() {
		return statute.ZeroAmount(), nil
	}
	set, err := reg.Lookup(statute.ParSurcharge, year)
	if err != nil {
		return statute.ZeroAmount(), err
	}

	exemption := set.Scalars.Amount("exemption")
	if !incomeTax.GreaterThan(exemption) {
		return statute.ZeroAmount(), nil
	}

	full := incomeTax.Mul(set.Scalars.Rate("rate"))
	mitigated := incomeTax.Sub(exemption).Mul(set.Scalars.Rate("mitigation_rate"))
	return full.Min(mitigated).TruncateEuro(), nil
}
