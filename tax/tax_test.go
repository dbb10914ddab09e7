package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/entitlement-engine/params"
	"github.com/warp/entitlement-engine/statute"
	"github.com/warp/entitlement-engine/tax"
)

func testRegistry(t *testing.T) *statute.Registry {
	t.Helper()
	reg, err := params.Load()
	require.NoError(t, err)
	return reg
}

func eur(v float64) statute.Amount { return statute.NewAmount(v) }

// =============================================================================
// INCOME TAX
// =============================================================================

func TestIncomeTax_ZeroIncomeZeroTax(t *testing.T) {
	reg := testRegistry(t)

	got, err := tax.IncomeTax(reg, eur(0), 2022)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestIncomeTax_BelowBasicAllowance(t *testing.T) {
	reg := testRegistry(t)

	got, err := tax.IncomeTax(reg, eur(9000), 2022)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestIncomeTax_ProgressiveZone2022(t *testing.T) {
	// GIVEN: Taxable income 28800 in assessment year 2022
	// WHEN: Evaluating the second progressive zone
	// THEN: tax = trunc((206.43*z + 2397)*z + 869.32), z = 1.3874 -> 4592

	reg := testRegistry(t)

	got, err := tax.IncomeTax(reg, eur(28800), 2022)
	require.NoError(t, err)
	assert.True(t, got.Equal(eur(4592)), "got %v", got.Value)
}

func TestIncomeTax_MissingYearIsFatal(t *testing.T) {
	reg := testRegistry(t)

	_, err := tax.IncomeTax(reg, eur(20000), 1995)
	assert.True(t, statute.IsParameterMissing(err))
}

func TestTaxableIncome_StandardDeduction(t *testing.T) {
	reg := testRegistry(t)

	got, err := tax.TaxableIncome(reg, eur(30000), 2022)
	require.NoError(t, err)
	assert.True(t, got.Equal(eur(28800)), "2022 standard deduction is 1200")

	got, err = tax.TaxableIncome(reg, eur(800), 2022)
	require.NoError(t, err)
	assert.True(t, got.IsZero(), "deduction floors at zero")
}

// =============================================================================
// SOLIDARITY SURCHARGE
// =============================================================================

func TestSurcharge_BelowExemptionIsZero(t *testing.T) {
	reg := testRegistry(t)

	got, err := tax.Surcharge(reg, eur(5000), 2022)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSurcharge_SlidingBandMitigation(t *testing.T) {
	// GIVEN: Tax 17000, just above the 16956 exemption
	// WHEN: Computing the surcharge
	// THEN: min(0.055*17000, 0.119*44) = trunc(5.236) = 5, not 935

	reg := testRegistry(t)

	got, err := tax.Surcharge(reg, eur(17000), 2022)
	require.NoError(t, err)
	assert.True(t, got.Equal(eur(5)), "got %v", got.Value)
}

func TestSurcharge_FullRateAboveBand(t *testing.T) {
	// Far above the band the flat rate is the smaller term: 0.055*30000 = 1650.
	reg := testRegistry(t)

	got, err := tax.Surcharge(reg, eur(30000), 2022)
	require.NoError(t, err)
	assert.True(t, got.Equal(eur(1650)), "got %v", got.Value)
}

func TestSurcharge_ZeroTaxZeroSurcharge(t *testing.T) {
	reg := testRegistry(t)

	got, err := tax.Surcharge(reg, eur(0), 2022)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

// =============================================================================
// SOCIAL INSURANCE
// =============================================================================

func TestSocialInsurance_ComponentsAndTotal(t *testing.T) {
	reg := testRegistry(t)

	got, err := tax.SocialInsurance(reg, eur(30000), 2022)
	require.NoError(t, err)

	assert.True(t, got.Pension.Equal(eur(2790)), "pension %v", got.Pension.Value)
	assert.True(t, got.Health.Equal(eur(2385)), "health %v", got.Health.Value)
	assert.True(t, got.Care.Equal(eur(457.5)), "care %v", got.Care.Value)
	assert.True(t, got.Unemployment.Equal(eur(360)), "unemployment %v", got.Unemployment.Value)
	assert.True(t, got.Total.Equal(eur(5992)), "total truncated, got %v", got.Total.Value)
}

func TestSocialInsurance_CeilingCapsAssessment(t *testing.T) {
	// GIVEN: Gross wages 50% above the 2022 pension ceiling of 84600
	// WHEN: Computing contributions
	// THEN: Pension = ceiling * rate, not gross * rate

	reg := testRegistry(t)

	got, err := tax.SocialInsurance(reg, eur(126900), 2022)
	require.NoError(t, err)
	assert.True(t, got.Pension.Equal(eur(84600).Mul(statute.MustParseDecimal("0.093"))),
		"pension %v", got.Pension.Value)
}

func TestSocialInsurance_ZeroWages(t *testing.T) {
	reg := testRegistry(t)

	got, err := tax.SocialInsurance(reg, eur(0), 2022)
	require.NoError(t, err)
	assert.True(t, got.Total.IsZero())
}

// =============================================================================
// NET INCOME
// =============================================================================

func TestNetIncome_Chain(t *testing.T) {
	reg := testRegistry(t)

	gross := eur(30000)
	taxable, err := tax.TaxableIncome(reg, gross, 2022)
	require.NoError(t, err)
	incomeTax, err := tax.IncomeTax(reg, taxable, 2022)
	require.NoError(t, err)
	surcharge, err := tax.Surcharge(reg, incomeTax, 2022)
	require.NoError(t, err)
	insurance, err := tax.SocialInsurance(reg, gross, 2022)
	require.NoError(t, err)

	net := tax.NetIncome(gross, incomeTax, surcharge, insurance)
	assert.True(t, net.Equal(eur(19416)), "30000 - 4592 - 0 - 5992, got %v", net.Value)
}

func TestNetIncome_NeverNegative(t *testing.T) {
	net := tax.NetIncome(eur(100), eur(500), eur(50), tax.InsuranceContributions{Total: eur(200)})
	assert.True(t, net.IsZero())
}
