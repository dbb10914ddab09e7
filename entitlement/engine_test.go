package entitlement_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/entitlement-engine/entitlement"
	"github.com/warp/entitlement-engine/income"
	"github.com/warp/entitlement-engine/params"
	"github.com/warp/entitlement-engine/statute"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func testEngine(t *testing.T) *entitlement.Engine {
	t.Helper()
	reg, err := params.Load()
	require.NoError(t, err)
	return entitlement.NewEngine(reg)
}

func eur(v float64) statute.Amount { return statute.NewAmount(v) }

func wageRecord(id string, year statute.Year, monthly float64) income.Record {
	return income.Record{
		PersonID: id,
		Year:     year,
		Entries: map[income.Category]income.Entry{
			income.CategoryWages: {Monthly: statute.NewAmount(monthly), Months: 12},
		},
	}
}

func student(id string, age int) entitlement.Entity {
	return entitlement.Entity{PersonID: id, Role: entitlement.RoleStudent, Age: age}
}

func parent(id string, year statute.Year, monthlyWage float64) entitlement.Entity {
	return entitlement.Entity{
		PersonID: id,
		Role:     entitlement.RoleParent,
		Age:      52,
		Income:   wageRecord(id, year, monthlyWage),
	}
}

// =============================================================================
// CONCRETE SCENARIOS
// =============================================================================

func TestCompute_IndependentZeroIncome_FullAward(t *testing.T) {
	// GIVEN: A single independent student, no income, living away, year 2022
	// WHEN: Computing (need = 452+360+94+28 = 934, max award 934)
	// THEN: Entitlement equals the full need

	e := testEngine(t)

	res, err := e.Compute(entitlement.Household{
		Year:        2022,
		Student:     student("stu-1", 24),
		Independent: true,
		Living:      entitlement.LivesAway,
	})
	require.NoError(t, err)

	assert.True(t, res.Eligible)
	assert.True(t, res.Need.Total.Equal(eur(934)), "need %v", res.Need.Total.Value)
	assert.True(t, res.Entitlement.Equal(eur(934)), "entitlement %v", res.Entitlement.Value)
}

func TestCompute_ParentAtContributionFloor_ZeroContribution(t *testing.T) {
	// GIVEN: One parent whose net monthly income stays below the single
	//        parental allowance, so chargeable income sits at the first
	//        contribution bracket's lower bound (zero)
	// WHEN: Computing
	// THEN: Contribution = 0 and the student gets the full need

	e := testEngine(t)

	res, err := e.Compute(entitlement.Household{
		Year:    2022,
		Student: student("stu-2", 22),
		Parents: []entitlement.Entity{parent("par-1", 2022, 2000)},
		Living:  entitlement.LivesAway,
	})
	require.NoError(t, err)

	assert.True(t, res.FamilyExcess.IsZero(), "excess %v", res.FamilyExcess.Value)
	assert.True(t, res.FamilyContribution.IsZero())
	assert.True(t, res.Entitlement.Equal(eur(934)))
}

func TestCompute_SingleParentModestIncome(t *testing.T) {
	// GIVEN: One parent with 2500/mo wages in 2022
	//        (net 19416/yr = 1618/mo, single allowance 1605, excess 13,
	//        50% retention -> contribution trunc(6.5) = 6)
	// WHEN: Computing for a student with no own income
	// THEN: Entitlement = 934 - 6 = 928

	e := testEngine(t)

	res, err := e.Compute(entitlement.Household{
		Year:    2022,
		Student: student("stu-3", 22),
		Parents: []entitlement.Entity{parent("par-1", 2022, 2500)},
		Living:  entitlement.LivesAway,
	})
	require.NoError(t, err)

	assert.True(t, res.Family[0].NetAnnual.Equal(eur(19416)), "net %v", res.Family[0].NetAnnual.Value)
	assert.True(t, res.FamilyContribution.Equal(eur(6)), "contribution %v", res.FamilyContribution.Value)
	assert.True(t, res.Entitlement.Equal(eur(928)), "entitlement %v", res.Entitlement.Value)
}

func TestCompute_HighParentalIncome_ZeroAwardNeverNegative(t *testing.T) {
	e := testEngine(t)

	res, err := e.Compute(entitlement.Household{
		Year:    2022,
		Student: student("stu-4", 22),
		Parents: []entitlement.Entity{
			parent("par-1", 2022, 6000),
			parent("par-2", 2022, 6000),
		},
		Living: entitlement.LivesAway,
	})
	require.NoError(t, err)

	assert.False(t, res.Entitlement.IsNegative())
	assert.True(t, res.Entitlement.IsZero(), "entitlement %v", res.Entitlement.Value)
}

func TestCompute_AssetExcessChargedMonthly(t *testing.T) {
	// GIVEN: Independent student, 25, with 20000 net assets in 2022
	//        (allowance 15000, excess 5000 -> 416.67/mo)
	// WHEN: Computing
	// THEN: Entitlement = trunc(934 - 416.67) = 517

	e := testEngine(t)

	stu := student("stu-5", 25)
	stu.Assets = eur(20000)

	res, err := e.Compute(entitlement.Household{
		Year:        2022,
		Student:     stu,
		Independent: true,
		Living:      entitlement.LivesAway,
	})
	require.NoError(t, err)

	assert.True(t, res.AssetAllowances.Breakdown[0].Consumed.Equal(eur(15000)))
	assert.True(t, res.Entitlement.Equal(eur(517)), "entitlement %v", res.Entitlement.Value)
}

func TestCompute_AssetAllowanceAgeDependent(t *testing.T) {
	// A 31-year-old's allowance jumps to 45000, absorbing the same assets.
	e := testEngine(t)

	stu := student("stu-6", 31)
	stu.Assets = eur(20000)

	res, err := e.Compute(entitlement.Household{
		Year:        2022,
		Student:     stu,
		Independent: true,
		Living:      entitlement.LivesAway,
	})
	require.NoError(t, err)

	assert.True(t, res.AssetExcessMonthly.IsZero())
	assert.True(t, res.Entitlement.Equal(eur(934)))
}

func TestCompute_FamilyInsuredAtHome_NoSupplement(t *testing.T) {
	// GIVEN: A 24-year-old living with parents in 2022
	// WHEN: Computing need
	// THEN: 452 base + 59 housing, no insurance supplement (family-insured)

	e := testEngine(t)

	res, err := e.Compute(entitlement.Household{
		Year:        2022,
		Student:     student("stu-7", 24),
		Independent: true,
		Living:      entitlement.LivesWithParents,
	})
	require.NoError(t, err)

	assert.True(t, res.Need.InsuranceSupplement.IsZero())
	assert.True(t, res.Need.Total.Equal(eur(511)), "need %v", res.Need.Total.Value)
}

func TestCompute_OlderStudentAtHome_KeepsSupplement(t *testing.T) {
	e := testEngine(t)

	res, err := e.Compute(entitlement.Household{
		Year:        2022,
		Student:     student("stu-8", 28),
		Independent: true,
		Living:      entitlement.LivesWithParents,
	})
	require.NoError(t, err)

	assert.True(t, res.Need.InsuranceSupplement.Equal(eur(122)))
}

func TestCompute_SiblingsRaiseRetention(t *testing.T) {
	// GIVEN: Identical parent income, once without and once with two
	//        income-relevant siblings
	// WHEN: Computing both
	// THEN: The sibling household owes a smaller contribution

	e := testEngine(t)

	base := entitlement.Household{
		Year:    2022,
		Student: student("stu-9", 22),
		Parents: []entitlement.Entity{parent("par-1", 2022, 4500)},
		Living:  entitlement.LivesAway,
	}
	withSiblings := base
	withSiblings.SiblingCount = 2
	withSiblings.SiblingExcessIncome = eur(50)

	plain, err := e.Compute(base)
	require.NoError(t, err)
	relieved, err := e.Compute(withSiblings)
	require.NoError(t, err)

	assert.True(t, relieved.FamilyContribution.LessThan(plain.FamilyContribution),
		"siblings must lower the contribution: %v vs %v",
		relieved.FamilyContribution.Value, plain.FamilyContribution.Value)
	assert.False(t, relieved.Entitlement.LessThan(plain.Entitlement))
}

// =============================================================================
// ELIGIBILITY AND VALIDATION
// =============================================================================

func TestCompute_AgeAboveLimit_IneligibleNotError(t *testing.T) {
	e := testEngine(t)

	res, err := e.Compute(entitlement.Household{
		Year:        2022,
		Student:     student("stu-10", 40),
		Independent: true,
		Living:      entitlement.LivesAway,
	})
	require.NoError(t, err)

	assert.False(t, res.Eligible)
	assert.NotEmpty(t, res.IneligibleReason)
	assert.True(t, res.Entitlement.IsZero())
}

func TestCompute_InvalidHouseholds(t *testing.T) {
	e := testEngine(t)
	spouse := entitlement.Entity{PersonID: "sp-1", Role: entitlement.RoleSpouse, Age: 26}
	secondStudent := entitlement.Entity{PersonID: "stu-x", Role: entitlement.RoleStudent, Age: 23}

	cases := map[string]entitlement.Household{
		"independent with parents": {
			Year: 2022, Student: student("s", 22), Independent: true,
			Parents: []entitlement.Entity{parent("p", 2022, 2000)}, Living: entitlement.LivesAway,
		},
		"dependent with spouse": {
			Year: 2022, Student: student("s", 22), Spouse: &spouse, Living: entitlement.LivesAway,
		},
		"two students": {
			Year: 2022, Student: student("s", 22),
			Parents: []entitlement.Entity{secondStudent}, Living: entitlement.LivesAway,
		},
		"three parents": {
			Year: 2022, Student: student("s", 22),
			Parents: []entitlement.Entity{
				parent("p1", 2022, 0), parent("p2", 2022, 0), parent("p3", 2022, 0),
			},
			Living: entitlement.LivesAway,
		},
		"negative siblings": {
			Year: 2022, Student: student("s", 22), Independent: true,
			SiblingCount: -1, Living: entitlement.LivesAway,
		},
	}

	for name, h := range cases {
		_, err := e.Compute(h)
		assert.True(t, statute.IsHouseholdInvalid(err), "%s: got %v", name, err)
	}
}

func TestCompute_MissingYearIsFatal(t *testing.T) {
	e := testEngine(t)

	_, err := e.Compute(entitlement.Household{
		Year:        1999,
		Student:     student("stu-11", 22),
		Independent: true,
		Living:      entitlement.LivesAway,
	})
	assert.True(t, statute.IsParameterMissing(err))
}

// =============================================================================
// PROPERTIES
// =============================================================================

func TestCompute_Deterministic(t *testing.T) {
	// Re-running on identical inputs yields identical results.
	e := testEngine(t)

	h := entitlement.Household{
		Year:    2022,
		Student: student("stu-12", 22),
		Parents: []entitlement.Entity{parent("par-1", 2022, 3200)},
		Living:  entitlement.LivesAway,
	}

	first, err := e.Compute(h)
	require.NoError(t, err)
	second, err := e.Compute(h)
	require.NoError(t, err)

	assert.True(t, first.Entitlement.Equal(second.Entitlement))
	assert.True(t, first.FamilyContribution.Equal(second.FamilyContribution))
	assert.True(t, first.StudentCharge.Equal(second.StudentCharge))
	assert.True(t, first.Need.Total.Equal(second.Need.Total))
}

func TestCompute_EntitlementNonIncreasingInParentIncome(t *testing.T) {
	e := testEngine(t)

	prev := eur(935) // above the maximum award
	for _, monthly := range []float64{1000, 2000, 3000, 4000, 5000, 6000, 8000} {
		res, err := e.Compute(entitlement.Household{
			Year:    2022,
			Student: student("stu-13", 22),
			Parents: []entitlement.Entity{parent("par-1", 2022, monthly)},
			Living:  entitlement.LivesAway,
		})
		require.NoError(t, err)

		assert.False(t, res.Entitlement.GreaterThan(prev),
			"entitlement rose with parent income at %v/mo", monthly)
		assert.False(t, res.Entitlement.IsNegative())
		assert.False(t, res.Entitlement.GreaterThan(res.MaxAward))
		prev = res.Entitlement
	}
}

func TestCompute_WarningsSurfaceFromDirtyIncome(t *testing.T) {
	e := testEngine(t)

	p := parent("par-1", 2022, 2500)
	p.Income.Entries[income.CategoryCapital] = income.Entry{Monthly: eur(-3), Months: 12}

	res, err := e.Compute(entitlement.Household{
		Year:    2022,
		Student: student("stu-14", 22),
		Parents: []entitlement.Entity{p},
		Living:  entitlement.LivesAway,
	})
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, income.WarnNegativeAmount, res.Warnings[0].Kind)
	// The dirty value was zeroed, so the computation matches the clean one.
	assert.True(t, res.Entitlement.Equal(eur(928)))
}
