/*
engine.go - The entitlement computation

PURPOSE:
  Compute runs the full statutory chain for one household-year:

    1. Validate the household configuration (fatal on violation)
    2. Eligibility screen (age limit) - ineligible records get a zero
       award with an explicit flag, not an error
    3. Per-entity assessment: aggregate -> taxable -> tax -> surcharge ->
       insurance -> net income
    4. Student allowances + asset excess -> student chargeable income
    5. Family allowances + contribution schedule -> family contribution
    6. Statutory need (independent of income)
    7. Entitlement = max(0, need - contribution - student charge),
       truncated to the whole euro, capped at the statutory maximum award

FAILURE SEMANTICS:
  A missing registry entry for the year is fatal for the record and
  propagates as a typed error. Malformed income values never fail: the
  aggregator zeroes them and their warnings are collected on the result.

  The engine holds no state beyond the immutable registry; Compute is a
  pure function of its inputs and safe for any number of concurrent
  callers.
*/
package entitlement

import (
	"github.com/shopspring/decimal"

	"github.com/warp/entitlement-engine/allowance"
	"github.com/warp/entitlement-engine/income"
	"github.com/warp/entitlement-engine/statute"
	"github.com/warp/entitlement-engine/tax"
)

var twelve = decimal.NewFromInt(12)

// Engine computes entitlements against one immutable parameter registry.
type Engine struct {
	registry *statute.Registry
}

func NewEngine(registry *statute.Registry) *Engine {
	return &Engine{registry: registry}
}

// Compute evaluates one household-year. The returned Result carries every
// intermediate quantity; err is non-nil only for per-record fatal
// conditions (invalid household, missing parameter set).
func (e *Engine) Compute(h Household) (*Result, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	res := &Result{
		StudentID: h.Student.PersonID,
		Year:      h.Year,
		Eligible:  true,
	}

	need, maxAward, err := e.computeNeed(h)
	if err != nil {
		return nil, err
	}
	res.Need = need
	res.MaxAward = maxAward

	needSet, err := e.registry.Lookup(statute.ParNeed, h.Year)
	if err != nil {
		return nil, err
	}
	ageLimit := needSet.Scalars.Amount("age_limit")
	if ageLimit.IsPositive() && statute.NewAmountFromInt(h.Student.Age).GreaterThan(ageLimit) {
		res.Eligible = false
		res.IneligibleReason = "student age above statutory limit"
		res.Entitlement = statute.ZeroAmount()
		return res, nil
	}

	// Student assessment and chargeable income.
	studentAssessment, err := e.assess(h.Student, h.Year)
	if err != nil {
		return nil, err
	}
	res.Student = studentAssessment
	res.Warnings = append(res.Warnings, studentAssessment.Warnings...)

	if err := e.chargeStudent(h, res); err != nil {
		return nil, err
	}

	// Family assessment and contribution.
	family := h.Parents
	if h.Spouse != nil {
		family = []Entity{*h.Spouse}
	}
	jointNetMonthly := statute.ZeroAmount()
	for _, member := range family {
		a, err := e.assess(member, h.Year)
		if err != nil {
			return nil, err
		}
		res.Family = append(res.Family, a)
		res.Warnings = append(res.Warnings, a.Warnings...)
		// Only contributing members enter the joint income.
		if a.NetMonthly.IsPositive() {
			jointNetMonthly = jointNetMonthly.Add(a.NetMonthly)
		}
	}

	if len(family) > 0 {
		fold, excess, contribution, err := e.familyCharge(h, jointNetMonthly)
		if err != nil {
			return nil, err
		}
		res.FamilyAllowances = fold
		res.FamilyExcess = excess
		res.FamilyContribution = contribution
	} else {
		res.FamilyContribution = statute.ZeroAmount()
	}

	// Entitlement: need less contributions, truncated, never negative,
	// capped at the statutory maximum award.
	award := res.Need.Total.
		Sub(res.FamilyContribution).
		Sub(res.StudentCharge).
		FloorZero().
		TruncateEuro()
	res.Entitlement = award.Min(res.MaxAward)

	return res, nil
}

// assess runs the income chain for one entity. Annual basis; NetMonthly is
// the monthly figure the allowance stage consumes.
func (e *Engine) assess(entity Entity, year statute.Year) (Assessment, error) {
	a := Assessment{PersonID: entity.PersonID, Role: entity.Role}

	gross := income.Aggregate(entity.Income)
	a.Gross = gross.TotalAnnual
	a.WageGross = gross.WageAnnual
	a.Warnings = gross.Warnings

	var err error
	if a.Taxable, err = tax.TaxableIncome(e.registry, a.Gross, year); err != nil {
		return a, err
	}
	if a.IncomeTax, err = tax.IncomeTax(e.registry, a.Taxable, year); err != nil {
		return a, err
	}
	if a.Surcharge, err = tax.Surcharge(e.registry, a.IncomeTax, year); err != nil {
		return a, err
	}
	if a.Insurance, err = tax.SocialInsurance(e.registry, a.WageGross, year); err != nil {
		return a, err
	}
	a.NetAnnual = tax.NetIncome(a.Gross, a.IncomeTax, a.Surcharge, a.Insurance)
	a.NetMonthly = a.NetAnnual.Div(twelve)
	return a, nil
}

// chargeStudent computes the student's own chargeable income: net monthly
// income less the student allowances, plus the monthlyized asset excess
// over the asset allowance.
func (e *Engine) chargeStudent(h Household, res *Result) error {
	allowSet, err := e.registry.Lookup(statute.ParStudentAllowance, h.Year)
	if err != nil {
		return err
	}
	assetSet, err := e.registry.Lookup(statute.ParAssetAllowance, h.Year)
	if err != nil {
		return err
	}

	specs := []allowance.Spec{
		{Name: allowance.BasicStudent, Nominal: allowSet.Scalars.Amount("basic")},
	}
	if h.Spouse != nil {
		specs = append(specs, allowance.Spec{
			Name:    allowance.BasicSpouse,
			Nominal: allowSet.Scalars.Amount("spouse"),
		})
	}
	if h.StudentChildren > 0 {
		specs = append(specs, allowance.Spec{
			Name:    allowance.Sibling,
			Nominal: allowSet.Scalars.Amount("child").Mul(decimal.NewFromInt(int64(h.StudentChildren))),
		})
	}
	res.StudentAllowances = allowance.Apply(res.Student.NetMonthly, specs)

	// Asset allowance: age-dependent base plus add-ons per dependent.
	assetAllowance := assetSet.Scalars.Amount("student_u30")
	if h.Student.Age >= 30 {
		assetAllowance = assetSet.Scalars.Amount("student_30plus")
	}
	dependents := h.StudentChildren
	if h.Spouse != nil {
		dependents++
	}
	if dependents > 0 {
		addon := assetSet.Scalars.Amount("dependent_addon")
		assetAllowance = assetAllowance.Add(addon.Mul(decimal.NewFromInt(int64(dependents))))
	}
	res.AssetAllowances = allowance.Apply(h.Student.Assets, []allowance.Spec{
		{Name: allowance.Asset, Nominal: assetAllowance},
	})
	// Excess assets count toward the approval year, one twelfth per month.
	res.AssetExcessMonthly = res.AssetAllowances.Remainder.Div(twelve)

	res.StudentCharge = res.StudentAllowances.Remainder.Add(res.AssetExcessMonthly)
	return nil
}
