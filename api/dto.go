/*
dto.go - Request/response data structures

PURPOSE:
  Wire types for the HTTP layer. Monetary values cross the wire as decimal
  strings, never as floats: a JSON number would round-trip through float64
  and lose the exact statutory arithmetic.

CONVERSION:
  The householdFrom* functions build engine inputs from requests; the
  to*DTO functions flatten engine results for responses. All statutory
  semantics stay in the domain packages - this file only translates.

SEE ALSO:
  - handlers.go: The handlers consuming these types
  - entitlement/types.go: The domain types being translated
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/entitlement-engine/allowance"
	"github.com/warp/entitlement-engine/entitlement"
	"github.com/warp/entitlement-engine/income"
	"github.com/warp/entitlement-engine/statute"
)

// =============================================================================
// REQUESTS
// =============================================================================

// IncomeEntryDTO is one income position: a monthly amount received for a
// number of months in the observation year.
type IncomeEntryDTO struct {
	Monthly string `json:"monthly"`
	Months  int    `json:"months"`
}

// EntityDTO is one household member.
type EntityDTO struct {
	PersonID string                    `json:"person_id"`
	Role     string                    `json:"role"`
	Age      int                       `json:"age"`
	Income   map[string]IncomeEntryDTO `json:"income,omitempty"`
	Assets   string                    `json:"assets,omitempty"`
}

// HouseholdRequest is the compute input for one household-year.
type HouseholdRequest struct {
	Year                int         `json:"year"`
	Student             EntityDTO   `json:"student"`
	Parents             []EntityDTO `json:"parents,omitempty"`
	Independent         bool        `json:"independent"`
	Spouse              *EntityDTO  `json:"spouse,omitempty"`
	Living              string      `json:"living"`
	SiblingCount        int         `json:"sibling_count"`
	SiblingExcessIncome string      `json:"sibling_excess_income,omitempty"`
	StudentChildren     int         `json:"student_children"`
}

// BatchRequest runs many households in one pass.
type BatchRequest struct {
	Households []HouseholdRequest `json:"households"`
	Workers    int                `json:"workers,omitempty"`
	MinAward   string             `json:"min_award,omitempty"`
}

// =============================================================================
// RESPONSES
// =============================================================================

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AssessmentDTO is the per-entity income chain.
type AssessmentDTO struct {
	PersonID   string   `json:"person_id"`
	Role       string   `json:"role"`
	Gross      string   `json:"gross_annual"`
	Taxable    string   `json:"taxable_annual"`
	IncomeTax  string   `json:"income_tax"`
	Surcharge  string   `json:"surcharge"`
	Insurance  string   `json:"social_insurance"`
	NetAnnual  string   `json:"net_annual"`
	NetMonthly string   `json:"net_monthly"`
	Warnings   []string `json:"warnings,omitempty"`
}

// AllowanceDTO is one consumed allowance in a fold.
type AllowanceDTO struct {
	Name     string `json:"name"`
	Nominal  string `json:"nominal"`
	Consumed string `json:"consumed"`
}

// NeedDTO is the statutory need breakdown.
type NeedDTO struct {
	Base                string `json:"base"`
	Housing             string `json:"housing"`
	InsuranceSupplement string `json:"insurance_supplement"`
	Total               string `json:"total"`
}

// ResultDTO is the full calculation output for one household-year.
type ResultDTO struct {
	StudentID        string `json:"student_id"`
	Year             int    `json:"year"`
	Eligible         bool   `json:"eligible"`
	IneligibleReason string `json:"ineligible_reason,omitempty"`

	Student AssessmentDTO   `json:"student"`
	Family  []AssessmentDTO `json:"family,omitempty"`

	StudentAllowances []AllowanceDTO `json:"student_allowances,omitempty"`
	AssetAllowances   []AllowanceDTO `json:"asset_allowances,omitempty"`
	FamilyAllowances  []AllowanceDTO `json:"family_allowances,omitempty"`

	Need NeedDTO `json:"need"`

	StudentCharge      string `json:"student_charge"`
	FamilyContribution string `json:"family_contribution"`
	MaxAward           string `json:"max_award"`
	Entitlement        string `json:"entitlement"`

	Warnings []string `json:"warnings,omitempty"`
}

// BatchResponse summarizes one persisted batch run.
type BatchResponse struct {
	RunID    string       `json:"run_id"`
	Total    int          `json:"total"`
	Computed int          `json:"computed"`
	Failed   int          `json:"failed"`
	Warned   int          `json:"warned"`
	Results  []ResultDTO  `json:"results,omitempty"`
	Failures []FailureDTO `json:"failures,omitempty"`
}

// FailureDTO is one record that could not be computed.
type FailureDTO struct {
	StudentID string `json:"student_id"`
	Year      int    `json:"year"`
	Kind      string `json:"kind"`
	Error     string `json:"error"`
}

// RunDTO is a stored batch run header.
type RunDTO struct {
	RunID     string `json:"run_id"`
	Total     int    `json:"total"`
	Computed  int    `json:"computed"`
	Failed    int    `json:"failed"`
	Warned    int    `json:"warned"`
	CreatedAt string `json:"created_at"`
}

// ParameterSetDTO describes one registered paragraph.
type ParameterSetDTO struct {
	Paragraph string `json:"paragraph"`
	Years     []int  `json:"years"`
}

// ParameterYearDTO is one validity year's full parameterization.
type ParameterYearDTO struct {
	Year     int               `json:"year"`
	Scalars  map[string]string `json:"scalars,omitempty"`
	Brackets []BracketDTO      `json:"brackets,omitempty"`
}

// BracketDTO is one schedule bracket, coefficients as decimal strings.
type BracketDTO struct {
	Lower string `json:"lower"`
	Kind  string `json:"kind"`
}

func toParameterYearDTO(set statute.ParameterSet) ParameterYearDTO {
	dto := ParameterYearDTO{Year: int(set.Year)}
	if len(set.Scalars) > 0 {
		dto.Scalars = make(map[string]string, len(set.Scalars))
		for k, v := range set.Scalars {
			dto.Scalars[k] = v.String()
		}
	}
	for _, b := range set.Brackets.Brackets {
		dto.Brackets = append(dto.Brackets, BracketDTO{
			Lower: b.Lower.Value.String(),
			Kind:  string(b.Formula.Kind),
		})
	}
	return dto
}

// =============================================================================
// REQUEST -> DOMAIN
// =============================================================================

func householdFromRequest(req HouseholdRequest) (entitlement.Household, error) {
	year := statute.Year(req.Year)
	student, err := entityFromDTO(req.Student, year)
	if err != nil {
		return entitlement.Household{}, err
	}

	h := entitlement.Household{
		Year:            year,
		Student:         student,
		Independent:     req.Independent,
		Living:          entitlement.LivingArrangement(req.Living),
		SiblingCount:    req.SiblingCount,
		StudentChildren: req.StudentChildren,
	}

	for _, p := range req.Parents {
		parent, err := entityFromDTO(p, year)
		if err != nil {
			return entitlement.Household{}, err
		}
		h.Parents = append(h.Parents, parent)
	}
	if req.Spouse != nil {
		spouse, err := entityFromDTO(*req.Spouse, year)
		if err != nil {
			return entitlement.Household{}, err
		}
		h.Spouse = &spouse
	}
	if req.SiblingExcessIncome != "" {
		v, err := decimal.NewFromString(req.SiblingExcessIncome)
		if err != nil {
			return entitlement.Household{}, fmt.Errorf("invalid sibling_excess_income: %w", err)
		}
		h.SiblingExcessIncome = statute.Amount{Value: v}
	}

	return h, nil
}

func entityFromDTO(dto EntityDTO, year statute.Year) (entitlement.Entity, error) {
	e := entitlement.Entity{
		PersonID: dto.PersonID,
		Role:     entitlement.Role(dto.Role),
		Age:      dto.Age,
	}

	if dto.Assets != "" {
		v, err := decimal.NewFromString(dto.Assets)
		if err != nil {
			return e, fmt.Errorf("entity %s: invalid assets: %w", dto.PersonID, err)
		}
		e.Assets = statute.Amount{Value: v}
	}

	if len(dto.Income) > 0 {
		rec := income.Record{
			PersonID: dto.PersonID,
			Year:     year,
			Entries:  make(map[income.Category]income.Entry, len(dto.Income)),
		}
		for cat, entry := range dto.Income {
			v, err := decimal.NewFromString(entry.Monthly)
			if err != nil {
				return e, fmt.Errorf("entity %s: invalid %s amount: %w", dto.PersonID, cat, err)
			}
			rec.Entries[income.Category(cat)] = income.Entry{
				Monthly: statute.Amount{Value: v},
				Months:  entry.Months,
			}
		}
		e.Income = rec
	}

	return e, nil
}

// =============================================================================
// DOMAIN -> RESPONSE
// =============================================================================

func toResultDTO(res *entitlement.Result) ResultDTO {
	dto := ResultDTO{
		StudentID:        res.StudentID,
		Year:             int(res.Year),
		Eligible:         res.Eligible,
		IneligibleReason: res.IneligibleReason,
		Student:          toAssessmentDTO(res.Student),
		Need: NeedDTO{
			Base:                res.Need.Base.Value.String(),
			Housing:             res.Need.Housing.Value.String(),
			InsuranceSupplement: res.Need.InsuranceSupplement.Value.String(),
			Total:               res.Need.Total.Value.String(),
		},
		StudentCharge:      res.StudentCharge.Value.StringFixed(2),
		FamilyContribution: res.FamilyContribution.Value.StringFixed(2),
		MaxAward:           res.MaxAward.Value.String(),
		Entitlement:        res.Entitlement.Value.String(),
		Warnings:           warningStrings(res.Warnings),
	}

	for _, a := range res.Family {
		dto.Family = append(dto.Family, toAssessmentDTO(a))
	}
	dto.StudentAllowances = toAllowanceDTOs(res.StudentAllowances.Breakdown)
	dto.AssetAllowances = toAllowanceDTOs(res.AssetAllowances.Breakdown)
	dto.FamilyAllowances = toAllowanceDTOs(res.FamilyAllowances.Breakdown)

	return dto
}

func toAssessmentDTO(a entitlement.Assessment) AssessmentDTO {
	return AssessmentDTO{
		PersonID:   a.PersonID,
		Role:       string(a.Role),
		Gross:      a.Gross.Value.String(),
		Taxable:    a.Taxable.Value.String(),
		IncomeTax:  a.IncomeTax.Value.String(),
		Surcharge:  a.Surcharge.Value.String(),
		Insurance:  a.Insurance.Total.Value.String(),
		NetAnnual:  a.NetAnnual.Value.StringFixed(2),
		NetMonthly: a.NetMonthly.Value.StringFixed(2),
		Warnings:   warningStrings(a.Warnings),
	}
}

func toAllowanceDTOs(applied []allowance.Applied) []AllowanceDTO {
	if len(applied) == 0 {
		return nil
	}
	dtos := make([]AllowanceDTO, len(applied))
	for i, a := range applied {
		dtos[i] = AllowanceDTO{
			Name:     string(a.Name),
			Nominal:  a.Nominal.Value.String(),
			Consumed: a.Consumed.Value.StringFixed(2),
		}
	}
	return dtos
}

func warningStrings(warnings []income.Warning) []string {
	if len(warnings) == 0 {
		return nil
	}
	out := make([]string, len(warnings))
	for i, w := range warnings {
		out[i] = fmt.Sprintf("%s: %s", w.Kind, w.Detail)
	}
	return out
}
