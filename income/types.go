// Package income normalizes heterogeneous survey income fields into a
// canonical annual gross figure. It is the first stage of every entity
// assessment and the only stage that tolerates dirty data: survey
// nonresponse is zeroed and reported as warnings, never as errors.
package income

import "github.com/warp/entitlement-engine/statute"

// =============================================================================
// INCOME CATEGORIES
// =============================================================================

// Category is one source of income in the closed enumeration. Wage income is
// the only category subject to social-insurance contributions.
type Category string

const (
	CategoryWages          Category = "wages"
	CategorySelfEmployment Category = "self_employment"
	CategoryCapital        Category = "capital"
	CategoryTransfer       Category = "transfer"
	CategoryPension        Category = "pension"
	CategoryOther          Category = "other"
)

// Categories lists the closed set in a stable order.
func Categories() []Category {
	return []Category{
		CategoryWages, CategorySelfEmployment, CategoryCapital,
		CategoryTransfer, CategoryPension, CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWages, CategorySelfEmployment, CategoryCapital,
		CategoryTransfer, CategoryPension, CategoryOther:
		return true
	}
	return false
}

// =============================================================================
// RECORD - One entity's raw income for one year
// =============================================================================

// Entry is one reported income source: a monthly amount and the number of
// months it was received. Fewer than 12 months annualizes by linear scaling.
type Entry struct {
	Monthly statute.Amount
	Months  int
}

// Record maps income categories to reported entries for one entity-year.
// Missing categories contribute zero.
type Record struct {
	PersonID string
	Year     statute.Year
	Entries  map[Category]Entry
}

// =============================================================================
// GROSS - The aggregated result
// =============================================================================

// Gross is the canonical annualized income structure the calculators
// consume. WageAnnual is kept separate because insurance contributions are
// assessed on wages only.
type Gross struct {
	TotalAnnual statute.Amount
	WageAnnual  statute.Amount
	ByCategory  map[Category]statute.Amount
	Warnings    []Warning
}

// =============================================================================
// WARNINGS - Soft data-quality signals
// =============================================================================

type WarningKind string

const (
	WarnNegativeAmount  WarningKind = "negative_amount"
	WarnUnknownCategory WarningKind = "unknown_category"
	WarnNegativeMonths  WarningKind = "negative_months"
	WarnExcessiveMonths WarningKind = "excessive_months"
)

// Warning records a malformed income value that was zeroed (or clamped) so
// the computation could continue. Downstream tooling separates these from
// hard failures.
type Warning struct {
	Kind     WarningKind
	Category Category
	Detail   string
}
