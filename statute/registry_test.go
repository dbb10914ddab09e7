package statute_test

import (
	"testing"

	"github.com/warp/entitlement-engine/statute"
)

func scalarSet(p statute.Paragraph, year statute.Year, key string, v float64) statute.ParameterSet {
	return statute.ParameterSet{
		Paragraph: p,
		Year:      year,
		Scalars:   statute.Scalars{key: statute.NewAmount(v).Value},
	}
}

func TestRegistry_LookupExactYear(t *testing.T) {
	r := statute.NewRegistry()
	if err := r.Register(scalarSet(statute.ParNeed, 2022, "base_away", 452)); err != nil {
		t.Fatalf("register: %v", err)
	}
	r.Freeze()

	set, err := r.Lookup(statute.ParNeed, 2022)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !set.Scalars.Amount("base_away").Equal(statute.NewAmount(452)) {
		t.Errorf("wrong parameter set returned: %+v", set)
	}
}

func TestRegistry_BackfillsFromEarlierYear(t *testing.T) {
	// GIVEN: Sets registered for 2020 and 2022
	// WHEN: Looking up 2021
	// THEN: The 2020 amendment still governs

	r := statute.NewRegistry()
	r.Register(scalarSet(statute.ParNeed, 2020, "base_away", 427))
	r.Register(scalarSet(statute.ParNeed, 2022, "base_away", 452))
	r.Freeze()

	set, err := r.Lookup(statute.ParNeed, 2021)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Year != 2020 {
		t.Errorf("expected backfill to 2020, got %d", set.Year)
	}
}

func TestRegistry_MissingParagraphIsFatal(t *testing.T) {
	r := statute.NewRegistry()
	r.Freeze()

	_, err := r.Lookup(statute.ParIncomeTax, 2023)
	if !statute.IsParameterMissing(err) {
		t.Fatalf("expected ParameterNotFoundError, got %v", err)
	}
}

func TestRegistry_YearBeforeFirstEntryIsFatal(t *testing.T) {
	r := statute.NewRegistry()
	r.Register(scalarSet(statute.ParNeed, 2020, "base_away", 427))
	r.Freeze()

	_, err := r.Lookup(statute.ParNeed, 2001)
	if !statute.IsParameterMissing(err) {
		t.Fatalf("expected ParameterNotFoundError, got %v", err)
	}
}

func TestRegistry_RejectsMalformedSchedule(t *testing.T) {
	r := statute.NewRegistry()
	err := r.Register(statute.ParameterSet{
		Paragraph: statute.ParIncomeTax,
		Year:      2023,
		Brackets: statute.Schedule{Brackets: []statute.Bracket{
			{Lower: statute.NewAmount(100)},
			{Lower: statute.NewAmount(100)},
		}},
	})
	if err == nil {
		t.Fatal("expected schedule validation error")
	}
}
