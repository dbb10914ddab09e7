/*
registry.go - Year-indexed statutory parameter lookup

PURPOSE:
  The Registry is the single source of statutory parameters. It is built once
  at batch start, validated, and never mutated afterwards, so any number of
  worker goroutines can read it without locking.

LOOKUP SEMANTICS:
  Lookup(paragraph, year) returns the parameter set valid for that year.
  Years without their own entry backfill from the most recent earlier year
  (amendments stay in force until replaced). A paragraph with no entry at or
  before the requested year is a ParameterNotFoundError - fatal for the
  record, never defaulted.

SEE ALSO:
  - params/: Builds and registers the real statutory tables
  - errors.go: ParameterNotFoundError
*/
package statute

import "sort"

// Registry holds every registered parameter set, keyed by paragraph and
// sorted by validity year. Immutable after Freeze.
type Registry struct {
	sets   map[Paragraph][]ParameterSet
	frozen bool
}

func NewRegistry() *Registry {
	return &Registry{sets: make(map[Paragraph][]ParameterSet)}
}

// Register adds a parameter set. Panics if called after Freeze - parameter
// loading is a startup concern and late registration would break the no-lock
// concurrency contract.
func (r *Registry) Register(set ParameterSet) error {
	if r.frozen {
		panic("statute: Register after Freeze")
	}
	// Scalar-only paragraphs carry no schedule; only validate when present.
	if len(set.Brackets.Brackets) > 0 {
		if err := set.Brackets.Validate(); err != nil {
			return err
		}
	}
	r.sets[set.Paragraph] = append(r.sets[set.Paragraph], set)
	return nil
}

// Freeze sorts each paragraph's sets by year and seals the registry.
func (r *Registry) Freeze() {
	for p := range r.sets {
		sets := r.sets[p]
		sort.Slice(sets, func(i, j int) bool { return sets[i].Year < sets[j].Year })
		r.sets[p] = sets
	}
	r.frozen = true
}

// Lookup returns the parameter set governing the given year: the set with
// the greatest validity year <= year. Concurrent readers never contend.
func (r *Registry) Lookup(p Paragraph, year Year) (ParameterSet, error) {
	sets := r.sets[p]
	if len(sets) == 0 {
		return ParameterSet{}, &ParameterNotFoundError{Paragraph: p, Year: year}
	}
	// First set with validity year > requested year; the match precedes it.
	idx := sort.Search(len(sets), func(i int) bool { return sets[i].Year > year })
	if idx == 0 {
		return ParameterSet{}, &ParameterNotFoundError{Paragraph: p, Year: year}
	}
	return sets[idx-1], nil
}

// Paragraphs lists every registered paragraph, for introspection endpoints.
func (r *Registry) Paragraphs() []Paragraph {
	out := make([]Paragraph, 0, len(r.sets))
	for p := range r.sets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Years lists the validity years registered for a paragraph.
func (r *Registry) Years(p Paragraph) []Year {
	sets := r.sets[p]
	out := make([]Year, 0, len(sets))
	for _, s := range sets {
		out = append(out, s.Year)
	}
	return out
}
