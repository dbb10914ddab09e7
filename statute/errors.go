/*
errors.go - Centralized error types for the statutory engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Domain packages wrap these errors with additional context.

ERROR CATEGORIES:
  1. Registry errors - Missing parameter sets (fatal for the record)
  2. Schedule errors - Malformed bracket tables (construction-time)
  3. Household errors - Entity-role invariant violations (fatal for the record)

FATAL VS SOFT:
  A missing parameter set or an invalid household aborts the affected record,
  never the batch. Malformed income values are NOT errors: the aggregator
  zeroes them and records a warning, because survey nonresponse is expected.

USAGE:
  if statute.IsParameterMissing(err) {
      // record failed, report it, keep the batch running
  }

SEE ALSO:
  - registry.go: Raises ParameterNotFoundError
  - income/aggregate.go: Produces warnings instead of errors
*/
package statute

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrParameterNotFound is returned when no parameter set exists for a
	// requested (paragraph, year) pair. Fatal for the record being processed.
	ErrParameterNotFound = errors.New("statutory parameter set not found")

	// ErrEmptySchedule is returned when a schedule has no brackets.
	ErrEmptySchedule = errors.New("bracket schedule is empty")

	// ErrInvalidHousehold is returned when a household unit violates the
	// entity-role invariants (wrong student count, conflicting roles).
	ErrInvalidHousehold = errors.New("invalid household configuration")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ParameterNotFoundError identifies the missing (paragraph, year) pair.
type ParameterNotFoundError struct {
	Paragraph Paragraph
	Year      Year
}

func (e *ParameterNotFoundError) Error() string {
	return fmt.Sprintf("no parameter set for %s in %d", e.Paragraph, e.Year)
}

func (e *ParameterNotFoundError) Unwrap() error {
	return ErrParameterNotFound
}

// BelowScheduleError reports a lookup value below the first bracket. A
// well-formed schedule starts at zero (or below), so this indicates a
// malformed table rather than unusual income.
type BelowScheduleError struct {
	Value Amount
	Floor Amount
}

func (e *BelowScheduleError) Error() string {
	return fmt.Sprintf("value %v below schedule floor %v", e.Value.Value, e.Floor.Value)
}

// ScheduleOrderError reports a bracket whose lower bound does not exceed its
// predecessor's.
type ScheduleOrderError struct {
	Index int
	Lower Amount
}

func (e *ScheduleOrderError) Error() string {
	return fmt.Sprintf("bracket %d breaks ordering at lower bound %v", e.Index, e.Lower.Value)
}

// InvalidHouseholdError describes which invariant a household violated.
type InvalidHouseholdError struct {
	Reason string
}

func (e *InvalidHouseholdError) Error() string {
	return fmt.Sprintf("invalid household configuration: %s", e.Reason)
}

func (e *InvalidHouseholdError) Unwrap() error {
	return ErrInvalidHousehold
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsParameterMissing returns true if the error stems from a missing
// (paragraph, year) parameter set.
func IsParameterMissing(err error) bool {
	return errors.Is(err, ErrParameterNotFound)
}

// IsFatal returns true if the error aborts the affected record. Every error
// the engine raises is per-record fatal; soft data-quality issues travel as
// warnings inside results instead.
func IsFatal(err error) bool {
	return err != nil
}

// IsHouseholdInvalid returns true if the error indicates a household that
// violates the entity-role invariants.
func IsHouseholdInvalid(err error) bool {
	return errors.Is(err, ErrInvalidHousehold)
}
