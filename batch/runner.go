/*
Package batch evaluates many household-year records in parallel.

PURPOSE:
  Records are independent: each evaluation is a pure function of its own
  inputs plus the shared immutable parameter registry, so the batch fans
  out across a bounded worker pool with no locking. Fatal errors abort
  only the affected record; the run completes with per-record outcomes so
  a pass over thousands of survey records degrades gracefully.

OUTCOME REPORTING:
  Every record yields exactly one Outcome: a result, or a failure with its
  error kind. The Summary carries counts and the identifiers of failed
  records - downstream tooling must never silently drop failures.

USAGE:
  runner := batch.NewRunner(engine, batch.Options{Workers: 8})
  summary := runner.Run(ctx, records)
  log.Printf("computed %d, failed %d", summary.Computed, summary.Failed)

SEE ALSO:
  - entitlement/engine.go: The per-record computation
  - store/sqlite: Persists the outcomes
*/
package batch

import (
	"context"
	"errors"
	"log"
	"runtime"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/warp/entitlement-engine/entitlement"
	"github.com/warp/entitlement-engine/statute"
)

// =============================================================================
// OPTIONS AND OUTCOMES
// =============================================================================

type Options struct {
	// Workers bounds the pool; defaults to GOMAXPROCS.
	Workers int

	// MinAward zeroes awards at or below the threshold when positive.
	// Tiny awards are usually survey artifacts, not entitlements.
	MinAward statute.Amount
}

// FailureKind distinguishes the fatal per-record error classes.
type FailureKind string

const (
	FailParameterMissing FailureKind = "parameter_missing"
	FailInvalidHousehold FailureKind = "invalid_household"
	FailOther            FailureKind = "other"
)

// Outcome is one record's terminal state: Result set on success, Err and
// Kind set on failure.
type Outcome struct {
	StudentID string
	Year      statute.Year
	Result    *entitlement.Result
	Err       error
	Kind      FailureKind
}

// Summary reports the whole run. FailedIDs preserves input order of the
// failed records.
type Summary struct {
	RunID     string
	Total     int
	Computed  int
	Failed    int
	Warned    int // records computed with data-quality warnings
	Outcomes  []Outcome
	FailedIDs []string
}

// =============================================================================
// RUNNER
// =============================================================================

type Runner struct {
	engine *entitlement.Engine
	opts   Options
}

func NewRunner(engine *entitlement.Engine, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{engine: engine, opts: opts}
}

// Run evaluates every record and returns the full summary. Outcomes keep
// the input order. The context cancels remaining work; records not yet
// evaluated report the context error.
func (r *Runner) Run(ctx context.Context, records []entitlement.Household) Summary {
	summary := Summary{
		RunID:    uuid.NewString(),
		Total:    len(records),
		Outcomes: make([]Outcome, len(records)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)

	for i := range records {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				summary.Outcomes[i] = Outcome{
					StudentID: records[i].Student.PersonID,
					Year:      records[i].Year,
					Err:       err,
					Kind:      FailOther,
				}
				return nil
			}
			summary.Outcomes[i] = r.evaluate(records[i])
			// Per-record failures never abort the group.
			return nil
		})
	}
	g.Wait()

	for _, o := range summary.Outcomes {
		switch {
		case o.Err != nil:
			summary.Failed++
			summary.FailedIDs = append(summary.FailedIDs, o.StudentID)
		default:
			summary.Computed++
			if len(o.Result.Warnings) > 0 {
				summary.Warned++
			}
		}
	}
	return summary
}

func (r *Runner) evaluate(h entitlement.Household) Outcome {
	out := Outcome{StudentID: h.Student.PersonID, Year: h.Year}

	res, err := r.engine.Compute(h)
	if err != nil {
		out.Err = err
		out.Kind = classify(err)
		return out
	}

	if r.opts.MinAward.IsPositive() &&
		res.Entitlement.IsPositive() &&
		!res.Entitlement.GreaterThan(r.opts.MinAward) {
		res.Entitlement = statute.ZeroAmount()
	}

	for _, w := range res.Warnings {
		log.Printf("record %s/%d: %s: %s", out.StudentID, out.Year, w.Kind, w.Detail)
	}

	out.Result = res
	return out
}

func classify(err error) FailureKind {
	switch {
	case statute.IsParameterMissing(err):
		return FailParameterMissing
	case errors.Is(err, statute.ErrInvalidHousehold):
		return FailInvalidHousehold
	default:
		return FailOther
	}
}
