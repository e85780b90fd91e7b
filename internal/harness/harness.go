// Package harness drives a suite run: it executes the subject binary
// for each case in order, classifies the outcome, and aggregates the
// results into a run summary.
package harness

import (
	"context"
	"errors"
	"time"

	"github.com/deixis/proctor/internal/report"
	"github.com/deixis/proctor/internal/runner"
	"github.com/deixis/proctor/internal/suite"
	"github.com/google/uuid"
)

// Executor runs the subject binary once with the given stdin.
// Implemented by runner.Runner.
type Executor interface {
	Run(ctx context.Context, path string, input string) (*runner.Result, error)
}

// Reporter receives live progress as cases run. Implementations must
// not retain the case beyond the call.
type Reporter interface {
	CaseStarted(index, total int, name string)
	CaseFinished(index, total int, c suite.Case, oc Outcome, elapsed time.Duration)
}

// Harness executes a suite strictly sequentially: case i+1 does not
// begin until case i has reached a terminal state.
type Harness struct {
	Runner   Executor
	Reporter Reporter // optional
}

// Run executes every case of s against the binary and returns the
// aggregate summary. Per-case failures (mismatch, timeout, spawn
// error) never abort the remaining suite; any unanticipated execution
// error is folded into the case's outcome with its message preserved.
func (h *Harness) Run(ctx context.Context, binary string, s *suite.Suite) *report.Summary {
	summary := &report.Summary{
		ID:     uuid.New().String(),
		Binary: binary,
		Suite:  s.Path,
	}

	total := len(s.Cases)
	for i, c := range s.Cases {
		if h.Reporter != nil {
			h.Reporter.CaseStarted(i+1, total, c.Name)
		}

		start := time.Now()
		oc := h.runCase(ctx, binary, c)
		elapsed := time.Since(start)

		summary.Total++
		if oc.Passed() {
			summary.Passed++
		} else {
			summary.Failed++
			summary.Failures = append(summary.Failures, failureRecord(c, oc))
		}

		if h.Reporter != nil {
			h.Reporter.CaseFinished(i+1, total, c, oc, elapsed)
		}
	}

	return summary
}

func (h *Harness) runCase(ctx context.Context, binary string, c suite.Case) Outcome {
	res, err := h.Runner.Run(ctx, binary, c.Input)
	if err != nil {
		var te *runner.TimeoutError
		if errors.As(err, &te) {
			return Outcome{Verdict: Timeout, Detail: te.Error()}
		}
		return Outcome{Verdict: ExecutionError, Detail: err.Error()}
	}
	return Evaluate(string(res.Stdout), c.Expected)
}

// failureRecord reconstructs the failure detail from the original case
// plus the outcome. Actual is present only when the binary produced
// comparable output.
func failureRecord(c suite.Case, oc Outcome) report.FailureRecord {
	rec := report.FailureRecord{
		Test:     c.Name,
		Input:    c.Input,
		Expected: c.Expected,
		Error:    oc.Detail,
	}
	if oc.Verdict == Mismatch {
		actual := oc.Actual
		rec.Actual = &actual
	}
	return rec
}
