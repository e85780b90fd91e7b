package harness

import (
	"strings"
	"unicode"
)

// Verdict is the terminal classification of one test case execution.
type Verdict string

const (
	// Passed means trimmed stdout equalled the trimmed expectation.
	Passed Verdict = "passed"
	// Mismatch means the binary ran to completion but its output differed.
	Mismatch Verdict = "mismatch"
	// Timeout means the binary exceeded its wall-clock budget.
	Timeout Verdict = "timeout"
	// ExecutionError means the binary could not run at all.
	ExecutionError Verdict = "error"
)

// Outcome is the result of one test case. Exactly one is produced per
// case per run. Actual holds trimmed stdout for Passed and Mismatch;
// Detail holds the timeout or execution error message.
type Outcome struct {
	Verdict Verdict
	Actual  string
	Detail  string
}

// Passed reports whether the outcome is the passing verdict.
func (o Outcome) Passed() bool {
	return o.Verdict == Passed
}

// Evaluate compares the binary's raw stdout against the raw expected
// value. Trailing whitespace (including the final newline) is stripped
// from both sides, tolerating line-ending artifacts without tolerating
// internal formatting differences; the comparison itself is exact.
func Evaluate(actualRaw, expectedRaw string) Outcome {
	actual := trimTrailing(actualRaw)
	expected := trimTrailing(expectedRaw)

	if actual == expected {
		return Outcome{Verdict: Passed, Actual: actual}
	}
	return Outcome{Verdict: Mismatch, Actual: actual, Detail: "output mismatch"}
}

func trimTrailing(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
