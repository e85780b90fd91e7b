// Package report defines the run summary produced by a harness run
// and provides persistence so completed runs can be retrieved by ID.
package report

// Store persists and retrieves run summaries.
type Store interface {
	Save(summary *Summary) error
	Load(runID string) (*Summary, error)
}

// Summary is the aggregate outcome of one complete suite run. It is
// owned by the run that produced it and never mutated afterwards.
//
// Invariant: Passed + Failed == Total and len(Failures) == Failed.
type Summary struct {
	ID     string `json:"id"`
	Binary string `json:"binary"`
	Suite  string `json:"suite"`

	Total    int             `json:"total"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	Failures []FailureRecord `json:"failures,omitempty"`
}

// ExitCode maps the summary to the process exit status: 0 when every
// test passed, 1 otherwise.
func (s *Summary) ExitCode() int {
	if s.Failed == 0 {
		return 0
	}
	return 1
}

// FailureRecord describes one non-passing test case, in execution
// order. Actual is nil when the binary produced no comparable output
// (timeout or execution error).
type FailureRecord struct {
	Test     string  `json:"test"`
	Input    string  `json:"input"`
	Expected string  `json:"expected"`
	Actual   *string `json:"actual,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// ByTest returns the failure records for a given test name. Duplicate
// names yield multiple records, in original order.
func ByTest(s *Summary, name string) []FailureRecord {
	var out []FailureRecord
	for _, f := range s.Failures {
		if f.Test == name {
			out = append(out, f)
		}
	}
	return out
}
