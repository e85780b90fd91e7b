package runner

import "time"

// Result holds the captured output of one subject-binary execution.
// Stderr is retained for diagnostics only; it never takes part in the
// pass/fail decision.
type Result struct {
	Stdout    []byte        // captured stdout (may be truncated)
	Stderr    []byte        // captured stderr (may be truncated)
	ExitCode  int           // process exit code
	Elapsed   time.Duration // wall-clock time from spawn to exit
	Truncated bool          // true if either stream exceeded the size cap
}
