// Package runner executes the subject binary for a single test case:
// piped stdin, capped output capture, and a hard wall-clock deadline.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes a subject binary once per call.
type Runner struct {
	Timeout   time.Duration
	MaxOutput int // bytes, per stream
}

// Run spawns the binary at path, writes input to its stdin (closing
// the write side so read-until-EOF programs can proceed), and blocks
// until the child exits or the deadline elapses.
//
// On deadline the child is killed and a *TimeoutError is returned; no
// partial output is salvaged. On spawn failure the underlying OS error
// is returned wrapped. A nonzero exit status is not an error: the
// result carries the exit code and the caller decides. The child's
// handle and pipes are released on every path.
func (r *Runner) Run(ctx context.Context, path string, input string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &limitWriter{buf: &stdout, limit: r.MaxOutput}
	cmd.Stderr = &limitWriter{buf: &stderr, limit: r.MaxOutput}

	// If the child leaks its pipe write ends to orphans, Wait would
	// block past the kill; force the pipes closed shortly after.
	cmd.WaitDelay = 100 * time.Millisecond

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Limit: r.Timeout}
	}

	truncated := stdout.Len() >= r.MaxOutput || stderr.Len() >= r.MaxOutput

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			// Binary missing, not executable, or other spawn failure.
			return nil, fmt.Errorf("executing %s: %w", path, runErr)
		}
	}

	return &Result{
		Stdout:    stdout.Bytes(),
		Stderr:    stderr.Bytes(),
		ExitCode:  exitCode,
		Elapsed:   elapsed,
		Truncated: truncated,
	}, nil
}

// TimeoutError reports that the child exceeded its wall-clock budget.
// It carries the configured limit, not the time actually spent.
type TimeoutError struct {
	Limit time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout (%gs)", e.Limit.Seconds())
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors from io.Copy.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
