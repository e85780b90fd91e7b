package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/deixis/proctor/internal/harness"
	"github.com/deixis/proctor/internal/report"
	"github.com/deixis/proctor/internal/runner"
	"github.com/deixis/proctor/internal/suite"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type runParams struct {
	Binary         string   `json:"binary" jsonschema:"path to the compiled binary under test"`
	Suite          string   `json:"suite" jsonschema:"path to the suite file (JSON, or YAML for .yaml/.yml)"`
	TimeoutSeconds *float64 `json:"timeout_seconds,omitempty" jsonschema:"per-test timeout in seconds. Default: 5.0 or the configured value."`
}

func (h *handler) runHandler(ctx context.Context, req *mcp.CallToolRequest, params runParams) (*mcp.CallToolResult, any, error) {
	if params.Binary == "" {
		return errorResult("binary is required")
	}
	if params.Suite == "" {
		return errorResult("suite is required")
	}
	if _, err := os.Stat(params.Binary); err != nil {
		return errorResult(fmt.Sprintf("binary not found: %s", params.Binary))
	}

	s, err := suite.Load(params.Suite)
	if err != nil {
		return errorResult(err.Error())
	}

	timeout := h.cfg.Timeout()
	if params.TimeoutSeconds != nil && *params.TimeoutSeconds > 0 {
		timeout = time.Duration(*params.TimeoutSeconds * float64(time.Second))
	}

	hn := &harness.Harness{
		Runner: &runner.Runner{
			Timeout:   timeout,
			MaxOutput: h.cfg.MaxOutputBytes(),
		},
	}
	summary := hn.Run(ctx, params.Binary, s)

	// Save for show_run.
	_ = h.store.Save(summary)

	return textResult(formatRun(summary))
}

func formatRun(s *report.Summary) string {
	var b strings.Builder

	if s.Failed == 0 {
		fmt.Fprintln(&b, "Status: PASS")
	} else {
		fmt.Fprintln(&b, "Status: FAIL")
	}
	fmt.Fprintf(&b, "Run: %s\n", s.ID)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Tests: %d total, %d passed, %d failed\n", s.Total, s.Passed, s.Failed)

	if s.Failed > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "Failures:")
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "  %s — %s\n", f.Test, f.Error)
		}
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "Inspect with show_run(run_id=%q, test=\"<name>\").\n", s.ID)
	} else {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "All %d tests passed.\n", s.Total)
	}

	return b.String()
}
