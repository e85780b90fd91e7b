package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/deixis/proctor/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type showParams struct {
	RunID string `json:"run_id" jsonschema:"the run ID from a run_suite result"`
	Test  string `json:"test,omitempty" jsonschema:"optional test name to narrow the output to a single case"`
}

func (h *handler) showHandler(ctx context.Context, req *mcp.CallToolRequest, params showParams) (*mcp.CallToolResult, any, error) {
	if params.RunID == "" {
		return errorResult("run_id is required")
	}

	summary, err := h.store.Load(params.RunID)
	if err != nil {
		return errorResult(fmt.Sprintf("Failed to load run %s: %v", params.RunID, err))
	}

	failures := summary.Failures
	if params.Test != "" {
		failures = report.ByTest(summary, params.Test)
		if len(failures) == 0 {
			return textResult(fmt.Sprintf("No failures recorded for %q in run %s.", params.Test, params.RunID))
		}
	}

	return textResult(formatShow(summary, failures))
}

func formatShow(s *report.Summary, failures []report.FailureRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run: %s\n", s.ID)
	fmt.Fprintf(&b, "Binary: %s\n", s.Binary)
	fmt.Fprintf(&b, "Tests: %d total, %d passed, %d failed\n", s.Total, s.Passed, s.Failed)

	if len(failures) == 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "No failures recorded.")
		return b.String()
	}

	for _, f := range failures {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "%s:\n", f.Test)
		fmt.Fprintf(&b, "  Input: %q\n", f.Input)
		fmt.Fprintf(&b, "  Expected: %q\n", f.Expected)
		if f.Actual != nil {
			fmt.Fprintf(&b, "  Actual: %q\n", *f.Actual)
		}
		if f.Error != "" {
			fmt.Fprintf(&b, "  Error: %s\n", f.Error)
		}
	}

	return b.String()
}
