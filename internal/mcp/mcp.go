// Package mcp provides the proctor MCP server, registering the suite
// execution tools and publishing model instructions.
package mcp

import (
	_ "embed"

	"github.com/deixis/proctor"
	"github.com/deixis/proctor/internal/config"
	"github.com/deixis/proctor/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

//go:embed instructions.md
var Instructions string

// handler holds shared dependencies for all tool handlers.
type handler struct {
	cfg   *config.Config
	store report.Store
}

// NewServer creates an MCP server with the proctor tools registered.
func NewServer(cfg *config.Config, store report.Store) *mcp.Server {
	h := &handler{cfg: cfg, store: store}

	opts := &mcp.ServerOptions{
		Instructions: Instructions,
		Capabilities: &mcp.ServerCapabilities{
			Tools: &mcp.ToolCapabilities{ListChanged: false},
		},
	}
	s := mcp.NewServer(&mcp.Implementation{Name: "proctor", Version: proctor.Version}, opts)

	mcp.AddTool(s, &mcp.Tool{
		Name: "run_suite",
		Description: `Run a black-box test suite against a compiled binary.

Each case feeds its input to the binary's stdin and compares stdout against the
expected value (trailing whitespace ignored). Results are stored for drill-down
via show_run.`,
	}, h.runHandler)

	mcp.AddTool(s, &mcp.Tool{
		Name: "show_run",
		Description: `Show failure details from a previous run_suite run.

Use the run_id from the run_suite output. Pass a test name to narrow the
output to a single case.`,
	}, h.showHandler)

	return s
}

// textResult is a helper to build a text-only tool result.
func textResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}, nil, nil
}

// errorResult is a helper to build an error tool result.
func errorResult(text string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}, nil, nil
}
