package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deixis/proctor/internal/config"
	"github.com/deixis/proctor/internal/report"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setup creates a proctor MCP server + client over in-memory transports.
func setup(t *testing.T) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	store := report.NewLRUStore(5, report.NewDiskStore())
	server := NewServer(&config.Config{}, store)

	ct, st := mcp.NewInMemoryTransports()
	ss, err := server.Connect(ctx, st, nil)
	if err != nil {
		t.Fatalf("server.Connect: %v", err)
	}

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}

	t.Cleanup(func() {
		_ = cs.Close()
		_ = ss.Wait()
	})

	return cs
}

// writeFixture lays out a cat-like subject binary and a two-case suite
// (one passing, one failing) in a temp dir.
func writeFixture(t *testing.T) (binary, suitePath string) {
	t.Helper()
	dir := t.TempDir()

	binary = filepath.Join(dir, "subject.sh")
	if err := os.WriteFile(binary, []byte("#!/bin/sh\ncat\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	suitePath = filepath.Join(dir, "suite.json")
	doc := `{
		"test_cases": [
			{"name": "echoes", "input": "hello\n", "expected": "hello"},
			{"name": "wrong", "input": "a\n", "expected": "b"}
		]
	}`
	if err := os.WriteFile(suitePath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	return binary, suitePath
}

func callTool(t *testing.T, cs *mcp.ClientSession, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s): %v", name, err)
	}
	return res
}

func resultText(r *mcp.CallToolResult) string {
	var parts []string
	for _, c := range r.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// runID extracts the run ID from a run_suite result.
func runID(t *testing.T, text string) string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		if after, ok := strings.CutPrefix(line, "Run: "); ok {
			return after
		}
	}
	t.Fatalf("no run ID in output:\n%s", text)
	return ""
}

func TestRunSuite(t *testing.T) {
	cs := setup(t)
	binary, suitePath := writeFixture(t)

	res := callTool(t, cs, "run_suite", map[string]any{
		"binary": binary,
		"suite":  suitePath,
	})
	if res.IsError {
		t.Fatalf("run_suite returned error: %s", resultText(res))
	}

	text := resultText(res)
	if !strings.Contains(text, "Status: FAIL") {
		t.Errorf("output missing FAIL status:\n%s", text)
	}
	if !strings.Contains(text, "2 total, 1 passed, 1 failed") {
		t.Errorf("output missing totals:\n%s", text)
	}
	if !strings.Contains(text, "wrong — output mismatch") {
		t.Errorf("output missing failure line:\n%s", text)
	}
}

func TestRunSuite_AllPass(t *testing.T) {
	cs := setup(t)
	binary, _ := writeFixture(t)

	suitePath := filepath.Join(t.TempDir(), "suite.json")
	doc := `{"test_cases": [{"name": "echoes", "input": "x\n", "expected": "x"}]}`
	if err := os.WriteFile(suitePath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	res := callTool(t, cs, "run_suite", map[string]any{
		"binary": binary,
		"suite":  suitePath,
	})
	text := resultText(res)
	if !strings.Contains(text, "Status: PASS") {
		t.Errorf("output missing PASS status:\n%s", text)
	}
	if !strings.Contains(text, "All 1 tests passed.") {
		t.Errorf("output missing pass summary:\n%s", text)
	}
}

func TestRunSuite_MissingBinary(t *testing.T) {
	cs := setup(t)
	_, suitePath := writeFixture(t)

	res := callTool(t, cs, "run_suite", map[string]any{
		"binary": filepath.Join(t.TempDir(), "absent"),
		"suite":  suitePath,
	})
	if !res.IsError {
		t.Fatal("expected error result for missing binary")
	}
}

func TestShowRun(t *testing.T) {
	cs := setup(t)
	binary, suitePath := writeFixture(t)

	runRes := callTool(t, cs, "run_suite", map[string]any{
		"binary": binary,
		"suite":  suitePath,
	})
	id := runID(t, resultText(runRes))

	res := callTool(t, cs, "show_run", map[string]any{"run_id": id})
	if res.IsError {
		t.Fatalf("show_run returned error: %s", resultText(res))
	}

	text := resultText(res)
	if !strings.Contains(text, "wrong:") {
		t.Errorf("output missing failing test:\n%s", text)
	}
	if !strings.Contains(text, `Expected: "b"`) || !strings.Contains(text, `Actual: "a"`) {
		t.Errorf("output missing expected/actual detail:\n%s", text)
	}
}

func TestShowRun_FilterByTest(t *testing.T) {
	cs := setup(t)
	binary, suitePath := writeFixture(t)

	runRes := callTool(t, cs, "run_suite", map[string]any{
		"binary": binary,
		"suite":  suitePath,
	})
	id := runID(t, resultText(runRes))

	res := callTool(t, cs, "show_run", map[string]any{
		"run_id": id,
		"test":   "echoes",
	})
	text := resultText(res)
	if !strings.Contains(text, "No failures recorded") {
		t.Errorf("expected no failures for passing test, got:\n%s", text)
	}
}

func TestShowRun_UnknownID(t *testing.T) {
	cs := setup(t)

	res := callTool(t, cs, "show_run", map[string]any{"run_id": "no-such-run"})
	if !res.IsError {
		t.Fatal("expected error result for unknown run ID")
	}
}
