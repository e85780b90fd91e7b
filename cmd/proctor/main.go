// Command proctor runs black-box test suites against compiled programs.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/deixis/proctor"
	"github.com/deixis/proctor/internal/config"
	"github.com/deixis/proctor/internal/harness"
	procmcp "github.com/deixis/proctor/internal/mcp"
	"github.com/deixis/proctor/internal/report"
	"github.com/deixis/proctor/internal/runner"
	"github.com/deixis/proctor/internal/suite"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/term"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("proctor: ")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runMain(args)
	case "mcp":
		err = mcpMain(args)
	case "version":
		fmt.Println(proctor.Version)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "proctor: unknown command %q\n", cmd)
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: proctor <command> [flags]

Commands:
  run <binary> <suite>   Run a test suite against a binary
  mcp                    Start the MCP server
  version                Print the version
  help                   Show this help

Use "proctor <command> -h" for command-specific flags.`)
}

// --- run ---

func runMain(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	var verbose bool
	fs.BoolVar(&verbose, "verbose", false, "show detailed output for failed tests immediately")
	fs.BoolVar(&verbose, "v", false, "shorthand for -verbose")
	timeoutFlag := fs.Float64("timeout", 0, "per-test timeout in seconds (default 5.0)")
	jsonFlag := fs.Bool("json", false, "output the run summary as JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: proctor run <binary-path> <suite-path> [flags]")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}
	binaryPath := fs.Arg(0)
	suitePath := fs.Arg(1)

	// Path existence is checked up front: a missing binary or suite
	// file aborts before any test runs.
	if _, err := os.Stat(binaryPath); err != nil {
		return fmt.Errorf("binary not found: %s", binaryPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	s, err := suite.Load(suitePath)
	if err != nil {
		return err
	}

	timeout := cfg.Timeout()
	if *timeoutFlag > 0 {
		timeout = time.Duration(*timeoutFlag * float64(time.Second))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	color := colorEnabled(cfg)

	h := &harness.Harness{
		Runner: &runner.Runner{
			Timeout:   timeout,
			MaxOutput: cfg.MaxOutputBytes(),
		},
	}
	if !*jsonFlag {
		h.Reporter = &consoleReporter{verbose: verbose, color: color}
		fmt.Printf("\n%s\n\n", paint(color, ansiCyan, fmt.Sprintf("Running %d tests...", len(s.Cases))))
	}

	summary := h.Run(ctx, localPath(binaryPath), s)

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			return err
		}
	} else {
		fmt.Print(formatSummary(summary, color))
	}

	if code := summary.ExitCode(); code != 0 {
		os.Exit(code)
	}
	return nil
}

// localPath keeps a bare filename from being resolved via PATH: the
// argument names a file, not a command.
func localPath(p string) string {
	if !strings.ContainsRune(p, os.PathSeparator) {
		return "." + string(os.PathSeparator) + p
	}
	return p
}

// --- console output ---

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

func colorEnabled(cfg *config.Config) bool {
	switch cfg.ColorMode() {
	case "always":
		return true
	case "never":
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func paint(enabled bool, code, s string) string {
	if !enabled {
		return s
	}
	return code + s + ansiReset
}

// consoleReporter prints one live line per test as it completes, and
// immediate failure detail in verbose mode.
type consoleReporter struct {
	verbose bool
	color   bool
}

func (r *consoleReporter) CaseStarted(index, total int, name string) {
	fmt.Printf("[%d/%d] %s: ", index, total, name)
}

func (r *consoleReporter) CaseFinished(index, total int, c suite.Case, oc harness.Outcome, elapsed time.Duration) {
	if oc.Passed() {
		fmt.Printf("%s (%.3fs)\n", paint(r.color, ansiGreen, "PASSED"), elapsed.Seconds())
		return
	}
	fmt.Printf("%s (%.3fs)\n", paint(r.color, ansiRed, "FAILED"), elapsed.Seconds())

	if r.verbose {
		fmt.Printf("\n  %s\n", paint(r.color, ansiYellow, fmt.Sprintf("Details for '%s':", c.Name)))
		fmt.Printf("  Input: %q\n", c.Input)
		fmt.Printf("  Expected: %q\n", c.Expected)
		if oc.Verdict == harness.Mismatch {
			fmt.Printf("  Actual: %q\n", oc.Actual)
		}
		if oc.Detail != "" {
			fmt.Printf("  Error: %s\n", oc.Detail)
		}
		fmt.Println()
	}
}

// formatSummary renders the final block: totals plus itemized failures
// in original execution order.
func formatSummary(s *report.Summary, color bool) string {
	var b strings.Builder
	rule := paint(color, ansiCyan, strings.Repeat("=", 50))

	fmt.Fprintf(&b, "\n%s\n", rule)
	fmt.Fprintf(&b, "Total tests: %d\n", s.Total)
	fmt.Fprintf(&b, "%s\n", paint(color, ansiGreen, fmt.Sprintf("Passed: %d", s.Passed)))
	fmt.Fprintf(&b, "%s\n", paint(color, ansiRed, fmt.Sprintf("Failed: %d", s.Failed)))

	if s.Failed > 0 {
		fmt.Fprintf(&b, "\n%s\n", paint(color, ansiRed, "Failed tests:"))
		for _, f := range s.Failures {
			fmt.Fprintf(&b, "\n  • %s\n", f.Test)
			fmt.Fprintf(&b, "    Input: %q\n", f.Input)
			fmt.Fprintf(&b, "    Expected: %q\n", f.Expected)
			if f.Actual != nil {
				fmt.Fprintf(&b, "    Actual: %q\n", *f.Actual)
			}
			if f.Error != "" {
				fmt.Fprintf(&b, "    Error: %s\n", f.Error)
			}
		}
	}

	fmt.Fprintf(&b, "\n%s\n", rule)
	return b.String()
}

// --- mcp ---

func mcpMain(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ExitOnError)
	instructions := fs.Bool("instructions", false, "print model instructions and exit")
	httpAddr := fs.String("http", "", "start HTTP server on address (e.g. :9090)")
	_ = fs.Parse(args)

	if *instructions {
		fmt.Print(procmcp.Instructions)
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("determining working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	disk := report.NewDiskStore()
	store := report.NewLRUStore(5, disk)

	server := procmcp.NewServer(cfg, store)

	if *httpAddr != "" {
		return serveHTTP(ctx, server, *httpAddr)
	}
	return server.Run(ctx, &mcpsdk.StdioTransport{})
}

func serveHTTP(ctx context.Context, server *mcpsdk.Server, addr string) error {
	handler := mcpsdk.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcpsdk.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Close()
	}()

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
