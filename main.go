// Package main provides the sitecrawl CLI entrypoint.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukemcguire/sitecrawl/crawler"
	"github.com/lukemcguire/sitecrawl/report"
	"github.com/lukemcguire/sitecrawl/tui"
)

// cliFlags holds parsed command-line flags, named exactly per the
// programmatic entry's parameter table.
type cliFlags struct {
	timeout        time.Duration
	maxScanned     int
	maxFound       int
	requestTimeout time.Duration
	workersNumber  int
	checkInterval  time.Duration
	memoryLimitMB  int64
}

// newFlagSet registers every sitecrawl flag against opts and returns the set
// unparsed, so both parseFlags and the usage-error path in main share one
// definition.
func newFlagSet(opts *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("sitecrawl", flag.ContinueOnError)
	fs.DurationVar(&opts.timeout, "timeout", 0,
		"Total timeout for scanning. The crawler doesn't guarantee scanning "+
			"will stop immediately after the timeout; this limit serves as a "+
			"stop signal to workers.")
	fs.IntVar(&opts.maxScanned, "max_scanned", 0,
		"Limit for scanned urls. The crawler doesn't guarantee exactly 'n' "+
			"urls will be scanned, but at least 'n'; this limit serves as a "+
			"stop signal to workers.")
	fs.IntVar(&opts.maxFound, "max_found", 0,
		"Limit for found urls. The crawler doesn't guarantee exactly 'n' "+
			"urls will be found, but at least 'n'; this limit serves as a "+
			"stop signal to workers.")
	fs.DurationVar(&opts.requestTimeout, "request_timeout", 10*time.Second, "Timeout for a single request.")
	fs.IntVar(&opts.workersNumber, "workers_number", 5, "Number of workers who scan urls concurrently.")
	fs.DurationVar(&opts.checkInterval, "check_interval", 100*time.Millisecond, "Interval for checking the exceeded limits.")
	fs.Int64Var(&opts.memoryLimitMB, "memory_limit_mb", 0,
		"Soft heap limit in MB; when positive, logs a warning as usage "+
			"crosses into its warning or critical band (0 = disabled).")
	return fs
}

func parseFlags(args []string) (opts cliFlags, seedURL string, err error) {
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, "", err
	}
	if fs.NArg() < 1 {
		return cliFlags{}, "", fmt.Errorf("missing seed url")
	}
	return opts, fs.Arg(0), nil
}

func buildConfig(opts cliFlags, seedURL string) crawler.Config {
	return crawler.Config{
		SeedURL:        seedURL,
		Timeout:        opts.timeout,
		MaxScanned:     opts.maxScanned,
		MaxFound:       opts.maxFound,
		RequestTimeout: opts.requestTimeout,
		WorkersNumber:  opts.workersNumber,
		CheckInterval:  opts.checkInterval,
		MemoryLimitMB:  opts.memoryLimitMB,
	}
}

func runTUI(ctx context.Context, cancel context.CancelFunc, cfg crawler.Config, logger *slog.Logger) (crawler.Summary, time.Duration, error) {
	progressCh := make(chan crawler.CrawlEvent, 100)
	crawlerInstance := crawler.New(cfg, logger, progressCh)

	model := tui.NewModel(ctx, cancel, crawlerInstance, progressCh)
	program := tea.NewProgram(model)

	finalModel, err := program.Run()
	if err != nil {
		return crawler.Summary{}, 0, fmt.Errorf("run tui: %w", err)
	}

	final := finalModel.(tui.Model)
	return final.Summary(), 0, nil
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts, seedURL, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Usage: sitecrawl [flags] <url>\n\n")
		usage := newFlagSet(&cliFlags{})
		usage.SetOutput(os.Stderr)
		usage.PrintDefaults()
		os.Exit(1)
	}

	cfg := buildConfig(opts, seedURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	start := time.Now()
	summary, _, err := runTUI(ctx, cancel, cfg, logger)
	elapsed := time.Since(start)
	if err != nil {
		logger.Error("crawl failed to run", "error", err)
		return
	}

	rep := report.FromSummary(summary, elapsed)
	cwd, err := os.Getwd()
	if err != nil {
		logger.Error("resolve working directory", "error", err)
		return
	}
	path, err := report.Write(cwd, rep, time.Now())
	if err != nil {
		logger.Error("write report", "error", err)
		return
	}
	logger.Info("report written", "path", path, "stop_reason", summary.Reason)
}
