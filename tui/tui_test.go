package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukemcguire/sitecrawl/crawler"
)

func TestNewModel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	progressCh := make(chan crawler.CrawlEvent, 10)
	cr := crawler.New(crawler.DefaultConfig("https://example.com"), nil, progressCh)

	model := NewModel(ctx, cancel, cr, progressCh)

	if model.ctx != ctx {
		t.Error("expected ctx to be stored in model")
	}
	if model.cancel == nil {
		t.Error("expected cancel to be stored in model")
	}
	if model.crawlerInstance != cr {
		t.Error("expected crawler instance to be stored in model")
	}
	if model.foundLen != 0 || model.scannedLen != 0 {
		t.Error("expected initial counters to be zero")
	}
	if model.done {
		t.Error("expected done to be false initially")
	}
}

func TestRenderSummaryAllProcessed(t *testing.T) {
	summary := crawler.Summary{
		SeedURL: "https://example.com",
		Found:   []string{"https://example.com"},
		Scanned: []string{"https://example.com"},
		Reason:  crawler.AllProcessed,
	}
	output := RenderSummary(summary)
	if !strings.Contains(output, "fully processed") {
		t.Errorf("expected reason phrase in output, got: %s", output)
	}
	if !strings.Contains(output, "found 1, scanned 1") {
		t.Errorf("expected counts in output, got: %s", output)
	}
}

func TestRenderSummaryRuntimeErrorUsesErrorStyle(t *testing.T) {
	summary := crawler.Summary{SeedURL: "https://example.com", Reason: crawler.RuntimeError}
	output := RenderSummary(summary)
	if !strings.Contains(output, "stopped on a runtime error") {
		t.Errorf("expected runtime error phrase, got: %s", output)
	}
}

func TestInitReturnsBatchCmd(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	progressCh := make(chan crawler.CrawlEvent, 10)
	crawlerInst := crawler.New(crawler.DefaultConfig("https://example.com"), nil, progressCh)

	model := NewModel(ctx, cancel, crawlerInst, progressCh)
	cmd := model.Init()
	if cmd == nil {
		t.Error("Init() should return a non-nil batch command")
	}
}

func TestUpdateCrawlProgressMsg(t *testing.T) {
	model := Model{
		progressCh: make(chan crawler.CrawlEvent, 10),
	}

	msg := CrawlProgressMsg{URL: "https://example.com/page", Scanned: true, FoundLen: 3, ScannedLen: 2}
	updatedModel, cmd := model.Update(msg)
	updated := updatedModel.(Model)

	if updated.foundLen != 3 {
		t.Errorf("expected foundLen=3, got %d", updated.foundLen)
	}
	if updated.scannedLen != 2 {
		t.Errorf("expected scannedLen=2, got %d", updated.scannedLen)
	}
	if updated.current != "https://example.com/page" {
		t.Errorf("expected current URL to be set, got %s", updated.current)
	}
	if cmd == nil {
		t.Error("expected non-nil cmd to re-subscribe to progress channel")
	}
}

func TestUpdateCrawlDoneMsg(t *testing.T) {
	model := Model{}
	summary := crawler.Summary{SeedURL: "https://example.com", Reason: crawler.AllProcessed}

	updatedModel, _ := model.Update(CrawlDoneMsg{Summary: summary, Elapsed: time.Second})
	updated := updatedModel.(Model)

	if !updated.done {
		t.Error("expected done=true after CrawlDoneMsg")
	}
	if updated.summary.SeedURL != summary.SeedURL {
		t.Error("expected summary to be stored")
	}
}

func TestUpdateSpinnerTickMsg(t *testing.T) {
	model := Model{}
	updatedModel, _ := model.Update(spinner.TickMsg{})
	_ = updatedModel.(Model)
}

func TestUpdateWindowSizeMsg(t *testing.T) {
	model := Model{}
	updatedModel, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	updated := updatedModel.(Model)

	if updated.width != 120 {
		t.Errorf("expected width=120, got %d", updated.width)
	}
}

func TestViewInProgress(t *testing.T) {
	model := Model{
		foundLen:   3,
		scannedLen: 1,
		current:    "https://example.com/checking",
	}
	output := model.View()
	if !strings.Contains(output, "Crawling") {
		t.Errorf("expected 'Crawling' in progress view, got: %s", output)
	}
	if !strings.Contains(output, "3") {
		t.Errorf("expected found count in view, got: %s", output)
	}
}

func TestViewDoneWithSummary(t *testing.T) {
	model := Model{
		done:    true,
		summary: crawler.Summary{SeedURL: "https://example.com", Reason: crawler.AllProcessed},
	}
	output := model.View()
	if !strings.Contains(output, "fully processed") {
		t.Errorf("expected summary phrase in done view, got: %s", output)
	}
}

func TestViewDoneWithError(t *testing.T) {
	model := Model{
		done: true,
		err:  context.Canceled,
	}
	output := model.View()
	if !strings.Contains(output, "Error") {
		t.Errorf("expected error message in done view, got: %s", output)
	}
}
