// Package tui provides the Bubble Tea terminal UI for sitecrawl, displaying
// live crawl progress and a styled summary of results.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lukemcguire/sitecrawl/crawler"
)

// Model is the Bubble Tea model for the crawl TUI.
type Model struct {
	ctx             context.Context
	cancel          context.CancelFunc
	crawlerInstance *crawler.Crawler
	spinner         spinner.Model
	progressCh      <-chan crawler.CrawlEvent

	foundLen   int
	scannedLen int
	current    string
	quitting   bool
	done       bool
	summary    crawler.Summary
	err        error
	width      int
}

// NewModel creates a TUI model wired to the given crawler and progress channel.
func NewModel(ctx context.Context, cancel context.CancelFunc, crawlerInst *crawler.Crawler, progressCh <-chan crawler.CrawlEvent) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		ctx:             ctx,
		cancel:          cancel,
		crawlerInstance: crawlerInst,
		spinner:         spin,
		progressCh:      progressCh,
	}
}

// Init starts the spinner, crawl, and progress listener concurrently.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startCrawl(), waitForProgress(m.progressCh))
}

// startCrawl returns a tea.Cmd that runs the crawler and sends CrawlDoneMsg.
func (m Model) startCrawl() tea.Cmd {
	return func() tea.Msg {
		summary, elapsed, err := m.crawlerInstance.Run(m.ctx)
		if err != nil {
			err = fmt.Errorf("crawl: %w", err)
		}
		return CrawlDoneMsg{Summary: summary, Elapsed: elapsed, Err: err}
	}
}

// Update handles messages from the Bubble Tea runtime.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			m.cancel()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case CrawlProgressMsg:
		m.foundLen = msg.FoundLen
		m.scannedLen = msg.ScannedLen
		m.current = msg.URL
		return m, waitForProgress(m.progressCh)

	case CrawlDoneMsg:
		m.done = true
		m.summary = msg.Summary
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the current TUI state.
func (m Model) View() string {
	if m.done && m.err != nil {
		return errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}
	if m.done {
		return RenderSummary(m.summary)
	}
	return fmt.Sprintf("%s Crawling... found %d, scanned %d\n%s\n",
		m.spinner.View(), m.foundLen, m.scannedLen,
		dimStyle.Render("  "+m.current))
}

// Summary returns the crawl summary for report writing once done.
func (m Model) Summary() crawler.Summary {
	return m.summary
}
