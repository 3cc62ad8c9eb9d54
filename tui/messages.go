package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lukemcguire/sitecrawl/crawler"
)

// CrawlProgressMsg reports progress for a single fetch attempt.
type CrawlProgressMsg struct {
	URL        string
	Scanned    bool
	FoundLen   int
	ScannedLen int
}

// CrawlDoneMsg signals the crawl has completed.
type CrawlDoneMsg struct {
	Summary crawler.Summary
	Elapsed time.Duration
	Err     error
}

// waitForProgress returns a tea.Cmd that reads one event from the progress
// channel. When the channel closes, it returns a nil message so Update
// simply stops re-subscribing; the real CrawlDoneMsg comes from
// startCrawl, not from this channel closing.
func waitForProgress(ch <-chan crawler.CrawlEvent) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return CrawlProgressMsg{
			URL:        evt.URL,
			Scanned:    evt.Scanned,
			FoundLen:   evt.FoundLen,
			ScannedLen: evt.ScannedLen,
		}
	}
}
