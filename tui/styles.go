package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lukemcguire/sitecrawl/crawler"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	reasonStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// reasonLabel renders a StopReason as the human phrase shown in the summary.
func reasonLabel(reason crawler.StopReason) string {
	switch reason {
	case crawler.AllProcessed:
		return "fully processed"
	case crawler.Timeout:
		return "hit the global timeout"
	case crawler.FoundLimit:
		return "hit the found limit"
	case crawler.ScannedLimit:
		return "hit the scanned limit"
	case crawler.RuntimeError:
		return "stopped on a runtime error"
	default:
		return string(reason)
	}
}

// RenderSummary produces a Lip Gloss styled summary of a completed crawl.
func RenderSummary(summary crawler.Summary) string {
	var builder strings.Builder

	style := successStyle
	if summary.Reason == crawler.RuntimeError {
		style = errorStyle
	}
	builder.WriteString(style.Render(fmt.Sprintf("Crawl of %s stopped: %s", summary.SeedURL, reasonLabel(summary.Reason))))
	builder.WriteString("\n")
	builder.WriteString(reasonStyle.Render(fmt.Sprintf("found %d, scanned %d", len(summary.Found), len(summary.Scanned))))
	builder.WriteString("\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf("stop reason: %s", summary.Reason)))
	builder.WriteString("\n")

	return builder.String()
}
