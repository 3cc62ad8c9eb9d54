// Package report renders a completed crawl into the on-disk JSON artifact
// consumers and humans read after the fact.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/lukemcguire/sitecrawl/crawler"
)

// Report is the exact on-disk shape of a crawl's outcome.
type Report struct {
	StartURL     string             `json:"start_url"`
	TotalScanned int                `json:"total_scanned"`
	TotalFound   int                `json:"total_found"`
	ElapsedTime  float64            `json:"elapsed_time"`
	StopReason   crawler.StopReason `json:"stop_reason"`
	Scanned      []string           `json:"scanned"`
	Found        []string           `json:"found"`
}

// FromSummary builds a Report from a crawl's result set and the wall time
// Run took to produce it.
func FromSummary(summary crawler.Summary, elapsed time.Duration) Report {
	scanned := append([]string(nil), summary.Scanned...)
	found := append([]string(nil), summary.Found...)
	sort.Strings(scanned)
	sort.Strings(found)

	return Report{
		StartURL:     summary.SeedURL,
		TotalScanned: len(scanned),
		TotalFound:   len(found),
		ElapsedTime:  math.Round(elapsed.Seconds()*100) / 100,
		StopReason:   summary.Reason,
		Scanned:      scanned,
		Found:        found,
	}
}

// Encode writes rep as UTF-8 JSON with 4-space indentation to w.
func Encode(w io.Writer, rep Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// FileName returns the report's filename per the "<seed_host>
// <YYYY-MM-DD HH-MM-SS>.json" convention, timestamped at at.
func FileName(seedURL string, at time.Time) (string, error) {
	parsed, err := url.Parse(seedURL)
	if err != nil {
		return "", fmt.Errorf("parse seed url %q: %w", seedURL, err)
	}
	return fmt.Sprintf("%s %s.json", parsed.Hostname(), at.Format("2006-01-02 15-04-05")), nil
}

// Write renders rep to dir under its conventional filename, timestamped at
// at, and returns the full path written.
func Write(dir string, rep Report, at time.Time) (string, error) {
	name, err := FileName(rep.StartURL, at)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, rep); err != nil {
		return "", err
	}
	return path, nil
}
