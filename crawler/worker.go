package crawler

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/lukemcguire/sitecrawl/htmlutil"
	"github.com/lukemcguire/sitecrawl/queue"
	"github.com/lukemcguire/sitecrawl/urlutil"
)

// newFetchClient builds the shared HTTP client fetch workers use. Redirects
// are never followed automatically: CheckRedirect always returns
// ErrUseLastResponse so a 3xx response reaches processURL intact and is
// dispatched through the one-hop redirect rule instead of net/http's default
// up-to-10-hop chain.
func newFetchClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// fetchWorker pulls URLs from q until ctx is cancelled, processing each one
// to completion before asking for the next. A cancelled ctx ends the worker
// cleanly; it is never treated as a crawl failure.
func fetchWorker(ctx context.Context, client *http.Client, q *queue.Queue, state *siteState, cfg Config, logger *slog.Logger, progressCh chan<- CrawlEvent) error {
	for {
		rawURL, err := q.Get(ctx)
		if err != nil {
			return nil
		}
		processURL(ctx, client, q, state, cfg, logger, progressCh, rawURL)
	}
}

// processURL fetches one URL and folds the result into state, re-enqueuing
// any newly admitted links. It always calls q.TaskDone exactly once, however
// the fetch turns out, so Join's accounting stays correct.
func processURL(ctx context.Context, client *http.Client, q *queue.Queue, state *siteState, cfg Config, logger *slog.Logger, progressCh chan<- CrawlEvent, rawURL string) {
	defer q.TaskDone()

	scanned := false
	defer func() {
		if progressCh == nil {
			return
		}
		select {
		case progressCh <- CrawlEvent{URL: rawURL, Scanned: scanned, FoundLen: state.foundLen(), ScannedLen: state.scannedLen()}:
		default:
		}
	}()

	pageURL, err := url.Parse(rawURL)
	if err != nil {
		logger.Warn("dropping unparseable queued url", "url", rawURL, "error", err)
		return
	}
	pageHost := urlutil.HostFromURL(pageURL)

	reqCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		logger.Warn("dropping unrequestable url", "url", rawURL, "error", err)
		return
	}
	req.Header.Set("User-Agent", randomUserAgent())

	resp, err := client.Do(req)
	if err != nil {
		logger.Debug("fetch failed, abandoning url", "url", rawURL, "category", classifyFetchError(err))
		return
	}
	defer resp.Body.Close()

	scanned = true
	state.addScanned(rawURL)

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound:
		location := resp.Header.Get("Location")
		redirectURL, ok := urlutil.Normalize(pageURL, pageHost, location)
		if !ok {
			logger.Debug("dropped redirect, off-site or invalid", "from", rawURL, "location", location)
			return
		}
		state.addFound(rawURL)
		redirectStr := redirectURL.String()
		state.addFound(redirectStr)
		q.Put(redirectStr)

	default:
		hrefs, err := htmlutil.ExtractHrefs(resp.Body)
		if err != nil {
			logger.Debug("link extraction failed", "url", rawURL, "error", err)
			return
		}
		for _, href := range hrefs {
			linkURL, ok := urlutil.Normalize(pageURL, pageHost, href)
			if !ok {
				continue
			}
			linkStr := linkURL.String()
			state.addFound(linkStr)
			q.Put(linkStr)
		}
	}
}
