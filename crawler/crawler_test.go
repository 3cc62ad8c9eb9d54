package crawler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lukemcguire/sitecrawl/crawler"
)

// newLinkCycleServer serves n pages at /links/n/0 .. /links/n/{n-1}, each
// linking to every other page in the cycle, mirroring a small same-site
// link graph with no sinks.
func newLinkCycleServer(n int) *httptest.Server {
	mux := http.NewServeMux()
	for i := 0; i < n; i++ {
		i := i
		mux.HandleFunc(fmt.Sprintf("/links/%d/%d", n, i), func(w http.ResponseWriter, r *http.Request) {
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				fmt.Fprintf(w, `<a href="/links/%d/%d">page</a>`, n, j)
			}
		})
	}
	return httptest.NewServer(mux)
}

func newDelayServer(delay time.Duration) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(delay)
		w.Write([]byte("ok"))
	}))
}

func newRedirectChainServer(hops int) *httptest.Server {
	mux := http.NewServeMux()
	for i := hops; i > 0; i-- {
		i := i
		mux.HandleFunc(fmt.Sprintf("/redirect/%d", i), func(w http.ResponseWriter, r *http.Request) {
			if i == 1 {
				http.Redirect(w, r, "/get", http.StatusFound)
				return
			}
			http.Redirect(w, r, fmt.Sprintf("/redirect/%d", i-1), http.StatusFound)
		})
	}
	mux.HandleFunc("/get", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return httptest.NewServer(mux)
}

func runCrawl(t *testing.T, cfg crawler.Config) (crawler.Summary, time.Duration) {
	t.Helper()
	c := crawler.New(cfg, nil, nil)
	summary, elapsed, err := c.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return summary, elapsed
}

func TestCrawlerAutoCompletesOverLinkCycle(t *testing.T) {
	ts := newLinkCycleServer(5)
	defer ts.Close()

	cfg := crawler.DefaultConfig(ts.URL + "/links/5/0")
	cfg.WorkersNumber = 2
	summary, _ := runCrawl(t, cfg)

	if summary.Reason != crawler.AllProcessed {
		t.Errorf("Reason = %v, want AllProcessed", summary.Reason)
	}
	if len(summary.Found) != 5 || len(summary.Scanned) != 5 {
		t.Errorf("found=%d scanned=%d, want 5 and 5", len(summary.Found), len(summary.Scanned))
	}
}

func TestCrawlerGlobalTimeout(t *testing.T) {
	ts := newDelayServer(2 * time.Second)
	defer ts.Close()

	cfg := crawler.DefaultConfig(ts.URL)
	cfg.Timeout = 100 * time.Millisecond
	summary, _ := runCrawl(t, cfg)

	if summary.Reason != crawler.Timeout {
		t.Errorf("Reason = %v, want Timeout", summary.Reason)
	}
	if len(summary.Found) != 1 || len(summary.Scanned) != 0 {
		t.Errorf("found=%v scanned=%v, want only seed in found and nothing scanned", summary.Found, summary.Scanned)
	}
}

func TestCrawlerPerRequestTimeoutAbandonsAndCompletes(t *testing.T) {
	ts := newDelayServer(2 * time.Second)
	defer ts.Close()

	cfg := crawler.DefaultConfig(ts.URL)
	cfg.RequestTimeout = 100 * time.Millisecond
	summary, _ := runCrawl(t, cfg)

	if summary.Reason != crawler.AllProcessed {
		t.Errorf("Reason = %v, want AllProcessed (abandoned URL still drains the queue)", summary.Reason)
	}
	if len(summary.Found) != 1 || len(summary.Scanned) != 0 {
		t.Errorf("found=%v scanned=%v, want only seed in found and nothing scanned", summary.Found, summary.Scanned)
	}
}

func TestCrawlerFollowsSameSiteRedirectChain(t *testing.T) {
	ts := newRedirectChainServer(5)
	defer ts.Close()

	cfg := crawler.DefaultConfig(ts.URL + "/redirect/5")
	summary, _ := runCrawl(t, cfg)

	if summary.Reason != crawler.AllProcessed {
		t.Errorf("Reason = %v, want AllProcessed", summary.Reason)
	}
	if len(summary.Found) != 6 || len(summary.Scanned) != 6 {
		t.Errorf("found=%d scanned=%d, want 6 and 6 (5 redirects + /get)", len(summary.Found), len(summary.Scanned))
	}
}

func TestCrawlerDropsOffSiteRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/redirect-to", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "http://example.org/elsewhere", http.StatusFound)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	cfg := crawler.DefaultConfig(ts.URL + "/redirect-to")
	summary, _ := runCrawl(t, cfg)

	if summary.Reason != crawler.AllProcessed {
		t.Errorf("Reason = %v, want AllProcessed", summary.Reason)
	}
	if len(summary.Found) != 1 || len(summary.Scanned) != 1 {
		t.Errorf("found=%v scanned=%v, want only the seed in both", summary.Found, summary.Scanned)
	}
}

func TestCrawlerScannedLimit(t *testing.T) {
	ts := newLinkCycleServer(50)
	defer ts.Close()

	cfg := crawler.DefaultConfig(ts.URL + "/links/50/0")
	cfg.MaxScanned = 10
	cfg.CheckInterval = 0
	cfg.WorkersNumber = 2
	summary, _ := runCrawl(t, cfg)

	if summary.Reason != crawler.ScannedLimit {
		t.Errorf("Reason = %v, want ScannedLimit", summary.Reason)
	}
	if d := len(summary.Scanned) - 10; d < -2 || d > 2 {
		t.Errorf("|scanned| = %d, want close to 10", len(summary.Scanned))
	}
}

func TestCrawlerFoundLimit(t *testing.T) {
	ts := newLinkCycleServer(10)
	defer ts.Close()

	cfg := crawler.DefaultConfig(ts.URL + "/links/10/0")
	cfg.MaxFound = 10
	cfg.CheckInterval = 0
	cfg.WorkersNumber = 1
	summary, _ := runCrawl(t, cfg)

	if summary.Reason != crawler.FoundLimit {
		t.Errorf("Reason = %v, want FoundLimit", summary.Reason)
	}
	if len(summary.Found) != 10 {
		t.Errorf("|found| = %d, want 10", len(summary.Found))
	}
	if len(summary.Scanned) != 1 {
		t.Errorf("|scanned| = %d, want 1", len(summary.Scanned))
	}
}
