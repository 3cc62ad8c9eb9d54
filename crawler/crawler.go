// Package crawler implements a bounded, single-host breadth-first web
// crawler: a pool of fetch workers draining a shared unique-URL queue,
// arbitrated by watchers that race to declare one of four stop conditions.
package crawler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lukemcguire/sitecrawl/queue"
)

// errStopConditionMet is the sentinel every watcher returns to short-circuit
// the errgroup once a stop condition fires. It is never surfaced to callers;
// Run translates it into the StopReason its sync.Once recorded.
var errStopConditionMet = errors.New("crawler: stop condition met")

// memoryCheckInterval is how often the optional heap-pressure watcher polls.
const memoryCheckInterval = 2 * time.Second

// Crawler runs one bounded crawl from a seed URL.
type Crawler struct {
	cfg        Config
	client     *http.Client
	logger     *slog.Logger
	progressCh chan<- CrawlEvent
}

// New returns a Crawler for cfg. progressCh is optional; pass nil to
// disable progress events. logger defaults to slog.Default() when nil.
func New(cfg Config, logger *slog.Logger, progressCh chan<- CrawlEvent) *Crawler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Crawler{
		cfg:        cfg.withDefaults(),
		client:     newFetchClient(),
		logger:     logger,
		progressCh: progressCh,
	}
}

// Run crawls cfg.SeedURL to completion, blocking until exactly one stop
// condition fires, and returns the accumulated found/scanned sets alongside
// the reason and elapsed wall time.
func (c *Crawler) Run(ctx context.Context) (Summary, time.Duration, error) {
	start := time.Now()

	q := queue.New()
	state := newSiteState(c.cfg.SeedURL)
	q.Put(c.cfg.SeedURL)

	var (
		once   sync.Once
		reason StopReason
	)
	setReason := func(r StopReason) {
		once.Do(func() { reason = r })
	}

	group, groupCtx := errgroup.WithContext(ctx)

	for range c.cfg.WorkersNumber {
		group.Go(func() error {
			return fetchWorker(groupCtx, c.client, q, state, c.cfg, c.logger, c.progressCh)
		})
	}

	// Completion watcher: the queue draining fully is itself a stop
	// condition, racing against the limit and deadline watchers below.
	group.Go(func() error {
		if err := q.Join(groupCtx); err != nil {
			return nil // groupCtx was cancelled by another watcher first
		}
		setReason(AllProcessed)
		return errStopConditionMet
	})

	if c.cfg.Timeout > 0 {
		group.Go(func() error {
			timer := time.NewTimer(c.cfg.Timeout)
			defer timer.Stop()
			select {
			case <-timer.C:
				setReason(Timeout)
				return errStopConditionMet
			case <-groupCtx.Done():
				return nil
			}
		})
	}

	if c.cfg.MaxFound > 0 {
		group.Go(func() error {
			return pollLimit(groupCtx, c.cfg.CheckInterval, func() bool {
				return state.foundLen() >= c.cfg.MaxFound
			}, func() { setReason(FoundLimit) })
		})
	}

	if c.cfg.MaxScanned > 0 {
		group.Go(func() error {
			return pollLimit(groupCtx, c.cfg.CheckInterval, func() bool {
				return state.scannedLen() >= c.cfg.MaxScanned
			}, func() { setReason(ScannedLimit) })
		})
	}

	if c.cfg.MemoryLimitMB > 0 {
		watcher := newMemoryWatcher(c.cfg.MemoryLimitMB, c.logger)
		group.Go(func() error {
			watcher.run(groupCtx, memoryCheckInterval)
			return nil
		})
	}

	err := group.Wait()
	if err != nil && !errors.Is(err, errStopConditionMet) {
		setReason(RuntimeError)
	}

	found, scanned := state.snapshot()
	summary := Summary{
		SeedURL: c.cfg.SeedURL,
		Found:   found,
		Scanned: scanned,
		Reason:  reason,
	}
	return summary, time.Since(start), nil
}

// pollLimit checks hit every interval (or as fast as the scheduler allows
// when interval is zero, the setting tests use to exercise limits without
// waiting out a real polling period) until hit reports true or ctx ends.
func pollLimit(ctx context.Context, interval time.Duration, hit func() bool, onHit func()) error {
	if hit() {
		onHit()
		return errStopConditionMet
	}

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	} else {
		yield := make(chan time.Time)
		close(yield)
		tick = yield
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			if hit() {
				onHit()
				return errStopConditionMet
			}
			if interval <= 0 {
				// Re-arm the always-ready channel for the next spin.
				yield := make(chan time.Time)
				close(yield)
				tick = yield
			}
		}
	}
}
