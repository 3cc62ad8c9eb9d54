package crawler

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"
	"time"
)

// throttleLevel indicates heap pressure severity relative to a watcher's
// configured limit.
type throttleLevel int

const (
	throttleNormal throttleLevel = iota
	throttleWarning
	throttleCritical
)

func (l throttleLevel) String() string {
	switch l {
	case throttleWarning:
		return "warning"
	case throttleCritical:
		return "critical"
	default:
		return "normal"
	}
}

// memoryWatcher polls heap usage against a soft limit set via
// debug.SetMemoryLimit and logs a level transition the moment it crosses a
// band. A long crawl can accumulate an unbounded found/scanned set; this
// gives an operator visible warning before the process is OOM-killed.
type memoryWatcher struct {
	mu         sync.Mutex
	limitBytes int64
	lastLevel  throttleLevel
	logger     *slog.Logger
}

// newMemoryWatcher creates a watcher with the given limit in MB and applies
// it as the runtime's soft memory limit.
func newMemoryWatcher(limitMB int64, logger *slog.Logger) *memoryWatcher {
	limitBytes := limitMB * 1024 * 1024
	debug.SetMemoryLimit(limitBytes)
	return &memoryWatcher{
		limitBytes: limitBytes,
		lastLevel:  throttleNormal,
		logger:     logger,
	}
}

// check reads current heap usage and logs if the throttle level changed
// since the last call.
func (m *memoryWatcher) check() {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)

	if m.limitBytes <= 0 {
		return
	}
	usedPercent := float64(stats.HeapAlloc) / float64(m.limitBytes) * 100

	var level throttleLevel
	switch {
	case usedPercent >= 90:
		level = throttleCritical
	case usedPercent >= 75:
		level = throttleWarning
	default:
		level = throttleNormal
	}

	m.mu.Lock()
	changed := level != m.lastLevel
	m.lastLevel = level
	m.mu.Unlock()

	if changed && level != throttleNormal {
		m.logger.Warn("heap pressure", "level", level.String(), "used_percent", usedPercent)
	}
}

// run polls check every interval until ctx is done.
func (m *memoryWatcher) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.check()
		}
	}
}
