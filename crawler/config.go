package crawler

import "time"

// StopReason names the single condition that ended a crawl. Exactly one is
// reported per run.
type StopReason string

const (
	// AllProcessed means the queue fully drained: every admitted URL was
	// either scanned or abandoned.
	AllProcessed StopReason = "ALL_PROCESSED"
	// Timeout means the global deadline (Config.Timeout) expired first.
	Timeout StopReason = "TIMEOUT"
	// FoundLimit means |found| reached Config.MaxFound first.
	FoundLimit StopReason = "FOUND_LIMIT"
	// ScannedLimit means |scanned| reached Config.MaxScanned first.
	ScannedLimit StopReason = "SCANNED_LIMIT"
	// RuntimeError means a worker or watcher failed unexpectedly and no
	// other reason had already been set.
	RuntimeError StopReason = "RUNTIME_ERROR"
)

// Config holds the supervisor's inputs: the seed URL plus a handful of
// optional tuning knobs, all with defaults.
type Config struct {
	// SeedURL is the starting point of the crawl; it is parsed as an
	// absolute HTTP(S) URL.
	SeedURL string

	// Timeout is the global deadline for the whole crawl. Zero means no
	// deadline.
	Timeout time.Duration
	// MaxScanned is a soft upper bound on |scanned|. Zero means unbounded.
	MaxScanned int
	// MaxFound is a soft upper bound on |found|. Zero means unbounded.
	MaxFound int
	// RequestTimeout is the per-request deadline. Defaults to 10s.
	RequestTimeout time.Duration
	// WorkersNumber is the fetch worker pool size. Defaults to 5.
	WorkersNumber int
	// CheckInterval is how often the found/scanned limit watchers poll.
	// Defaults to 100ms.
	CheckInterval time.Duration
	// MemoryLimitMB, when positive, enables a background heap-pressure
	// watcher that logs a warning whenever usage crosses into its warning
	// or critical band. Zero disables the watcher entirely.
	MemoryLimitMB int64
}

// DefaultConfig returns a Config for seedURL with the package's default
// tuning knobs and no limits set.
func DefaultConfig(seedURL string) Config {
	return Config{
		SeedURL:        seedURL,
		RequestTimeout: 10 * time.Second,
		WorkersNumber:  5,
		CheckInterval:  100 * time.Millisecond,
	}
}

// withDefaults returns a copy of cfg with zero-valued tunables replaced by
// their defaults. SeedURL, Timeout, MaxScanned, and MaxFound are left as-is
// (zero there means "no limit", not "unset"), and so is CheckInterval: zero
// is a valid "poll as fast as possible" setting used by tests that exercise
// the limit watchers without waiting out a polling period.
func (cfg Config) withDefaults() Config {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.WorkersNumber <= 0 {
		cfg.WorkersNumber = 5
	}
	return cfg
}
