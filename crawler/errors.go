package crawler

import (
	"context"
	"errors"
	"net"
)

// fetchErrorCategory labels a per-request failure for logging only; it
// never affects found/scanned membership, which follows the scanned/
// abandoned rule in worker.go regardless of category.
type fetchErrorCategory string

const (
	categoryTimeout           fetchErrorCategory = "timeout"
	categoryDNSFailure        fetchErrorCategory = "dns_failure"
	categoryConnectionRefused fetchErrorCategory = "connection_refused"
	categoryUnknown           fetchErrorCategory = "unknown"
)

// classifyFetchError labels err for a log line. It is purely diagnostic.
func classifyFetchError(err error) fetchErrorCategory {
	if err == nil {
		return categoryUnknown
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return categoryTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return categoryDNSFailure
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return categoryTimeout
		}
		return categoryConnectionRefused
	}

	return categoryUnknown
}
