// Package urlutil implements the same-site admission policy: host matching
// (component A) and href normalization (component B).
package urlutil

import (
	"net/url"
	"strings"
)

// Host is a DNS name stored as its labels in right-to-left order (TLD
// first), so that a same-site test becomes a prefix test instead of a
// substring test. This avoids aliasing "google.com" against
// "thinkwithgoogle.com".
type Host struct {
	labels []string
}

// NewHost builds a Host from a raw hostname string, e.g. "www.google.ru".
func NewHost(raw string) Host {
	raw = strings.ToLower(strings.TrimSuffix(raw, "."))
	parts := strings.Split(raw, ".")
	labels := make([]string, len(parts))
	for i, p := range parts {
		labels[len(parts)-1-i] = p
	}
	return Host{labels: labels}
}

// HostFromURL builds a Host from a parsed URL's hostname.
func HostFromURL(u *url.URL) Host {
	return NewHost(u.Hostname())
}

// TopLevel returns a Host retaining only the rightmost two labels, e.g.
// "www.google.ru" -> "google.ru" (stored reversed as ["ru", "google"]).
func (h Host) TopLevel() Host {
	if len(h.labels) <= 2 {
		return Host{labels: append([]string(nil), h.labels...)}
	}
	return Host{labels: append([]string(nil), h.labels[:2]...)}
}

// Contains reports whether other is h itself or a descendant of h, i.e.
// other's label tuple has h's label tuple as a prefix.
func (h Host) Contains(other Host) bool {
	if len(other.labels) < len(h.labels) {
		return false
	}
	for i, label := range h.labels {
		if other.labels[i] != label {
			return false
		}
	}
	return true
}

// Equal reports whether h and other have identical label tuples.
func (h Host) Equal(other Host) bool {
	if len(h.labels) != len(other.labels) {
		return false
	}
	for i, label := range h.labels {
		if other.labels[i] != label {
			return false
		}
	}
	return true
}

// String renders the host back into dotted form, TLD last.
func (h Host) String() string {
	parts := make([]string, len(h.labels))
	for i, label := range h.labels {
		parts[len(h.labels)-1-i] = label
	}
	return strings.Join(parts, ".")
}
