package crawler

import (
	"sort"
	"sync"
)

// siteState holds the found and scanned sets shared by every worker and
// watcher for the duration of one crawl. scanned is always a subset of
// found; both are mutated under a single mutex since watchers need
// consistent len() reads alongside worker writes.
type siteState struct {
	mu      sync.Mutex
	found   map[string]struct{}
	scanned map[string]struct{}
}

func newSiteState(seed string) *siteState {
	return &siteState{
		found:   map[string]struct{}{seed: {}},
		scanned: make(map[string]struct{}),
	}
}

func (s *siteState) addFound(u string) {
	s.mu.Lock()
	s.found[u] = struct{}{}
	s.mu.Unlock()
}

func (s *siteState) addScanned(u string) {
	s.mu.Lock()
	s.found[u] = struct{}{}
	s.scanned[u] = struct{}{}
	s.mu.Unlock()
}

func (s *siteState) foundLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.found)
}

func (s *siteState) scannedLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scanned)
}

// snapshot returns sorted copies of both sets, safe to hand to callers after
// the crawl has stopped.
func (s *siteState) snapshot() (found, scanned []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found = make([]string, 0, len(s.found))
	for u := range s.found {
		found = append(found, u)
	}
	scanned = make([]string, 0, len(s.scanned))
	for u := range s.scanned {
		scanned = append(scanned, u)
	}
	sort.Strings(found)
	sort.Strings(scanned)
	return found, scanned
}
