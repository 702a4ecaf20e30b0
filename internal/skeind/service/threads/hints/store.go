// Package hints holds short-lived, best-effort activity hints for pending
// tool calls, keyed by tool id. Hints arrive on a separate annotation
// channel and only matter while a call awaits its result; entries expire on
// a TTL and are never persisted.
package hints

import (
	"sync"
	"time"
)

// DefaultTTL is how long a hint stays readable after it was set.
const DefaultTTL = 2 * time.Minute

type entry struct {
	text      string
	expiresAt time.Time
}

// Store is a TTL'd in-memory hint map. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	nowFunc func() time.Time
}

// NewStore creates a hint store with the given TTL (DefaultTTL if zero).
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl:     ttl,
		entries: make(map[string]entry),
		nowFunc: time.Now,
	}
}

// Set records a hint for the given tool id, replacing any previous hint.
func (s *Store) Set(toolID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[toolID] = entry{text: text, expiresAt: s.nowFunc().Add(s.ttl)}
	s.sweepLocked()
}

// Get returns the hint for the tool id, if one is set and not expired.
func (s *Store) Get(toolID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[toolID]
	if !ok || s.nowFunc().After(e.expiresAt) {
		return "", false
	}
	return e.text, true
}

// Lookup returns the hints present for the given tool ids.
func (s *Store) Lookup(toolIDs []string) map[string]string {
	out := make(map[string]string)
	for _, id := range toolIDs {
		if text, ok := s.Get(id); ok {
			out[id] = text
		}
	}
	return out
}

// sweepLocked drops expired entries. Called opportunistically on writes so
// the map does not grow unbounded; callers must hold the write lock.
func (s *Store) sweepLocked() {
	now := s.nowFunc()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
}
