package hints

import (
	"testing"
	"time"
)

func TestStoreSetGet(t *testing.T) {
	s := NewStore(time.Minute)
	s.Set("tc-1", "Reading config files")

	got, ok := s.Get("tc-1")
	if !ok || got != "Reading config files" {
		t.Errorf("Get = (%q, %v), want hint present", got, ok)
	}
	if _, ok := s.Get("tc-missing"); ok {
		t.Error("expected miss for unknown tool id")
	}
}

func TestStoreExpiry(t *testing.T) {
	s := NewStore(time.Minute)
	now := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return now }

	s.Set("tc-1", "hint")

	now = now.Add(2 * time.Minute)
	if _, ok := s.Get("tc-1"); ok {
		t.Error("expected hint to expire after TTL")
	}

	// A later write sweeps the dead entry out of the map.
	s.Set("tc-2", "fresh")
	s.mu.RLock()
	_, stale := s.entries["tc-1"]
	s.mu.RUnlock()
	if stale {
		t.Error("expected expired entry to be swept on write")
	}
}

func TestStoreLookup(t *testing.T) {
	s := NewStore(time.Minute)
	s.Set("tc-1", "one")
	s.Set("tc-2", "two")

	got := s.Lookup([]string{"tc-1", "tc-2", "tc-3"})
	if len(got) != 2 || got["tc-1"] != "one" || got["tc-2"] != "two" {
		t.Errorf("Lookup = %v, want hints for tc-1 and tc-2 only", got)
	}
}
