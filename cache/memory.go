package cache

import (
	"context"
	"sync"
	"time"

	cdsco "github.com/Mainak-dev/cdsco-deepseek"
)

// Ensure MemoryStore implements cdsco.CacheStore at compile time.
var _ cdsco.CacheStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory CacheStore. It is safe for concurrent
// use. Entries do not survive process restarts; use the sqlite store
// for that.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]cdsco.CacheEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]cdsco.CacheEntry)}
}

// Get returns the entry for key, or ENOTFOUND if absent.
func (s *MemoryStore) Get(_ context.Context, key string) (*cdsco.CacheEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, cdsco.Errorf(cdsco.ENOTFOUND, "cache entry %q not found", key)
	}
	return &entry, nil
}

// Put inserts or replaces the entry for entry.Key.
func (s *MemoryStore) Put(_ context.Context, entry *cdsco.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.Key] = *entry
	return nil
}

// DeleteExpired removes entries fetched before the cutoff.
func (s *MemoryStore) DeleteExpired(_ context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, entry := range s.entries {
		if entry.FetchedAt.Before(cutoff) {
			delete(s.entries, key)
		}
	}
	return nil
}
