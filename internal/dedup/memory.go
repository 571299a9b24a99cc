// In file: internal/dedup/memory.go
package dedup

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the process-local dedup table. Eviction is coarse:
// once the table holds more than maxEntries fingerprints, the next
// accept clears it entirely.
type MemoryStore struct {
	mu         sync.Mutex
	entries    map[string]time.Time
	maxEntries int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty table. maxEntries <= 0 selects DefaultMaxEntries.
func NewMemoryStore(maxEntries int) *MemoryStore {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{entries: make(map[string]time.Time), maxEntries: maxEntries}
}

func (s *MemoryStore) CheckAndSet(_ context.Context, fingerprint string, now time.Time, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if last, ok := s.entries[fingerprint]; ok && now.Sub(last) < window {
		return false, nil
	}
	if len(s.entries) > s.maxEntries {
		clear(s.entries)
	}
	s.entries[fingerprint] = now
	return true, nil
}

// Len returns the current table size.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
