package photostore

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/weather-stylist/internal/domain/photos"
)

type entry struct {
	url       string
	expiresAt time.Time
}

// MemoryStore is an in-memory photo cache for tests/dev and the default when
// no Valkey address is configured.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore constructs a store backed by process memory.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]entry)}
}

// GetURL implements photos.Store.
func (s *MemoryStore) GetURL(_ context.Context, query string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[query]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if hasExpired(e.expiresAt) {
		s.mu.Lock()
		delete(s.entries, query)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.url, true, nil
}

// SaveURL caches the resolved URL with optional TTL.
func (s *MemoryStore) SaveURL(_ context.Context, query, url string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	s.entries[query] = entry{url: url, expiresAt: exp}
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ photos.Store = (*MemoryStore)(nil)
