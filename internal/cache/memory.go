package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"stocksvc/internal/calendar"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// MemoryCache is the process-local backend, used when no Redis address is
// configured. Expired entries are dropped lazily on read.
type MemoryCache struct {
	mu    sync.Mutex
	store map[string]memoryEntry
	clock calendar.Clock
}

func NewMemoryCache(clock calendar.Clock) *MemoryCache {
	return &MemoryCache{
		store: map[string]memoryEntry{},
		clock: clock,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.store[key]
	if !ok {
		return nil, false
	}
	if !m.clock.Now().Before(entry.expires) {
		delete(m.store, key)
		return nil, false
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[key] = memoryEntry{
		value:   stored,
		expires: m.clock.Now().Add(ttl),
	}
}

func (m *MemoryCache) DeleteByPrefix(_ context.Context, prefix string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	deleted := 0
	for key := range m.store {
		if strings.HasPrefix(key, prefix) {
			delete(m.store, key)
			deleted++
		}
	}
	return deleted, nil
}
