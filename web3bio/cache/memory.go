// Package cache provides response stores for the query executor.
package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTTL applies when a store is built without one.
const DefaultTTL = 5 * time.Minute

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// Memory is a bounded in-process LRU store with per-entry expiry.
type Memory struct {
	entries *lru.Cache[string, memoryEntry]
	ttl     time.Duration
	now     func() time.Time
	mu      sync.Mutex
}

// NewMemory creates a memory store holding at most size entries.
func NewMemory(size int, ttl time.Duration) (*Memory, error) {
	if size <= 0 {
		size = 1
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	entries, err := lru.New[string, memoryEntry](size)
	if err != nil {
		return nil, err
	}
	return &Memory{entries: entries, ttl: ttl, now: time.Now}, nil
}

// Get returns a copy of the payload when the entry is present and fresh.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries.Get(key)
	if !ok {
		return nil, false, nil
	}
	if !m.now().Before(entry.expiresAt) {
		m.entries.Remove(key)
		return nil, false, nil
	}
	return append([]byte(nil), entry.payload...), true, nil
}

// Set stores a copy of payload.
func (m *Memory) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.ttl
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries.Add(key, memoryEntry{
		payload:   append([]byte(nil), payload...),
		expiresAt: m.now().Add(ttl),
	})
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.entries.Remove(key)
	return nil
}

func (m *Memory) Purge(_ context.Context) error {
	m.entries.Purge()
	return nil
}

// Len reports the number of entries, expired ones included.
func (m *Memory) Len() int {
	return m.entries.Len()
}
