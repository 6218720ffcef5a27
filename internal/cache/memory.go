package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is a process-local Cache. Expired entries are dropped on read.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   Clock
}

func NewMemory(clock Clock) *Memory {
	if clock == nil {
		clock = SystemClock
	}
	return &Memory{
		entries: make(map[string]entry),
		clock:   clock,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !m.clock.Now().Before(e.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}

	return append([]byte(nil), e.value...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{
		value:     append([]byte(nil), value...),
		expiresAt: m.clock.Now().Add(ttl),
	}
	return nil
}
