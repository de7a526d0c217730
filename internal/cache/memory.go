package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// entry pairs a result map with its creation time.
type entry struct {
	results   map[uuid.UUID]models.RankingResult
	createdAt time.Time
}

// Memory is the process-local ResultCache. Key count is unbounded: the id
// sets in play are naturally bounded by concurrent UI requests, and the
// sweeper job drops expired entries between requests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]entry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemory creates an in-memory result cache. Non-positive ttl falls back
// to DefaultTTL.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{
		data: make(map[string]entry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// SetClock replaces the time source, for tests.
func (m *Memory) SetClock(now func() time.Time) {
	m.now = now
}

// Get returns the cached result map for key if the entry is still live.
func (m *Memory) Get(key string) (map[uuid.UUID]models.RankingResult, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.data[key]
	if !ok || m.now().Sub(e.createdAt) >= m.ttl {
		return nil, false
	}
	return e.results, true
}

// Set stores results under key with a fresh creation timestamp.
func (m *Memory) Set(key string, results map[uuid.UUID]models.RankingResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = entry{results: results, createdAt: m.now()}
}

// Sweep removes expired entries and returns how many were dropped.
func (m *Memory) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, e := range m.data {
		if now.Sub(e.createdAt) >= m.ttl {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of entries currently held, expired or not.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
