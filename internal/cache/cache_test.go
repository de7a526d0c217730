package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranktrack/internal/models"
)

func TestBuildKeyOrderIndependent(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	key := BuildKey([]uuid.UUID{a, b, c})
	assert.Equal(t, key, BuildKey([]uuid.UUID{c, a, b}))
	assert.Equal(t, key, BuildKey([]uuid.UUID{b, c, a}))

	assert.NotEqual(t, key, BuildKey([]uuid.UUID{a, b}))
	assert.Empty(t, BuildKey(nil))
}

func TestMemoryGetSet(t *testing.T) {
	m := NewMemory(30 * time.Second)

	_, ok := m.Get("missing")
	assert.False(t, ok)

	slotID := uuid.New()
	results := map[uuid.UUID]models.RankingResult{
		slotID: {Keyword: "shoes", Rank: 3, Status: models.StatusChecked},
	}
	m.Set("k", results)

	got, ok := m.Get("k")
	require.True(t, ok)
	assert.Equal(t, results, got)
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(30 * time.Second)
	m.SetClock(func() time.Time { return now })

	m.Set("k", map[uuid.UUID]models.RankingResult{})

	now = now.Add(29 * time.Second)
	_, ok := m.Get("k")
	assert.True(t, ok, "entry inside the TTL window must be served")

	now = now.Add(time.Second)
	_, ok = m.Get("k")
	assert.False(t, ok, "TTL is measured from creation, not last access")
}

func TestMemorySetRefreshesCreation(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(30 * time.Second)
	m.SetClock(func() time.Time { return now })

	m.Set("k", map[uuid.UUID]models.RankingResult{})
	now = now.Add(25 * time.Second)
	m.Set("k", map[uuid.UUID]models.RankingResult{})

	now = now.Add(20 * time.Second)
	_, ok := m.Get("k")
	assert.True(t, ok, "overwriting restarts the TTL clock")
}

func TestMemorySweep(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(30 * time.Second)
	m.SetClock(func() time.Time { return now })

	m.Set("old", map[uuid.UUID]models.RankingResult{})
	now = now.Add(31 * time.Second)
	m.Set("fresh", map[uuid.UUID]models.RankingResult{})

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Sweep())
	assert.Equal(t, 1, m.Len())

	_, ok := m.Get("fresh")
	assert.True(t, ok)
}

func TestMemoryDefaultTTL(t *testing.T) {
	m := NewMemory(0)
	assert.Equal(t, DefaultTTL, m.ttl)
}
