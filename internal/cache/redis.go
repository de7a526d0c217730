package cache

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// Redis backs the result cache with a shared redis store, for deployments
// where bulk results should survive process restarts. Values are JSON and
// expiry is enforced by redis itself.
type Redis struct {
	store *redis.Storage
	ttl   time.Duration
}

// NewRedis creates a redis-backed result cache from a connection URL.
func NewRedis(url string, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		store: redis.New(redis.Config{URL: url}),
		ttl:   ttl,
	}
}

// Get returns the cached result map for key, if present and unexpired.
func (r *Redis) Get(key string) (map[uuid.UUID]models.RankingResult, bool) {
	raw, err := r.store.Get(key)
	if err != nil || len(raw) == 0 {
		return nil, false
	}

	var results map[uuid.UUID]models.RankingResult
	if err := json.Unmarshal(raw, &results); err != nil {
		slog.Error("discarding corrupt cache entry", "key", key, "error", err)
		return nil, false
	}
	return results, true
}

// Set stores results under key. Failures are logged and swallowed: the
// cache is an optimization, not a source of truth.
func (r *Redis) Set(key string, results map[uuid.UUID]models.RankingResult) {
	raw, err := json.Marshal(results)
	if err != nil {
		slog.Error("failed to encode cache entry", "key", key, "error", err)
		return
	}
	if err := r.store.Set(key, raw, r.ttl); err != nil {
		slog.Error("failed to store cache entry", "key", key, "error", err)
	}
}

// Close releases the underlying redis connection.
func (r *Redis) Close() error {
	return r.store.Close()
}
