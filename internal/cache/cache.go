// Package cache provides the short-TTL result cache that lets repeated bulk
// ranking queries for the same slot set skip the lookup and fetch work.
package cache

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// DefaultTTL is how long a bulk result stays servable, measured from the
// entry's creation rather than its last access.
const DefaultTTL = 30 * time.Second

// keyDelimiter joins the sorted slot ids into one cache key.
const keyDelimiter = "|"

// ResultCache stores bulk ranking results keyed by the requested slot id
// set. Implementations must be safe for concurrent use by multiple
// in-flight bulk requests.
type ResultCache interface {
	// Get returns the cached result map for key, or ok=false on miss or
	// expiry.
	Get(key string) (map[uuid.UUID]models.RankingResult, bool)

	// Set stores results under key, overwriting any stale entry.
	Set(key string, results map[uuid.UUID]models.RankingResult)
}

// BuildKey derives the cache key for a slot id set. Ids are sorted first,
// so the same set in any input order hits the same entry.
func BuildKey(ids []uuid.UUID) string {
	ss := make([]string, len(ids))
	for i, id := range ids {
		ss[i] = id.String()
	}
	sort.Strings(ss)
	return strings.Join(ss, keyDelimiter)
}
