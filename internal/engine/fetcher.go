package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"ranktrack/internal/models"
)

// fetchKey identifies one current/previous-day fetch pair.
type fetchKey struct {
	keywordID uuid.UUID
	productID string
	typ       models.KeywordType
}

// rankingPair holds the joined current and previous-day lookups for one
// key. Either side may be nil.
type rankingPair struct {
	current  *models.RankingRecord
	previous *models.RankingRecord
}

// fetchRankings runs the current and previous-day lookups for every key.
// Keys are fetched concurrently with each other; within a key both lookups
// run in parallel and are joined before the key's pair is recorded. A
// storage failure degrades that key's side to nil and never aborts sibling
// keys or the batch.
func (e *Engine) fetchRankings(ctx context.Context, keys []fetchKey) map[fetchKey]rankingPair {
	out := make(map[fetchKey]rankingPair, len(keys))
	if len(keys) == 0 {
		return out
	}

	previousDay := e.now().AddDate(0, 0, -1)

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, k := range keys {
		wg.Add(1)
		go func(k fetchKey) {
			defer wg.Done()

			pair := e.fetchPair(ctx, k, previousDay)

			mu.Lock()
			out[k] = pair
			mu.Unlock()
		}(k)
	}
	wg.Wait()

	return out
}

// fetchPair issues both lookups for one key and joins them.
func (e *Engine) fetchPair(ctx context.Context, k fetchKey, previousDay time.Time) rankingPair {
	var (
		pair rankingPair
		wg   sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()

		cctx, cancel := context.WithTimeout(ctx, e.callTimeout)
		defer cancel()

		record, err := e.rankings.GetCurrentRanking(cctx, k.typ, k.keywordID, k.productID)
		if err != nil {
			slog.Error("current ranking lookup failed",
				"type", k.typ, "keyword_id", k.keywordID, "product_id", k.productID, "error", err)
			return
		}
		pair.current = record
	}()
	go func() {
		defer wg.Done()

		cctx, cancel := context.WithTimeout(ctx, e.callTimeout)
		defer cancel()

		record, err := e.rankings.GetDailyRanking(cctx, k.typ, k.keywordID, k.productID, previousDay)
		if err != nil {
			slog.Error("previous-day ranking lookup failed",
				"type", k.typ, "keyword_id", k.keywordID, "product_id", k.productID, "error", err)
			return
		}
		pair.previous = record
	}()
	wg.Wait()

	return pair
}
