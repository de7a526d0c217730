package jobs

import (
	"context"
	"log"
	"time"

	"ranktrack/internal/cache"
)

// CacheSweeper periodically drops expired entries from the in-memory
// result cache so abandoned slot sets don't accumulate between requests.
type CacheSweeper struct {
	cache    *cache.Memory
	interval time.Duration
}

// NewCacheSweeper creates a new cache sweeper.
func NewCacheSweeper(c *cache.Memory, interval time.Duration) *CacheSweeper {
	return &CacheSweeper{
		cache:    c,
		interval: interval,
	}
}

// Start begins the background sweep loop.
func (s *CacheSweeper) Start(ctx context.Context) {
	log.Printf("Cache sweeper started (interval: %v)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Cache sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.cache.Sweep(); removed > 0 {
				log.Printf("Cache sweep removed %d expired entries (%d live)", removed, s.cache.Len())
			}
		}
	}
}
