package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"ranktrack/internal/cache"
	"ranktrack/internal/config"
	"ranktrack/internal/db"
	"ranktrack/internal/engine"
	"ranktrack/internal/jobs"
	"ranktrack/internal/metrics"
	"ranktrack/internal/server"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	// Initialize database
	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	metrics.Init(database)

	// Result cache: process-local by default, redis when results should
	// survive restarts
	var resultCache cache.ResultCache
	var memCache *cache.Memory
	switch cfg.CacheBackend {
	case "redis":
		redisCache := cache.NewRedis(cfg.RedisURL, cfg.CacheTTL)
		defer redisCache.Close()
		resultCache = redisCache
		log.Println("Result cache backend: redis")
	default:
		memCache = cache.NewMemory(cfg.CacheTTL)
		resultCache = memCache
		log.Println("Result cache backend: memory")
	}

	// Initialize engine
	eng := engine.New(database, database, database, database, resultCache)
	eng.SetCallTimeout(cfg.StoreCallTimeout)
	eng.SetOutcomeRecorder(metrics.RecordLookup)
	eng.OnKeywordResolved(func(slotID, keywordID uuid.UUID) {
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.UpdateSlotKeywordID(cctx, slotID, keywordID); err != nil {
			slog.Error("failed to store resolved keyword id", "slot_id", slotID, "keyword_id", keywordID, "error", err)
		}
	})

	// Optional per-deployment service-type aliases
	mappingCfg, err := config.LoadMappingConfig()
	if err != nil {
		log.Fatalf("Failed to load mapping config: %v", err)
	}
	if mappingCfg != nil {
		aliases, err := mappingCfg.KeywordTypeAliases()
		if err != nil {
			log.Fatalf("Invalid mapping config: %v", err)
		}
		eng.SetServiceTypeAliases(aliases)
		log.Printf("Loaded %d service-type aliases", len(aliases))
	}

	// Background cache sweeper (memory backend only; redis expires itself)
	if memCache != nil {
		sweeper := jobs.NewCacheSweeper(memCache, cfg.CacheSweepInterval)
		go sweeper.Start(ctx)
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(database, eng)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
