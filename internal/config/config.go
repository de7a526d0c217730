package config

import (
	"os"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr  string
	CORSOrigins string // Comma-separated allowed origins

	// Database
	DatabaseURL string

	// Result cache
	CacheBackend       string        // "memory" (default) or "redis"
	CacheTTL           time.Duration // env: CACHE_TTL, default 30s
	CacheSweepInterval time.Duration // memory backend only
	RedisURL           string        // redis backend only

	// Engine
	StoreCallTimeout time.Duration // per storage call
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/ranktrack?sslmode=disable"),

		CacheBackend:       getEnv("CACHE_BACKEND", "memory"),
		CacheTTL:           getDurationEnv("CACHE_TTL", 30*time.Second),
		CacheSweepInterval: getDurationEnv("CACHE_SWEEP_INTERVAL", 1*time.Minute),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),

		StoreCallTimeout: getDurationEnv("STORE_CALL_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
