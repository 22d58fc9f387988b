package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"tripsearch/internal/search"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string
	// StatementTimeoutMS is the datastore's hard execution ceiling, applied
	// per-connection. The resolver's guard budget must sit below it.
	StatementTimeoutMS int

	// Redis result cache (optional; empty disables)
	RedisURL        string
	CacheTTLSeconds int

	// API
	APIKey      string // optional static key guarding /api routes
	CORSOrigins string // comma-separated allowed origins

	// Resolver tuning
	QueryTimeoutMS int // per-call guard budget, strictly below StatementTimeoutMS
	MaxTerms       int
	ExtraStopWords string // comma-separated additions to the stop-word list

	// Janitor
	JanitorIntervalMinutes int

	// Features
	SeedDevData bool // seed example trips/clients on startup (dev only)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:                    getEnv("ENV", "development"),
		ServerAddr:             getEnv("SERVER_ADDR", ":3000"),
		BaseURL:                getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:            getEnv("DATABASE_URL", "postgres://localhost:5432/tripsearch?sslmode=disable"),
		StatementTimeoutMS:     getEnvInt("STATEMENT_TIMEOUT_MS", 5000),
		RedisURL:               getEnv("REDIS_URL", ""),
		CacheTTLSeconds:        getEnvInt("CACHE_TTL_SECONDS", 30),
		APIKey:                 getEnv("API_KEY", ""),
		CORSOrigins:            getEnv("CORS_ORIGINS", ""),
		QueryTimeoutMS:         getEnvInt("QUERY_TIMEOUT_MS", 4000),
		MaxTerms:               getEnvInt("MAX_TERMS", 3),
		ExtraStopWords:         getEnv("EXTRA_STOP_WORDS", ""),
		JanitorIntervalMinutes: getEnvInt("JANITOR_INTERVAL_MINUTES", 30),
		SeedDevData:            getEnv("SEED_DEV_DATA", "") != "",
	}
}

// SearchConfig builds the resolver configuration from the environment.
func (c *Config) SearchConfig() search.Config {
	cfg := search.Config{
		QueryTimeout: time.Duration(c.QueryTimeoutMS) * time.Millisecond,
		MaxTerms:     c.MaxTerms,
	}
	if c.ExtraStopWords != "" {
		cfg.StopWords = splitCSV(c.ExtraStopWords)
	}
	return cfg
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
