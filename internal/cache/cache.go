// Package cache provides an optional Redis-backed cache for resolved
// results, keyed by normalized query. A nil *ResultCache is a no-op, so
// callers never branch on whether Redis is configured.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/storage/redis/v3"

	"tripsearch/internal/search"
)

// ResultCache stores serialized search results with a short TTL. Only
// resolved results are cached; diagnostics are always recomputed so
// suggestions stay fresh.
type ResultCache struct {
	storage *redis.Storage
	ttl     time.Duration
}

// New connects to Redis at the given URL. ttl defaults to 30 seconds.
func New(url string, ttl time.Duration) (*ResultCache, error) {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	storage := redis.New(redis.Config{URL: url})
	return &ResultCache{storage: storage, ttl: ttl}, nil
}

// Key builds the cache key for a query and its options.
func Key(normalizedQuery string, includeEverything bool) string {
	return fmt.Sprintf("resolve:%s:%t", normalizedQuery, includeEverything)
}

// Get returns the cached result for key, or nil on miss or decode failure.
func (c *ResultCache) Get(key string) *search.Result {
	if c == nil {
		return nil
	}
	raw, err := c.storage.Get(key)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var result search.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		slog.Warn("failed to decode cached result", "key", key, "error", err)
		return nil
	}
	return &result
}

// Set stores a resolved result. Failures are logged and swallowed; the
// cache is an optimization, never a dependency.
func (c *ResultCache) Set(key string, result *search.Result) {
	if c == nil || result == nil || !result.Found {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.storage.Set(key, raw, c.ttl); err != nil {
		slog.Warn("failed to cache result", "key", key, "error", err)
	}
}

// Close releases the Redis connection.
func (c *ResultCache) Close() error {
	if c == nil {
		return nil
	}
	return c.storage.Close()
}
