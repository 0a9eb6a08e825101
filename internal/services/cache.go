package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/celadonapp/celadon-backend/internal/database"
)

const (
	// CacheKeyPrefix is the Redis key prefix for cached analysis results
	CacheKeyPrefix = "cache:"
	// DefaultCacheTTL keeps weather and suggestion answers for 8 hours
	DefaultCacheTTL = 8 * time.Hour
	// MinCacheTTL is 1 hour
	MinCacheTTL = 1 * time.Hour
	// MaxCacheTTL is 12 hours
	MaxCacheTTL = 12 * time.Hour
)

// CacheService memoizes analysis-backend answers (weather emoji per
// location, suggestion lists per input) so repeated lookups don't burn
// quota. A Redis failure reads as a cache miss.
type CacheService struct{}

// Get retrieves a cached value into dest. Returns false on miss.
func (c *CacheService) Get(key string, dest interface{}) (bool, error) {
	ctx := context.Background()

	val, err := database.RedisClient.Get(ctx, CacheKeyPrefix+key).Result()
	if err != nil {
		return false, nil // cache miss, not an error
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a value with the default TTL.
func (c *CacheService) Set(key string, value interface{}) error {
	return c.SetWithTTL(key, value, DefaultCacheTTL)
}

// SetWithTTL stores a value with a custom TTL (clamped to 1-12 hours).
func (c *CacheService) SetWithTTL(key string, value interface{}, ttl time.Duration) error {
	if ttl < MinCacheTTL {
		ttl = MinCacheTTL
	}
	if ttl > MaxCacheTTL {
		ttl = MaxCacheTTL
	}

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(context.Background(), CacheKeyPrefix+key, jsonData, ttl).Err()
}

// Delete removes a cached value.
func (c *CacheService) Delete(key string) error {
	return database.RedisClient.Del(context.Background(), CacheKeyPrefix+key).Err()
}

// CacheKey generates a cache key for a specific resource.
func CacheKey(resource string, identifier string) string {
	return fmt.Sprintf("%s:%s", resource, identifier)
}

// Global cache service instance
var Cache = &CacheService{}
