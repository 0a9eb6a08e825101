package services

import (
	"testing"
	"time"
)

func TestCacheRoundTrip(t *testing.T) {
	setupTestRedis(t)

	key := CacheKey("weather", "kyoto, japan")
	if err := Cache.Set(key, "🌧️"); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got string
	hit, err := Cache.Get(key, &got)
	if err != nil || !hit {
		t.Fatalf("expected cache hit, hit=%v err=%v", hit, err)
	}
	if got != "🌧️" {
		t.Fatalf("unexpected cached value: %q", got)
	}

	if err := Cache.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if hit, _ := Cache.Get(key, &got); hit {
		t.Fatalf("expected miss after delete")
	}
}

func TestCacheMissIsNotAnError(t *testing.T) {
	setupTestRedis(t)

	var got []string
	hit, err := Cache.Get(CacheKey("suggest", "nowhere"), &got)
	if err != nil || hit {
		t.Fatalf("absent key should be a clean miss, hit=%v err=%v", hit, err)
	}
}

func TestCacheTTLClamped(t *testing.T) {
	mr := setupTestRedis(t)

	key := CacheKey("weather", "lima, peru")
	if err := Cache.SetWithTTL(key, "☀️", time.Minute); err != nil {
		t.Fatalf("set with ttl: %v", err)
	}
	// A one-minute request is raised to the one-hour floor.
	if ttl := mr.TTL(CacheKeyPrefix + key); ttl < MinCacheTTL {
		t.Fatalf("ttl should be clamped up to %v, got %v", MinCacheTTL, ttl)
	}

	if err := Cache.SetWithTTL(key, "☀️", 48*time.Hour); err != nil {
		t.Fatalf("set with ttl: %v", err)
	}
	if ttl := mr.TTL(CacheKeyPrefix + key); ttl > MaxCacheTTL {
		t.Fatalf("ttl should be clamped down to %v, got %v", MaxCacheTTL, ttl)
	}
}
