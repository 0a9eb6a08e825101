package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces store records away from sessions, caches and
// rate-limit counters sharing the same Redis.
const redisKeyPrefix = "celadon:store:"

// RedisStore persists records as plain Redis string values with no TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return raw, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, raw string) error {
	return s.client.Set(ctx, redisKeyPrefix+key, raw, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return s.client.Del(ctx, redisKeyPrefix+key).Err()
}
