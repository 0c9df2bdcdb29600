package cache

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps seen reviews in Redis, for deployments where several
// instances share one cache. Keys are seen:<app>:<region>:<review id>,
// kept without expiration.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore connects to Redis using a redis:// URL and verifies the
// connection.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &RedisStore{rdb: rdb}, nil
}

// HasSeen reports whether the review was already processed
func (s *RedisStore) HasSeen(ctx context.Context, appID, region, reviewID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, seenKey(appID, region, reviewID)).Result()
	if err != nil {
		return false, fmt.Errorf("check seen review: %w", err)
	}
	return n > 0, nil
}

// MarkSeen records the review as processed, idempotent
func (s *RedisStore) MarkSeen(ctx context.Context, appID, region, reviewID string) error {
	if err := s.rdb.Set(ctx, seenKey(appID, region, reviewID), 1, 0).Err(); err != nil {
		return fmt.Errorf("mark review seen: %w", err)
	}
	return nil
}

// Close closes the redis connection
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func seenKey(appID, region, reviewID string) string {
	return fmt.Sprintf("seen:%s:%s:%s", appID, region, reviewID)
}
