package cacheinfra

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// redisService stores snapshots in Redis without expiry.
type redisService struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisService wraps client as a cache service. Every key is prefixed with prefix
// so several applications can share one Redis database.
func NewRedisService(client redis.UniversalClient, prefix string) *redisService {
	return &redisService{client: client, prefix: prefix}
}

func (s *redisService) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + key
}

// Has reports whether key exists.
func (s *redisService) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Get returns the snapshot stored under key. A missing key is not an error.
func (s *redisService) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores value under key with no expiration.
func (s *redisService) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

// Delete removes key. Deleting a missing key succeeds.
func (s *redisService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}
