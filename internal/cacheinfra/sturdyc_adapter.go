package cacheinfra

import (
	"context"

	"github.com/viccon/sturdyc"
)

// sturdycService wraps a sturdyc client holding encoded model snapshots.
type sturdycService struct {
	client *sturdyc.Client[[]byte]
}

// NewSturdycService creates a new sturdyc cache service adapter.
// It validates the configuration and initializes a sturdyc client with the provided settings.
//
// Capacity, NumShards, TTL and EvictionPercentage are passed to sturdyc.New();
// the remaining options are applied via ToSturdycOptions().
func NewSturdycService(cfg Config) (*sturdycService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := sturdyc.New[[]byte](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		cfg.ToSturdycOptions()...,
	)

	return &sturdycService{client: client}, nil
}

// Has reports whether a snapshot is stored under key.
func (s *sturdycService) Has(ctx context.Context, key string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := s.client.Get(key)
	return ok, nil
}

// Get returns the snapshot stored under key.
// The returned slice is a copy; callers may keep or mutate it.
func (s *sturdycService) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	value, ok := s.client.Get(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

// Set stores a copy of value under key, replacing any previous snapshot.
func (s *sturdycService) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.client.Set(key, append([]byte(nil), value...))
	return nil
}

// Delete removes a single entry from the cache.
func (s *sturdycService) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.client.Delete(key)
	return nil
}

// Len returns the number of stored snapshots.
func (s *sturdycService) Len() int {
	return s.client.Size()
}
