package cache

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goliatone/go-dbentity/internal/cacheinfra"
)

// Backend names accepted by Config.Backend.
const (
	BackendMemory = cacheinfra.BackendMemory
	BackendRedis  = cacheinfra.BackendRedis
)

// DefaultTTL is the sturdyc entry lifetime used by DefaultConfig.
const DefaultTTL = cacheinfra.DefaultTTL

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	Backend            string
	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration
	Redis              *RedisConfig
}

// RedisConfig selects the Redis server snapshots are written to.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return convertFromInternal(cacheinfra.DefaultConfig())
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return c.toInternal().Validate()
}

// NewCacheService constructs the cache service selected by cfg.Backend.
func NewCacheService(cfg Config) (CacheService, error) {
	internal := cfg.toInternal()
	if err := internal.Validate(); err != nil {
		return nil, err
	}

	if internal.Backend == cacheinfra.BackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     internal.Redis.Addr,
			Password: internal.Redis.Password,
			DB:       internal.Redis.DB,
		})
		return cacheinfra.NewRedisService(client, internal.Redis.KeyPrefix), nil
	}

	svc, err := cacheinfra.NewSturdycService(internal)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (c Config) toInternal() cacheinfra.Config {
	var rc *cacheinfra.RedisConfig
	if c.Redis != nil {
		rc = &cacheinfra.RedisConfig{
			Addr:      c.Redis.Addr,
			Password:  c.Redis.Password,
			DB:        c.Redis.DB,
			KeyPrefix: c.Redis.KeyPrefix,
		}
	}

	return cacheinfra.Config{
		Backend:            c.Backend,
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
		Redis:              rc,
	}
}

func convertFromInternal(cfg cacheinfra.Config) Config {
	var rc *RedisConfig
	if cfg.Redis != nil {
		rc = &RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		}
	}

	return Config{
		Backend:            cfg.Backend,
		Capacity:           cfg.Capacity,
		NumShards:          cfg.NumShards,
		TTL:                cfg.TTL,
		EvictionPercentage: cfg.EvictionPercentage,
		EvictionInterval:   cfg.EvictionInterval,
		Redis:              rc,
	}
}
