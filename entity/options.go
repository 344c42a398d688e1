package entity

import (
	"io"
	"log/slog"
	"reflect"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-dbentity/cache"
	"github.com/goliatone/go-dbentity/database"
)

// Option configures an Entity.
type Option func(*Entity)

// WithCache sets the cache service used when caching is enabled.
func WithCache(svc cache.CacheService) Option {
	return func(e *Entity) {
		e.cache = svc
	}
}

// WithKeySerializer overrides how cache keys are derived.
func WithKeySerializer(keys cache.KeySerializer) Option {
	return func(e *Entity) {
		if keys != nil {
			e.keys = keys
		}
	}
}

// WithLogger sets the structured logger. Entities log at debug level only.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Entity) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCacheEnabled turns write-through caching on or off. It is off by default.
func WithCacheEnabled(enabled bool) Option {
	return func(e *Entity) {
		e.useCache = enabled
	}
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var (
	sharedCacheOnce sync.Once
	sharedCache     cache.CacheService

	executorCaches = xsync.NewMapOf[database.Executor, cache.CacheService]()
)

// defaultCacheService is the cache entities fall back to when caching is enabled
// without WithCache. Each executor gets its own, so entities over different pools
// never share keys for tables with the same name. Executors that cannot be map keys
// share one process-wide cache.
func defaultCacheService(db database.Executor) cache.CacheService {
	if db == nil || !reflect.TypeOf(db).Comparable() {
		sharedCacheOnce.Do(func() {
			sharedCache = newDefaultCache()
		})
		return sharedCache
	}

	svc, _ := executorCaches.LoadOrCompute(db, newDefaultCache)
	return svc
}

func newDefaultCache() cache.CacheService {
	svc, err := cache.NewCacheService(cache.DefaultConfig())
	if err != nil {
		panic("entity: default cache config rejected: " + err.Error())
	}
	return svc
}
