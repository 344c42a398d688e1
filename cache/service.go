package cache

import "context"

// KeySerializer builds a cache key from an entity identity and an optional primary key.
// It is responsible for producing stable keys across calls.
type KeySerializer interface {
	SerializeKey(entity string, pk ...any) string
}

// CacheService exposes the byte-level cache operations entities need for write-through caching.
// It is exported so that other packages can provide alternate cache backends.
// Values are opaque snapshots; the service never interprets them and applies no expiry
// semantics of its own beyond what the backend is configured with.
type CacheService interface {
	Has(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
