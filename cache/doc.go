// Package cache provides the cache contract and key derivation used by entity write-through caching.
//
// # Overview
//
// This package exports two main interfaces and their default implementations:
//
//   - CacheService: a byte-level Has/Get/Set/Delete store for model snapshots
//   - KeySerializer: builds stable cache keys from an entity identity and a primary key
//
// The cache package knows nothing about models. Entities encode their model into a
// snapshot before calling Set and decode it after Get, so any backend able to hold
// bytes can serve as the cache.
//
// # Basic Usage
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	keys := cache.NewDefaultKeySerializer()
//
//	typeKey := keys.SerializeKey("users")      // dbentity::users
//	rowKey := keys.SerializeKey("users", 42)   // dbentity::users::<xxhash64 hex>
//
// # Key Derivation
//
// Keys are deterministic functions of (entity identity, optional primary key):
//
//   - The same entity and primary key always produce the same key
//   - Primary keys are normalized to strings first, so 42, int64(42) and "42" agree
//   - Omitting the primary key yields a distinct type-level key
//   - The primary key segment is an xxhash64 digest, keeping keys short and free of
//     characters Redis or Memcache may reject
//
// # Backends
//
// Two backends ship with the package, selected through Config.Backend:
//
//   - "memory": an in-process sharded cache built on sturdyc
//   - "redis": a Redis store built on go-redis
//
// Neither backend is asked to expire entries on behalf of entities. The memory backend
// still requires a TTL because sturdyc does, so DefaultConfig uses DefaultTTL (a year).
// sturdyc also evicts a share of entries once Capacity is reached. Either way a dropped
// entry is only a cache miss: Find falls through to the database and re-caches the row.
// Size Capacity above the number of rows you expect to keep hot.
//
// # Error Handling
//
// Backend failures are returned to the caller unchanged. The entity layer wraps them
// into persistence errors; nothing is logged and dropped here.
package cache
