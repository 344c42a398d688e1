// Package entity maps in-memory models to rows of a relational table.
//
// # Overview
//
// A Model holds one row. An Entity is bound to a single table, primary key column and
// model type through a Config, holds at most one Model, and persists it through a
// database.Executor:
//
//   - Store inserts the model and records the generated primary key
//   - Update writes a chosen set of columns, keyed by the primary key
//   - Delete removes the row and binds a fresh, empty model
//   - Find loads a row by primary key into a fresh model
//
// SQL execution, connection handling and identifier escaping all live behind the
// executor. This package only translates models to column mappings and back.
//
// # Basic Usage
//
//	type User struct {
//		entity.Base
//		ID   int64
//		Name string
//	}
//
//	func (u *User) EntityConfig() entity.Config {
//		return entity.Config{Table: "users", PrimaryKey: "id"}
//	}
//	// ... PrimaryKey, SetPrimaryKey, SetFields, ToMap, ToPublicMap
//
//	e, err := entity.FromModel(&User{Name: "ada"}, executor)
//	if err != nil {
//		return err
//	}
//	stored, err := e.Store(ctx)
//
//	found, err := e.Find(ctx, 1)
//	if !found.IsInitialized() {
//		// no row with that key
//	}
//
// # Caching
//
// With caching enabled (SetCache or WithCacheEnabled) successful Store, Update and
// Find calls write a msgpack snapshot of the model into a cache.CacheService, both
// under the entity's type-level key and under the key scoped to the model's primary
// key. Find consults the pk-scoped key first and, on a hit, returns the snapshot
// without touching the database. Delete evicts both keys. Rows that were not found
// are never cached.
//
// Without WithCache, entities fall back to an in-memory cache shared by every entity
// built on the same executor. Entities on different executors (and so different pools)
// never see each other's entries.
//
// Update refreshes the cache from the in-memory model the caller already mutated; it
// does not re-read the row after writing it.
//
// # Error Handling
//
// Every error is returned to the caller. The kinds are distinct and should be told
// apart with the predicates rather than by message:
//
//   - IsInvalidArgument: empty or unknown update columns, detected before any I/O
//   - IsNotInitialized: Update or Delete on a model that does not reflect a row,
//     detected before any I/O
//   - IsIntegrity: Find matched more than one row for a primary key
//   - IsPersistence: the executor or cache failed; the cause is kept for errors.Is
//
// # Concurrency
//
// Operations block until the executor (and cache) return. An Entity must not be
// shared between goroutines without external locking, and concurrent writers to the
// same row are not detected.
package entity
