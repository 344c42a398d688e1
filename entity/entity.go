package entity

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/goliatone/go-dbentity/cache"
	"github.com/goliatone/go-dbentity/database"
)

// findStatement selects one row by primary key. Both identifiers are escaped by the executor.
const findStatement = "SELECT * FROM ? WHERE ? = ?"

// Entity persists one Model at a time to the table described by its Config.
//
// An Entity is not safe for concurrent use: every operation reads and replaces the
// bound model. It adds no locking, transactions or version checks of its own.
type Entity struct {
	cfg      Config
	db       database.Executor
	cache    cache.CacheService
	keys     cache.KeySerializer
	logger   *slog.Logger
	model    Model
	useCache bool
}

// New creates an Entity for cfg that executes statements through db.
func New(cfg Config, db database.Executor, opts ...Option) (*Entity, error) {
	if db == nil {
		return nil, fmt.Errorf("entity: executor is required")
	}

	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("entity: invalid config: %w", err)
	}

	e := &Entity{
		cfg:    cfg,
		db:     db,
		keys:   cache.NewDefaultKeySerializer(),
		logger: discardLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With("entity", cfg.Name, "table", cfg.Table)

	return e, nil
}

// FromModel creates the Entity that manages m and binds m to it.
// When m's config has no NewModel factory, fresh models are created from m's type.
func FromModel(m Model, db database.Executor, opts ...Option) (*Entity, error) {
	if m == nil {
		return nil, fmt.Errorf("entity: model is required")
	}

	cfg := m.EntityConfig()
	if cfg.NewModel == nil {
		cfg.NewModel = factoryFor(m)
	}

	e, err := New(cfg, db, opts...)
	if err != nil {
		return nil, err
	}
	return e.WithModel(m), nil
}

// Config returns the resolved configuration, defaults applied.
func (e *Entity) Config() Config {
	return e.cfg
}

// WithModel binds m, replacing the current model.
func (e *Entity) WithModel(m Model) *Entity {
	e.model = m
	return e
}

// Model returns the bound model, creating an empty one on first access.
func (e *Entity) Model() Model {
	e.initializeModelIfNotSet()
	return e.model
}

// SetCache turns write-through caching on or off.
func (e *Entity) SetCache(enabled bool) *Entity {
	e.useCache = enabled
	return e
}

// CacheEnabled reports whether write-through caching is on.
func (e *Entity) CacheEnabled() bool {
	return e.useCache
}

// CacheKey returns the cache key for this entity type, scoped to pk when given.
func (e *Entity) CacheKey(pk ...any) string {
	return e.keys.SerializeKey(e.cfg.Name, pk...)
}

// IsCached reports whether a snapshot for pk is in the cache.
func (e *Entity) IsCached(ctx context.Context, pk any) (bool, error) {
	ok, err := e.cacheService().Has(ctx, e.CacheKey(pk))
	if err != nil {
		return false, persistence(err, "unable to read cache for model "+e.modelType(), map[string]any{
			"key": e.CacheKey(pk),
		})
	}
	return ok, nil
}

// Store inserts every column of the bound model and returns it with the generated
// primary key set and the initialized flag raised. A zero primary key is left out of
// the insert so the database can generate one.
// When the cache write fails the row exists and the bound model is already
// initialized; only the returned model is nil.
func (e *Entity) Store(ctx context.Context) (Model, error) {
	model := e.Model()
	fields := model.ToMap()

	values := make(map[string]any, len(fields))
	for column, value := range fields {
		if column == e.cfg.PrimaryKey && isZero(value) {
			continue
		}
		values[column] = value
	}

	id, err := e.db.Insert(ctx, e.cfg.Table, e.cfg.PrimaryKey, values, e.cfg.Database)
	if err != nil {
		return nil, persistence(err,
			fmt.Sprintf("unable to insert the model %s with values %v", e.modelType(), fields),
			map[string]any{"model": e.modelType(), "values": fields})
	}

	if err := model.SetPrimaryKey(id); err != nil {
		return nil, persistence(err,
			fmt.Sprintf("unable to assign generated key %v to model %s", id, e.modelType()),
			map[string]any{"model": e.modelType(), "primary_key": id})
	}
	model.SetInitialized(true)
	e.model = model

	e.logger.DebugContext(ctx, "stored model", "pk", id)

	if e.useCache {
		if err := e.writeCache(ctx, model); err != nil {
			return nil, err
		}
	}

	return model, nil
}

// Update writes the named columns of the bound model to its row.
// The caller mutates the model before calling Update; with caching on, the cache is
// refreshed from that in-memory state rather than re-read from the database.
func (e *Entity) Update(ctx context.Context, columns ...string) error {
	if len(columns) == 0 {
		return invalidArgument("update columns can not be empty", nil)
	}

	model := e.Model()
	if !model.IsInitialized() {
		return notInitialized(
			fmt.Sprintf("unable to update the model as it is not initialized. Model: %s", e.modelType()),
			map[string]any{"model": e.modelType(), "operation": "update"})
	}

	current := model.ToMap()
	values := make(map[string]any, len(columns))
	for _, column := range columns {
		value, ok := current[column]
		if !ok {
			return invalidArgument(
				fmt.Sprintf("column %s does not exist in model %s", column, e.modelType()),
				map[string]any{"model": e.modelType(), "column": column})
		}
		values[column] = value
	}

	where := e.where(model)
	if err := e.db.Update(ctx, e.cfg.Table, values, where, e.cfg.Database); err != nil {
		return persistence(err,
			fmt.Sprintf("failed to update the model %s with where clause %v", e.modelType(), where),
			map[string]any{"model": e.modelType(), "where": where})
	}

	e.logger.DebugContext(ctx, "updated model", "pk", model.PrimaryKey(), "columns", columns)

	if e.useCache {
		return e.writeCache(ctx, model)
	}
	return nil
}

// Delete removes the bound model's row, binds a fresh, uninitialized model and evicts
// the row from the cache when caching is on. A failed eviction is still reported
// after the model has been reset.
func (e *Entity) Delete(ctx context.Context) error {
	model := e.Model()
	if !model.IsInitialized() {
		return notInitialized(
			fmt.Sprintf("unable to delete the model as it is not initialized. Model: %s", e.modelType()),
			map[string]any{"model": e.modelType(), "operation": "delete"})
	}

	where := e.where(model)
	if err := e.db.Delete(ctx, e.cfg.Table, where, e.cfg.Database); err != nil {
		return persistence(err,
			fmt.Sprintf("failed to delete the model %s with where clause %v", e.modelType(), where),
			map[string]any{"model": e.modelType(), "where": where})
	}

	e.logger.DebugContext(ctx, "deleted model", "pk", model.PrimaryKey())

	// The row is gone even if eviction fails.
	e.resetModel()

	if e.useCache {
		return e.evictCache(ctx, model.PrimaryKey())
	}
	return nil
}

// Find loads the row with primary key pk into a fresh model and binds it.
//
// With caching on, a cached snapshot is returned without touching the database.
// A missing row is not an error: the returned model is simply not initialized.
// More than one row for pk is reported as an integrity error.
func (e *Entity) Find(ctx context.Context, pk any) (Model, error) {
	e.initializeModelIfNotSet()

	if e.useCache {
		model, ok, err := e.readCache(ctx, pk)
		if err != nil {
			return nil, err
		}
		if ok {
			e.logger.DebugContext(ctx, "cache hit", "pk", pk)
			e.model = model
			return model, nil
		}
	}

	params := []any{database.Ident(e.cfg.Table), database.Ident(e.cfg.PrimaryKey), pk}
	result, err := e.db.Query(ctx, findStatement, params, e.cfg.Database)
	if err != nil {
		return nil, persistence(err,
			fmt.Sprintf("failed to find a valid entity for model: %s", e.modelType()),
			map[string]any{"model": e.modelType(), "primary_key": pk})
	}

	if err := e.setModelProperties(result); err != nil {
		return nil, err
	}

	model := e.model
	e.logger.DebugContext(ctx, "found model", "pk", pk, "rows", result.Count())

	if e.useCache && model.IsInitialized() {
		if err := e.writeCache(ctx, model); err != nil {
			return nil, err
		}
	}

	return model, nil
}

// setModelProperties replaces the bound model with one populated from result.
func (e *Entity) setModelProperties(result *database.Result) error {
	e.resetModel()
	model := e.model

	switch count := result.Count(); {
	case count > 1:
		return integrityViolation(
			fmt.Sprintf("there appears to be more than 1 record based off the model: %s on entity: %s", e.modelType(), e.cfg.Name),
			map[string]any{"model": e.modelType(), "entity": e.cfg.Name, "rows": count})
	case count == 1:
		if err := model.SetFields(result.Record()); err != nil {
			e.resetModel()
			return persistence(err,
				fmt.Sprintf("unable to populate the model %s from its row", e.modelType()),
				map[string]any{"model": e.modelType()})
		}
		model.SetInitialized(true)
	}

	return nil
}

func (e *Entity) where(model Model) map[string]any {
	return map[string]any{e.cfg.PrimaryKey: model.PrimaryKey()}
}

// writeCache stores model under the type-level key and its pk-scoped key.
func (e *Entity) writeCache(ctx context.Context, model Model) error {
	data, err := encodeSnapshot(model)
	if err != nil {
		return persistence(err, "unable to encode snapshot of model "+e.modelType(),
			map[string]any{"model": e.modelType()})
	}

	svc := e.cacheService()
	for _, key := range []string{e.CacheKey(), e.CacheKey(model.PrimaryKey())} {
		if err := svc.Set(ctx, key, data); err != nil {
			return persistence(err, "unable to write cache for model "+e.modelType(),
				map[string]any{"model": e.modelType(), "key": key})
		}
	}
	return nil
}

func (e *Entity) readCache(ctx context.Context, pk any) (Model, bool, error) {
	key := e.CacheKey(pk)
	data, ok, err := e.cacheService().Get(ctx, key)
	if err != nil {
		return nil, false, persistence(err, "unable to read cache for model "+e.modelType(),
			map[string]any{"model": e.modelType(), "key": key})
	}
	if !ok {
		return nil, false, nil
	}

	model := e.cfg.NewModel()
	if err := decodeSnapshot(data, model); err != nil {
		return nil, false, persistence(err, "unable to decode cached model "+e.modelType(),
			map[string]any{"model": e.modelType(), "key": key})
	}
	return model, true, nil
}

func (e *Entity) evictCache(ctx context.Context, pk any) error {
	svc := e.cacheService()
	for _, key := range []string{e.CacheKey(pk), e.CacheKey()} {
		if err := svc.Delete(ctx, key); err != nil {
			return persistence(err, "unable to evict cache for model "+e.modelType(),
				map[string]any{"model": e.modelType(), "key": key})
		}
	}
	return nil
}

func (e *Entity) cacheService() cache.CacheService {
	if e.cache == nil {
		e.cache = defaultCacheService(e.db)
	}
	return e.cache
}

func (e *Entity) initializeModelIfNotSet() {
	if e.model != nil {
		return
	}
	e.model = e.cfg.NewModel()
}

func (e *Entity) resetModel() {
	e.model = e.cfg.NewModel()
}

func (e *Entity) modelType() string {
	if e.model != nil {
		return fmt.Sprintf("%T", e.model)
	}
	return fmt.Sprintf("%T", e.cfg.NewModel())
}

// factoryFor returns a constructor of zero values of m's concrete type.
func factoryFor(m Model) func() Model {
	t := reflect.TypeOf(m)
	if t.Kind() != reflect.Ptr {
		return func() Model {
			return reflect.Zero(t).Interface().(Model)
		}
	}
	elem := t.Elem()
	return func() Model {
		return reflect.New(elem).Interface().(Model)
	}
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
