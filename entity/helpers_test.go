package entity

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/spf13/cast"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-dbentity/cache"
	"github.com/goliatone/go-dbentity/database"
	"github.com/goliatone/go-dbentity/pkg/testsupport"
)

// testModel mirrors one row of testsupport.TestTable.
type testModel struct {
	Base
	KEYID int64
	Name  string
}

func newTestModel() *testModel {
	return &testModel{Name: "hello_world"}
}

func (m *testModel) PrimaryKey() any { return m.KEYID }

func (m *testModel) SetPrimaryKey(value any) error {
	id, err := cast.ToInt64E(value)
	if err != nil {
		return err
	}
	m.KEYID = id
	return nil
}

func (m *testModel) SetFields(row map[string]any) error {
	return AssignFields(row, Fields{
		"KEYID": &m.KEYID,
		"name":  &m.Name,
	})
}

func (m *testModel) ToMap() map[string]any {
	return map[string]any{"KEYID": m.KEYID, "name": m.Name}
}

func (m *testModel) ToPublicMap() map[string]any {
	return map[string]any{"KEYID": m.KEYID, "name": m.Name}
}

func (m *testModel) EntityConfig() Config {
	return testConfig()
}

func testConfig() Config {
	return Config{
		Table:      testsupport.TestTable,
		PrimaryKey: testsupport.TestPrimaryKey,
		NewModel:   func() Model { return newTestModel() },
	}
}

// failedConfig points at a table that never exists.
func failedConfig() Config {
	cfg := testConfig()
	cfg.Table = "unknown_table"
	return cfg
}

// recordingExecutor counts calls per method before delegating to next.
// A nil next fails every call with errTableAccess.
type recordingExecutor struct {
	mu    sync.Mutex
	next  database.Executor
	calls map[string]int
}

var errTableAccess = errors.New("table access is not allowed")

func newRecordingExecutor(next database.Executor) *recordingExecutor {
	return &recordingExecutor{next: next, calls: map[string]int{}}
}

func (r *recordingExecutor) record(method string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[method]++
}

func (r *recordingExecutor) count(method string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[method]
}

func (r *recordingExecutor) total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		n += c
	}
	return n
}

func (r *recordingExecutor) Insert(ctx context.Context, table, pk string, fields map[string]any, db string) (any, error) {
	r.record("Insert")
	if r.next == nil {
		return nil, errTableAccess
	}
	return r.next.Insert(ctx, table, pk, fields, db)
}

func (r *recordingExecutor) Update(ctx context.Context, table string, fields, where map[string]any, db string) error {
	r.record("Update")
	if r.next == nil {
		return errTableAccess
	}
	return r.next.Update(ctx, table, fields, where, db)
}

func (r *recordingExecutor) Delete(ctx context.Context, table string, where map[string]any, db string) error {
	r.record("Delete")
	if r.next == nil {
		return errTableAccess
	}
	return r.next.Delete(ctx, table, where, db)
}

func (r *recordingExecutor) Query(ctx context.Context, statement string, params []any, db string) (*database.Result, error) {
	r.record("Query")
	if r.next == nil {
		return nil, errTableAccess
	}
	return r.next.Query(ctx, statement, params, db)
}

// rowsExecutor answers every query with a fixed row set.
type rowsExecutor struct {
	*recordingExecutor
	rows []map[string]any
}

func (r *rowsExecutor) Query(ctx context.Context, statement string, params []any, db string) (*database.Result, error) {
	r.record("Query")
	return database.NewResult(r.rows), nil
}

// failingCache fails every operation.
type failingCache struct{}

var errCacheDown = errors.New("cache is down")

func (failingCache) Has(ctx context.Context, key string) (bool, error) { return false, errCacheDown }
func (failingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errCacheDown
}
func (failingCache) Set(ctx context.Context, key string, value []byte) error { return errCacheDown }
func (failingCache) Delete(ctx context.Context, key string) error            { return errCacheDown }

// newExecutor returns a bun executor over a fresh database holding an empty test table.
func newExecutor(t testing.TB) database.Executor {
	t.Helper()

	pool, db := testsupport.NewPool(t, "test")
	testsupport.CreateTestTable(t, db)
	return database.NewBunExecutor(pool)
}

func newCache(t testing.TB) cache.CacheService {
	t.Helper()

	svc, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)
	return svc
}

func mustEntity(t testing.TB, cfg Config, exec database.Executor, opts ...Option) *Entity {
	t.Helper()

	e, err := New(cfg, exec, opts...)
	require.NoError(t, err)
	return e
}

func storeNamed(t testing.TB, exec database.Executor, name string, opts ...Option) *testModel {
	t.Helper()

	m := newTestModel()
	m.Name = name
	e, err := FromModel(m, exec, opts...)
	require.NoError(t, err)

	stored, err := e.Store(context.Background())
	require.NoError(t, err)
	return stored.(*testModel)
}

// evictFailingCache stores snapshots but fails every Delete.
type evictFailingCache struct {
	cache.CacheService
}

func (evictFailingCache) Delete(ctx context.Context, key string) error { return errCacheDown }
