package database

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

// Interface assertion to ensure BunExecutor implements Executor
var _ Executor = (*BunExecutor)(nil)

// BunExecutor runs entity statements through bun against databases held in a Pool.
type BunExecutor struct {
	pool *Pool
}

// NewBunExecutor creates an executor resolving database names through pool.
func NewBunExecutor(pool *Pool) *BunExecutor {
	return &BunExecutor{pool: pool}
}

// Pool returns the pool the executor resolves names against.
func (e *BunExecutor) Pool() *Pool {
	return e.pool
}

// Insert writes fields into table and returns the row's primary key. A non-zero pk
// supplied in fields is returned as given. Otherwise the key is generated: dialects
// without LastInsertId support (postgres) read it back with RETURNING.
func (e *BunExecutor) Insert(ctx context.Context, table, pk string, fields map[string]any, db string) (any, error) {
	conn, err := e.pool.Get(db)
	if err != nil {
		return nil, err
	}

	values := copyMap(fields)
	q := conn.NewInsert().Model(&values).TableExpr("?", bun.Ident(table))

	if id, ok := values[pk]; ok && !isZero(id) {
		if _, err := q.Exec(ctx); err != nil {
			return nil, err
		}
		return id, nil
	}

	if conn.Dialect().Name() == dialect.PG {
		row := map[string]any{}
		if err := q.Returning("?", bun.Ident(pk)).Scan(ctx, &row); err != nil {
			return nil, err
		}
		return row[pk], nil
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read generated %s: %w", pk, err)
	}
	return id, nil
}

// Update sets fields on rows matching where.
func (e *BunExecutor) Update(ctx context.Context, table string, fields, where map[string]any, db string) error {
	conn, err := e.pool.Get(db)
	if err != nil {
		return err
	}
	if len(where) == 0 {
		return fmt.Errorf("update %s: refusing to run without a where clause", table)
	}

	values := copyMap(fields)
	q := conn.NewUpdate().Model(&values).TableExpr("?", bun.Ident(table))
	for _, col := range sortedKeys(where) {
		q = q.Where("? = ?", bun.Ident(col), where[col])
	}

	_, err = q.Exec(ctx)
	return err
}

// Delete removes rows matching where.
func (e *BunExecutor) Delete(ctx context.Context, table string, where map[string]any, db string) error {
	conn, err := e.pool.Get(db)
	if err != nil {
		return err
	}
	if len(where) == 0 {
		return fmt.Errorf("delete %s: refusing to run without a where clause", table)
	}

	q := conn.NewDelete().TableExpr("?", bun.Ident(table))
	for _, col := range sortedKeys(where) {
		q = q.Where("? = ?", bun.Ident(col), where[col])
	}

	_, err = q.Exec(ctx)
	return err
}

// Query runs statement with params and collects every row as a column mapping.
func (e *BunExecutor) Query(ctx context.Context, statement string, params []any, db string) (*Result, error) {
	conn, err := e.pool.Get(db)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := conn.NewRaw(statement, params...).Scan(ctx, &rows); err != nil {
		return nil, err
	}
	return NewResult(rows), nil
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

func copyMap(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
