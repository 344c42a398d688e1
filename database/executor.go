package database

import (
	"context"

	"github.com/uptrace/bun"
)

// Executor is the database-access layer entities delegate to.
// Every method takes the target database name last; an empty name selects the
// pool's default database.
type Executor interface {
	// Insert writes fields into table and returns the row's pk: the value supplied
	// in fields when non-zero, otherwise the generated one.
	Insert(ctx context.Context, table, pk string, fields map[string]any, db string) (any, error)
	// Update sets fields on the rows of table matching where.
	Update(ctx context.Context, table string, fields, where map[string]any, db string) error
	// Delete removes the rows of table matching where.
	Delete(ctx context.Context, table string, where map[string]any, db string) error
	// Query runs a parameterized statement and returns every row.
	// Params created with Ident are escaped as identifiers.
	Query(ctx context.Context, statement string, params []any, db string) (*Result, error)
}

// Ident marks name as an SQL identifier. Passed as a Query param it is quoted
// by the dialect instead of bound as a value.
func Ident(name string) any {
	return bun.Ident(name)
}

// Result is the row set returned by Query.
type Result struct {
	rows []map[string]any
}

// NewResult wraps rows as a Result.
func NewResult(rows []map[string]any) *Result {
	return &Result{rows: rows}
}

// Count returns the number of rows.
func (r *Result) Count() int {
	if r == nil {
		return 0
	}
	return len(r.rows)
}

// Record returns the first row, or an empty mapping when there is none.
func (r *Result) Record() map[string]any {
	if r.Count() == 0 {
		return map[string]any{}
	}
	return r.rows[0]
}

// Records returns every row.
func (r *Result) Records() []map[string]any {
	if r == nil {
		return nil
	}
	return r.rows
}
