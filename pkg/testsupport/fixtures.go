package testsupport

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-dbentity/database"
)

// TestTable is the table created by CreateTestTable.
const TestTable = "test_table"

// TestPrimaryKey is the primary key column of TestTable.
const TestPrimaryKey = "KEYID"

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t testing.TB, path string, dest any) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// NewSQLiteDB opens a private in-memory sqlite database that lives until the test ends.
func NewSQLiteDB(t testing.TB) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.DriverSQLite, dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	// The in-memory database disappears with its last connection.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// NewPool returns a pool whose default database is a fresh in-memory sqlite database.
func NewPool(t testing.TB, name string) (*database.Pool, *bun.DB) {
	t.Helper()

	db := NewSQLiteDB(t)
	pool := database.NewPool()
	pool.Register(name, db)
	return pool, db
}

// CreateTestTable (re)creates TestTable with an autoincrementing KEYID and a name column.
func CreateTestTable(t testing.TB, db *bun.DB) {
	t.Helper()

	ctx := context.Background()
	stmts := []string{
		"DROP TABLE IF EXISTS " + TestTable,
		"CREATE TABLE " + TestTable + ` (
			KEYID INTEGER PRIMARY KEY AUTOINCREMENT,
			name VARCHAR(255) NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			t.Fatalf("failed to prepare %s: %v", TestTable, err)
		}
	}
}

// SeedRows inserts rows into table, failing the test on the first error.
func SeedRows(t testing.TB, db *bun.DB, table string, rows []map[string]any) {
	t.Helper()

	ctx := context.Background()
	for i := range rows {
		row := rows[i]
		if _, err := db.NewInsert().Model(&row).TableExpr("?", bun.Ident(table)).Exec(ctx); err != nil {
			t.Fatalf("failed to seed %s row %d: %v", table, i, err)
		}
	}
}
