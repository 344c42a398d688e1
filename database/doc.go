// Package database is the database-access layer behind entities.
//
// It executes parameterized statements, resolves named databases and returns row
// sets as column mappings. Entities never build SQL text themselves beyond a single
// primary key lookup, and any identifier they place into that text goes through
// Ident so the dialect quotes it.
//
//	pool := database.NewPool()
//	db, err := database.Open(database.DriverSQLite, "file:app.db")
//	if err != nil {
//		return err
//	}
//	pool.Register("app", db)
//
//	exec := database.NewBunExecutor(pool)
//	id, err := exec.Insert(ctx, "users", "id", map[string]any{"name": "ada"}, "")
//
// Connection pooling, retries and timeouts belong to database/sql and the driver;
// this package adds none of its own.
package database
