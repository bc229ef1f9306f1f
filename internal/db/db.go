// Package db provides a uniform database adapter over SQLite and
// PostgreSQL. Queries are written once with `?` placeholders; each adapter
// normalizes them to its engine's native parameterized form.
package db

import (
	"context"
	"database/sql"
)

// Engine identifies the relational engine behind an adapter.
type Engine string

const (
	EngineSQLite   Engine = "sqlite"
	EnginePostgres Engine = "postgres"
)

// Adapter is the uniform query interface shared by both backends.
//
// Run executes an INSERT and reports the generated row id: the SQLite
// adapter reads the engine's last-inserted rowid, the PostgreSQL adapter
// rewrites the statement to append a RETURNING id clause.
type Adapter interface {
	// Query runs a statement expected to return rows.
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	// Get runs a statement expected to return at most one row.
	Get(ctx context.Context, query string, args ...any) *sql.Row
	// Exec runs a statement for its side effect only.
	Exec(ctx context.Context, query string, args ...any) error
	// Run executes an INSERT and returns the new row's id.
	Run(ctx context.Context, query string, args ...any) (int64, error)

	// Engine identifies the backing engine.
	Engine() Engine
	// DB exposes the underlying handle for schema management.
	DB() *sql.DB
	Close() error
}
