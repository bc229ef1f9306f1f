package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteAdapter implements Adapter over a local SQLite file. Statements use
// `?` placeholders natively, so no rewriting is needed.
type SQLiteAdapter struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if necessary) the SQLite database at path.
// Foreign key enforcement is switched on for every connection so that
// subcategory cascade deletes behave like the PostgreSQL schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteAdapter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)", path)
	handle, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &SQLiteAdapter{db: handle, path: path}, nil
}

func (a *SQLiteAdapter) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return a.db.QueryContext(ctx, query, args...)
}

func (a *SQLiteAdapter) Get(ctx context.Context, query string, args ...any) *sql.Row {
	return a.db.QueryRowContext(ctx, query, args...)
}

func (a *SQLiteAdapter) Exec(ctx context.Context, query string, args ...any) error {
	_, err := a.db.ExecContext(ctx, query, args...)
	return err
}

func (a *SQLiteAdapter) Run(ctx context.Context, query string, args ...any) (int64, error) {
	res, err := a.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	if !isInsert(query) {
		return 0, nil
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

func (a *SQLiteAdapter) Engine() Engine { return EngineSQLite }

func (a *SQLiteAdapter) DB() *sql.DB { return a.db }

// Path returns the database file location.
func (a *SQLiteAdapter) Path() string { return a.path }

func (a *SQLiteAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
