package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

// PostgresAdapter implements Adapter over a PostgreSQL connection pool.
// Incoming statements carry `?` placeholders; each call rewrites them to the
// engine's `$n` form before dispatch.
type PostgresAdapter struct {
	db *sql.DB
}

// OpenPostgres connects to the PostgreSQL instance at url and verifies the
// connection with a ping.
func OpenPostgres(ctx context.Context, url string) (*PostgresAdapter, error) {
	handle, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open postgres database: %w", err)
	}

	if err := handle.PingContext(ctx); err != nil {
		handle.Close()
		return nil, fmt.Errorf("ping postgres database: %w", err)
	}

	return &PostgresAdapter{db: handle}, nil
}

func (a *PostgresAdapter) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return a.db.QueryContext(ctx, Rewrite(query), args...)
}

func (a *PostgresAdapter) Get(ctx context.Context, query string, args ...any) *sql.Row {
	return a.db.QueryRowContext(ctx, Rewrite(query), args...)
}

func (a *PostgresAdapter) Exec(ctx context.Context, query string, args ...any) error {
	_, err := a.db.ExecContext(ctx, Rewrite(query), args...)
	return err
}

// Run rewrites INSERT statements to append RETURNING id so the generated
// identifier can be reported through the same contract as SQLite's
// last-inserted rowid.
func (a *PostgresAdapter) Run(ctx context.Context, query string, args ...any) (int64, error) {
	if !isInsert(query) {
		return 0, a.Exec(ctx, query, args...)
	}

	rewritten := Rewrite(strings.TrimRight(strings.TrimSpace(query), ";")) + " RETURNING id"
	var id int64
	if err := a.db.QueryRowContext(ctx, rewritten, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (a *PostgresAdapter) Engine() Engine { return EnginePostgres }

func (a *PostgresAdapter) DB() *sql.DB { return a.db }

func (a *PostgresAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
