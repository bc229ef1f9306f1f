// Package backend selects and wires the persistence layer for a process:
// database adapter, schema initialization, record stores and the optional
// event queue client.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/amqp"
	"gastos/internal/config"
	"gastos/internal/db"
	"gastos/internal/storage"
)

// Backend bundles the opened adapter with the stores built on top of it.
type Backend struct {
	Adapter       db.Adapter
	Expenses      *storage.ExpenseStore
	Categories    *storage.CategoryStore
	Subcategories *storage.SubcategoryStore
	Events        *amqp.Client
}

// Open connects the configured database, brings the schema up to date and
// builds the stores.
//
// In auto mode PostgreSQL is preferred when a URL is configured, with a
// fallback to SQLite if the connection or schema setup fails. Explicit
// sqlite or postgres modes never fall back. The AMQP client is optional in
// every mode; a queue outage only disables event publishing.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	adapter, err := openAdapter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	b := &Backend{
		Adapter:       adapter,
		Expenses:      storage.NewExpenseStore(adapter),
		Categories:    storage.NewCategoryStore(adapter),
		Subcategories: storage.NewSubcategoryStore(adapter),
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.WarnContext(ctx, "AMQP unavailable, expense events disabled", "error", err)
		} else {
			b.Events = client
		}
	}

	return b, nil
}

func openAdapter(ctx context.Context, cfg *config.Config) (db.Adapter, error) {
	switch cfg.DataBackend {
	case config.BackendPostgres:
		return openPostgres(ctx, cfg.PostgresURL)

	case config.BackendSQLite:
		return openSQLite(ctx, cfg.SQLiteDBPath)

	default: // auto
		if cfg.PostgresURL != "" {
			adapter, err := openPostgres(ctx, cfg.PostgresURL)
			if err == nil {
				return adapter, nil
			}
			slog.WarnContext(ctx, "PostgreSQL unavailable, falling back to SQLite", "error", err)
		}
		return openSQLite(ctx, cfg.SQLiteDBPath)
	}
}

func openPostgres(ctx context.Context, url string) (db.Adapter, error) {
	adapter, err := db.OpenPostgres(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := storage.Init(ctx, adapter); err != nil {
		adapter.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "Using PostgreSQL backend")
	return adapter, nil
}

func openSQLite(ctx context.Context, path string) (db.Adapter, error) {
	adapter, err := db.OpenSQLite(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := storage.Init(ctx, adapter); err != nil {
		adapter.Close()
		return nil, err
	}
	slog.InfoContext(ctx, "Using SQLite backend", "path", path)
	return adapter, nil
}

// Close releases the database connection and, when present, the queue
// client.
func (b *Backend) Close() error {
	var firstErr error
	if b.Events != nil {
		if err := b.Events.Close(); err != nil {
			firstErr = fmt.Errorf("close amqp: %w", err)
		}
	}
	if b.Adapter != nil {
		if err := b.Adapter.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close database: %w", err)
		}
	}
	return firstErr
}
