package storage

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"gastos/internal/db"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// runMigrations applies the engine's base schema migrations. Every
// statement uses IF NOT EXISTS semantics, so databases created before
// migration tracking existed pass through cleanly.
func runMigrations(adapter db.Adapter) error {
	var (
		driver database.Driver
		err    error
	)
	switch adapter.Engine() {
	case db.EnginePostgres:
		driver, err = postgres.WithInstance(adapter.DB(), &postgres.Config{})
	default:
		driver, err = sqlite.WithInstance(adapter.DB(), &sqlite.Config{})
	}
	if err != nil {
		return fmt.Errorf("create %s migration driver: %w", adapter.Engine(), err)
	}

	src, err := iofs.New(migrationsFS, "migrations/"+string(adapter.Engine()))
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, string(adapter.Engine()), driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("run migrations: %w", err)
	}

	return nil
}
