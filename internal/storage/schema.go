// Package storage owns the relational schema and the record stores for
// expenses, categories and subcategories.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"gastos/internal/db"
)

// expenseColumns lists additive migrations applied to databases created by
// earlier schema versions, keyed by column name.
var expenseColumns = []struct {
	name        string
	sqliteDDL   string
	postgresDDL string
}{
	{
		name:        "currency",
		sqliteDDL:   `ALTER TABLE expenses ADD COLUMN currency TEXT NOT NULL DEFAULT 'PEN'`,
		postgresDDL: `ALTER TABLE expenses ADD COLUMN currency VARCHAR(10) NOT NULL DEFAULT 'PEN'`,
	},
	{
		name:        "category_id",
		sqliteDDL:   `ALTER TABLE expenses ADD COLUMN category_id INTEGER`,
		postgresDDL: `ALTER TABLE expenses ADD COLUMN category_id INTEGER`,
	},
	{
		name:        "subcategory_id",
		sqliteDDL:   `ALTER TABLE expenses ADD COLUMN subcategory_id INTEGER`,
		postgresDDL: `ALTER TABLE expenses ADD COLUMN subcategory_id INTEGER`,
	},
}

// Init brings the schema up to date: base tables and indexes through the
// embedded migrations, then additive column checks for databases created by
// older versions, then the default catalog seed on PostgreSQL.
//
// A base schema error is fatal for this connection attempt; column checks
// and seeding only ever warn, since the database may already be in shape
// from a prior server instance.
func Init(ctx context.Context, adapter db.Adapter) error {
	if err := runMigrations(adapter); err != nil {
		return fmt.Errorf("initialize %s schema: %w", adapter.Engine(), err)
	}
	slog.InfoContext(ctx, "Database schema initialized", "engine", adapter.Engine())

	ensureExpenseColumns(ctx, adapter)

	if adapter.Engine() == db.EnginePostgres {
		if err := SeedDefaults(ctx, adapter); err != nil {
			slog.WarnContext(ctx, "Default catalog seed failed", "error", err)
		}
	}

	return nil
}

// ensureExpenseColumns adds any expected expenses column that a database
// created by an earlier schema version is missing. Failures are logged and
// swallowed: the column may already exist, and a stale shape is preferable
// to a failed startup.
func ensureExpenseColumns(ctx context.Context, adapter db.Adapter) {
	existing, err := expenseColumnSet(ctx, adapter)
	if err != nil {
		slog.WarnContext(ctx, "Column inspection failed, skipping additive migrations", "error", err)
		return
	}

	migrated := true
	for _, col := range expenseColumns {
		if existing[col.name] {
			continue
		}
		ddl := col.sqliteDDL
		if adapter.Engine() == db.EnginePostgres {
			ddl = col.postgresDDL
		}
		if err := adapter.Exec(ctx, ddl); err != nil {
			slog.WarnContext(ctx, "Additive migration failed", "column", col.name, "error", err)
			migrated = false
			continue
		}
		slog.InfoContext(ctx, "Migrated expenses table", "added_column", col.name)
	}

	// The relational-category indexes depend on the columns above, so they
	// are created here rather than in the base migration.
	if migrated {
		for _, ddl := range []string{
			`CREATE INDEX IF NOT EXISTS idx_category_id ON expenses(category_id)`,
			`CREATE INDEX IF NOT EXISTS idx_subcategory_id ON expenses(subcategory_id)`,
		} {
			if err := adapter.Exec(ctx, ddl); err != nil {
				slog.WarnContext(ctx, "Index creation failed", "error", err)
			}
		}
	}
}

// expenseColumnSet returns the names of the columns currently present on
// the expenses table.
func expenseColumnSet(ctx context.Context, adapter db.Adapter) (map[string]bool, error) {
	query := `SELECT name FROM pragma_table_info('expenses')`
	if adapter.Engine() == db.EnginePostgres {
		query = `SELECT column_name FROM information_schema.columns WHERE table_name = 'expenses'`
	}

	rows, err := adapter.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("inspect expenses columns: %w", err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan column name: %w", err)
		}
		columns[name] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}
	return columns, nil
}
