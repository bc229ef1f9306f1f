package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"gastos/internal/db"
)

// newTestAdapter opens a throwaway SQLite database with the schema applied.
func newTestAdapter(t *testing.T) db.Adapter {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	adapter, err := db.OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { adapter.Close() })

	require.NoError(t, Init(context.Background(), adapter))
	return adapter
}

func TestInitIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	adapter, err := db.OpenSQLite(context.Background(), path)
	require.NoError(t, err)
	defer adapter.Close()

	require.NoError(t, Init(context.Background(), adapter))
	require.NoError(t, Init(context.Background(), adapter))
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	require.NoError(t, SeedDefaults(ctx, adapter))
	categories, err := NewCategoryStore(adapter).List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(defaultCatalog))

	// A second run must not duplicate anything.
	require.NoError(t, SeedDefaults(ctx, adapter))
	categories, err = NewCategoryStore(adapter).List(ctx)
	require.NoError(t, err)
	require.Len(t, categories, len(defaultCatalog))

	subs, err := NewSubcategoryStore(adapter).List(ctx, 0)
	require.NoError(t, err)
	var want int
	for _, cat := range defaultCatalog {
		want += len(cat.subcategories)
	}
	require.Len(t, subs, want)
}
