package storage

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos/internal/core"
)

func testExpense(mutate func(*core.Expense)) core.Expense {
	e := core.Expense{
		Amount:      decimal.RequireFromString("42.50"),
		Currency:    core.PEN,
		Category:    "Casa",
		Subcategory: "Supermercado",
		Owner:       "Alvaro",
		Date:        "2025-03-15",
	}
	if mutate != nil {
		mutate(&e)
	}
	return e
}

func TestExpenseStoreCreateAndGet(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	desc := "weekly groceries"
	created, err := store.Create(ctx, testExpense(func(e *core.Expense) {
		e.Description = &desc
	}))
	require.NoError(t, err)
	assert.Positive(t, created.ID)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("42.50")), "amount = %s", got.Amount)
	assert.Equal(t, core.PEN, got.Currency)
	assert.Equal(t, "Casa", got.Category)
	assert.Equal(t, "Supermercado", got.Subcategory)
	assert.Equal(t, "Alvaro", got.Owner)
	assert.Equal(t, "2025-03-15", got.Date)
	require.NotNil(t, got.Description)
	assert.Equal(t, desc, *got.Description)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.SubcategoryID)
}

func TestExpenseStoreCreateRejectsInvalid(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	_, err := store.Create(ctx, testExpense(func(e *core.Expense) {
		e.Currency = "EUR"
	}))
	require.ErrorIs(t, err, core.ErrInvalidCurrency)

	// Nothing may have been written.
	all, err := store.List(ctx, core.ExpenseFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExpenseStoreGetMissing(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))

	_, err := store.Get(context.Background(), 9999)
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestExpenseStoreListFilters(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	seed := []core.Expense{
		testExpense(func(e *core.Expense) { e.Owner = "Alvaro"; e.Category = "Casa"; e.Subcategory = "Rappi" }),
		testExpense(func(e *core.Expense) { e.Owner = "Maryam"; e.Category = "Casa"; e.Subcategory = "Supermercado" }),
		testExpense(func(e *core.Expense) { e.Owner = "Alvaro"; e.Category = "Auto"; e.Subcategory = "Gasolina" }),
	}
	for _, e := range seed {
		_, err := store.Create(ctx, e)
		require.NoError(t, err)
	}

	all, err := store.List(ctx, core.ExpenseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	byOwner, err := store.List(ctx, core.ExpenseFilter{Owner: "Alvaro"})
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	combined, err := store.List(ctx, core.ExpenseFilter{Owner: "Alvaro", Category: "Casa"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "Rappi", combined[0].Subcategory)

	none, err := store.List(ctx, core.ExpenseFilter{Owner: "Nadie"})
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestExpenseStoreListOrdering(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	for _, date := range []string{"2025-03-10", "2025-03-20", "2025-03-15"} {
		_, err := store.Create(ctx, testExpense(func(e *core.Expense) { e.Date = date }))
		require.NoError(t, err)
	}

	all, err := store.List(ctx, core.ExpenseFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-20", all[0].Date)
	assert.Equal(t, "2025-03-15", all[1].Date)
	assert.Equal(t, "2025-03-10", all[2].Date)
}

func TestExpenseStoreListRangeInclusive(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	for _, date := range []string{"2025-02-28", "2025-03-01", "2025-03-31", "2025-04-01"} {
		_, err := store.Create(ctx, testExpense(func(e *core.Expense) { e.Date = date }))
		require.NoError(t, err)
	}

	march, err := store.ListRange(ctx, "2025-03-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, march, 2)
	assert.Equal(t, "2025-03-31", march[0].Date)
	assert.Equal(t, "2025-03-01", march[1].Date)
}

func TestExpenseStoreUpdate(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	created, err := store.Create(ctx, testExpense(nil))
	require.NoError(t, err)

	amount := decimal.RequireFromString("99.99")
	owner := "Maryam"
	updated, err := store.Update(ctx, created.ID, core.ExpenseUpdate{
		Amount: &amount,
		Owner:  &owner,
	})
	require.NoError(t, err)
	assert.True(t, updated.Amount.Equal(amount), "amount = %s", updated.Amount)
	assert.Equal(t, "Maryam", updated.Owner)
	// Untouched fields survive a partial update.
	assert.Equal(t, "Casa", updated.Category)
	assert.Equal(t, "2025-03-15", updated.Date)
}

func TestExpenseStoreUpdateDescription(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	desc := "weekly groceries"
	created, err := store.Create(ctx, testExpense(func(e *core.Expense) {
		e.Description = &desc
	}))
	require.NoError(t, err)

	// An update without the field keeps the description.
	owner := "Maryam"
	updated, err := store.Update(ctx, created.ID, core.ExpenseUpdate{Owner: &owner})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, desc, *updated.Description)

	// A set-but-nil description clears the column.
	updated, err = store.Update(ctx, created.ID, core.ExpenseUpdate{
		Description: core.OptionalString{Set: true},
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Description)

	// And a set value writes it back.
	other := "monthly groceries"
	updated, err = store.Update(ctx, created.ID, core.ExpenseUpdate{
		Description: core.OptionalString{Set: true, Value: &other},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Description)
	assert.Equal(t, other, *updated.Description)
}

func TestExpenseStoreUpdateErrors(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	created, err := store.Create(ctx, testExpense(nil))
	require.NoError(t, err)

	_, err = store.Update(ctx, created.ID, core.ExpenseUpdate{})
	require.ErrorIs(t, err, core.ErrNoFields)

	bad := core.Currency("EUR")
	_, err = store.Update(ctx, created.ID, core.ExpenseUpdate{Currency: &bad})
	require.ErrorIs(t, err, core.ErrInvalidCurrency)

	owner := "Maryam"
	_, err = store.Update(ctx, 9999, core.ExpenseUpdate{Owner: &owner})
	require.ErrorIs(t, err, core.ErrNotFound)
}

func TestExpenseStoreDelete(t *testing.T) {
	store := NewExpenseStore(newTestAdapter(t))
	ctx := context.Background()

	created, err := store.Create(ctx, testExpense(nil))
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	require.ErrorIs(t, err, core.ErrNotFound)

	require.ErrorIs(t, store.Delete(ctx, created.ID), core.ErrNotFound)
}
