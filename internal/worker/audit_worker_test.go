package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/db"
	"gastos/internal/storage"
)

func TestHandleEventWritesAuditRow(t *testing.T) {
	ctx := context.Background()
	adapter, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer adapter.Close()
	require.NoError(t, storage.Init(ctx, adapter))

	w := NewAuditWorker(adapter)

	occurred := time.Date(2025, time.March, 15, 10, 30, 0, 0, time.UTC)
	msg := &amqp.ExpenseEventMessage{
		Event:      amqp.EventExpenseCreated,
		ID:         7,
		Amount:     decimal.RequireFromString("42.50"),
		Currency:   core.PEN,
		OccurredAt: occurred,
	}
	require.NoError(t, w.HandleEvent(ctx, msg))

	var (
		event      string
		expenseID  int64
		amount     decimal.Decimal
		currency   string
		occurredAt string
	)
	row := adapter.Get(ctx,
		`SELECT event, expense_id, amount, currency, occurred_at FROM expense_events WHERE expense_id = ?`, int64(7))
	require.NoError(t, row.Scan(&event, &expenseID, &amount, &currency, &occurredAt))

	assert.Equal(t, amqp.EventExpenseCreated, event)
	assert.Equal(t, int64(7), expenseID)
	assert.True(t, amount.Equal(decimal.RequireFromString("42.50")), "amount = %s", amount)
	assert.Equal(t, "PEN", currency)
	assert.Equal(t, occurred.Format(time.RFC3339), occurredAt)
}

func TestHandleEventFillsMissingTimestamp(t *testing.T) {
	ctx := context.Background()
	adapter, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer adapter.Close()
	require.NoError(t, storage.Init(ctx, adapter))

	w := NewAuditWorker(adapter)
	msg := &amqp.ExpenseEventMessage{
		Event:    amqp.EventExpenseDeleted,
		ID:       3,
		Amount:   decimal.RequireFromString("10"),
		Currency: core.USD,
	}
	require.NoError(t, w.HandleEvent(ctx, msg))

	var occurredAt string
	row := adapter.Get(ctx, `SELECT occurred_at FROM expense_events WHERE expense_id = ?`, int64(3))
	require.NoError(t, row.Scan(&occurredAt))
	assert.NotEmpty(t, occurredAt)
}
