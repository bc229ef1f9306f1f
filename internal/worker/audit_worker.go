// Package worker consumes expense change events and writes the audit
// trail.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gastos/internal/amqp"
	"gastos/internal/db"
)

// AuditWorker appends one expense_events row per consumed event.
type AuditWorker struct {
	adapter db.Adapter
}

func NewAuditWorker(adapter db.Adapter) *AuditWorker {
	return &AuditWorker{adapter: adapter}
}

// HandleEvent writes the audit row for a single event. Returning an error
// requeues the delivery.
func (w *AuditWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEventMessage) error {
	occurredAt := msg.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	if _, err := w.adapter.Run(ctx,
		`INSERT INTO expense_events (event, expense_id, amount, currency, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		msg.Event, msg.ID, msg.Amount, string(msg.Currency),
		occurredAt.UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("insert expense event: %w", err)
	}

	slog.InfoContext(ctx, "Recorded expense event",
		"event", msg.Event, "expense_id", msg.ID)
	return nil
}
