// Package services orchestrates the record stores with event publishing
// and the summary aggregation.
package services

import (
	"context"
	"log/slog"
	"time"

	"gastos/internal/amqp"
	"gastos/internal/core"
	"gastos/internal/storage"
)

// ExpenseService fronts the expense store and publishes a change event
// after every successful write. Publishing is best effort: a queue outage
// never fails the request, the row is already committed.
type ExpenseService struct {
	store      *storage.ExpenseStore
	amqpClient *amqp.Client
}

func NewExpenseService(store *storage.ExpenseStore, amqpClient *amqp.Client) *ExpenseService {
	return &ExpenseService{
		store:      store,
		amqpClient: amqpClient,
	}
}

func (s *ExpenseService) List(ctx context.Context, filter core.ExpenseFilter) ([]core.Expense, error) {
	return s.store.List(ctx, filter)
}

func (s *ExpenseService) Get(ctx context.Context, id int64) (core.Expense, error) {
	return s.store.Get(ctx, id)
}

func (s *ExpenseService) Create(ctx context.Context, expense core.Expense) (core.Expense, error) {
	created, err := s.store.Create(ctx, expense)
	if err != nil {
		return core.Expense{}, err
	}
	s.publishEvent(ctx, amqp.EventExpenseCreated, created)
	return created, nil
}

func (s *ExpenseService) Update(ctx context.Context, id int64, update core.ExpenseUpdate) (core.Expense, error) {
	updated, err := s.store.Update(ctx, id, update)
	if err != nil {
		return core.Expense{}, err
	}
	s.publishEvent(ctx, amqp.EventExpenseUpdated, updated)
	return updated, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id int64) error {
	expense, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.publishEvent(ctx, amqp.EventExpenseDeleted, expense)
	return nil
}

// MonthlySummary aggregates the expenses of the calendar month containing
// now, grouped by currency, category, subcategory and owner.
func (s *ExpenseService) MonthlySummary(ctx context.Context, now time.Time) (core.Summary, error) {
	from, to := core.MonthBounds(now)
	expenses, err := s.store.ListRange(ctx, from, to)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(expenses), nil
}

func (s *ExpenseService) publishEvent(ctx context.Context, event string, expense core.Expense) {
	if s.amqpClient == nil {
		return
	}
	msg := amqp.NewExpenseEventMessage(event, expense)
	if err := s.amqpClient.PublishExpenseEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish expense event",
			"event", event, "id", expense.ID, "error", err)
	}
}
