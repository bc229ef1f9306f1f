package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"gastos/internal/core"
	"gastos/internal/db"
)

const expenseColumnsSQL = `id, amount, currency, category, subcategory, owner, description, date, category_id, subcategory_id`

// ExpenseStore persists expenses against whichever engine the adapter wraps.
type ExpenseStore struct {
	adapter db.Adapter
}

func NewExpenseStore(adapter db.Adapter) *ExpenseStore {
	return &ExpenseStore{adapter: adapter}
}

// List returns expenses matching the filter, newest first. Set filter
// fields are AND-combined; a zero filter returns everything.
func (s *ExpenseStore) List(ctx context.Context, filter core.ExpenseFilter) ([]core.Expense, error) {
	query := `SELECT ` + expenseColumnsSQL + ` FROM expenses`
	var (
		conditions []string
		args       []any
	)
	if filter.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, filter.Category)
	}
	if filter.Subcategory != "" {
		conditions = append(conditions, "subcategory = ?")
		args = append(args, filter.Subcategory)
	}
	if filter.Owner != "" {
		conditions = append(conditions, "owner = ?")
		args = append(args, filter.Owner)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, id DESC"

	return s.queryExpenses(ctx, query, args...)
}

// ListRange returns expenses with a date inside [from, to], both bounds
// inclusive, newest first.
func (s *ExpenseStore) ListRange(ctx context.Context, from, to string) ([]core.Expense, error) {
	query := `SELECT ` + expenseColumnsSQL + ` FROM expenses WHERE date >= ? AND date <= ? ORDER BY date DESC, id DESC`
	return s.queryExpenses(ctx, query, from, to)
}

// Get returns a single expense by id, or core.ErrNotFound.
func (s *ExpenseStore) Get(ctx context.Context, id int64) (core.Expense, error) {
	row := s.adapter.Get(ctx, `SELECT `+expenseColumnsSQL+` FROM expenses WHERE id = ?`, id)
	expense, err := scanExpense(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.ErrNotFound
	}
	if err != nil {
		return core.Expense{}, fmt.Errorf("get expense %d: %w", id, err)
	}
	return expense, nil
}

// Create validates and inserts the expense, returning it with the
// generated id filled in.
func (s *ExpenseStore) Create(ctx context.Context, expense core.Expense) (core.Expense, error) {
	if err := expense.Validate(); err != nil {
		return core.Expense{}, err
	}

	id, err := s.adapter.Run(ctx,
		`INSERT INTO expenses (amount, currency, category, subcategory, owner, description, date, category_id, subcategory_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.Amount, string(expense.Currency), expense.Category, expense.Subcategory,
		expense.Owner, expense.Description, expense.Date, expense.CategoryID, expense.SubcategoryID)
	if err != nil {
		return core.Expense{}, fmt.Errorf("insert expense: %w", err)
	}

	expense.ID = id
	return expense, nil
}

// Update applies a partial update and returns the updated row. It returns
// core.ErrNotFound when no expense has the given id.
func (s *ExpenseStore) Update(ctx context.Context, id int64, update core.ExpenseUpdate) (core.Expense, error) {
	if err := update.Validate(); err != nil {
		return core.Expense{}, err
	}

	var (
		assignments []string
		args        []any
	)
	set := func(column string, value any) {
		assignments = append(assignments, column+" = ?")
		args = append(args, value)
	}
	if update.Amount != nil {
		set("amount", *update.Amount)
	}
	if update.Currency != nil {
		set("currency", string(*update.Currency))
	}
	if update.Category != nil {
		set("category", *update.Category)
	}
	if update.Subcategory != nil {
		set("subcategory", *update.Subcategory)
	}
	if update.Owner != nil {
		set("owner", *update.Owner)
	}
	if update.Description.Set {
		// An explicit null clears the column.
		set("description", update.Description.Value)
	}
	if update.Date != nil {
		set("date", *update.Date)
	}

	// Existence is checked up front so a no-op update on a missing row
	// still reports not found.
	if _, err := s.Get(ctx, id); err != nil {
		return core.Expense{}, err
	}

	query := "UPDATE expenses SET " + strings.Join(assignments, ", ") + " WHERE id = ?"
	args = append(args, id)
	if err := s.adapter.Exec(ctx, query, args...); err != nil {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", id, err)
	}

	return s.Get(ctx, id)
}

// Delete removes an expense by id, or returns core.ErrNotFound.
func (s *ExpenseStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.adapter.Exec(ctx, `DELETE FROM expenses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

func (s *ExpenseStore) queryExpenses(ctx context.Context, query string, args ...any) ([]core.Expense, error) {
	rows, err := s.adapter.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	expenses := []core.Expense{}
	for rows.Next() {
		expense, err := scanExpense(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

func scanExpense(scan func(...any) error) (core.Expense, error) {
	var e core.Expense
	err := scan(&e.ID, &e.Amount, &e.Currency, &e.Category, &e.Subcategory,
		&e.Owner, &e.Description, &e.Date, &e.CategoryID, &e.SubcategoryID)
	return e, err
}
