package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gastos/internal/core"
	"gastos/internal/db"
)

// SubcategoryStore persists subcategories within the category catalog.
type SubcategoryStore struct {
	adapter db.Adapter
}

func NewSubcategoryStore(adapter db.Adapter) *SubcategoryStore {
	return &SubcategoryStore{adapter: adapter}
}

// List returns subcategories in display order, each joined with its parent
// category name. A non-zero categoryID restricts the result to one category.
func (s *SubcategoryStore) List(ctx context.Context, categoryID int64) ([]core.Subcategory, error) {
	query := `SELECT s.id, s.category_id, s.name, s.display_order, s.created_at, c.name
		FROM subcategories s
		LEFT JOIN categories c ON c.id = s.category_id`
	var args []any
	if categoryID != 0 {
		query += ` WHERE s.category_id = ?`
		args = append(args, categoryID)
	}
	query += ` ORDER BY s.display_order, s.name`

	rows, err := s.adapter.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	defer rows.Close()

	subcategories := []core.Subcategory{}
	for rows.Next() {
		var sub core.Subcategory
		if err := rows.Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.DisplayOrder, &sub.CreatedAt, &sub.CategoryName); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subcategories = append(subcategories, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategories: %w", err)
	}
	return subcategories, nil
}

// Get returns a single subcategory by id, or core.ErrNotFound.
func (s *SubcategoryStore) Get(ctx context.Context, id int64) (core.Subcategory, error) {
	var sub core.Subcategory
	err := s.adapter.Get(ctx,
		`SELECT id, category_id, name, display_order, created_at FROM subcategories WHERE id = ?`, id).
		Scan(&sub.ID, &sub.CategoryID, &sub.Name, &sub.DisplayOrder, &sub.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Subcategory{}, core.ErrNotFound
	}
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("get subcategory %d: %w", id, err)
	}
	return sub, nil
}

// Create validates and inserts a subcategory, returning it with the
// generated id and creation timestamp filled in.
func (s *SubcategoryStore) Create(ctx context.Context, subcategory core.Subcategory) (core.Subcategory, error) {
	if err := subcategory.Validate(); err != nil {
		return core.Subcategory{}, err
	}

	subcategory.CreatedAt = nowTimestamp()
	id, err := s.adapter.Run(ctx,
		`INSERT INTO subcategories (category_id, name, display_order, created_at) VALUES (?, ?, ?, ?)`,
		subcategory.CategoryID, subcategory.Name, subcategory.DisplayOrder, subcategory.CreatedAt)
	if err != nil {
		return core.Subcategory{}, fmt.Errorf("insert subcategory: %w", err)
	}

	subcategory.ID = id
	return subcategory, nil
}

// Update replaces the mutable fields of a subcategory and returns the
// updated row, or core.ErrNotFound.
func (s *SubcategoryStore) Update(ctx context.Context, id int64, subcategory core.Subcategory) (core.Subcategory, error) {
	if err := subcategory.Validate(); err != nil {
		return core.Subcategory{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return core.Subcategory{}, err
	}

	if err := s.adapter.Exec(ctx,
		`UPDATE subcategories SET category_id = ?, name = ?, display_order = ? WHERE id = ?`,
		subcategory.CategoryID, subcategory.Name, subcategory.DisplayOrder, id); err != nil {
		return core.Subcategory{}, fmt.Errorf("update subcategory %d: %w", id, err)
	}

	subcategory.ID = id
	subcategory.CreatedAt = existing.CreatedAt
	return subcategory, nil
}

// Delete removes a subcategory unless expenses still reference it. Missing
// subcategories delete cleanly.
func (s *SubcategoryStore) Delete(ctx context.Context, id int64) error {
	var inUse int
	if err := s.adapter.Get(ctx,
		`SELECT COUNT(*) FROM expenses WHERE subcategory_id = ?`, id).Scan(&inUse); err != nil {
		return fmt.Errorf("count expenses for subcategory %d: %w", id, err)
	}
	if inUse > 0 {
		return core.ErrSubcategoryInUse
	}

	if err := s.adapter.Exec(ctx, `DELETE FROM subcategories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete subcategory %d: %w", id, err)
	}
	return nil
}
