package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"gastos/internal/core"
	"gastos/internal/db"
)

// CategoryStore persists the category catalog.
type CategoryStore struct {
	adapter db.Adapter
}

func NewCategoryStore(adapter db.Adapter) *CategoryStore {
	return &CategoryStore{adapter: adapter}
}

// List returns all categories in display order.
func (s *CategoryStore) List(ctx context.Context) ([]core.Category, error) {
	rows, err := s.adapter.Query(ctx,
		`SELECT id, name, icon, display_order, created_at FROM categories ORDER BY display_order, name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []core.Category{}
	for rows.Next() {
		var c core.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Icon, &c.DisplayOrder, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return categories, nil
}

// Get returns a single category by id, or core.ErrNotFound.
func (s *CategoryStore) Get(ctx context.Context, id int64) (core.Category, error) {
	var c core.Category
	err := s.adapter.Get(ctx,
		`SELECT id, name, icon, display_order, created_at FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Icon, &c.DisplayOrder, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Category{}, core.ErrNotFound
	}
	if err != nil {
		return core.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

// Create validates and inserts a category, returning it with the generated
// id and creation timestamp filled in.
func (s *CategoryStore) Create(ctx context.Context, category core.Category) (core.Category, error) {
	if err := category.Validate(); err != nil {
		return core.Category{}, err
	}

	category.CreatedAt = nowTimestamp()
	id, err := s.adapter.Run(ctx,
		`INSERT INTO categories (name, icon, display_order, created_at) VALUES (?, ?, ?, ?)`,
		category.Name, category.Icon, category.DisplayOrder, category.CreatedAt)
	if err != nil {
		return core.Category{}, fmt.Errorf("insert category: %w", err)
	}

	category.ID = id
	return category, nil
}

// Update replaces the mutable fields of a category and returns the updated
// row, or core.ErrNotFound.
func (s *CategoryStore) Update(ctx context.Context, id int64, category core.Category) (core.Category, error) {
	if err := category.Validate(); err != nil {
		return core.Category{}, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return core.Category{}, err
	}

	if err := s.adapter.Exec(ctx,
		`UPDATE categories SET name = ?, icon = ?, display_order = ? WHERE id = ?`,
		category.Name, category.Icon, category.DisplayOrder, id); err != nil {
		return core.Category{}, fmt.Errorf("update category %d: %w", id, err)
	}

	category.ID = id
	category.CreatedAt = existing.CreatedAt
	return category, nil
}

// Delete removes a category unless expenses still reference it. Missing
// categories delete cleanly; subcategories cascade at the schema level.
func (s *CategoryStore) Delete(ctx context.Context, id int64) error {
	var inUse int
	if err := s.adapter.Get(ctx,
		`SELECT COUNT(*) FROM expenses WHERE category_id = ?`, id).Scan(&inUse); err != nil {
		return fmt.Errorf("count expenses for category %d: %w", id, err)
	}
	if inUse > 0 {
		return core.ErrCategoryInUse
	}

	if err := s.adapter.Exec(ctx, `DELETE FROM categories WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	return nil
}
