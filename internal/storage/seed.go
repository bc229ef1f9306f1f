package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gastos/internal/db"
)

// defaultCatalog is the fixed set of categories and subcategories seeded
// into a fresh database. Display order follows slice order.
var defaultCatalog = []struct {
	name          string
	icon          string
	subcategories []string
}{
	{"Casa", "🏠", []string{"Alquiler Depa", "Mantenimiento", "Servicios", "Arreglos / Mejoras", "Supermercado", "Rappi", "Trabajadora del Hogar", "Otros", "Subtotal"}},
	{"Auto", "🚗", []string{"Gasolina", "Parking", "Mantenimiento", "Seguro", "Impuestos", "Limpieza", "Otros", "Subtotal"}},
	{"Arya", "👶", []string{"Educación", "Nanita", "Aseo Personal", "Ropa", "Salud", "Juguetes", "Cumpleaños", "Otros", "Subtotal"}},
	{"Familia", "👨‍👩‍👧", []string{"Viajes", "Salidas", "Citas", "Salud", "Cumple Álvaro", "Cumple Maryam", "Otros", "Subtotal"}},
	{"Inversiones", "💰", []string{"Ahorros", "Crédito Hipotecario", "Seguros", "Otros", "Subtotal"}},
	{"Alvaro", "👨", []string{"Papás", "Muñecos", "Tenis", "Ropa", "Belleza", "Trabajo", "Dulces", "Otros", "Subtotal"}},
	{"Maryam", "👩", []string{"Taxis", "Comida", "Belleza", "Ropa", "Teléfono", "Netflix", "Coquitas", "Otros", "Subtotal"}},
}

// SeedDefaults inserts the default catalog, skipping any category or
// subcategory already present by name. It is safe to run on every startup.
func SeedDefaults(ctx context.Context, adapter db.Adapter) error {
	now := time.Now().UTC().Format(time.RFC3339)
	seeded := 0

	for i, cat := range defaultCatalog {
		var categoryID int64
		err := adapter.Get(ctx, `SELECT id FROM categories WHERE name = ?`, cat.name).Scan(&categoryID)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			categoryID, err = adapter.Run(ctx,
				`INSERT INTO categories (name, icon, display_order, created_at) VALUES (?, ?, ?, ?)`,
				cat.name, cat.icon, i, now)
			if err != nil {
				return fmt.Errorf("seed category %q: %w", cat.name, err)
			}
			seeded++
		case err != nil:
			return fmt.Errorf("look up category %q: %w", cat.name, err)
		}

		for j, sub := range cat.subcategories {
			var subID int64
			err := adapter.Get(ctx,
				`SELECT id FROM subcategories WHERE category_id = ? AND name = ?`,
				categoryID, sub).Scan(&subID)
			switch {
			case errors.Is(err, sql.ErrNoRows):
				if _, err := adapter.Run(ctx,
					`INSERT INTO subcategories (category_id, name, display_order, created_at) VALUES (?, ?, ?, ?)`,
					categoryID, sub, j, now); err != nil {
					return fmt.Errorf("seed subcategory %q/%q: %w", cat.name, sub, err)
				}
				seeded++
			case err != nil:
				return fmt.Errorf("look up subcategory %q/%q: %w", cat.name, sub, err)
			}
		}
	}

	if seeded > 0 {
		slog.InfoContext(ctx, "Seeded default catalog", "rows", seeded)
	}
	return nil
}

// nowTimestamp is the server-set creation timestamp written by the stores.
func nowTimestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
