package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
)

// LookupRepository manages the two lookup tables, operating units and
// equipment categories. Both share the id/name shape.
type LookupRepository struct {
	db *sqlx.DB
}

// NewLookupRepository constructs the repository.
func NewLookupRepository(db *sqlx.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// ListUnits returns all operating units ordered by name.
func (r *LookupRepository) ListUnits(ctx context.Context) ([]models.OperatingUnit, error) {
	const query = `SELECT id, name FROM operating_units ORDER BY name ASC`
	var units []models.OperatingUnit
	if err := r.db.SelectContext(ctx, &units, query); err != nil {
		return nil, fmt.Errorf("list operating units: %w", err)
	}
	return units, nil
}

// InsertUnit stores a new operating unit.
func (r *LookupRepository) InsertUnit(ctx context.Context, unit *models.OperatingUnit) error {
	const query = `INSERT INTO operating_units (id, name) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, unit.ID, unit.Name); err != nil {
		return fmt.Errorf("insert operating unit: %w", err)
	}
	return nil
}

// RenameUnit updates the display name of an operating unit.
func (r *LookupRepository) RenameUnit(ctx context.Context, id, name string) error {
	const query = `UPDATE operating_units SET name = $1 WHERE id = $2`
	return r.execExpectingRow(ctx, query, "rename operating unit", name, id)
}

// DeleteUnit removes an operating unit. Requests referencing it keep a null
// unit and fall into the unassigned bucket on reports.
func (r *LookupRepository) DeleteUnit(ctx context.Context, id string) error {
	const query = `DELETE FROM operating_units WHERE id = $1`
	return r.execExpectingRow(ctx, query, "delete operating unit", id)
}

// ListCategories returns all equipment categories ordered by name.
func (r *LookupRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	const query = `SELECT id, name FROM categories ORDER BY name ASC`
	var categories []models.Category
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// InsertCategory stores a new category.
func (r *LookupRepository) InsertCategory(ctx context.Context, category *models.Category) error {
	const query = `INSERT INTO categories (id, name) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, category.ID, category.Name); err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// RenameCategory updates the display name of a category.
func (r *LookupRepository) RenameCategory(ctx context.Context, id, name string) error {
	const query = `UPDATE categories SET name = $1 WHERE id = $2`
	return r.execExpectingRow(ctx, query, "rename category", name, id)
}

// DeleteCategory removes a category.
func (r *LookupRepository) DeleteCategory(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id = $1`
	return r.execExpectingRow(ctx, query, "delete category", id)
}

func (r *LookupRepository) execExpectingRow(ctx context.Context, query, op string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
