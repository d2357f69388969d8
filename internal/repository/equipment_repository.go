package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
)

// EquipmentRepository reads the owned-machinery catalog.
type EquipmentRepository struct {
	db *sqlx.DB
}

// NewEquipmentRepository constructs the repository.
func NewEquipmentRepository(db *sqlx.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// List returns the full catalog ordered by internal id.
func (r *EquipmentRepository) List(ctx context.Context) ([]models.Equipment, error) {
	const query = `SELECT id, internal_id, brand, model, hours, created_at
FROM equipment ORDER BY internal_id ASC`
	var items []models.Equipment
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	return items, nil
}

// FindByID fetches one catalog entry.
func (r *EquipmentRepository) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	const query = `SELECT id, internal_id, brand, model, hours, created_at
FROM equipment WHERE id = $1`
	var item models.Equipment
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}
