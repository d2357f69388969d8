package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
)

// RequestRepository persists equipment requests.
type RequestRepository struct {
	db *sqlx.DB
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `r.id, r.request_date, r.operating_unit_id, r.category_id, r.description,
r.capacity, r.quantity, r.need_date, r.comments, r.status, r.created_at, r.updated_at,
u.name AS operating_unit_name, c.name AS category_name`

// List returns all requests with their lookup display names, newest first.
func (r *RequestRepository) List(ctx context.Context) ([]models.Request, error) {
	query := fmt.Sprintf(`SELECT %s
FROM requests r
LEFT JOIN operating_units u ON u.id = r.operating_unit_id
LEFT JOIN categories c ON c.id = r.category_id
ORDER BY r.created_at DESC`, requestColumns)
	var requests []models.Request
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return requests, nil
}

// FindByID fetches a single request by id.
func (r *RequestRepository) FindByID(ctx context.Context, id string) (*models.Request, error) {
	query := fmt.Sprintf(`SELECT %s
FROM requests r
LEFT JOIN operating_units u ON u.id = r.operating_unit_id
LEFT JOIN categories c ON c.id = r.category_id
WHERE r.id = $1`, requestColumns)
	var req models.Request
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// Insert stores a new request.
func (r *RequestRepository) Insert(ctx context.Context, req *models.Request) error {
	const query = `INSERT INTO requests
(id, request_date, operating_unit_id, category_id, description, capacity, quantity, need_date, comments, status, created_at, updated_at)
VALUES (:id, :request_date, :operating_unit_id, :category_id, :description, :capacity, :quantity, :need_date, :comments, :status, :created_at, :updated_at)`
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// UpdateFields rewrites the editable fields of an open request.
func (r *RequestRepository) UpdateFields(ctx context.Context, req *models.Request) error {
	const query = `UPDATE requests SET
operating_unit_id = :operating_unit_id, category_id = :category_id, description = :description,
capacity = :capacity, quantity = :quantity, need_date = :need_date, comments = :comments,
updated_at = :updated_at
WHERE id = :id`
	req.UpdatedAt = time.Now().UTC()
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	return nil
}

// UpdateStatus sets the aggregate status of a request.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error {
	const query = `UPDATE requests SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

// Delete removes a request. Assignments cascade at the database level.
func (r *RequestRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM requests WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	return nil
}
