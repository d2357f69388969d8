package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
)

// AssignmentRepository persists fulfillment assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = `a.id, a.request_id, a.kind, a.quantity, a.equipment_id,
a.availability_date, a.rental_months, a.buy_vendor, a.buy_delivery_date, a.managed_at, a.created_at,
e.internal_id AS equipment_internal_id, e.brand AS equipment_brand,
e.model AS equipment_model, e.hours AS equipment_hours`

// ListAll returns every assignment with its equipment snapshot, ordered by
// creation so projection output is stable.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s
FROM assignments a
LEFT JOIN equipment e ON e.id = a.equipment_id
ORDER BY a.created_at ASC`, assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListByRequest returns the assignments attached to one request.
func (r *AssignmentRepository) ListByRequest(ctx context.Context, requestID string) ([]models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s
FROM assignments a
LEFT JOIN equipment e ON e.id = a.equipment_id
WHERE a.request_id = $1
ORDER BY a.created_at ASC`, assignmentColumns)
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, requestID); err != nil {
		return nil, fmt.Errorf("list assignments by request: %w", err)
	}
	return assignments, nil
}

// FindByID fetches a single assignment.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	query := fmt.Sprintf(`SELECT %s
FROM assignments a
LEFT JOIN equipment e ON e.id = a.equipment_id
WHERE a.id = $1`, assignmentColumns)
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// SumByRequest returns the total quantity already assigned to a request.
func (r *AssignmentRepository) SumByRequest(ctx context.Context, requestID string) (int, error) {
	const query = `SELECT COALESCE(SUM(quantity), 0) FROM assignments WHERE request_id = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, requestID); err != nil {
		return 0, fmt.Errorf("sum assignments: %w", err)
	}
	return total, nil
}

// InsertBatch stores a batch of assignments atomically. A batch comes from a
// single assign action and either lands whole or not at all.
func (r *AssignmentRepository) InsertBatch(ctx context.Context, assignments []models.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const query = `INSERT INTO assignments
(id, request_id, kind, quantity, equipment_id, availability_date, rental_months, buy_vendor, buy_delivery_date, managed_at, created_at)
VALUES (:id, :request_id, :kind, :quantity, :equipment_id, :availability_date, :rental_months, :buy_vendor, :buy_delivery_date, :managed_at, :created_at)`
	now := time.Now().UTC()
	for i := range assignments {
		assignments[i].CreatedAt = now
		if _, err := tx.NamedExecContext(ctx, query, assignments[i]); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}
	return tx.Commit()
}

// UpdateBuyDetails patches vendor and delivery date on a BUY assignment.
// Nil fields keep their stored value.
func (r *AssignmentRepository) UpdateBuyDetails(ctx context.Context, id string, vendor *string, deliveryDate *time.Time) error {
	const query = `UPDATE assignments SET
buy_vendor = COALESCE($1, buy_vendor),
buy_delivery_date = COALESCE($2, buy_delivery_date),
managed_at = $3
WHERE id = $4 AND kind = $5`
	res, err := r.db.ExecContext(ctx, query, vendor, deliveryDate, time.Now().UTC(), id, models.AssignmentKindBuy)
	if err != nil {
		return fmt.Errorf("update buy details: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update buy details: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an assignment, returning sql.ErrNoRows when the id does not
// match one.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM assignments WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
