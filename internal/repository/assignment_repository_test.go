package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
)

func newAssignmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func assignmentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "request_id", "kind", "quantity", "equipment_id",
		"availability_date", "rental_months", "buy_vendor", "buy_delivery_date", "managed_at", "created_at",
		"equipment_internal_id", "equipment_brand", "equipment_model", "equipment_hours",
	})
}

func TestAssignmentRepositoryListByRequest(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	now := time.Now()
	rows := assignmentRows().
		AddRow("as-1", "req-1", "OWN", 1, "eq-1", now, nil, nil, nil, now, now, "EQ-042", "Caterpillar", "320D", 5120.5).
		AddRow("as-2", "req-1", "RENT", 1, nil, nil, 6, nil, nil, now, now, nil, nil, nil, nil)
	mock.ExpectQuery("SELECT a.id, a.request_id").
		WithArgs("req-1").
		WillReturnRows(rows)

	result, err := repo.ListByRequest(context.Background(), "req-1")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, models.AssignmentKindOwn, result[0].Kind)
	require.NotNil(t, result[0].EquipmentInternalID)
	assert.Equal(t, "EQ-042", *result[0].EquipmentInternalID)
	require.NotNil(t, result[1].RentalMonths)
	assert.Equal(t, 6, *result[1].RentalMonths)
}

func TestAssignmentRepositorySumByRequest(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectQuery("SELECT COALESCE").
		WithArgs("req-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))

	total, err := repo.SumByRequest(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestAssignmentRepositoryInsertBatch(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO assignments").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	equipmentID := "eq-1"
	months := 12
	batch := []models.Assignment{
		{ID: "as-1", RequestID: "req-1", Kind: models.AssignmentKindOwn, Quantity: 1, EquipmentID: &equipmentID},
		{ID: "as-2", RequestID: "req-1", Kind: models.AssignmentKindRent, Quantity: 1, RentalMonths: &months},
	}
	require.NoError(t, repo.InsertBatch(context.Background(), batch))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryInsertBatchEmpty(t *testing.T) {
	db, _, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	require.NoError(t, repo.InsertBatch(context.Background(), nil))
}

func TestAssignmentRepositoryUpdateBuyDetails(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	vendor := "Proveedor SRL"
	mock.ExpectExec("UPDATE assignments SET").
		WithArgs(&vendor, nil, sqlmock.AnyArg(), "as-1", models.AssignmentKindBuy).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateBuyDetails(context.Background(), "as-1", &vendor, nil))
}

func TestAssignmentRepositoryUpdateBuyDetailsNotFound(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectExec("UPDATE assignments SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateBuyDetails(context.Background(), "missing", nil, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestAssignmentRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()

	repo := NewAssignmentRepository(db)
	mock.ExpectExec("DELETE FROM assignments").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
