package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

type requestRepoStub struct {
	items    map[string]*models.Request
	statuses map[string]models.RequestStatus
	deleted  []string
	err      error
}

func newRequestRepoStub(requests ...*models.Request) *requestRepoStub {
	stub := &requestRepoStub{
		items:    make(map[string]*models.Request),
		statuses: make(map[string]models.RequestStatus),
	}
	for _, req := range requests {
		stub.items[req.ID] = req
	}
	return stub
}

func (s *requestRepoStub) List(ctx context.Context) ([]models.Request, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]models.Request, 0, len(s.items))
	for _, req := range s.items {
		result = append(result, *req)
	}
	return result, nil
}

func (s *requestRepoStub) FindByID(ctx context.Context, id string) (*models.Request, error) {
	if s.err != nil {
		return nil, s.err
	}
	req, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *req
	return &copied, nil
}

func (s *requestRepoStub) Insert(ctx context.Context, req *models.Request) error {
	if s.err != nil {
		return s.err
	}
	s.items[req.ID] = req
	return nil
}

func (s *requestRepoStub) UpdateFields(ctx context.Context, req *models.Request) error {
	if s.err != nil {
		return s.err
	}
	s.items[req.ID] = req
	return nil
}

func (s *requestRepoStub) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error {
	if s.err != nil {
		return s.err
	}
	if req, ok := s.items[id]; ok {
		req.Status = status
	}
	s.statuses[id] = status
	return nil
}

func (s *requestRepoStub) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	delete(s.items, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type assignmentRepoStub struct {
	items map[string]*models.Assignment
	err   error
}

func newAssignmentRepoStub(assignments ...*models.Assignment) *assignmentRepoStub {
	stub := &assignmentRepoStub{items: make(map[string]*models.Assignment)}
	for _, a := range assignments {
		stub.items[a.ID] = a
	}
	return stub
}

func (s *assignmentRepoStub) ListAll(ctx context.Context) ([]models.Assignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]models.Assignment, 0, len(s.items))
	for _, a := range s.items {
		result = append(result, *a)
	}
	return result, nil
}

func (s *assignmentRepoStub) ListByRequest(ctx context.Context, requestID string) ([]models.Assignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	var result []models.Assignment
	for _, a := range s.items {
		if a.RequestID == requestID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (s *assignmentRepoStub) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	if s.err != nil {
		return nil, s.err
	}
	a, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *a
	return &copied, nil
}

func (s *assignmentRepoStub) SumByRequest(ctx context.Context, requestID string) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	total := 0
	for _, a := range s.items {
		if a.RequestID == requestID {
			total += a.Quantity
		}
	}
	return total, nil
}

func (s *assignmentRepoStub) InsertBatch(ctx context.Context, assignments []models.Assignment) error {
	if s.err != nil {
		return s.err
	}
	for i := range assignments {
		copied := assignments[i]
		s.items[copied.ID] = &copied
	}
	return nil
}

func (s *assignmentRepoStub) UpdateBuyDetails(ctx context.Context, id string, vendor *string, deliveryDate *time.Time) error {
	if s.err != nil {
		return s.err
	}
	a, ok := s.items[id]
	if !ok || a.Kind != models.AssignmentKindBuy {
		return sql.ErrNoRows
	}
	if vendor != nil {
		a.BuyVendor = vendor
	}
	if deliveryDate != nil {
		a.BuyDeliveryDate = deliveryDate
	}
	return nil
}

func (s *assignmentRepoStub) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.items, id)
	return nil
}

type equipmentRepoStub struct {
	items map[string]*models.Equipment
}

func (s *equipmentRepoStub) FindByID(ctx context.Context, id string) (*models.Equipment, error) {
	if eq, ok := s.items[id]; ok {
		return eq, nil
	}
	return nil, sql.ErrNoRows
}

func stubEquipment(ids ...string) *equipmentRepoStub {
	stub := &equipmentRepoStub{items: make(map[string]*models.Equipment)}
	for _, id := range ids {
		stub.items[id] = &models.Equipment{ID: id, InternalID: "EQ-" + id}
	}
	return stub
}

func pendingRequest(id string, quantity int) *models.Request {
	return &models.Request{
		ID:       id,
		Quantity: quantity,
		NeedDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Status:   models.RequestStatusPending,
	}
}

func TestAssignOwnPartialBatch(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 3))
	assignments := newAssignmentRepoStub()
	svc := NewFulfillmentService(requests, assignments, stubEquipment("eq-1", "eq-2"), nil, nil)

	err := svc.AssignOwn(context.Background(), "req-1", dto.AssignOwnRequest{Items: []dto.OwnLineItem{
		{EquipmentID: "eq-1", AvailabilityDate: "2026-04-01"},
		{EquipmentID: "eq-2", AvailabilityDate: "2026-04-10"},
	}})

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPartial, requests.statuses["req-1"])
	total, _ := assignments.SumByRequest(context.Background(), "req-1")
	assert.Equal(t, 2, total)
}

func TestAssignOwnCompletingBatch(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 2))
	assignments := newAssignmentRepoStub()
	svc := NewFulfillmentService(requests, assignments, stubEquipment("eq-1", "eq-2"), nil, nil)

	err := svc.AssignOwn(context.Background(), "req-1", dto.AssignOwnRequest{Items: []dto.OwnLineItem{
		{EquipmentID: "eq-1", AvailabilityDate: "2026-04-01"},
		{EquipmentID: "eq-2", AvailabilityDate: "2026-04-01"},
	}})

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, requests.statuses["req-1"])
}

func TestAssignOwnRejectsOversizedBatch(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 1))
	svc := NewFulfillmentService(requests, newAssignmentRepoStub(), stubEquipment("eq-1", "eq-2"), nil, nil)

	err := svc.AssignOwn(context.Background(), "req-1", dto.AssignOwnRequest{Items: []dto.OwnLineItem{
		{EquipmentID: "eq-1", AvailabilityDate: "2026-04-01"},
		{EquipmentID: "eq-2", AvailabilityDate: "2026-04-01"},
	}})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAssignOwnUnknownEquipment(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 1))
	svc := NewFulfillmentService(requests, newAssignmentRepoStub(), stubEquipment(), nil, nil)

	err := svc.AssignOwn(context.Background(), "req-1", dto.AssignOwnRequest{Items: []dto.OwnLineItem{
		{EquipmentID: "ghost", AvailabilityDate: "2026-04-01"},
	}})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestAssignOwnMissingRequestIsNoOp(t *testing.T) {
	requests := newRequestRepoStub()
	assignments := newAssignmentRepoStub()
	svc := NewFulfillmentService(requests, assignments, stubEquipment("eq-1"), nil, nil)

	err := svc.AssignOwn(context.Background(), "ghost", dto.AssignOwnRequest{Items: []dto.OwnLineItem{
		{EquipmentID: "eq-1", AvailabilityDate: "2026-04-01"},
	}})

	require.NoError(t, err)
	assert.Empty(t, assignments.items)
}

func TestAssignRentCompletesRemainder(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 3))
	months := 6
	assignments := newAssignmentRepoStub(
		&models.Assignment{ID: "as-1", RequestID: "req-1", Kind: models.AssignmentKindOwn, Quantity: 1},
		&models.Assignment{ID: "as-2", RequestID: "req-1", Kind: models.AssignmentKindRent, Quantity: 1, RentalMonths: &months},
	)
	svc := NewFulfillmentService(requests, assignments, stubEquipment(), nil, nil)

	err := svc.AssignRent(context.Background(), "req-1", dto.AssignRentRequest{Durations: []int{12}})

	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, requests.statuses["req-1"])
}

func TestAssignBuyCoversRemainingAndStaysPartial(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 5))
	assignments := newAssignmentRepoStub()
	svc := NewFulfillmentService(requests, assignments, stubEquipment(), nil, nil)

	require.NoError(t, svc.AssignBuy(context.Background(), "req-1"))

	assert.Equal(t, models.RequestStatusPartial, requests.statuses["req-1"])
	var buy *models.Assignment
	for _, a := range assignments.items {
		buy = a
	}
	require.NotNil(t, buy)
	assert.Equal(t, models.AssignmentKindBuy, buy.Kind)
	assert.Equal(t, 5, buy.Quantity)
}

func TestAssignBuyRejectsFullyAssignedRequest(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 1))
	assignments := newAssignmentRepoStub(
		&models.Assignment{ID: "as-1", RequestID: "req-1", Kind: models.AssignmentKindOwn, Quantity: 1},
	)
	svc := NewFulfillmentService(requests, assignments, stubEquipment(), nil, nil)

	err := svc.AssignBuy(context.Background(), "req-1")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
}

func TestUpdateBuyDetailsNotFound(t *testing.T) {
	svc := NewFulfillmentService(newRequestRepoStub(), newAssignmentRepoStub(), stubEquipment(), nil, nil)

	vendor := "Proveedor SRL"
	err := svc.UpdateBuyDetails(context.Background(), "ghost", dto.UpdateBuyDetailsRequest{Vendor: &vendor})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestMarkCompletedResolvesAssignmentToParent(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 5))
	assignments := newAssignmentRepoStub(
		&models.Assignment{ID: "as-1", RequestID: "req-1", Kind: models.AssignmentKindBuy, Quantity: 5},
	)
	svc := NewFulfillmentService(requests, assignments, stubEquipment(), nil, nil)

	require.NoError(t, svc.MarkCompleted(context.Background(), "as-1"))
	assert.Equal(t, models.RequestStatusCompleted, requests.statuses["req-1"])
}

func TestMarkCompletedMissingRequestIsNoOp(t *testing.T) {
	requests := newRequestRepoStub()
	svc := NewFulfillmentService(requests, newAssignmentRepoStub(), stubEquipment(), nil, nil)

	require.NoError(t, svc.MarkCompleted(context.Background(), "ghost"))
	assert.Empty(t, requests.statuses)
}

func TestReturnToPendingDeletesAssignmentAndRederives(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 2))
	requests.items["req-1"].Status = models.RequestStatusCompleted
	assignments := newAssignmentRepoStub(
		&models.Assignment{ID: "as-1", RequestID: "req-1", Kind: models.AssignmentKindOwn, Quantity: 1},
		&models.Assignment{ID: "as-2", RequestID: "req-1", Kind: models.AssignmentKindOwn, Quantity: 1},
	)
	svc := NewFulfillmentService(requests, assignments, stubEquipment(), nil, nil)

	require.NoError(t, svc.ReturnToPending(context.Background(), "as-2"))

	assert.Equal(t, models.RequestStatusPartial, requests.statuses["req-1"])
	_, err := assignments.FindByID(context.Background(), "as-2")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestReturnToPendingDeletesUnassignedRequest(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 2))
	svc := NewFulfillmentService(requests, newAssignmentRepoStub(), stubEquipment(), nil, nil)

	require.NoError(t, svc.ReturnToPending(context.Background(), "req-1"))
	assert.Contains(t, requests.deleted, "req-1")
}

func TestReturnToPendingKeepsRequestWithAssignments(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 2))
	assignments := newAssignmentRepoStub(
		&models.Assignment{ID: "as-1", RequestID: "req-1", Kind: models.AssignmentKindOwn, Quantity: 1},
	)
	svc := NewFulfillmentService(requests, assignments, stubEquipment(), nil, nil)

	err := svc.ReturnToPending(context.Background(), "req-1")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Empty(t, requests.deleted)
}

func TestAssignThenReturnRestoresRemainder(t *testing.T) {
	requests := newRequestRepoStub(pendingRequest("req-1", 3))
	assignments := newAssignmentRepoStub()
	svc := NewFulfillmentService(requests, assignments, stubEquipment("eq-1"), nil, nil)

	require.NoError(t, svc.AssignOwn(context.Background(), "req-1", dto.AssignOwnRequest{Items: []dto.OwnLineItem{
		{EquipmentID: "eq-1", AvailabilityDate: "2026-04-01"},
	}}))
	var assignedID string
	for id := range assignments.items {
		assignedID = id
	}
	require.NoError(t, svc.ReturnToPending(context.Background(), assignedID))

	assert.Equal(t, models.RequestStatusPending, requests.statuses["req-1"])
	total, _ := assignments.SumByRequest(context.Background(), "req-1")
	assert.Equal(t, 0, total)
}
