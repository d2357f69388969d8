package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

type assignmentStore interface {
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	SumByRequest(ctx context.Context, requestID string) (int, error)
	InsertBatch(ctx context.Context, assignments []models.Assignment) error
	UpdateBuyDetails(ctx context.Context, id string, vendor *string, deliveryDate *time.Time) error
	Delete(ctx context.Context, id string) error
}

type requestStatusStore interface {
	FindByID(ctx context.Context, id string) (*models.Request, error)
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error
	Delete(ctx context.Context, id string) error
}

type equipmentResolver interface {
	FindByID(ctx context.Context, id string) (*models.Equipment, error)
}

// FulfillmentService records assignments against requests and keeps the
// aggregate status consistent with the assigned quantity sum.
type FulfillmentService struct {
	requests    requestStatusStore
	assignments assignmentStore
	equipment   equipmentResolver
	cache       projectionCache
	logger      *zap.Logger
}

// NewFulfillmentService constructs the service.
func NewFulfillmentService(requests requestStatusStore, assignments assignmentStore, equipment equipmentResolver, cache projectionCache, logger *zap.Logger) *FulfillmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FulfillmentService{
		requests:    requests,
		assignments: assignments,
		equipment:   equipment,
		cache:       cache,
		logger:      logger,
	}
}

// AssignOwn covers part of a request with owned machinery, one assignment of
// quantity 1 per line item. The batch must fit inside the remaining
// unassigned quantity.
func (s *FulfillmentService) AssignOwn(ctx context.Context, requestID string, req dto.AssignOwnRequest) error {
	request, remaining, ok, err := s.loadRemaining(ctx, requestID)
	if err != nil || !ok {
		return err
	}
	if len(req.Items) > remaining {
		return appErrors.Clone(appErrors.ErrValidation, "assignment batch exceeds remaining quantity")
	}

	now := time.Now().UTC()
	batch := make([]models.Assignment, 0, len(req.Items))
	for _, item := range req.Items {
		if _, err := s.equipment.FindByID(ctx, item.EquipmentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown equipment %s", item.EquipmentID))
			}
			return fmt.Errorf("resolve equipment: %w", err)
		}
		availability, err := time.Parse(dateLayout, item.AvailabilityDate)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "availability_date must be YYYY-MM-DD")
		}
		equipmentID := item.EquipmentID
		batch = append(batch, models.Assignment{
			ID:               uuid.NewString(),
			RequestID:        request.ID,
			Kind:             models.AssignmentKindOwn,
			Quantity:         1,
			EquipmentID:      &equipmentID,
			AvailabilityDate: &availability,
			ManagedAt:        now,
		})
	}

	return s.commitBatch(ctx, request, batch, DeriveStatus(request.Quantity, request.Quantity-remaining+len(batch)))
}

// AssignRent covers part of a request with rented units, one assignment of
// quantity 1 per duration value (months).
func (s *FulfillmentService) AssignRent(ctx context.Context, requestID string, req dto.AssignRentRequest) error {
	request, remaining, ok, err := s.loadRemaining(ctx, requestID)
	if err != nil || !ok {
		return err
	}
	if len(req.Durations) > remaining {
		return appErrors.Clone(appErrors.ErrValidation, "assignment batch exceeds remaining quantity")
	}

	now := time.Now().UTC()
	batch := make([]models.Assignment, 0, len(req.Durations))
	for _, months := range req.Durations {
		months := months
		batch = append(batch, models.Assignment{
			ID:           uuid.NewString(),
			RequestID:    request.ID,
			Kind:         models.AssignmentKindRent,
			Quantity:     1,
			RentalMonths: &months,
			ManagedAt:    now,
		})
	}

	return s.commitBatch(ctx, request, batch, DeriveStatus(request.Quantity, request.Quantity-remaining+len(batch)))
}

// AssignBuy covers the whole remaining quantity with a single purchase
// assignment. The buy path never closes a request by itself: the status moves
// to PARTIAL and stays there until MarkCompleted is called.
func (s *FulfillmentService) AssignBuy(ctx context.Context, requestID string) error {
	request, remaining, ok, err := s.loadRemaining(ctx, requestID)
	if err != nil || !ok {
		return err
	}
	if remaining <= 0 {
		return appErrors.Clone(appErrors.ErrConflict, "request is already fully assigned")
	}

	batch := []models.Assignment{{
		ID:        uuid.NewString(),
		RequestID: request.ID,
		Kind:      models.AssignmentKindBuy,
		Quantity:  remaining,
		ManagedAt: time.Now().UTC(),
	}}
	return s.commitBatch(ctx, request, batch, models.RequestStatusPartial)
}

// UpdateBuyDetails patches vendor and delivery date on a BUY assignment.
func (s *FulfillmentService) UpdateBuyDetails(ctx context.Context, assignmentID string, req dto.UpdateBuyDetailsRequest) error {
	var deliveryDate *time.Time
	if req.DeliveryDate != nil {
		parsed, err := time.Parse(dateLayout, *req.DeliveryDate)
		if err != nil {
			return appErrors.Clone(appErrors.ErrValidation, "delivery_date must be YYYY-MM-DD")
		}
		deliveryDate = &parsed
	}
	if err := s.assignments.UpdateBuyDetails(ctx, assignmentID, req.Vendor, deliveryDate); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "buy assignment not found")
		}
		return fmt.Errorf("update buy details: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// MarkCompleted force-closes the request behind an effective row, skipping
// the quantity check. The id may be an assignment id or a request id.
func (s *FulfillmentService) MarkCompleted(ctx context.Context, effectiveID string) error {
	requestID, err := s.resolveRequestID(ctx, effectiveID)
	if err != nil {
		return err
	}
	if _, err := s.requests.FindByID(ctx, requestID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("mark completed on missing request", zap.String("request_id", requestID))
			return nil
		}
		return fmt.Errorf("find request: %w", err)
	}
	if err := s.requests.UpdateStatus(ctx, requestID, models.RequestStatusCompleted); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// ReturnToPending undoes an effective row. An assignment id deletes the
// assignment and re-derives the parent status; a request id deletes the
// request itself, but only while it has no assignments.
func (s *FulfillmentService) ReturnToPending(ctx context.Context, effectiveID string) error {
	assignment, err := s.assignments.FindByID(ctx, effectiveID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("find assignment: %w", err)
	}
	if assignment != nil {
		if err := s.assignments.Delete(ctx, assignment.ID); err != nil {
			return fmt.Errorf("delete assignment: %w", err)
		}
		if err := s.rederiveStatus(ctx, assignment.RequestID); err != nil {
			return err
		}
		s.invalidate(ctx)
		return nil
	}

	request, err := s.requests.FindByID(ctx, effectiveID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("return to pending on missing row", zap.String("id", effectiveID))
			return nil
		}
		return fmt.Errorf("find request: %w", err)
	}
	assigned, err := s.assignments.SumByRequest(ctx, request.ID)
	if err != nil {
		return fmt.Errorf("sum assignments: %w", err)
	}
	if assigned > 0 {
		return appErrors.Clone(appErrors.ErrConflict, "request still has assignments")
	}
	if err := s.requests.Delete(ctx, request.ID); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *FulfillmentService) loadRemaining(ctx context.Context, requestID string) (*models.Request, int, bool, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("assignment on missing request", zap.String("request_id", requestID))
			return nil, 0, false, nil
		}
		return nil, 0, false, fmt.Errorf("find request: %w", err)
	}
	assigned, err := s.assignments.SumByRequest(ctx, requestID)
	if err != nil {
		return nil, 0, false, fmt.Errorf("sum assignments: %w", err)
	}
	return request, request.Quantity - assigned, true, nil
}

func (s *FulfillmentService) commitBatch(ctx context.Context, request *models.Request, batch []models.Assignment, status models.RequestStatus) error {
	if err := s.assignments.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("insert assignments: %w", err)
	}
	if err := s.requests.UpdateStatus(ctx, request.ID, status); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *FulfillmentService) rederiveStatus(ctx context.Context, requestID string) error {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("find request: %w", err)
	}
	assigned, err := s.assignments.SumByRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("sum assignments: %w", err)
	}
	if err := s.requests.UpdateStatus(ctx, requestID, DeriveStatus(request.Quantity, assigned)); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

func (s *FulfillmentService) resolveRequestID(ctx context.Context, effectiveID string) (string, error) {
	assignment, err := s.assignments.FindByID(ctx, effectiveID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return effectiveID, nil
		}
		return "", fmt.Errorf("find assignment: %w", err)
	}
	return assignment.RequestID, nil
}

func (s *FulfillmentService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, projectionCachePattern); err != nil {
		s.logger.Warn("projection cache invalidation failed", zap.Error(err))
	}
}
