package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

const (
	projectionCacheKey     = "projection:effective"
	projectionCachePattern = "projection:*"
)

type requestStore interface {
	List(ctx context.Context) ([]models.Request, error)
	FindByID(ctx context.Context, id string) (*models.Request, error)
	Insert(ctx context.Context, req *models.Request) error
	UpdateFields(ctx context.Context, req *models.Request) error
	Delete(ctx context.Context, id string) error
}

type assignmentLister interface {
	ListAll(ctx context.Context) ([]models.Assignment, error)
	ListByRequest(ctx context.Context, requestID string) ([]models.Assignment, error)
}

type projectionCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// RequestService manages the request lifecycle and serves the flattened
// effective-request projection.
type RequestService struct {
	requests    requestStore
	assignments assignmentLister
	cache       projectionCache
	cacheTTL    time.Duration
	metrics     *MetricsService
	logger      *zap.Logger
}

// WithMetrics attaches projection instrumentation.
func (s *RequestService) WithMetrics(metrics *MetricsService) *RequestService {
	s.metrics = metrics
	return s
}

// NewRequestService constructs the service.
func NewRequestService(requests requestStore, assignments assignmentLister, cache projectionCache, cacheTTL time.Duration, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		requests:    requests,
		assignments: assignments,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Create files a new request in PENDING state.
func (s *RequestService) Create(ctx context.Context, req dto.CreateRequestRequest) (*models.Request, error) {
	needDate, err := time.Parse(dateLayout, req.NeedDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "need_date must be YYYY-MM-DD")
	}
	requestDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.RequestDate != "" {
		requestDate, err = time.Parse(dateLayout, req.RequestDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "request_date must be YYYY-MM-DD")
		}
	}

	record := &models.Request{
		ID:              uuid.NewString(),
		RequestDate:     requestDate,
		OperatingUnitID: &req.OperatingUnitID,
		CategoryID:      &req.CategoryID,
		Description:     strings.TrimSpace(req.Description),
		Capacity:        strings.TrimSpace(req.Capacity),
		Quantity:        req.Quantity,
		NeedDate:        needDate,
		Comments:        req.Comments,
		Status:          models.RequestStatusPending,
	}
	if err := s.requests.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	s.invalidateProjection(ctx)
	return record, nil
}

// Update edits a request that is still fully unassigned. Partially or fully
// fulfilled requests are frozen.
func (s *RequestService) Update(ctx context.Context, id string, req dto.UpdateRequestRequest) (*models.Request, error) {
	record, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	if record.Status != models.RequestStatusPending {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only pending requests can be edited")
	}

	if req.OperatingUnitID != nil {
		record.OperatingUnitID = req.OperatingUnitID
	}
	if req.CategoryID != nil {
		record.CategoryID = req.CategoryID
	}
	if req.Description != nil {
		record.Description = strings.TrimSpace(*req.Description)
	}
	if req.Capacity != nil {
		record.Capacity = strings.TrimSpace(*req.Capacity)
	}
	if req.Quantity != nil {
		record.Quantity = *req.Quantity
	}
	if req.NeedDate != nil {
		needDate, err := time.Parse(dateLayout, *req.NeedDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "need_date must be YYYY-MM-DD")
		}
		record.NeedDate = needDate
	}
	if req.Comments != nil {
		record.Comments = *req.Comments
	}

	if err := s.requests.UpdateFields(ctx, record); err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	s.invalidateProjection(ctx)
	return record, nil
}

// Delete removes a request that has no assignments yet.
func (s *RequestService) Delete(ctx context.Context, id string) error {
	record, err := s.requests.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("find request: %w", err)
	}
	if record.Status != models.RequestStatusPending {
		return appErrors.Clone(appErrors.ErrConflict, "only pending requests can be deleted")
	}
	if err := s.requests.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	s.invalidateProjection(ctx)
	return nil
}

// List returns the filtered effective-request projection.
func (s *RequestService) List(ctx context.Context, query dto.ListRequestsQuery) ([]models.EffectiveRequest, error) {
	rows, err := s.Projection(ctx)
	if err != nil {
		return nil, err
	}

	status := models.EffectiveStatus(strings.ToUpper(strings.TrimSpace(query.Status)))
	search := strings.ToLower(strings.TrimSpace(query.Search))

	filtered := make([]models.EffectiveRequest, 0, len(rows))
	for _, row := range rows {
		if query.Status != "" && row.Status != status {
			continue
		}
		if query.CategoryID != "" && row.CategoryID != query.CategoryID {
			continue
		}
		if search != "" && !matchesSearch(row, search) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered, nil
}

// Stats returns the dashboard counters derived from the projection.
func (s *RequestService) Stats(ctx context.Context) (models.DashboardStats, error) {
	rows, err := s.Projection(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	return Stats(rows), nil
}

// Projection returns the full flattened view, served from cache when warm
// and rebuilt from storage otherwise.
func (s *RequestService) Projection(ctx context.Context) ([]models.EffectiveRequest, error) {
	if s.cache != nil {
		var cached []models.EffectiveRequest
		if err := s.cache.Get(ctx, projectionCacheKey, &cached); err == nil {
			return cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("projection cache read failed", zap.Error(err))
		}
	}

	started := time.Now()
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load requests: %w", err)
	}
	assignments, err := s.assignments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}

	rows := Project(requests, assignments)
	s.metrics.ObserveProjectionRebuild(time.Since(started))
	if s.cache != nil {
		if err := s.cache.Set(ctx, projectionCacheKey, rows, s.cacheTTL); err != nil {
			s.logger.Warn("projection cache write failed", zap.Error(err))
		}
	}
	return rows, nil
}

func (s *RequestService) invalidateProjection(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, projectionCachePattern); err != nil {
		s.logger.Warn("projection cache invalidation failed", zap.Error(err))
	}
}

func matchesSearch(row models.EffectiveRequest, needle string) bool {
	for _, hay := range []string{row.Description, row.Capacity, row.Comments, row.OperatingUnitName, row.CategoryName} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}
