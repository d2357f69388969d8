package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

type lookupStore interface {
	ListUnits(ctx context.Context) ([]models.OperatingUnit, error)
	InsertUnit(ctx context.Context, unit *models.OperatingUnit) error
	RenameUnit(ctx context.Context, id, name string) error
	DeleteUnit(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	InsertCategory(ctx context.Context, category *models.Category) error
	RenameCategory(ctx context.Context, id, name string) error
	DeleteCategory(ctx context.Context, id string) error
}

type equipmentCatalog interface {
	List(ctx context.Context) ([]models.Equipment, error)
}

// LookupService manages the operating-unit and category lists and exposes
// the read-only equipment catalog.
type LookupService struct {
	repo      lookupStore
	equipment equipmentCatalog
	cache     projectionCache
	logger    *zap.Logger
}

// NewLookupService constructs the service.
func NewLookupService(repo lookupStore, equipment equipmentCatalog, cache projectionCache, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{repo: repo, equipment: equipment, cache: cache, logger: logger}
}

// ListEquipment returns the owned-machinery catalog.
func (s *LookupService) ListEquipment(ctx context.Context) ([]models.Equipment, error) {
	return s.equipment.List(ctx)
}

// ListUnits returns all operating units.
func (s *LookupService) ListUnits(ctx context.Context) ([]models.OperatingUnit, error) {
	return s.repo.ListUnits(ctx)
}

// CreateUnit adds an operating unit.
func (s *LookupService) CreateUnit(ctx context.Context, req dto.CreateLookupRequest) (*models.OperatingUnit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	unit := &models.OperatingUnit{ID: uuid.NewString(), Name: name}
	if err := s.repo.InsertUnit(ctx, unit); err != nil {
		return nil, fmt.Errorf("create operating unit: %w", err)
	}
	s.invalidate(ctx)
	return unit, nil
}

// RenameUnit changes an operating unit's display name.
func (s *LookupService) RenameUnit(ctx context.Context, id string, req dto.RenameLookupRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if err := s.repo.RenameUnit(ctx, id, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("rename operating unit: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteUnit removes an operating unit.
func (s *LookupService) DeleteUnit(ctx context.Context, id string) error {
	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("delete operating unit: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// ListCategories returns all equipment categories.
func (s *LookupService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory adds an equipment category.
func (s *LookupService) CreateCategory(ctx context.Context, req dto.CreateLookupRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	category := &models.Category{ID: uuid.NewString(), Name: name}
	if err := s.repo.InsertCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidate(ctx)
	return category, nil
}

// RenameCategory changes a category's display name.
func (s *LookupService) RenameCategory(ctx context.Context, id string, req dto.RenameLookupRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if err := s.repo.RenameCategory(ctx, id, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("rename category: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

// DeleteCategory removes an equipment category.
func (s *LookupService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	s.invalidate(ctx)
	return nil
}

func (s *LookupService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Unit/category names are denormalized into the projection.
	if err := s.cache.DeleteByPattern(ctx, projectionCachePattern); err != nil {
		s.logger.Warn("projection cache invalidation failed", zap.Error(err))
	}
}
