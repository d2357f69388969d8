package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
)

type lookupRepoStub struct {
	units      map[string]string
	categories map[string]string
}

func newLookupRepoStub() *lookupRepoStub {
	return &lookupRepoStub{units: make(map[string]string), categories: make(map[string]string)}
}

func (s *lookupRepoStub) ListUnits(ctx context.Context) ([]models.OperatingUnit, error) {
	result := make([]models.OperatingUnit, 0, len(s.units))
	for id, name := range s.units {
		result = append(result, models.OperatingUnit{ID: id, Name: name})
	}
	return result, nil
}

func (s *lookupRepoStub) InsertUnit(ctx context.Context, unit *models.OperatingUnit) error {
	s.units[unit.ID] = unit.Name
	return nil
}

func (s *lookupRepoStub) RenameUnit(ctx context.Context, id, name string) error {
	if _, ok := s.units[id]; !ok {
		return sql.ErrNoRows
	}
	s.units[id] = name
	return nil
}

func (s *lookupRepoStub) DeleteUnit(ctx context.Context, id string) error {
	if _, ok := s.units[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.units, id)
	return nil
}

func (s *lookupRepoStub) ListCategories(ctx context.Context) ([]models.Category, error) {
	result := make([]models.Category, 0, len(s.categories))
	for id, name := range s.categories {
		result = append(result, models.Category{ID: id, Name: name})
	}
	return result, nil
}

func (s *lookupRepoStub) InsertCategory(ctx context.Context, category *models.Category) error {
	s.categories[category.ID] = category.Name
	return nil
}

func (s *lookupRepoStub) RenameCategory(ctx context.Context, id, name string) error {
	if _, ok := s.categories[id]; !ok {
		return sql.ErrNoRows
	}
	s.categories[id] = name
	return nil
}

func (s *lookupRepoStub) DeleteCategory(ctx context.Context, id string) error {
	if _, ok := s.categories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.categories, id)
	return nil
}

type equipmentCatalogStub struct {
	items []models.Equipment
}

func (s *equipmentCatalogStub) List(ctx context.Context) ([]models.Equipment, error) {
	return s.items, nil
}

func TestCreateUnitTrimsName(t *testing.T) {
	repo := newLookupRepoStub()
	svc := NewLookupService(repo, &equipmentCatalogStub{}, nil, nil)

	unit, err := svc.CreateUnit(context.Background(), dto.CreateLookupRequest{Name: "  Obra Norte  "})

	require.NoError(t, err)
	assert.Equal(t, "Obra Norte", unit.Name)
	assert.Equal(t, "Obra Norte", repo.units[unit.ID])
}

func TestCreateUnitRejectsBlankName(t *testing.T) {
	svc := NewLookupService(newLookupRepoStub(), &equipmentCatalogStub{}, nil, nil)

	_, err := svc.CreateUnit(context.Background(), dto.CreateLookupRequest{Name: "   "})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestRenameUnitNotFound(t *testing.T) {
	svc := NewLookupService(newLookupRepoStub(), &equipmentCatalogStub{}, nil, nil)

	err := svc.RenameUnit(context.Background(), "ghost", dto.RenameLookupRequest{Name: "Obra Sur"})

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestCategoryRoundTrip(t *testing.T) {
	repo := newLookupRepoStub()
	svc := NewLookupService(repo, &equipmentCatalogStub{}, nil, nil)

	category, err := svc.CreateCategory(context.Background(), dto.CreateLookupRequest{Name: "Izaje"})
	require.NoError(t, err)

	require.NoError(t, svc.RenameCategory(context.Background(), category.ID, dto.RenameLookupRequest{Name: "Izaje y Grúas"}))
	assert.Equal(t, "Izaje y Grúas", repo.categories[category.ID])

	require.NoError(t, svc.DeleteCategory(context.Background(), category.ID))
	assert.Empty(t, repo.categories)
}

func TestListEquipment(t *testing.T) {
	catalog := &equipmentCatalogStub{items: []models.Equipment{{ID: "eq-1", InternalID: "EQ-001"}}}
	svc := NewLookupService(newLookupRepoStub(), catalog, nil, nil)

	items, err := svc.ListEquipment(context.Background())

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "EQ-001", items[0].InternalID)
}
