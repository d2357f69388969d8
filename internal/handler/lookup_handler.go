package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/response"
)

type lookupService interface {
	ListUnits(ctx context.Context) ([]models.OperatingUnit, error)
	CreateUnit(ctx context.Context, req dto.CreateLookupRequest) (*models.OperatingUnit, error)
	RenameUnit(ctx context.Context, id string, req dto.RenameLookupRequest) error
	DeleteUnit(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req dto.CreateLookupRequest) (*models.Category, error)
	RenameCategory(ctx context.Context, id string, req dto.RenameLookupRequest) error
	DeleteCategory(ctx context.Context, id string) error
	ListEquipment(ctx context.Context) ([]models.Equipment, error)
}

// LookupHandler exposes operating units, categories and the equipment catalog.
type LookupHandler struct {
	service lookupService
}

// NewLookupHandler builds a new handler.
func NewLookupHandler(service lookupService) *LookupHandler {
	return &LookupHandler{service: service}
}

// ListUnits godoc
// @Summary List operating units
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /units [get]
func (h *LookupHandler) ListUnits(c *gin.Context) {
	units, err := h.service.ListUnits(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, units, nil)
}

// CreateUnit godoc
// @Summary Add an operating unit
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body dto.CreateLookupRequest true "Unit payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /units [post]
func (h *LookupHandler) CreateUnit(c *gin.Context) {
	var req dto.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unit payload"))
		return
	}
	unit, err := h.service.CreateUnit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, unit)
}

// RenameUnit godoc
// @Summary Rename an operating unit
// @Tags Lookups
// @Accept json
// @Produce json
// @Param id path string true "Unit id"
// @Param payload body dto.RenameLookupRequest true "Rename payload"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /units/{id} [put]
func (h *LookupHandler) RenameUnit(c *gin.Context) {
	var req dto.RenameLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rename payload"))
		return
	}
	if err := h.service.RenameUnit(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteUnit godoc
// @Summary Delete an operating unit
// @Tags Lookups
// @Produce json
// @Param id path string true "Unit id"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /units/{id} [delete]
func (h *LookupHandler) DeleteUnit(c *gin.Context) {
	if err := h.service.DeleteUnit(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCategories godoc
// @Summary List equipment categories
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /categories [get]
func (h *LookupHandler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories, nil)
}

// CreateCategory godoc
// @Summary Add an equipment category
// @Tags Lookups
// @Accept json
// @Produce json
// @Param payload body dto.CreateLookupRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /categories [post]
func (h *LookupHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid category payload"))
		return
	}
	category, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, category)
}

// RenameCategory godoc
// @Summary Rename an equipment category
// @Tags Lookups
// @Accept json
// @Produce json
// @Param id path string true "Category id"
// @Param payload body dto.RenameLookupRequest true "Rename payload"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /categories/{id} [put]
func (h *LookupHandler) RenameCategory(c *gin.Context) {
	var req dto.RenameLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid rename payload"))
		return
	}
	if err := h.service.RenameCategory(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteCategory godoc
// @Summary Delete an equipment category
// @Tags Lookups
// @Produce json
// @Param id path string true "Category id"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /categories/{id} [delete]
func (h *LookupHandler) DeleteCategory(c *gin.Context) {
	if err := h.service.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListEquipment godoc
// @Summary List the owned-machinery catalog
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /equipment [get]
func (h *LookupHandler) ListEquipment(c *gin.Context) {
	items, err := h.service.ListEquipment(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, nil)
}
