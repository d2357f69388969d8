package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/response"
)

type fulfillmentService interface {
	AssignOwn(ctx context.Context, requestID string, req dto.AssignOwnRequest) error
	AssignRent(ctx context.Context, requestID string, req dto.AssignRentRequest) error
	AssignBuy(ctx context.Context, requestID string) error
	UpdateBuyDetails(ctx context.Context, assignmentID string, req dto.UpdateBuyDetailsRequest) error
	MarkCompleted(ctx context.Context, effectiveID string) error
	ReturnToPending(ctx context.Context, effectiveID string) error
}

// FulfillmentHandler exposes the assignment endpoints.
type FulfillmentHandler struct {
	service fulfillmentService
}

// NewFulfillmentHandler builds a new handler.
func NewFulfillmentHandler(service fulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{service: service}
}

// AssignOwn godoc
// @Summary Assign owned machinery to a request
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param payload body dto.AssignOwnRequest true "Own line items"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /requests/{id}/assign/own [post]
func (h *FulfillmentHandler) AssignOwn(c *gin.Context) {
	var req dto.AssignOwnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	if err := h.service.AssignOwn(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignRent godoc
// @Summary Assign rented units to a request
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Request id"
// @Param payload body dto.AssignRentRequest true "Rental durations in months"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /requests/{id}/assign/rent [post]
func (h *FulfillmentHandler) AssignRent(c *gin.Context) {
	var req dto.AssignRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	if err := h.service.AssignRent(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// AssignBuy godoc
// @Summary Cover the remaining quantity with a purchase
// @Tags Fulfillment
// @Produce json
// @Param id path string true "Request id"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /requests/{id}/assign/buy [post]
func (h *FulfillmentHandler) AssignBuy(c *gin.Context) {
	if err := h.service.AssignBuy(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UpdateBuyDetails godoc
// @Summary Patch vendor/delivery on a purchase assignment
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Assignment id"
// @Param payload body dto.UpdateBuyDetailsRequest true "Buy details"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /assignments/{id}/buy [patch]
func (h *FulfillmentHandler) UpdateBuyDetails(c *gin.Context) {
	var req dto.UpdateBuyDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid buy payload"))
		return
	}
	if err := h.service.UpdateBuyDetails(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// MarkCompleted godoc
// @Summary Manually close the request behind an effective row
// @Tags Fulfillment
// @Produce json
// @Param id path string true "Effective row id"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /effective/{id}/complete [post]
func (h *FulfillmentHandler) MarkCompleted(c *gin.Context) {
	if err := h.service.MarkCompleted(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ReturnToPending godoc
// @Summary Undo an effective row
// @Tags Fulfillment
// @Produce json
// @Param id path string true "Effective row id"
// @Success 204 "No Content"
// @Security BearerAuth
// @Router /effective/{id} [delete]
func (h *FulfillmentHandler) ReturnToPending(c *gin.Context) {
	if err := h.service.ReturnToPending(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
