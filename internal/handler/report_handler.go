package handler

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/service"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/response"
)

type reportService interface {
	Grouped(ctx context.Context, status string) ([]service.ReportGroup, error)
	Export(ctx context.Context, status, format string) (*dto.ExportResponse, error)
	Download(ctx context.Context, token string) (*os.File, string, error)
}

// ReportHandler exposes the grouped reports and their exports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler builds a new handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Grouped godoc
// @Summary Status report grouped by operating unit
// @Tags Reports
// @Produce json
// @Param status path string true "Effective status"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/{status} [get]
func (h *ReportHandler) Grouped(c *gin.Context) {
	groups, err := h.service.Grouped(c.Request.Context(), c.Param("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, groups, nil)
}

// Export godoc
// @Summary Export a status report
// @Tags Reports
// @Accept json
// @Produce json
// @Param status path string true "Effective status"
// @Param payload body dto.ExportRequest false "Export options"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /reports/{status}/export [post]
func (h *ReportHandler) Export(c *gin.Context) {
	var req dto.ExportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
			return
		}
	}
	result, err := h.service.Export(c.Request.Context(), c.Param("status"), req.Format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download a generated export
// @Tags Reports
// @Produce application/octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /export/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	file, filename, err := h.service.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, http.StatusInternalServerError, "failed to read export"))
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", file, nil)
}
