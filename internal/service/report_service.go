package service

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/dto"
	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/export"
)

// NoOperatingUnit is the bucket name for rows whose request lost its
// operating unit reference.
const NoOperatingUnit = "Sin Unidad Operativa"

const lateDeliveryWarning = "¡ALERTA: entrega posterior a la fecha de necesidad!"

var reportTitles = map[models.EffectiveStatus]string{
	models.EffectiveStatusPending:   "Pendientes",
	models.EffectiveStatusOwn:       "Equipos Propios",
	models.EffectiveStatusRent:      "Alquileres",
	models.EffectiveStatusBuy:       "Compras",
	models.EffectiveStatusCompleted: "Completados",
}

var reportHeaders = map[models.EffectiveStatus][]string{
	models.EffectiveStatusPending:   {"Descripción", "Capacidad", "Cantidad", "Fecha Nec.", "Solicitud", "Comentarios"},
	models.EffectiveStatusOwn:       {"Descripción", "Cant", "Fecha Nec.", "Interno", "Marca", "Modelo", "Disp."},
	models.EffectiveStatusRent:      {"Descripción", "Capacidad", "Cantidad", "Fecha Nec.", "Plazo (Meses)", "Comentarios"},
	models.EffectiveStatusBuy:       {"Descripción", "Proveedor", "Fecha Entrega", "Cant", "Fecha Nec.", "Comentarios / Alertas"},
	models.EffectiveStatusCompleted: {"Descripción", "Origen", "Detalle", "Cant", "Fecha Cierre"},
}

// ReportGroup is one operating-unit bucket of a status report.
type ReportGroup struct {
	UnitName string                    `json:"unit_name"`
	Rows     []models.EffectiveRequest `json:"rows"`
}

type projectionProvider interface {
	Projection(ctx context.Context) ([]models.EffectiveRequest, error)
}

type exportRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type exportStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
}

type downloadSigner interface {
	Generate(exportID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error)
}

// ReportService groups the projection by operating unit and renders the
// per-status report exports.
type ReportService struct {
	projection projectionProvider
	renderers  map[string]exportRenderer
	storage    exportStorage
	signer     downloadSigner
	metrics    *MetricsService
	logger     *zap.Logger
}

// WithMetrics attaches export instrumentation.
func (s *ReportService) WithMetrics(metrics *MetricsService) *ReportService {
	s.metrics = metrics
	return s
}

// NewReportService constructs the service with PDF and CSV renderers.
func NewReportService(projection projectionProvider, storage exportStorage, signer downloadSigner, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		projection: projection,
		renderers: map[string]exportRenderer{
			"pdf": export.NewPDFExporter(),
			"csv": export.NewCSVExporter(),
		},
		storage: storage,
		signer:  signer,
		logger:  logger,
	}
}

// Grouped filters the projection to one status and buckets the rows by
// operating-unit name, alphabetically, with the unassigned bucket last.
func (s *ReportService) Grouped(ctx context.Context, status string) ([]ReportGroup, error) {
	effective, ok := parseReportStatus(status)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown report status")
	}
	rows, err := s.projection.Projection(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]models.EffectiveRequest)
	for _, row := range rows {
		if row.Status != effective {
			continue
		}
		name := row.OperatingUnitName
		if strings.TrimSpace(name) == "" {
			name = NoOperatingUnit
		}
		buckets[name] = append(buckets[name], row)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		if name != NoOperatingUnit {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := buckets[NoOperatingUnit]; ok {
		names = append(names, NoOperatingUnit)
	}

	groups := make([]ReportGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, ReportGroup{UnitName: name, Rows: buckets[name]})
	}
	return groups, nil
}

// Export renders a status report to the requested format, stores the file
// and returns a signed download link.
func (s *ReportService) Export(ctx context.Context, status, format string) (*dto.ExportResponse, error) {
	if format == "" {
		format = "pdf"
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
	effective, ok := parseReportStatus(status)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown report status")
	}
	groups, err := s.Grouped(ctx, status)
	if err != nil {
		return nil, err
	}

	dataset := buildDataset(effective, groups)
	payload, err := renderer.Render(dataset)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	filename := fmt.Sprintf("Reporte_%s_%s.%s",
		strings.ReplaceAll(dataset.Title, " ", "_"),
		time.Now().Format("02-01-2006"),
		format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, fmt.Errorf("store report: %w", err)
	}

	token, expiresAt, err := s.signer.Generate(uuid.NewString(), relPath)
	if err != nil {
		return nil, fmt.Errorf("sign download link: %w", err)
	}
	s.metrics.ObserveExport(string(effective), format)
	s.logger.Info("report exported",
		zap.String("status", string(effective)),
		zap.String("format", format),
		zap.String("filename", filename))

	return &dto.ExportResponse{
		URL:       "/export/" + token,
		Filename:  filename,
		Format:    format,
		ExpiresAt: expiresAt,
	}, nil
}

// Download resolves a signed token back to the stored file.
func (s *ReportService) Download(ctx context.Context, token string) (*os.File, string, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired download link")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
	}
	return file, relPath, nil
}

func parseReportStatus(status string) (models.EffectiveStatus, bool) {
	effective := models.EffectiveStatus(strings.ToUpper(strings.TrimSpace(status)))
	_, ok := reportTitles[effective]
	return effective, ok
}

func buildDataset(status models.EffectiveStatus, groups []ReportGroup) export.Dataset {
	dataset := export.Dataset{
		Title:   reportTitles[status],
		Headers: reportHeaders[status],
	}
	for _, group := range groups {
		section := export.Section{Name: group.UnitName}
		for _, row := range group.Rows {
			section.Rows = append(section.Rows, reportRow(status, row))
		}
		dataset.Sections = append(dataset.Sections, section)
	}
	return dataset
}

func reportRow(status models.EffectiveStatus, row models.EffectiveRequest) map[string]string {
	switch status {
	case models.EffectiveStatusOwn:
		own := row.OwnDetails
		if own == nil {
			own = &models.OwnDetails{}
		}
		return map[string]string{
			"Descripción": row.Description,
			"Cant":        strconv.Itoa(row.Quantity),
			"Fecha Nec.":  displayDate(row.NeedDate),
			"Interno":     own.InternalID,
			"Marca":       own.Brand,
			"Modelo":      own.Model,
			"Disp.":       displayDate(own.AvailabilityDate),
		}
	case models.EffectiveStatusRent:
		return map[string]string{
			"Descripción":   row.Description,
			"Capacidad":     row.Capacity,
			"Cantidad":      strconv.Itoa(row.Quantity),
			"Fecha Nec.":    displayDate(row.NeedDate),
			"Plazo (Meses)": intPtrLabel(row.RentalMonths),
			"Comentarios":   row.Comments,
		}
	case models.EffectiveStatusBuy:
		buy := row.BuyDetails
		if buy == nil {
			buy = &models.BuyDetails{}
		}
		comments := row.Comments
		if buy.DeliveryDate != "" && row.NeedDate != "" && buy.DeliveryDate > row.NeedDate {
			if comments != "" {
				comments += " "
			}
			comments += lateDeliveryWarning
		}
		return map[string]string{
			"Descripción":           row.Description,
			"Proveedor":             buy.Vendor,
			"Fecha Entrega":         displayDate(buy.DeliveryDate),
			"Cant":                  strconv.Itoa(row.Quantity),
			"Fecha Nec.":            displayDate(row.NeedDate),
			"Comentarios / Alertas": comments,
		}
	case models.EffectiveStatusCompleted:
		return map[string]string{
			"Descripción":  row.Description,
			"Origen":       originLabel(row.FulfillmentKind),
			"Detalle":      fulfillmentDetail(row),
			"Cant":         strconv.Itoa(row.Quantity),
			"Fecha Cierre": displayDate(row.ManagedAt),
		}
	default:
		return map[string]string{
			"Descripción": row.Description,
			"Capacidad":   row.Capacity,
			"Cantidad":    strconv.Itoa(row.Quantity),
			"Fecha Nec.":  displayDate(row.NeedDate),
			"Solicitud":   displayDate(row.RequestDate),
			"Comentarios": row.Comments,
		}
	}
}

func originLabel(kind models.AssignmentKind) string {
	switch kind {
	case models.AssignmentKindOwn:
		return "Propio"
	case models.AssignmentKindRent:
		return "Alquiler"
	case models.AssignmentKindBuy:
		return "Compra"
	default:
		return "-"
	}
}

func fulfillmentDetail(row models.EffectiveRequest) string {
	switch row.FulfillmentKind {
	case models.AssignmentKindOwn:
		if row.OwnDetails == nil {
			return "-"
		}
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", row.OwnDetails.InternalID, row.OwnDetails.Brand, row.OwnDetails.Model))
	case models.AssignmentKindRent:
		if row.RentalMonths == nil {
			return "-"
		}
		return fmt.Sprintf("Plazo: %d meses", *row.RentalMonths)
	case models.AssignmentKindBuy:
		if row.BuyDetails == nil || row.BuyDetails.Vendor == "" {
			return "-"
		}
		return "Proveedor: " + row.BuyDetails.Vendor
	default:
		return "-"
	}
}

func intPtrLabel(value *int) string {
	if value == nil {
		return "-"
	}
	return strconv.Itoa(*value)
}

// displayDate reformats an ISO date for report cells, passing through
// anything it cannot parse.
func displayDate(iso string) string {
	if iso == "" {
		return "-"
	}
	parsed, err := time.Parse(dateLayout, iso)
	if err != nil {
		return iso
	}
	return parsed.Format("02/01/2006")
}
