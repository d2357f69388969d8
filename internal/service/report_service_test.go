package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
	appErrors "github.com/brunoadrover/AsignacionDeEquipos/pkg/errors"
	"github.com/brunoadrover/AsignacionDeEquipos/pkg/storage"
)

type projectionStub struct {
	rows []models.EffectiveRequest
	err  error
}

func (s *projectionStub) Projection(ctx context.Context) ([]models.EffectiveRequest, error) {
	return s.rows, s.err
}

func effectiveRow(status models.EffectiveStatus, unit string) models.EffectiveRequest {
	return models.EffectiveRequest{
		ID:                "row-" + unit,
		RequestID:         "req-1",
		OperatingUnitName: unit,
		Description:       "Excavadora",
		Quantity:          1,
		NeedDate:          "2026-05-01",
		Status:            status,
	}
}

func newTestReportService(t *testing.T, rows []models.EffectiveRequest) *ReportService {
	t.Helper()
	store, err := storage.NewLocalStorage(filepath.Join(t.TempDir(), "exports"))
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewReportService(&projectionStub{rows: rows}, store, signer, nil)
}

func TestGroupedBucketsByUnitName(t *testing.T) {
	rows := []models.EffectiveRequest{
		effectiveRow(models.EffectiveStatusPending, "Obra Sur"),
		effectiveRow(models.EffectiveStatusPending, "Obra Norte"),
		effectiveRow(models.EffectiveStatusPending, ""),
		effectiveRow(models.EffectiveStatusOwn, "Obra Norte"),
	}
	svc := newTestReportService(t, rows)

	groups, err := svc.Grouped(context.Background(), "pending")
	require.NoError(t, err)

	require.Len(t, groups, 3)
	assert.Equal(t, "Obra Norte", groups[0].UnitName)
	assert.Equal(t, "Obra Sur", groups[1].UnitName)
	assert.Equal(t, NoOperatingUnit, groups[2].UnitName)
}

func TestGroupedRejectsUnknownStatus(t *testing.T) {
	svc := newTestReportService(t, nil)

	_, err := svc.Grouped(context.Background(), "APPROVED")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportPDFProducesSignedLink(t *testing.T) {
	svc := newTestReportService(t, []models.EffectiveRequest{
		effectiveRow(models.EffectiveStatusPending, "Obra Norte"),
	})

	result, err := svc.Export(context.Background(), "PENDING", "pdf")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.URL, "/export/"))
	assert.True(t, strings.HasPrefix(result.Filename, "Reporte_Pendientes_"))
	assert.True(t, strings.HasSuffix(result.Filename, ".pdf"))
	assert.Equal(t, "pdf", result.Format)
	assert.True(t, result.ExpiresAt.After(time.Now()))
}

func TestExportThenDownloadRoundTrip(t *testing.T) {
	svc := newTestReportService(t, []models.EffectiveRequest{
		effectiveRow(models.EffectiveStatusPending, "Obra Norte"),
	})

	result, err := svc.Export(context.Background(), "PENDING", "csv")
	require.NoError(t, err)

	token := strings.TrimPrefix(result.URL, "/export/")
	file, filename, err := svc.Download(context.Background(), token)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, result.Filename, filename)
	info, err := file.Stat()
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDownloadRejectsTamperedToken(t *testing.T) {
	svc := newTestReportService(t, nil)

	_, _, err := svc.Download(context.Background(), "not.a.valid.token")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestBuyReportFlagsLateDelivery(t *testing.T) {
	row := effectiveRow(models.EffectiveStatusBuy, "Obra Norte")
	row.Comments = "urgente"
	row.BuyDetails = &models.BuyDetails{Vendor: "Proveedor SRL", DeliveryDate: "2026-06-15"}

	cells := reportRow(models.EffectiveStatusBuy, row)

	assert.Equal(t, "Proveedor SRL", cells["Proveedor"])
	assert.Contains(t, cells["Comentarios / Alertas"], "urgente")
	assert.Contains(t, cells["Comentarios / Alertas"], lateDeliveryWarning)
}

func TestBuyReportOnTimeDeliveryHasNoWarning(t *testing.T) {
	row := effectiveRow(models.EffectiveStatusBuy, "Obra Norte")
	row.BuyDetails = &models.BuyDetails{Vendor: "Proveedor SRL", DeliveryDate: "2026-04-15"}

	cells := reportRow(models.EffectiveStatusBuy, row)

	assert.NotContains(t, cells["Comentarios / Alertas"], lateDeliveryWarning)
	assert.Equal(t, "15/04/2026", cells["Fecha Entrega"])
}

func TestCompletedReportDescribesOrigin(t *testing.T) {
	months := 6
	row := effectiveRow(models.EffectiveStatusCompleted, "Obra Norte")
	row.FulfillmentKind = models.AssignmentKindRent
	row.RentalMonths = &months
	row.ManagedAt = "2026-04-20"

	cells := reportRow(models.EffectiveStatusCompleted, row)

	assert.Equal(t, "Alquiler", cells["Origen"])
	assert.Equal(t, "Plazo: 6 meses", cells["Detalle"])
	assert.Equal(t, "20/04/2026", cells["Fecha Cierre"])
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	svc := newTestReportService(t, nil)

	_, err := svc.Export(context.Background(), "PENDING", "xlsx")

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestExportCleanupRemovesStaleFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	_, err = store.Save("stale.pdf", []byte("old"))
	require.NoError(t, err)
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "stale.pdf"), past, past))

	deleted, err := store.CleanupOlderThan(24 * time.Hour)
	require.NoError(t, err)
	assert.Contains(t, deleted, "stale.pdf")
}
