package service

import (
	"time"

	"github.com/brunoadrover/AsignacionDeEquipos/internal/models"
)

const dateLayout = "2006-01-02"

// DeriveStatus classifies a request from its assigned quantity sum:
// COMPLETED when the sum covers the total, PARTIAL when strictly between,
// PENDING when nothing is assigned.
func DeriveStatus(totalQuantity, assignedQuantity int) models.RequestStatus {
	switch {
	case assignedQuantity <= 0:
		return models.RequestStatusPending
	case assignedQuantity >= totalQuantity:
		return models.RequestStatusCompleted
	default:
		return models.RequestStatusPartial
	}
}

// Project flattens requests and their assignments into effective rows: one
// row per assignment plus, when the assigned sum is below the request total,
// exactly one synthetic remainder row with status PENDING. Row identity is
// the assignment id, or the request id for mirror and remainder rows.
//
// Requests already closed emit COMPLETED rows (with the fulfillment kind
// preserved per assignment) and never a remainder.
func Project(requests []models.Request, assignments []models.Assignment) []models.EffectiveRequest {
	byRequest := make(map[string][]models.Assignment, len(requests))
	for _, a := range assignments {
		byRequest[a.RequestID] = append(byRequest[a.RequestID], a)
	}

	rows := make([]models.EffectiveRequest, 0, len(requests)+len(assignments))
	for _, req := range requests {
		owned := byRequest[req.ID]
		completed := req.Status == models.RequestStatusCompleted

		if len(owned) == 0 {
			row := baseRow(req)
			row.ID = req.ID
			row.Quantity = req.Quantity
			if completed {
				row.Status = models.EffectiveStatusCompleted
			} else {
				row.Status = models.EffectiveStatusPending
			}
			rows = append(rows, row)
			continue
		}

		assigned := 0
		for _, a := range owned {
			quantity := a.Quantity
			if quantity <= 0 {
				quantity = 1
			}
			assigned += quantity

			row := baseRow(req)
			row.ID = a.ID
			row.Quantity = quantity
			row.Status = models.EffectiveStatus(a.Kind)
			row.FulfillmentKind = a.Kind
			if !a.ManagedAt.IsZero() {
				row.ManagedAt = a.ManagedAt.Format(dateLayout)
			}
			if completed {
				row.Status = models.EffectiveStatusCompleted
			}
			attachKindDetails(&row, a)
			rows = append(rows, row)
		}

		if !completed && assigned < req.Quantity {
			row := baseRow(req)
			row.ID = req.ID
			row.Quantity = req.Quantity - assigned
			row.Status = models.EffectiveStatusPending
			rows = append(rows, row)
		}
	}
	return rows
}

// Stats derives the dashboard counters from a projection: the total pending
// quantity plus per-status row counts.
func Stats(rows []models.EffectiveRequest) models.DashboardStats {
	var stats models.DashboardStats
	for _, row := range rows {
		switch row.Status {
		case models.EffectiveStatusPending:
			stats.PendingQuantity += row.Quantity
		case models.EffectiveStatusOwn:
			stats.OwnCount++
		case models.EffectiveStatusRent:
			stats.RentCount++
		case models.EffectiveStatusBuy:
			stats.BuyCount++
		case models.EffectiveStatusCompleted:
			stats.CompletedCount++
		}
	}
	return stats
}

func baseRow(req models.Request) models.EffectiveRequest {
	return models.EffectiveRequest{
		RequestID:         req.ID,
		RequestDate:       req.RequestDate.Format(dateLayout),
		OperatingUnitID:   derefOr(req.OperatingUnitID, ""),
		OperatingUnitName: derefOr(req.OperatingUnitName, ""),
		CategoryID:        derefOr(req.CategoryID, ""),
		CategoryName:      derefOr(req.CategoryName, ""),
		Description:       req.Description,
		Capacity:          req.Capacity,
		NeedDate:          req.NeedDate.Format(dateLayout),
		Comments:          req.Comments,
	}
}

func attachKindDetails(row *models.EffectiveRequest, a models.Assignment) {
	switch a.Kind {
	case models.AssignmentKindOwn:
		row.OwnDetails = &models.OwnDetails{
			EquipmentID:      derefOr(a.EquipmentID, ""),
			InternalID:       derefOr(a.EquipmentInternalID, ""),
			Brand:            derefOr(a.EquipmentBrand, ""),
			Model:            derefOr(a.EquipmentModel, ""),
			Hours:            derefFloatOr(a.EquipmentHours, 0),
			AvailabilityDate: formatDatePtr(a.AvailabilityDate),
		}
	case models.AssignmentKindRent:
		row.RentalMonths = a.RentalMonths
	case models.AssignmentKindBuy:
		row.BuyDetails = &models.BuyDetails{
			Vendor:       derefOr(a.BuyVendor, ""),
			DeliveryDate: formatDatePtr(a.BuyDeliveryDate),
		}
	}
}

func derefOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}

func derefFloatOr(value *float64, fallback float64) float64 {
	if value == nil {
		return fallback
	}
	return *value
}

func formatDatePtr(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(dateLayout)
}
