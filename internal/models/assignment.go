package models

import "time"

// AssignmentKind classifies how a request unit is fulfilled.
type AssignmentKind string

const (
	AssignmentKindOwn  AssignmentKind = "OWN"
	AssignmentKindRent AssignmentKind = "RENT"
	AssignmentKindBuy  AssignmentKind = "BUY"
)

// Assignment is a fulfillment line-item belonging to a Request.
//
// Own and rent assignments always carry quantity 1 (one row per physical
// unit); a buy assignment covers the whole remaining quantity in one row.
type Assignment struct {
	ID        string         `db:"id" json:"id"`
	RequestID string         `db:"request_id" json:"request_id"`
	Kind      AssignmentKind `db:"kind" json:"kind"`
	Quantity  int            `db:"quantity" json:"quantity"`

	EquipmentID      *string    `db:"equipment_id" json:"equipment_id,omitempty"`
	AvailabilityDate *time.Time `db:"availability_date" json:"availability_date,omitempty"`

	RentalMonths *int `db:"rental_months" json:"rental_months,omitempty"`

	BuyVendor       *string    `db:"buy_vendor" json:"buy_vendor,omitempty"`
	BuyDeliveryDate *time.Time `db:"buy_delivery_date" json:"buy_delivery_date,omitempty"`

	ManagedAt time.Time `db:"managed_at" json:"managed_at"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Equipment snapshot joined from the catalog for OWN assignments.
	EquipmentInternalID *string  `db:"equipment_internal_id" json:"equipment_internal_id,omitempty"`
	EquipmentBrand      *string  `db:"equipment_brand" json:"equipment_brand,omitempty"`
	EquipmentModel      *string  `db:"equipment_model" json:"equipment_model,omitempty"`
	EquipmentHours      *float64 `db:"equipment_hours" json:"equipment_hours,omitempty"`
}
