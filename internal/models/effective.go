package models

// EffectiveStatus is the status shown on a flattened effective-request row:
// the assignment kind for fulfilled units, PENDING for the remainder, and
// COMPLETED once the owning request has been closed.
type EffectiveStatus string

const (
	EffectiveStatusPending   EffectiveStatus = "PENDING"
	EffectiveStatusOwn       EffectiveStatus = "OWN"
	EffectiveStatusRent      EffectiveStatus = "RENT"
	EffectiveStatusBuy       EffectiveStatus = "BUY"
	EffectiveStatusCompleted EffectiveStatus = "COMPLETED"
)

// OwnDetails is the denormalized equipment snapshot carried by an OWN row.
type OwnDetails struct {
	EquipmentID      string  `json:"equipment_id"`
	InternalID       string  `json:"internal_id"`
	Brand            string  `json:"brand"`
	Model            string  `json:"model"`
	Hours            float64 `json:"hours"`
	AvailabilityDate string  `json:"availability_date"`
}

// BuyDetails carries the purchase fields of a BUY row.
type BuyDetails struct {
	Vendor       string `json:"vendor"`
	DeliveryDate string `json:"delivery_date"`
}

// EffectiveRequest is the flattened, UI-facing row derived from a Request
// and its Assignments. It is never persisted. Its ID is the assignment id
// for fulfilled units and the request id for pending rows.
type EffectiveRequest struct {
	ID                string          `json:"id"`
	RequestID         string          `json:"request_id"`
	RequestDate       string          `json:"request_date"`
	OperatingUnitID   string          `json:"operating_unit_id"`
	OperatingUnitName string          `json:"operating_unit_name"`
	CategoryID        string          `json:"category_id"`
	CategoryName      string          `json:"category_name"`
	Description       string          `json:"description"`
	Capacity          string          `json:"capacity"`
	Quantity          int             `json:"quantity"`
	NeedDate          string          `json:"need_date"`
	Comments          string          `json:"comments"`
	Status            EffectiveStatus `json:"status"`

	OwnDetails   *OwnDetails `json:"own_details,omitempty"`
	BuyDetails   *BuyDetails `json:"buy_details,omitempty"`
	RentalMonths *int        `json:"rental_months,omitempty"`

	// FulfillmentKind records how the unit was managed once the owning
	// request is COMPLETED.
	FulfillmentKind AssignmentKind `json:"fulfillment_kind,omitempty"`

	// ManagedAt is the assignment date, empty on pending rows.
	ManagedAt string `json:"managed_at,omitempty"`
}

// DashboardStats are the sidebar counters: the pending quantity sum plus
// per-kind row counts.
type DashboardStats struct {
	PendingQuantity int `json:"pending_quantity"`
	OwnCount        int `json:"own_count"`
	RentCount       int `json:"rent_count"`
	BuyCount        int `json:"buy_count"`
	CompletedCount  int `json:"completed_count"`
}
