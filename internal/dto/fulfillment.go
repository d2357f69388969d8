package dto

// OwnLineItem describes one owned-equipment unit being assigned.
type OwnLineItem struct {
	EquipmentID      string `json:"equipment_id" binding:"required" validate:"required"`
	AvailabilityDate string `json:"availability_date" binding:"required" validate:"required,datetime=2006-01-02"`
}

// AssignOwnRequest assigns a batch of owned units to a request, one
// assignment per line item.
type AssignOwnRequest struct {
	Items []OwnLineItem `json:"items" binding:"required,min=1,dive" validate:"required,min=1,dive"`
}

// AssignRentRequest assigns rented units, one assignment per duration value
// (months).
type AssignRentRequest struct {
	Durations []int `json:"durations" binding:"required,min=1,dive,gt=0" validate:"required,min=1,dive,gt=0"`
}

// UpdateBuyDetailsRequest patches vendor/delivery fields of a BUY assignment.
type UpdateBuyDetailsRequest struct {
	Vendor       *string `json:"vendor,omitempty"`
	DeliveryDate *string `json:"delivery_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}
