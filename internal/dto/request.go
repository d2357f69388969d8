package dto

// CreateRequestRequest is the payload for filing a new equipment request.
type CreateRequestRequest struct {
	RequestDate     string `json:"request_date" validate:"omitempty,datetime=2006-01-02"`
	OperatingUnitID string `json:"operating_unit_id" binding:"required" validate:"required"`
	CategoryID      string `json:"category_id" binding:"required" validate:"required"`
	Description     string `json:"description" binding:"required" validate:"required"`
	Capacity        string `json:"capacity"`
	Quantity        int    `json:"quantity" binding:"required" validate:"required,gt=0"`
	NeedDate        string `json:"need_date" binding:"required" validate:"required,datetime=2006-01-02"`
	Comments        string `json:"comments"`
}

// UpdateRequestRequest patches an open request. Nil fields are left untouched.
type UpdateRequestRequest struct {
	OperatingUnitID *string `json:"operating_unit_id,omitempty"`
	CategoryID      *string `json:"category_id,omitempty"`
	Description     *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Capacity        *string `json:"capacity,omitempty"`
	Quantity        *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
	NeedDate        *string `json:"need_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Comments        *string `json:"comments,omitempty"`
}

// ListRequestsQuery filters the effective-request listing.
type ListRequestsQuery struct {
	Status     string `form:"status"`
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
}
