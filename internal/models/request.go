package models

import "time"

// RequestStatus is the aggregate lifecycle state of an equipment request.
//
// PENDING -> PARTIAL -> COMPLETED, derived from the assigned quantity sum,
// plus a manual override transition to COMPLETED that skips the sum check.
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusPartial   RequestStatus = "PARTIAL"
	RequestStatusCompleted RequestStatus = "COMPLETED"
)

// Request is the demand record filed by an operating unit. The unit and
// category references are nullable: deleting a lookup entry leaves the
// request in the unassigned bucket on reports.
type Request struct {
	ID              string        `db:"id" json:"id"`
	RequestDate     time.Time     `db:"request_date" json:"request_date"`
	OperatingUnitID *string       `db:"operating_unit_id" json:"operating_unit_id,omitempty"`
	CategoryID      *string       `db:"category_id" json:"category_id,omitempty"`
	Description     string        `db:"description" json:"description"`
	Capacity        string        `db:"capacity" json:"capacity"`
	Quantity        int           `db:"quantity" json:"quantity"`
	NeedDate        time.Time     `db:"need_date" json:"need_date"`
	Comments        string        `db:"comments" json:"comments"`
	Status          RequestStatus `db:"status" json:"status"`
	CreatedAt       time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at" json:"updated_at"`

	// Joined display names, populated by the listing query.
	OperatingUnitName *string `db:"operating_unit_name" json:"operating_unit_name,omitempty"`
	CategoryName      *string `db:"category_name" json:"category_name,omitempty"`
}
