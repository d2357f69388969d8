package models

import "time"

// Equipment is a unit of the owned fleet. Assignments reference it and
// denormalize a snapshot of these fields at assignment time.
type Equipment struct {
	ID         string    `db:"id" json:"id"`
	InternalID string    `db:"internal_id" json:"internal_id"`
	Brand      string    `db:"brand" json:"brand"`
	Model      string    `db:"model" json:"model"`
	Hours      float64   `db:"hours" json:"hours"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
