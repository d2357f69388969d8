package dto

import "time"

// ExportRequest selects the rendering format for a report export.
type ExportRequest struct {
	Format string `json:"format" binding:"omitempty,oneof=pdf csv" validate:"omitempty,oneof=pdf csv"`
}

// ExportResponse returns the signed download link for a generated export.
type ExportResponse struct {
	URL       string    `json:"url"`
	Filename  string    `json:"filename"`
	Format    string    `json:"format"`
	ExpiresAt time.Time `json:"expires_at"`
}
