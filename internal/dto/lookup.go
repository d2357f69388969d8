package dto

// CreateLookupRequest adds a named lookup entry (operating unit or category).
type CreateLookupRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=1"`
}

// RenameLookupRequest renames an existing lookup entry.
type RenameLookupRequest struct {
	Name string `json:"name" binding:"required" validate:"required,min=1"`
}
