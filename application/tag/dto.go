package tag

import "time"

// CreateTagRequest Create tag request DTO
type CreateTagRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Products    []int64 `json:"products"`
}

// UpdateTagRequest Update tag request DTO.
// Blank name/description keep the current value; nil Products leaves the
// associations alone while an empty list detaches everything.
type UpdateTagRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Products    []int64 `json:"products"`
}

// TagResponse Tag response DTO
type TagResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Products    []int64   `json:"products"`
	Retired     bool      `json:"retired"`
	CreatedOn   time.Time `json:"created_on"`
	LastUpdated time.Time `json:"last_updated"`
}
