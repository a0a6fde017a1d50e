package category

import "time"

// CreateCategoryRequest Products are the initially associated product IDs.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Products    []int64 `json:"products"`
}

// UpdateCategoryRequest
// Blank Name/Description keep the current value; nil Products leaves associations alone, [] clears them.
type UpdateCategoryRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Products    []int64 `json:"products"`
}

// CategoryResponse
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Products    []int64   `json:"products"`
	Retired     bool      `json:"retired"`
	CreatedOn   time.Time `json:"created_on"`
	LastUpdated time.Time `json:"last_updated"`
}
