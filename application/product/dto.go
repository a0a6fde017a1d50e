package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest Create product request DTO. CategoryID 0 leaves the product uncategorized.
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Price       decimal.Decimal `json:"price"`
	CategoryID  int64           `json:"category_id"`
	TagIDs      []int64         `json:"tag_ids"`
}

// UpdateProductRequest Update product request DTO.
// Nil pointers and a nil TagIDs leave the field unchanged; CategoryID 0 clears the category.
type UpdateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *int64           `json:"category_id"`
	TagIDs      []int64          `json:"tag_ids"`
}

// ProductQuery Filters for listing products; zero values do not filter
type ProductQuery struct {
	CategoryID int64
	TagID      int64
	MinPrice   decimal.Decimal
	MaxPrice   decimal.Decimal
	ActiveOnly bool
}

// ProductResponse Product response DTO
type ProductResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       decimal.Decimal   `json:"price"`
	Category    *CategoryResponse `json:"category,omitempty"`
	Tags        []int64           `json:"tags"`
	Retired     bool              `json:"retired"`
	CreatedOn   time.Time         `json:"created_on"`
	LastUpdated time.Time         `json:"last_updated"`
}

// CategoryResponse The category snapshot cached on the product
type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
