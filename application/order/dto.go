package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest LineItems may be empty.
type CreateOrderRequest struct {
	LineItems []LineItemRequest `json:"line_items"`
}

// LineItemRequest adds or removes by product ID; Quantity below 1 counts as 1.
type LineItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
	Quantity  int   `json:"quantity"`
}

// OrderQuery filters GetAllOrders. Zero fields match every order; the
// created range is inclusive on both ends.
type OrderQuery struct {
	Status      string
	CreatedFrom time.Time
	CreatedTo   time.Time
}

// UpdateOrderRequest Add is applied before Remove.
type UpdateOrderRequest struct {
	Add    []LineItemRequest `json:"add"`
	Remove []LineItemRequest `json:"remove"`
}

// OrderResponse
type OrderResponse struct {
	ID          int64              `json:"id"`
	Status      string             `json:"status"`
	LineItems   []LineItemResponse `json:"line_items"`
	Total       decimal.Decimal    `json:"total"`
	CreatedOn   time.Time          `json:"created_on"`
	LastUpdated time.Time          `json:"last_updated"`
}

// LineItemResponse
type LineItemResponse struct {
	ProductID   int64           `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
