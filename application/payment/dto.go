package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// MakePaymentRequest Make payment request DTO
type MakePaymentRequest struct {
	OrderID int64           `json:"order_id" binding:"required,min=1"`
	Amount  decimal.Decimal `json:"amount"`
}

// PaymentResponse Payment response DTO
type PaymentResponse struct {
	ID         int64           `json:"id"`
	OrderID    int64           `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	OrderTotal decimal.Decimal `json:"order_total"`
	Change     decimal.Decimal `json:"change"`
	Date       time.Time       `json:"date"`
}
