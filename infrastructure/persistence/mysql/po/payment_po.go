package po

import (
	"time"

	"storefront/domain/payment"

	"github.com/shopspring/decimal"
)

// PaymentPO Payment persistence object (insert-only)
type PaymentPO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement:false"`
	OrderID    int64           `gorm:"index;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OrderTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Change     decimal.Decimal `gorm:"column:change_due;type:decimal(12,2);not null"`
	Date       time.Time       `gorm:"column:paid_on;not null"`
}

func (PaymentPO) TableName() string {
	return "payments"
}

func FromPaymentDomain(p *payment.Payment) *PaymentPO {
	return &PaymentPO{
		ID:         p.ID(),
		OrderID:    p.OrderID(),
		Amount:     p.Amount(),
		OrderTotal: p.OrderTotal(),
		Change:     p.Change(),
		Date:       p.Date(),
	}
}

func (po *PaymentPO) ToDomain() *payment.Payment {
	return payment.RebuildFromDTO(payment.ReconstructionDTO{
		ID:         po.ID,
		OrderID:    po.OrderID,
		Amount:     po.Amount,
		OrderTotal: po.OrderTotal,
		Change:     po.Change,
		Date:       po.Date,
	})
}
