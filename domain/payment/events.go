package payment

import (
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
)

type MadeEvent struct {
	shared.BaseEvent
	orderID int64
	amount  decimal.Decimal
}

func NewMadeEvent(paymentID, orderID int64, amount decimal.Decimal) *MadeEvent {
	return &MadeEvent{BaseEvent: shared.NewBaseEvent("payment.made", paymentID), orderID: orderID, amount: amount}
}

func (e *MadeEvent) OrderID() int64          { return e.orderID }
func (e *MadeEvent) Amount() decimal.Decimal { return e.amount }
