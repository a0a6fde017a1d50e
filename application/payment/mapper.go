package payment

import "storefront/domain/payment"

func toPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:         p.ID(),
		OrderID:    p.OrderID(),
		Amount:     p.Amount(),
		OrderTotal: p.OrderTotal(),
		Change:     p.Change(),
		Date:       p.Date(),
	}
}

func toPaymentResponses(payments []*payment.Payment) []*PaymentResponse {
	responses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = toPaymentResponse(p)
	}
	return responses
}
