package order

import "storefront/domain/order"

func toOrderResponse(o *order.Order) *OrderResponse {
	items := make([]LineItemResponse, 0, len(o.LineItems()))
	for _, item := range o.LineItems() {
		snapshot := item.Product()
		items = append(items, LineItemResponse{
			ProductID:   snapshot.ID,
			Name:        snapshot.Name,
			Description: snapshot.Description,
			Price:       snapshot.Price,
			Quantity:    item.Quantity(),
			Subtotal:    item.Subtotal(),
		})
	}

	return &OrderResponse{
		ID:          o.ID(),
		Status:      string(o.Status()),
		LineItems:   items,
		Total:       o.Total(),
		CreatedOn:   o.CreatedOn(),
		LastUpdated: o.LastUpdated(),
	}
}

func toOrderResponses(orders []*order.Order) []*OrderResponse {
	responses := make([]*OrderResponse, len(orders))
	for i, o := range orders {
		responses[i] = toOrderResponse(o)
	}
	return responses
}
