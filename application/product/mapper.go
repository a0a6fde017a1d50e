package product

import "storefront/domain/product"

func toProductResponse(p *product.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Price:       p.Price(),
		Tags:        p.Tags(),
		Retired:     p.Retired(),
		CreatedOn:   p.CreatedOn(),
		LastUpdated: p.LastUpdated(),
	}
	if p.HasCategory() {
		c := p.Category()
		resp.Category = &CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
	}
	return resp
}

func toProductResponses(products []*product.Product) []*ProductResponse {
	responses := make([]*ProductResponse, len(products))
	for i, p := range products {
		responses[i] = toProductResponse(p)
	}
	return responses
}
