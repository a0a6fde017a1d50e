package category

import "storefront/domain/category"

func toCategoryResponse(c *category.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:          c.ID(),
		Name:        c.Name(),
		Description: c.Description(),
		Products:    c.Products(),
		Retired:     c.Retired(),
		CreatedOn:   c.CreatedOn(),
		LastUpdated: c.LastUpdated(),
	}
}

func toCategoryResponses(categories []*category.Category) []*CategoryResponse {
	responses := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = toCategoryResponse(c)
	}
	return responses
}
