package tag

import "storefront/domain/tag"

func toTagResponse(t *tag.Tag) *TagResponse {
	return &TagResponse{
		ID:          t.ID(),
		Name:        t.Name(),
		Description: t.Description(),
		Products:    t.Products(),
		Retired:     t.Retired(),
		CreatedOn:   t.CreatedOn(),
		LastUpdated: t.LastUpdated(),
	}
}

func toTagResponses(tags []*tag.Tag) []*TagResponse {
	responses := make([]*TagResponse, len(tags))
	for i, t := range tags {
		responses[i] = toTagResponse(t)
	}
	return responses
}
