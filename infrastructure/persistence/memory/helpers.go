package memory

import (
	"context"
	"slices"

	"storefront/domain/shared"
)

func containsID(ids []int64, id int64) bool {
	return slices.Contains(ids, id)
}

func filterBySpec[T any](ctx context.Context, items []T, spec shared.Specification[T]) []T {
	if spec == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if spec.IsSatisfiedBy(ctx, item) {
			out = append(out, item)
		}
	}
	return out
}
