package memory

import (
	"context"

	"storefront/domain/category"
	"storefront/domain/shared"
)

// CategoryRepository In-memory implementation of category repository
type CategoryRepository struct {
	*Store[category.ReconstructionDTO]
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{Store: NewStore[category.ReconstructionDTO]("categories")}
}

func (r *CategoryRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.NextID(), nil
}

func (r *CategoryRepository) Save(ctx context.Context, c *category.Category) error {
	r.Put(ctx, c.ID(), c.Snapshot())
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*category.Category, error) {
	dto, ok := r.Get(ctx, id)
	if !ok {
		return nil, shared.NewNotFoundError(category.EntityName, id)
	}
	return category.RebuildFromDTO(dto), nil
}

func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*category.Category, error) {
	found := r.find(ctx, func(dto category.ReconstructionDTO) bool { return dto.Name == name })
	if len(found) == 0 {
		return nil, shared.NewNotFoundByNameError(category.EntityName, name)
	}
	return found[0], nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]*category.Category, error) {
	return r.find(ctx, func(category.ReconstructionDTO) bool { return true }), nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]*category.Category, error) {
	out := make([]*category.Category, 0, len(ids))
	for _, id := range ids {
		if dto, ok := r.Get(ctx, id); ok {
			out = append(out, category.RebuildFromDTO(dto))
		}
	}
	return out, nil
}

func (r *CategoryRepository) FindByProductID(ctx context.Context, productID int64) ([]*category.Category, error) {
	return r.find(ctx, func(dto category.ReconstructionDTO) bool {
		return containsID(dto.Products, productID)
	}), nil
}

func (r *CategoryRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*category.Category]) ([]*category.Category, error) {
	all, _ := r.FindAll(ctx)
	return filterBySpec(ctx, all, spec), nil
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	return r.Store.Count(ctx), nil
}

func (r *CategoryRepository) find(ctx context.Context, keep func(category.ReconstructionDTO) bool) []*category.Category {
	docs := r.Filter(ctx, keep)
	out := make([]*category.Category, len(docs))
	for i, dto := range docs {
		out[i] = category.RebuildFromDTO(dto)
	}
	return out
}

var _ category.Repository = (*CategoryRepository)(nil)
