package memory

import (
	"context"

	"storefront/domain/product"
	"storefront/domain/shared"
)

// ProductRepository In-memory implementation of product repository
type ProductRepository struct {
	*Store[product.ReconstructionDTO]
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{Store: NewStore[product.ReconstructionDTO]("products")}
}

func (r *ProductRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.NextID(), nil
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	r.Put(ctx, p.ID(), p.Snapshot())
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*product.Product, error) {
	dto, ok := r.Get(ctx, id)
	if !ok {
		return nil, shared.NewNotFoundError(product.EntityName, id)
	}
	return product.RebuildFromDTO(dto), nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*product.Product, error) {
	found := r.find(ctx, func(dto product.ReconstructionDTO) bool { return dto.Name == name })
	if len(found) == 0 {
		return nil, shared.NewNotFoundByNameError(product.EntityName, name)
	}
	return found[0], nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]*product.Product, error) {
	return r.find(ctx, func(product.ReconstructionDTO) bool { return true }), nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		if dto, ok := r.Get(ctx, id); ok {
			out = append(out, product.RebuildFromDTO(dto))
		}
	}
	return out, nil
}

func (r *ProductRepository) FindByCategoryID(ctx context.Context, categoryID int64) ([]*product.Product, error) {
	return r.find(ctx, func(dto product.ReconstructionDTO) bool {
		return dto.Category.ID == categoryID
	}), nil
}

func (r *ProductRepository) FindByTagID(ctx context.Context, tagID int64) ([]*product.Product, error) {
	return r.find(ctx, func(dto product.ReconstructionDTO) bool {
		return containsID(dto.Tags, tagID)
	}), nil
}

func (r *ProductRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*product.Product]) ([]*product.Product, error) {
	all, _ := r.FindAll(ctx)
	return filterBySpec(ctx, all, spec), nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	return r.Store.Count(ctx), nil
}

func (r *ProductRepository) find(ctx context.Context, keep func(product.ReconstructionDTO) bool) []*product.Product {
	docs := r.Filter(ctx, keep)
	out := make([]*product.Product, len(docs))
	for i, dto := range docs {
		out[i] = product.RebuildFromDTO(dto)
	}
	return out
}

var _ product.Repository = (*ProductRepository)(nil)
