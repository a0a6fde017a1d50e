package memory

import (
	"context"

	"storefront/domain/shared"
	"storefront/domain/tag"
)

// TagRepository In-memory implementation of tag repository
type TagRepository struct {
	*Store[tag.ReconstructionDTO]
}

func NewTagRepository() *TagRepository {
	return &TagRepository{Store: NewStore[tag.ReconstructionDTO]("tags")}
}

func (r *TagRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.NextID(), nil
}

func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) error {
	r.Put(ctx, t.ID(), t.Snapshot())
	return nil
}

func (r *TagRepository) FindByID(ctx context.Context, id int64) (*tag.Tag, error) {
	dto, ok := r.Get(ctx, id)
	if !ok {
		return nil, shared.NewNotFoundError(tag.EntityName, id)
	}
	return tag.RebuildFromDTO(dto), nil
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	found := r.find(ctx, func(dto tag.ReconstructionDTO) bool { return dto.Name == name })
	if len(found) == 0 {
		return nil, shared.NewNotFoundByNameError(tag.EntityName, name)
	}
	return found[0], nil
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	return r.find(ctx, func(tag.ReconstructionDTO) bool { return true }), nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []int64) ([]*tag.Tag, error) {
	out := make([]*tag.Tag, 0, len(ids))
	for _, id := range ids {
		if dto, ok := r.Get(ctx, id); ok {
			out = append(out, tag.RebuildFromDTO(dto))
		}
	}
	return out, nil
}

func (r *TagRepository) FindByProductID(ctx context.Context, productID int64) ([]*tag.Tag, error) {
	return r.find(ctx, func(dto tag.ReconstructionDTO) bool {
		return containsID(dto.Products, productID)
	}), nil
}

func (r *TagRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*tag.Tag]) ([]*tag.Tag, error) {
	all, _ := r.FindAll(ctx)
	return filterBySpec(ctx, all, spec), nil
}

func (r *TagRepository) Count(ctx context.Context) (int64, error) {
	return r.Store.Count(ctx), nil
}

func (r *TagRepository) find(ctx context.Context, keep func(tag.ReconstructionDTO) bool) []*tag.Tag {
	docs := r.Filter(ctx, keep)
	out := make([]*tag.Tag, len(docs))
	for i, dto := range docs {
		out[i] = tag.RebuildFromDTO(dto)
	}
	return out
}

var _ tag.Repository = (*TagRepository)(nil)
