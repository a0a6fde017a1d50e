package mysql

import (
	"context"
	"errors"
	"strconv"

	"storefront/domain/shared"
	"storefront/domain/tag"
	"storefront/infrastructure/persistence/mysql/po"
	"storefront/infrastructure/persistence/specification"

	"gorm.io/gorm"
)

// TagRepository MySQL/GORM implementation of tag repository
// GORM usage specification: Association features are prohibited to maintain DDD aggregate boundaries
type TagRepository struct {
	collection
	translator *specification.GormTranslator
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{
		collection: collection{db: db, name: "tags"},
		translator: specification.NewGormTranslator(),
	}
}

func (r *TagRepository) NextIdentity(ctx context.Context) (int64, error) {
	return r.nextID(ctx)
}

// Save Save tag (create or update)
func (r *TagRepository) Save(ctx context.Context, t *tag.Tag) error {
	return r.upsert(ctx, po.FromTagDomain(t))
}

func (r *TagRepository) FindByID(ctx context.Context, id int64) (*tag.Tag, error) {
	var row po.TagPO
	if err := r.getDB(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(tag.EntityName, id)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*tag.Tag, error) {
	var row po.TagPO
	if err := r.getDB(ctx).First(&row, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundByNameError(tag.EntityName, name)
		}
		return nil, err
	}
	return row.ToDomain(), nil
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	return r.find(r.getDB(ctx))
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []int64) ([]*tag.Tag, error) {
	if len(ids) == 0 {
		return []*tag.Tag{}, nil
	}
	return r.find(r.getDB(ctx).Where("id IN ?", ids))
}

// FindByProductID reverse lookup on the JSON product id array
func (r *TagRepository) FindByProductID(ctx context.Context, productID int64) ([]*tag.Tag, error) {
	return r.find(r.getDB(ctx).Where("JSON_CONTAINS(product_ids, ?)", strconv.FormatInt(productID, 10)))
}

// FindBySpecification translates the specification to SQL where it can and
// filters the rest in memory.
func (r *TagRepository) FindBySpecification(ctx context.Context, spec shared.Specification[*tag.Tag]) ([]*tag.Tag, error) {
	db := r.getDB(ctx)
	if scope := specification.Translate(r.translator, spec); scope != nil {
		db = scope(db)
	}
	rows, err := r.find(db)
	if err != nil {
		return nil, err
	}
	return specification.Filter(ctx, rows, spec), nil
}

func (r *TagRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.getDB(ctx).Model(&po.TagPO{}).Count(&n).Error
	return n, err
}

func (r *TagRepository) find(db *gorm.DB) ([]*tag.Tag, error) {
	var rows []po.TagPO
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*tag.Tag, len(rows))
	for i := range rows {
		out[i] = rows[i].ToDomain()
	}
	return out, nil
}

// Compile-time interface implementation check
var _ tag.Repository = (*TagRepository)(nil)
