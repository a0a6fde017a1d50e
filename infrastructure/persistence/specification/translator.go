package specification

import (
	"context"
	"strconv"

	"storefront/domain/category"
	"storefront/domain/order"
	"storefront/domain/product"
	"storefront/domain/shared"
	"storefront/domain/tag"

	"gorm.io/gorm"
)

// Scope narrows a GORM query
type Scope func(*gorm.DB) *gorm.DB

// GormTranslator converts domain specifications to GORM queries
// DDD principle: Infrastructure layer handles framework-specific concerns
//
// A translated scope may match more rows than the specification (an And with
// one untranslatable side keeps only the other side). Repositories therefore
// always run Filter on the loaded aggregates afterwards.
type GormTranslator struct{}

// NewGormTranslator creates a new GORM translator
func NewGormTranslator() *GormTranslator {
	return &GormTranslator{}
}

// Translate converts spec to a scope, or nil when nothing can be pushed down.
func Translate[T any](t *GormTranslator, spec shared.Specification[T]) Scope {
	if spec == nil {
		return nil
	}

	switch s := any(spec).(type) {
	case shared.AndSpecification[T]:
		left, right := Translate(t, s.Left), Translate(t, s.Right)
		if left == nil {
			return right
		}
		if right == nil {
			return left
		}
		return func(db *gorm.DB) *gorm.DB { return right(left(db)) }

	case shared.OrSpecification[T]:
		left, right := Translate(t, s.Left), Translate(t, s.Right)
		if left == nil || right == nil {
			return nil
		}
		return func(db *gorm.DB) *gorm.DB {
			fresh := db.Session(&gorm.Session{NewDB: true})
			return db.Where(left(fresh)).Or(right(fresh))
		}

	case shared.NotSpecification[T]:
		inner := Translate(t, s.Spec)
		if inner == nil {
			return nil
		}
		return func(db *gorm.DB) *gorm.DB {
			return db.Not(inner(db.Session(&gorm.Session{NewDB: true})))
		}
	}

	return t.translateConcrete(spec)
}

// translateConcrete translates concrete domain specifications
func (t *GormTranslator) translateConcrete(spec any) Scope {
	switch s := spec.(type) {
	case category.ContainsProductSpecification:
		return jsonContains("product_ids", s.ProductID)
	case category.ByNameSpecification:
		return equals("name", s.Name)
	case shared.RetiredSpecification[*category.Category]:
		return equals("retired", s.Retired)

	case tag.ContainsProductSpecification:
		return jsonContains("product_ids", s.ProductID)
	case tag.ByNameSpecification:
		return equals("name", s.Name)
	case shared.RetiredSpecification[*tag.Tag]:
		return equals("retired", s.Retired)

	case product.ByCategorySpecification:
		return equals("category_id", s.CategoryID)
	case product.HasTagSpecification:
		return jsonContains("tag_ids", s.TagID)
	case product.ByNameSpecification:
		return equals("name", s.Name)
	case product.ByPriceRangeSpecification:
		return func(db *gorm.DB) *gorm.DB {
			if !s.Min.IsZero() {
				db = db.Where("price >= ?", s.Min)
			}
			if !s.Max.IsZero() {
				db = db.Where("price <= ?", s.Max)
			}
			return db
		}
	case shared.RetiredSpecification[*product.Product]:
		return equals("retired", s.Retired)

	case order.ByStatusSpecification:
		return equals("status", string(s.Status))
	case order.ByDateRangeSpecification:
		return func(db *gorm.DB) *gorm.DB {
			if !s.Start.IsZero() {
				db = db.Where("created_on >= ?", s.Start)
			}
			if !s.End.IsZero() {
				db = db.Where("created_on <= ?", s.End)
			}
			return db
		}
	}

	// Unknown specification type
	return nil
}

func equals(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

func jsonContains(column string, id int64) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("JSON_CONTAINS("+column+", ?)", strconv.FormatInt(id, 10))
	}
}

// Filter keeps the items satisfying spec. A nil spec keeps everything.
func Filter[T any](ctx context.Context, items []T, spec shared.Specification[T]) []T {
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
