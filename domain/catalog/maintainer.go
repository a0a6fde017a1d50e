/*
Package catalog Association maintainer

Category↔Product and Tag↔Product associations are stored twice: as an ID set
on the category/tag document and as a category snapshot or tag ID set on the
product document. The store enforces nothing, so this domain service is the
only code allowed to change either side.

Every entry point works in two phases:
 1. load and validate every aggregate the change touches; any invalid
    reference or retired aggregate fails here, before anything is mutated
 2. apply the change to the in-memory aggregates on both sides

Nothing is persisted here. The caller saves everything listed in the returned
SyncResult inside one multi-collection transaction.
*/
package catalog

import (
	"context"
	"errors"

	"storefront/domain/category"
	"storefront/domain/product"
	"storefront/domain/shared"
	"storefront/domain/tag"
)

// Maintainer Association domain service
// DDD principle: Domain service can use Repository interfaces to query data but does not call Save
type Maintainer struct {
	categories category.Repository
	tags       tag.Repository
	products   product.Repository
}

func NewMaintainer(categories category.Repository, tags tag.Repository, products product.Repository) *Maintainer {
	return &Maintainer{categories: categories, tags: tags, products: products}
}

// SyncResult lists the aggregates mutated in memory, other than the target
// passed in by the caller, and what changed.
type SyncResult struct {
	Categories []*category.Category
	Tags       []*tag.Tag
	Products   []*product.Product

	Added   []int64
	Removed []int64

	// Missing holds ids of detach targets that no longer exist. They are
	// treated as already detached.
	Missing []int64
}

// Changed reports whether anything besides the target needs saving.
func (r *SyncResult) Changed() bool {
	return len(r.Categories)+len(r.Tags)+len(r.Products) > 0
}

// ============================================================================
// Category ↔ Product
// ============================================================================

// SyncCategoryProducts reconciles c's product set with desired.
// Added products are moved out of whatever category they were in before.
func (m *Maintainer) SyncCategoryProducts(ctx context.Context, c *category.Category, desired shared.IDSet) (*SyncResult, error) {
	added, removed := shared.Diff(c.ProductSet(), desired)
	result := &SyncResult{Added: added, Removed: removed}
	if len(added) == 0 && len(removed) == 0 {
		return result, nil
	}
	if c.Retired() {
		return nil, shared.NewRetiredEntityError(category.EntityName, c.ID())
	}

	// Phase 1
	toAttach, err := m.loadAttachable(ctx, added)
	if err != nil {
		return nil, err
	}
	toDetach, missing, err := m.loadDetachable(ctx, removed)
	if err != nil {
		return nil, err
	}
	result.Missing = missing

	previous := newCategoryCache()
	for _, p := range toAttach {
		old := p.Category().ID
		if old == 0 || old == c.ID() {
			continue
		}
		prev, err := previous.load(ctx, m.categories, old)
		if err != nil {
			return nil, err
		}
		if prev == nil {
			result.Missing = append(result.Missing, old)
			continue
		}
		if prev.Retired() {
			return nil, shared.NewRetiredEntityError(category.EntityName, prev.ID())
		}
	}

	// Phase 2
	snapshot := snapshotOf(c)
	products := newTracker[*product.Product]()
	for _, p := range toDetach {
		if p.Category().ID == c.ID() {
			if err := p.ClearCategory(); err != nil {
				return nil, err
			}
			products.add(p)
		}
		if err := c.RemoveProduct(p.ID()); err != nil {
			return nil, err
		}
	}
	for _, id := range missing {
		if err := c.RemoveProduct(id); err != nil {
			return nil, err
		}
	}
	for _, p := range toAttach {
		if old := p.Category().ID; old != 0 && old != c.ID() {
			if prev := previous.get(old); prev != nil {
				if err := prev.RemoveProduct(p.ID()); err != nil {
					return nil, err
				}
			}
		}
		if err := p.AssignCategory(snapshot); err != nil {
			return nil, err
		}
		if err := c.AddProduct(p.ID()); err != nil {
			return nil, err
		}
		products.add(p)
	}

	result.Products = products.items()
	result.Categories = previous.touched()
	return result, nil
}

// AssignProductCategory moves p to categoryID. categoryID 0 clears the category.
// p may be a product that has not been saved yet.
func (m *Maintainer) AssignProductCategory(ctx context.Context, p *product.Product, categoryID int64) (*SyncResult, error) {
	old := p.Category().ID
	result := &SyncResult{}
	if old == categoryID {
		return result, nil
	}
	if p.Retired() {
		return nil, shared.NewRetiredEntityError(product.EntityName, p.ID())
	}

	// Phase 1
	var next *category.Category
	if categoryID != 0 {
		c, err := m.categories.FindByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewInvalidReferenceError(category.EntityName, categoryID)
			}
			return nil, err
		}
		if c.Retired() {
			return nil, shared.NewRetiredEntityError(category.EntityName, c.ID())
		}
		next = c
	}
	var prev *category.Category
	if old != 0 {
		c, err := m.categories.FindByID(ctx, old)
		switch {
		case errors.Is(err, shared.ErrNotFound):
			result.Missing = append(result.Missing, old)
		case err != nil:
			return nil, err
		case c.Retired():
			return nil, shared.NewRetiredEntityError(category.EntityName, c.ID())
		default:
			prev = c
		}
	}

	// Phase 2
	if prev != nil {
		if err := prev.RemoveProduct(p.ID()); err != nil {
			return nil, err
		}
		result.Categories = append(result.Categories, prev)
		result.Removed = []int64{old}
	}
	if next == nil {
		if err := p.ClearCategory(); err != nil {
			return nil, err
		}
		return result, nil
	}
	if err := p.AssignCategory(snapshotOf(next)); err != nil {
		return nil, err
	}
	if err := next.AddProduct(p.ID()); err != nil {
		return nil, err
	}
	result.Categories = append(result.Categories, next)
	result.Added = []int64{categoryID}
	return result, nil
}

// RefreshCategorySnapshots copies c's current name and description into every
// associated product. Retired products keep the snapshot they had.
func (m *Maintainer) RefreshCategorySnapshots(ctx context.Context, c *category.Category) (*SyncResult, error) {
	result := &SyncResult{}
	snapshot := snapshotOf(c)
	for _, id := range c.Products() {
		p, err := m.products.FindByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			result.Missing = append(result.Missing, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if p.Retired() || p.Category() == snapshot {
			continue
		}
		if err := p.AssignCategory(snapshot); err != nil {
			return nil, err
		}
		result.Products = append(result.Products, p)
	}
	return result, nil
}

// DetachRetiringProduct removes p from every category that lists it and
// clears p's category snapshot. Tags are left alone.
func (m *Maintainer) DetachRetiringProduct(ctx context.Context, p *product.Product) (*SyncResult, error) {
	if p.Retired() {
		return nil, shared.NewAlreadyRetiredError(product.EntityName, p.ID())
	}

	categories, err := m.categories.FindByProductID(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.Retired() {
			return nil, shared.NewRetiredEntityError(category.EntityName, c.ID())
		}
	}

	result := &SyncResult{}
	for _, c := range categories {
		if err := c.RemoveProduct(p.ID()); err != nil {
			return nil, err
		}
		result.Categories = append(result.Categories, c)
		result.Removed = append(result.Removed, c.ID())
	}
	if err := p.ClearCategory(); err != nil {
		return nil, err
	}
	return result, nil
}

func snapshotOf(c *category.Category) product.CategorySnapshot {
	return product.CategorySnapshot{ID: c.ID(), Name: c.Name(), Description: c.Description()}
}

// ============================================================================
// Tag ↔ Product
// ============================================================================

// SyncTagProducts reconciles t's product set with desired.
func (m *Maintainer) SyncTagProducts(ctx context.Context, t *tag.Tag, desired shared.IDSet) (*SyncResult, error) {
	added, removed := shared.Diff(t.ProductSet(), desired)
	result := &SyncResult{Added: added, Removed: removed}
	if len(added) == 0 && len(removed) == 0 {
		return result, nil
	}
	if t.Retired() {
		return nil, shared.NewRetiredEntityError(tag.EntityName, t.ID())
	}

	// Phase 1
	toAttach, err := m.loadAttachable(ctx, added)
	if err != nil {
		return nil, err
	}
	toDetach, missing, err := m.loadDetachable(ctx, removed)
	if err != nil {
		return nil, err
	}
	result.Missing = missing

	// Phase 2
	products := newTracker[*product.Product]()
	for _, p := range toDetach {
		if err := p.RemoveTag(t.ID()); err != nil {
			return nil, err
		}
		if err := t.RemoveProduct(p.ID()); err != nil {
			return nil, err
		}
		products.add(p)
	}
	for _, id := range missing {
		if err := t.RemoveProduct(id); err != nil {
			return nil, err
		}
	}
	for _, p := range toAttach {
		if err := p.AddTag(t.ID()); err != nil {
			return nil, err
		}
		if err := t.AddProduct(p.ID()); err != nil {
			return nil, err
		}
		products.add(p)
	}

	result.Products = products.items()
	return result, nil
}

// SyncProductTags reconciles p's tag set with desired from the product side.
// p may be a product that has not been saved yet.
func (m *Maintainer) SyncProductTags(ctx context.Context, p *product.Product, desired shared.IDSet) (*SyncResult, error) {
	added, removed := shared.Diff(p.TagSet(), desired)
	result := &SyncResult{Added: added, Removed: removed}
	if len(added) == 0 && len(removed) == 0 {
		return result, nil
	}
	if p.Retired() {
		return nil, shared.NewRetiredEntityError(product.EntityName, p.ID())
	}

	// Phase 1
	var toAttach, toDetach []*tag.Tag
	for _, id := range added {
		t, err := m.tags.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewInvalidReferenceError(tag.EntityName, id)
			}
			return nil, err
		}
		if t.Retired() {
			return nil, shared.NewRetiredEntityError(tag.EntityName, id)
		}
		toAttach = append(toAttach, t)
	}
	for _, id := range removed {
		t, err := m.tags.FindByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			result.Missing = append(result.Missing, id)
			continue
		}
		if err != nil {
			return nil, err
		}
		if t.Retired() {
			return nil, shared.NewRetiredEntityError(tag.EntityName, id)
		}
		toDetach = append(toDetach, t)
	}

	// Phase 2
	for _, t := range toDetach {
		if err := t.RemoveProduct(p.ID()); err != nil {
			return nil, err
		}
		if err := p.RemoveTag(t.ID()); err != nil {
			return nil, err
		}
		result.Tags = append(result.Tags, t)
	}
	for _, id := range result.Missing {
		if err := p.RemoveTag(id); err != nil {
			return nil, err
		}
	}
	for _, t := range toAttach {
		if err := t.AddProduct(p.ID()); err != nil {
			return nil, err
		}
		if err := p.AddTag(t.ID()); err != nil {
			return nil, err
		}
		result.Tags = append(result.Tags, t)
	}
	return result, nil
}

// ============================================================================
// Loading helpers
// ============================================================================

// loadAttachable loads every product about to gain an association.
// A missing id is an invalid reference; a retired product cannot change.
func (m *Maintainer) loadAttachable(ctx context.Context, ids []int64) ([]*product.Product, error) {
	out := make([]*product.Product, 0, len(ids))
	for _, id := range ids {
		p, err := m.products.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewInvalidReferenceError(product.EntityName, id)
			}
			return nil, err
		}
		if p.Retired() {
			return nil, shared.NewRetiredEntityError(product.EntityName, id)
		}
		out = append(out, p)
	}
	return out, nil
}

// loadDetachable loads every product about to lose an association.
// Missing ids are returned separately instead of failing.
func (m *Maintainer) loadDetachable(ctx context.Context, ids []int64) ([]*product.Product, []int64, error) {
	var out []*product.Product
	var missing []int64
	for _, id := range ids {
		p, err := m.products.FindByID(ctx, id)
		if errors.Is(err, shared.ErrNotFound) {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}
		if p.Retired() {
			return nil, nil, shared.NewRetiredEntityError(product.EntityName, id)
		}
		out = append(out, p)
	}
	return out, missing, nil
}

// categoryCache loads each previous category once and remembers which ones
// were handed out for mutation.
type categoryCache struct {
	loaded map[int64]*category.Category
	order  []int64
}

func newCategoryCache() *categoryCache {
	return &categoryCache{loaded: make(map[int64]*category.Category)}
}

// load returns nil, nil when id no longer exists.
func (c *categoryCache) load(ctx context.Context, repo category.Repository, id int64) (*category.Category, error) {
	if cat, ok := c.loaded[id]; ok {
		return cat, nil
	}
	cat, err := repo.FindByID(ctx, id)
	if errors.Is(err, shared.ErrNotFound) {
		c.loaded[id] = nil
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.loaded[id] = cat
	c.order = append(c.order, id)
	return cat, nil
}

func (c *categoryCache) get(id int64) *category.Category {
	return c.loaded[id]
}

func (c *categoryCache) touched() []*category.Category {
	out := make([]*category.Category, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.loaded[id])
	}
	return out
}

type tracker[T interface{ ID() int64 }] struct {
	seen  map[int64]bool
	order []T
}

func newTracker[T interface{ ID() int64 }]() *tracker[T] {
	return &tracker[T]{seen: make(map[int64]bool)}
}

func (t *tracker[T]) add(item T) {
	if t.seen[item.ID()] {
		return
	}
	t.seen[item.ID()] = true
	t.order = append(t.order, item)
}

func (t *tracker[T]) items() []T {
	return t.order
}
