package catalog_test

import (
	"context"
	"testing"

	"storefront/domain/catalog"
	"storefront/domain/category"
	"storefront/domain/product"
	"storefront/domain/shared"
	"storefront/domain/tag"
	"storefront/infrastructure/persistence/memory"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx        context.Context
	categories *memory.CategoryRepository
	tags       *memory.TagRepository
	products   *memory.ProductRepository
	m          *catalog.Maintainer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		ctx:        context.Background(),
		categories: memory.NewCategoryRepository(),
		tags:       memory.NewTagRepository(),
		products:   memory.NewProductRepository(),
	}
	f.m = catalog.NewMaintainer(f.categories, f.tags, f.products)
	return f
}

func (f *fixture) category(t *testing.T, id int64, name string) *category.Category {
	t.Helper()
	c, err := category.NewCategory(id, name, name+" desc")
	require.NoError(t, err)
	require.NoError(t, f.categories.Save(f.ctx, c))
	return c
}

func (f *fixture) tag(t *testing.T, id int64, name string) *tag.Tag {
	t.Helper()
	tg, err := tag.NewTag(id, name, name+" desc")
	require.NoError(t, err)
	require.NoError(t, f.tags.Save(f.ctx, tg))
	return tg
}

func (f *fixture) product(t *testing.T, id int64, name string) *product.Product {
	t.Helper()
	p, err := product.NewProduct(id, name, name+" desc", decimal.RequireFromString("5.99"))
	require.NoError(t, err)
	require.NoError(t, f.products.Save(f.ctx, p))
	return p
}

// persist saves the target and everything the maintainer touched.
func (f *fixture) persist(t *testing.T, res *catalog.SyncResult) {
	t.Helper()
	for _, c := range res.Categories {
		require.NoError(t, f.categories.Save(f.ctx, c))
	}
	for _, tg := range res.Tags {
		require.NoError(t, f.tags.Save(f.ctx, tg))
	}
	for _, p := range res.Products {
		require.NoError(t, f.products.Save(f.ctx, p))
	}
}

func TestSyncCategoryProductsAttachesBothSides(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	fish := f.product(t, 10, "Fish")
	crab := f.product(t, 11, "Crab")

	res, err := f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet(fish.ID(), crab.ID()))
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.categories.Save(f.ctx, seafood))

	assert.Equal(t, []int64{10, 11}, res.Added)
	assert.Empty(t, res.Removed)
	stored, _ := f.categories.FindByID(f.ctx, 1)
	assert.Equal(t, []int64{10, 11}, stored.Products())
	for _, id := range []int64{10, 11} {
		p, _ := f.products.FindByID(f.ctx, id)
		assert.Equal(t, product.CategorySnapshot{ID: 1, Name: "Seafood", Description: "Seafood desc"}, p.Category())
	}
}

func TestSyncCategoryProductsRejectsUnknownIDWithoutMutation(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	fish := f.product(t, 10, "Fish")

	res, err := f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet(fish.ID(), 999))

	assert.Nil(t, res)
	assert.ErrorIs(t, err, shared.ErrInvalidReference)
	assert.Equal(t, []int64{999}, shared.IDsOf(err))
	assert.Empty(t, seafood.Products(), "in-memory target must be untouched")
	stored, _ := f.products.FindByID(f.ctx, 10)
	assert.False(t, stored.HasCategory())
}

func TestSyncCategoryProductsMovesProductOutOfPreviousCategory(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	frozen := f.category(t, 2, "Frozen")
	fish := f.product(t, 10, "Fish")

	res, err := f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet(fish.ID()))
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.categories.Save(f.ctx, seafood))

	res, err = f.m.SyncCategoryProducts(f.ctx, frozen, shared.NewIDSet(fish.ID()))
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.categories.Save(f.ctx, frozen))

	require.Len(t, res.Categories, 1)
	assert.Equal(t, int64(1), res.Categories[0].ID())
	old, _ := f.categories.FindByID(f.ctx, 1)
	assert.Empty(t, old.Products())
	p, _ := f.products.FindByID(f.ctx, 10)
	assert.Equal(t, int64(2), p.Category().ID)
}

func TestSyncCategoryProductsDetachesRemovedAndMissing(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	fish := f.product(t, 10, "Fish")

	res, err := f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet(fish.ID()))
	require.NoError(t, err)
	f.persist(t, res)
	// A dangling id left behind by an earlier inconsistency.
	require.NoError(t, seafood.AddProduct(404))

	res, err = f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet())
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{10, 404}, res.Removed)
	assert.Equal(t, []int64{404}, res.Missing)
	assert.Empty(t, seafood.Products())
	require.Len(t, res.Products, 1)
	assert.False(t, res.Products[0].HasCategory())
}

func TestSyncRejectsRetiredParticipants(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	fish := f.product(t, 10, "Fish")
	require.NoError(t, fish.Retire())
	require.NoError(t, f.products.Save(f.ctx, fish))

	_, err := f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet(fish.ID()))
	assert.ErrorIs(t, err, shared.ErrRetiredEntity)

	fresh := f.tag(t, 5, "Fresh")
	require.NoError(t, fresh.Retire())
	_, err = f.m.SyncTagProducts(f.ctx, fresh, shared.NewIDSet(fish.ID()))
	assert.ErrorIs(t, err, shared.ErrRetiredEntity)

	// No change at all is not a mutation.
	_, err = f.m.SyncTagProducts(f.ctx, fresh, shared.NewIDSet())
	assert.NoError(t, err)
}

func TestAssignProductCategory(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	f.category(t, 2, "Frozen")

	// Scenario: product created with a category id before it is saved.
	fish, err := product.NewProduct(10, "Fish", "fresh fish", decimal.RequireFromString("5.99"))
	require.NoError(t, err)

	res, err := f.m.AssignProductCategory(f.ctx, fish, seafood.ID())
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.products.Save(f.ctx, fish))

	stored, _ := f.categories.FindByID(f.ctx, 1)
	assert.Equal(t, []int64{10}, stored.Products())

	res, err = f.m.AssignProductCategory(f.ctx, fish, 2)
	require.NoError(t, err)
	f.persist(t, res)
	assert.Len(t, res.Categories, 2)
	old, _ := f.categories.FindByID(f.ctx, 1)
	assert.Empty(t, old.Products())
	now, _ := f.categories.FindByID(f.ctx, 2)
	assert.Equal(t, []int64{10}, now.Products())

	res, err = f.m.AssignProductCategory(f.ctx, fish, 0)
	require.NoError(t, err)
	f.persist(t, res)
	assert.False(t, fish.HasCategory())
	now, _ = f.categories.FindByID(f.ctx, 2)
	assert.Empty(t, now.Products())

	_, err = f.m.AssignProductCategory(f.ctx, fish, 77)
	assert.ErrorIs(t, err, shared.ErrInvalidReference)
	assert.False(t, fish.HasCategory())
}

func TestRefreshCategorySnapshots(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	f.product(t, 10, "Fish")
	res, err := f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet(10))
	require.NoError(t, err)
	f.persist(t, res)

	require.NoError(t, seafood.Rename("Ocean", "from the sea"))
	res, err = f.m.RefreshCategorySnapshots(f.ctx, seafood)
	require.NoError(t, err)
	f.persist(t, res)

	p, _ := f.products.FindByID(f.ctx, 10)
	assert.Equal(t, "Ocean", p.Category().Name)
	assert.Equal(t, "from the sea", p.Category().Description)
}

func TestSyncTagAndProductSidesAgree(t *testing.T) {
	f := newFixture(t)
	fresh := f.tag(t, 5, "Fresh")
	local := f.tag(t, 6, "Local")
	fish := f.product(t, 10, "Fish")
	crab := f.product(t, 11, "Crab")

	res, err := f.m.SyncTagProducts(f.ctx, fresh, shared.NewIDSet(10, 11))
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.tags.Save(f.ctx, fresh))

	fish, _ = f.products.FindByID(f.ctx, 10)
	res, err = f.m.SyncProductTags(f.ctx, fish, shared.NewIDSet(local.ID()))
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.products.Save(f.ctx, fish))

	storedFresh, _ := f.tags.FindByID(f.ctx, 5)
	storedLocal, _ := f.tags.FindByID(f.ctx, 6)
	assert.Equal(t, []int64{11}, storedFresh.Products())
	assert.Equal(t, []int64{10}, storedLocal.Products())
	storedFish, _ := f.products.FindByID(f.ctx, 10)
	assert.Equal(t, []int64{6}, storedFish.Tags())
	storedCrab, _ := f.products.FindByID(f.ctx, crab.ID())
	assert.Equal(t, []int64{5}, storedCrab.Tags())

	_, err = f.m.SyncProductTags(f.ctx, storedFish, shared.NewIDSet(6, 123))
	assert.ErrorIs(t, err, shared.ErrInvalidReference)
	assert.Equal(t, []int64{6}, storedFish.Tags())
}

func TestDetachRetiringProductLeavesTags(t *testing.T) {
	f := newFixture(t)
	seafood := f.category(t, 1, "Seafood")
	fresh := f.tag(t, 5, "Fresh")
	f.product(t, 10, "Fish")

	res, err := f.m.SyncCategoryProducts(f.ctx, seafood, shared.NewIDSet(10))
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.categories.Save(f.ctx, seafood))
	res, err = f.m.SyncTagProducts(f.ctx, fresh, shared.NewIDSet(10))
	require.NoError(t, err)
	f.persist(t, res)
	require.NoError(t, f.tags.Save(f.ctx, fresh))

	fish, _ := f.products.FindByID(f.ctx, 10)
	res, err = f.m.DetachRetiringProduct(f.ctx, fish)
	require.NoError(t, err)
	f.persist(t, res)

	assert.Equal(t, []int64{1}, res.Removed)
	assert.False(t, fish.HasCategory())
	assert.Equal(t, []int64{5}, fish.Tags())
	stored, _ := f.categories.FindByID(f.ctx, 1)
	assert.Empty(t, stored.Products())
	storedTag, _ := f.tags.FindByID(f.ctx, 5)
	assert.Equal(t, []int64{10}, storedTag.Products())
}
