package tag_test

import (
	"context"
	"testing"

	"storefront/application/apptest"
	productApp "storefront/application/product"
	tagApp "storefront/application/tag"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagAssociationsStayBidirectional(t *testing.T) {
	ctx := context.Background()
	env := apptest.New(nil)

	fish, err := env.ProductService.CreateProduct(ctx, productApp.CreateProductRequest{Name: "Fish", Description: "desc", Price: decimal.RequireFromString("5.99")})
	require.NoError(t, err)
	crab, err := env.ProductService.CreateProduct(ctx, productApp.CreateProductRequest{Name: "Crab", Description: "desc", Price: decimal.RequireFromString("12.50")})
	require.NoError(t, err)

	fresh, err := env.TagService.CreateTag(ctx, tagApp.CreateTagRequest{Name: "Fresh", Description: "daily", Products: []int64{fish.ID, crab.ID}})
	require.NoError(t, err)
	assert.Equal(t, []int64{fish.ID, crab.ID}, fresh.Products)

	updated, err := env.TagService.UpdateTag(ctx, fresh.ID, tagApp.UpdateTagRequest{Products: []int64{crab.ID}})
	require.NoError(t, err)
	assert.Equal(t, []int64{crab.ID}, updated.Products)

	gotFish, _ := env.ProductService.GetProduct(ctx, fish.ID)
	gotCrab, _ := env.ProductService.GetProduct(ctx, crab.ID)
	assert.Empty(t, gotFish.Tags)
	assert.Equal(t, []int64{fresh.ID}, gotCrab.Tags)
}

func TestCreateTagWithUnknownProductPersistsNothing(t *testing.T) {
	ctx := context.Background()
	env := apptest.New(nil)

	fish, _ := env.ProductService.CreateProduct(ctx, productApp.CreateProductRequest{Name: "Fish", Description: "desc", Price: decimal.RequireFromString("5.99")})

	_, err := env.TagService.CreateTag(ctx, tagApp.CreateTagRequest{Name: "Fresh", Description: "daily", Products: []int64{fish.ID, 999}})
	assert.ErrorIs(t, err, shared.ErrInvalidReference)

	all, _ := env.TagService.GetAllTags(ctx, false)
	assert.Empty(t, all)
	gotFish, _ := env.ProductService.GetProduct(ctx, fish.ID)
	assert.Empty(t, gotFish.Tags)
}

func TestTagRetireAndUnretire(t *testing.T) {
	ctx := context.Background()
	env := apptest.New(nil)

	fish, _ := env.ProductService.CreateProduct(ctx, productApp.CreateProductRequest{Name: "Fish", Description: "desc", Price: decimal.RequireFromString("5.99")})
	fresh, _ := env.TagService.CreateTag(ctx, tagApp.CreateTagRequest{Name: "Fresh", Description: "daily", Products: []int64{fish.ID}})

	_, err := env.TagService.RetireTag(ctx, fresh.ID)
	assert.ErrorIs(t, err, shared.ErrHasActiveAssociations)
	assert.Equal(t, []int64{fish.ID}, shared.IDsOf(err))

	_, err = env.TagService.UnretireTag(ctx, fresh.ID)
	assert.ErrorIs(t, err, shared.ErrNotRetired)

	_, err = env.TagService.UpdateTag(ctx, fresh.ID, tagApp.UpdateTagRequest{Products: []int64{}})
	require.NoError(t, err)
	retired, err := env.TagService.RetireTag(ctx, fresh.ID)
	require.NoError(t, err)
	assert.True(t, retired.Retired)

	_, err = env.TagService.UpdateTag(ctx, fresh.ID, tagApp.UpdateTagRequest{Products: []int64{fish.ID}})
	assert.ErrorIs(t, err, shared.ErrRetiredEntity)

	active, _ := env.TagService.GetAllTags(ctx, true)
	assert.Empty(t, active)

	back, err := env.TagService.UnretireTag(ctx, fresh.ID)
	require.NoError(t, err)
	assert.False(t, back.Retired)
}

func TestGetTagReturnsNilWhenAbsent(t *testing.T) {
	env := apptest.New(nil)
	got, err := env.TagService.GetTag(context.Background(), 1)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestTagNamesAreUnique(t *testing.T) {
	ctx := context.Background()
	env := apptest.New(nil)

	fresh, err := env.TagService.CreateTag(ctx, tagApp.CreateTagRequest{Name: "Fresh", Description: "daily"})
	require.NoError(t, err)
	local, err := env.TagService.CreateTag(ctx, tagApp.CreateTagRequest{Name: "Local", Description: "nearby"})
	require.NoError(t, err)

	_, err = env.TagService.CreateTag(ctx, tagApp.CreateTagRequest{Name: "Fresh", Description: "again"})
	assert.ErrorIs(t, err, shared.ErrDuplicateName)
	assert.Equal(t, []int64{fresh.ID}, shared.IDsOf(err))

	_, err = env.TagService.UpdateTag(ctx, local.ID, tagApp.UpdateTagRequest{Name: "Fresh"})
	assert.ErrorIs(t, err, shared.ErrDuplicateName)

	all, _ := env.TagService.GetAllTags(ctx, false)
	assert.Len(t, all, 2)
}
