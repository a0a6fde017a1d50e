package order_test

import (
	"context"
	"testing"
	"time"

	"storefront/application/apptest"
	orderApp "storefront/application/order"
	productApp "storefront/application/product"
	"storefront/domain/order"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*apptest.Env, *productApp.ProductResponse) {
	t.Helper()
	env := apptest.New(nil)
	fish, err := env.ProductService.CreateProduct(context.Background(), productApp.CreateProductRequest{
		Name: "Fish", Description: "desc", Price: decimal.RequireFromString("5.99"),
	})
	require.NoError(t, err)
	return env, fish
}

func TestLineItemRoundTrip(t *testing.T) {
	ctx := context.Background()
	env, fish := setup(t)

	o, err := env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCreated), o.Status)
	assert.Empty(t, o.LineItems)

	o, err = env.OrderService.UpdateOrder(ctx, o.ID, orderApp.UpdateOrderRequest{
		Add: []orderApp.LineItemRequest{{ProductID: fish.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("11.98")))

	o, err = env.OrderService.UpdateOrder(ctx, o.ID, orderApp.UpdateOrderRequest{
		Remove: []orderApp.LineItemRequest{{ProductID: fish.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Empty(t, o.LineItems)
	assert.True(t, o.Total.IsZero())
}

func TestLineItemsSnapshotThePrice(t *testing.T) {
	ctx := context.Background()
	env, fish := setup(t)

	o, err := env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{
		LineItems: []orderApp.LineItemRequest{{ProductID: fish.ID, Quantity: 0}},
	})
	require.NoError(t, err)
	require.Len(t, o.LineItems, 1)
	assert.Equal(t, 1, o.LineItems[0].Quantity, "quantity below one is clamped")

	price := decimal.RequireFromString("9.99")
	_, err = env.ProductService.UpdateProduct(ctx, fish.ID, productApp.UpdateProductRequest{Price: &price})
	require.NoError(t, err)

	got, _ := env.OrderService.GetOrder(ctx, o.ID)
	assert.True(t, got.Total.Equal(decimal.RequireFromString("5.99")))
}

func TestOrderRejectsUnknownAndRetiredProducts(t *testing.T) {
	ctx := context.Background()
	env, fish := setup(t)

	_, err := env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{
		LineItems: []orderApp.LineItemRequest{{ProductID: 999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrInvalidReference)
	all, _ := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{})
	assert.Empty(t, all)

	_, err = env.ProductService.RetireProduct(ctx, fish.ID)
	require.NoError(t, err)
	_, err = env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{
		LineItems: []orderApp.LineItemRequest{{ProductID: fish.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrRetiredEntity)
}

func TestTerminalStatesAreFinal(t *testing.T) {
	ctx := context.Background()
	env, fish := setup(t)

	o, _ := env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{})
	cancelled, err := env.OrderService.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, string(order.StatusCancelled), cancelled.Status)

	_, err = env.OrderService.CompleteOrder(ctx, o.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)
	_, err = env.OrderService.UpdateOrder(ctx, o.ID, orderApp.UpdateOrderRequest{
		Add: []orderApp.LineItemRequest{{ProductID: fish.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	got, _ := env.OrderService.GetOrder(ctx, o.ID)
	assert.Equal(t, string(order.StatusCancelled), got.Status)

	byStatus, _ := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{Status: string(order.StatusCancelled)})
	assert.Len(t, byStatus, 1)
	created, _ := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{Status: string(order.StatusCreated)})
	assert.Empty(t, created)
}

func TestGetOrderReturnsNilWhenAbsent(t *testing.T) {
	env := apptest.New(nil)
	got, err := env.OrderService.GetOrder(context.Background(), 12)
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = env.OrderService.CancelOrder(context.Background(), 12)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)
}

func TestGetAllOrdersByCreationTime(t *testing.T) {
	ctx := context.Background()
	env, _ := setup(t)

	before := time.Now().UTC().Add(-time.Second)
	first, err := env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{})
	require.NoError(t, err)
	second, err := env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{})
	require.NoError(t, err)
	_, err = env.OrderService.CancelOrder(ctx, second.ID)
	require.NoError(t, err)
	after := time.Now().UTC().Add(time.Second)

	inRange, err := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{CreatedFrom: before, CreatedTo: after})
	require.NoError(t, err)
	assert.Len(t, inRange, 2)

	openOnly, err := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{
		Status: string(order.StatusCreated), CreatedFrom: before,
	})
	require.NoError(t, err)
	require.Len(t, openOnly, 1)
	assert.Equal(t, first.ID, openOnly[0].ID)

	exact, err := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{CreatedFrom: first.CreatedOn, CreatedTo: first.CreatedOn})
	require.NoError(t, err)
	assert.NotEmpty(t, exact, "both bounds are inclusive")

	later, err := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{CreatedFrom: after})
	require.NoError(t, err)
	assert.Empty(t, later)

	earlier, err := env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{CreatedTo: before})
	require.NoError(t, err)
	assert.Empty(t, earlier)

	_, err = env.OrderService.GetAllOrders(ctx, orderApp.OrderQuery{CreatedFrom: after, CreatedTo: before})
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}
