package payment_test

import (
	"context"
	"testing"

	"storefront/application/apptest"
	orderApp "storefront/application/order"
	paymentApp "storefront/application/payment"
	productApp "storefront/application/product"
	"storefront/domain/order"
	"storefront/domain/payment"
	"storefront/domain/shared"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderOfTwoFish(t *testing.T) (*apptest.Env, *orderApp.OrderResponse) {
	t.Helper()
	ctx := context.Background()
	env := apptest.New(nil)
	fish, err := env.ProductService.CreateProduct(ctx, productApp.CreateProductRequest{
		Name: "Fish", Description: "desc", Price: decimal.RequireFromString("5.99"),
	})
	require.NoError(t, err)
	o, err := env.OrderService.CreateOrder(ctx, orderApp.CreateOrderRequest{
		LineItems: []orderApp.LineItemRequest{{ProductID: fish.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	return env, o
}

func TestExactPaymentCompletesOrder(t *testing.T) {
	ctx := context.Background()
	env, o := orderOfTwoFish(t)

	var published []string
	require.NoError(t, env.Bus.Subscribe(shared.AllEvents, shared.NewFuncHandler("recorder", func(e shared.DomainEvent) error {
		published = append(published, e.EventName())
		return nil
	})))

	p, err := env.PaymentService.MakePayment(ctx, paymentApp.MakePaymentRequest{OrderID: o.ID, Amount: o.Total})
	require.NoError(t, err)
	assert.True(t, p.Change.IsZero())
	assert.True(t, p.OrderTotal.Equal(decimal.RequireFromString("11.98")))

	got, _ := env.OrderService.GetOrder(ctx, o.ID)
	assert.Equal(t, string(order.StatusComplete), got.Status)
	assert.ElementsMatch(t, []string{"order.completed", "payment.made"}, published)

	_, err = env.PaymentService.MakePayment(ctx, paymentApp.MakePaymentRequest{OrderID: o.ID, Amount: o.Total})
	assert.ErrorIs(t, err, payment.ErrOrderAlreadyPaid)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	byOrder, _ := env.PaymentService.GetPaymentsByOrder(ctx, o.ID)
	assert.Len(t, byOrder, 1)
}

func TestOverpaymentReturnsChange(t *testing.T) {
	env, o := orderOfTwoFish(t)
	p, err := env.PaymentService.MakePayment(context.Background(), paymentApp.MakePaymentRequest{
		OrderID: o.ID, Amount: decimal.RequireFromString("20"),
	})
	require.NoError(t, err)
	assert.True(t, p.Change.Equal(decimal.RequireFromString("8.02")))

	got, err := env.PaymentService.GetPayment(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, got.OrderID)
}

func TestInsufficientAmountLeavesOrderCreated(t *testing.T) {
	ctx := context.Background()
	env, o := orderOfTwoFish(t)

	_, err := env.PaymentService.MakePayment(ctx, paymentApp.MakePaymentRequest{OrderID: o.ID, Amount: decimal.RequireFromString("11.97")})
	assert.ErrorIs(t, err, shared.ErrInsufficientAmount)

	got, _ := env.OrderService.GetOrder(ctx, o.ID)
	assert.Equal(t, string(order.StatusCreated), got.Status)
	all, _ := env.PaymentService.GetAllPayments(ctx)
	assert.Empty(t, all)
}

func TestPaymentOnCancelledOrUnknownOrder(t *testing.T) {
	ctx := context.Background()
	env, o := orderOfTwoFish(t)

	_, err := env.OrderService.CancelOrder(ctx, o.ID)
	require.NoError(t, err)
	_, err = env.PaymentService.MakePayment(ctx, paymentApp.MakePaymentRequest{OrderID: o.ID, Amount: o.Total})
	assert.ErrorIs(t, err, payment.ErrOrderAlreadyCancelled)
	assert.ErrorIs(t, err, shared.ErrInvalidTransition)

	_, err = env.PaymentService.MakePayment(ctx, paymentApp.MakePaymentRequest{OrderID: 404, Amount: o.Total})
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	missing, err := env.PaymentService.GetPayment(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}
