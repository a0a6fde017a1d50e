/*
Package order exposes the order HTTP endpoints.

Responsibilities:
1. Parse the HTTP request
2. Call the application service
3. Write the result through the response package

Error flow:

	Repository returns: order.NewOrderNotFoundError(id)
	     ↓
	Service adds the operation: shared.WrapOp("complete order", err)
	     ↓
	Controller calls: response.HandleAppError(ctx, err)
	     ↓
	errors.FromDomainError walks the chain to ORDER_NOT_FOUND, mapped to 404
*/
package order

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	orderapp "storefront/application/order"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Order controller
type Controller struct {
	orderService *orderapp.ApplicationService
}

// NewController Create order controller
func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{
		orderService: orderService,
	}
}

// RegisterRoutes Register order routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.GetAllOrders)
		orderGroup.GET("/:id", c.GetOrder)
		orderGroup.PUT("/:id", c.UpdateOrder)
		orderGroup.POST("/:id/complete", c.CompleteOrder)
		orderGroup.POST("/:id/cancel", c.CancelOrder)
	}
}

// CreateOrder Create order
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.CreateOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, order, "order created successfully")
}

// GetOrder Get order
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	order, err := c.orderService.GetOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if order == nil {
		response.HandleAppError(ctx, errors.New(errors.CodeOrderNotFound, "order not found"))
		return
	}

	response.HandleSuccess(ctx, order, "order retrieved successfully")
}

// GetAllOrders lists orders, optionally filtered by status and creation time
// GET /api/v1/orders?status=CREATED&created_from=2024-01-01T00:00:00Z&created_to=2024-02-01T00:00:00Z
func (c *Controller) GetAllOrders(ctx *gin.Context) {
	q := orderapp.OrderQuery{Status: ctx.Query("status")}
	var err error
	if q.CreatedFrom, err = ctxutil.QueryTime(ctx, "created_from"); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if q.CreatedTo, err = ctxutil.QueryTime(ctx, "created_to"); err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	orders, err := c.orderService.GetAllOrders(ctxutil.WithRequestID(ctx), q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleList(ctx, orders, "orders retrieved successfully")
}

// UpdateOrder adds then removes line items
// PUT /api/v1/orders/:id
func (c *Controller) UpdateOrder(ctx *gin.Context) {
	orderID, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req orderapp.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	order, err := c.orderService.UpdateOrder(ctxutil.WithRequestID(ctx), orderID, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order updated successfully")
}

// CompleteOrder Complete order
// POST /api/v1/orders/:id/complete
func (c *Controller) CompleteOrder(ctx *gin.Context) {
	orderID, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	order, err := c.orderService.CompleteOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order completed successfully")
}

// CancelOrder Cancel order
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	orderID, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	order, err := c.orderService.CancelOrder(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, order, "order cancelled successfully")
}
