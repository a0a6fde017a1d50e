package payment

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	paymentapp "storefront/application/payment"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Payment controller
type Controller struct {
	paymentService *paymentapp.ApplicationService
}

// NewController Create payment controller
func NewController(paymentService *paymentapp.ApplicationService) *Controller {
	return &Controller{
		paymentService: paymentService,
	}
}

// RegisterRoutes Register payment routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/payments")
	{
		group.POST("", c.MakePayment)
		group.GET("", c.GetPayments)
		group.GET("/:id", c.GetPayment)
	}
}

// MakePayment POST /api/v1/payments
// Settles the order; the response carries the change owed.
func (c *Controller) MakePayment(ctx *gin.Context) {
	var req paymentapp.MakePaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	payment, err := c.paymentService.MakePayment(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, payment, "payment accepted")
}

// GetPayment GET /api/v1/payments/:id
func (c *Controller) GetPayment(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	payment, err := c.paymentService.GetPayment(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if payment == nil {
		response.HandleAppError(ctx, errors.NotFound("payment not found"))
		return
	}

	response.HandleSuccess(ctx, payment, "payment retrieved successfully")
}

// GetPayments GET /api/v1/payments?order_id=7
func (c *Controller) GetPayments(ctx *gin.Context) {
	orderID, err := ctxutil.QueryID(ctx, "order_id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	reqCtx := ctxutil.WithRequestID(ctx)
	var payments []*paymentapp.PaymentResponse
	if orderID > 0 {
		payments, err = c.paymentService.GetPaymentsByOrder(reqCtx, orderID)
	} else {
		payments, err = c.paymentService.GetAllPayments(reqCtx)
	}
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleList(ctx, payments, "payments retrieved successfully")
}
