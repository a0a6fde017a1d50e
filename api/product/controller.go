package product

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	productapp "storefront/application/product"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Controller Product controller
type Controller struct {
	productService *productapp.ApplicationService
}

// NewController Create product controller
func NewController(productService *productapp.ApplicationService) *Controller {
	return &Controller{
		productService: productService,
	}
}

// RegisterRoutes Register product routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/products")
	{
		group.POST("", c.CreateProduct)
		group.GET("", c.GetAllProducts)
		group.GET("/:id", c.GetProduct)
		group.PUT("/:id", c.UpdateProduct)
		group.POST("/:id/retire", c.RetireProduct)
		group.POST("/:id/unretire", c.UnretireProduct)
	}
}

// CreateProduct POST /api/v1/products
func (c *Controller) CreateProduct(ctx *gin.Context) {
	var req productapp.CreateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.CreateProduct(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, product, "product created successfully")
}

// GetProduct GET /api/v1/products/:id
func (c *Controller) GetProduct(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	product, err := c.productService.GetProduct(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if product == nil {
		response.HandleAppError(ctx, errors.NotFound("product not found"))
		return
	}

	response.HandleSuccess(ctx, product, "product retrieved successfully")
}

// GetAllProducts GET /api/v1/products
// Filters: name, category_id, tag_id, min_price, max_price, active.
func (c *Controller) GetAllProducts(ctx *gin.Context) {
	reqCtx := ctxutil.WithRequestID(ctx)

	if name := ctx.Query("name"); name != "" {
		product, err := c.productService.GetProductByName(reqCtx, name)
		if err != nil {
			response.HandleAppError(ctx, err)
			return
		}
		products := []*productapp.ProductResponse{}
		if product != nil {
			products = append(products, product)
		}
		response.HandleList(ctx, products, "products retrieved successfully")
		return
	}

	q, err := parseQuery(ctx)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	products, err := c.productService.GetAllProducts(reqCtx, q)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleList(ctx, products, "products retrieved successfully")
}

func parseQuery(ctx *gin.Context) (productapp.ProductQuery, error) {
	var (
		q   productapp.ProductQuery
		err error
	)
	if q.CategoryID, err = ctxutil.QueryID(ctx, "category_id"); err != nil {
		return q, err
	}
	if q.TagID, err = ctxutil.QueryID(ctx, "tag_id"); err != nil {
		return q, err
	}
	if q.MinPrice, err = queryPrice(ctx, "min_price"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = queryPrice(ctx, "max_price"); err != nil {
		return q, err
	}
	q.ActiveOnly = ctxutil.QueryBool(ctx, "active")
	return q, nil
}

func queryPrice(ctx *gin.Context, name string) (decimal.Decimal, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return decimal.Zero, errors.BadRequest(name + " must be a non-negative decimal")
	}
	return d, nil
}

// UpdateProduct PUT /api/v1/products/:id
func (c *Controller) UpdateProduct(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req productapp.UpdateProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	product, err := c.productService.UpdateProduct(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product updated successfully")
}

// RetireProduct POST /api/v1/products/:id/retire
func (c *Controller) RetireProduct(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	product, err := c.productService.RetireProduct(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product retired successfully")
}

// UnretireProduct POST /api/v1/products/:id/unretire
func (c *Controller) UnretireProduct(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	product, err := c.productService.UnretireProduct(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, product, "product unretired successfully")
}
