/*
Package category exposes the category HTTP endpoints.

Binding errors return 400; domain errors go through response.HandleAppError.
*/
package category

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	categoryapp "storefront/application/category"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Category controller
type Controller struct {
	categoryService *categoryapp.ApplicationService
}

// NewController Create category controller
func NewController(categoryService *categoryapp.ApplicationService) *Controller {
	return &Controller{
		categoryService: categoryService,
	}
}

// RegisterRoutes Register category routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/categories")
	{
		group.POST("", c.CreateCategory)
		group.GET("", c.GetAllCategories)
		group.GET("/:id", c.GetCategory)
		group.PUT("/:id", c.UpdateCategory)
		group.POST("/:id/retire", c.RetireCategory)
	}
}

// CreateCategory Create category
// POST /api/v1/categories
func (c *Controller) CreateCategory(ctx *gin.Context) {
	var req categoryapp.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	category, err := c.categoryService.CreateCategory(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, category, "category created successfully")
}

// GetCategory Get category
// GET /api/v1/categories/:id
func (c *Controller) GetCategory(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	category, err := c.categoryService.GetCategory(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if category == nil {
		response.HandleAppError(ctx, errors.NotFound("category not found"))
		return
	}

	response.HandleSuccess(ctx, category, "category retrieved successfully")
}

// GetAllCategories List categories
// GET /api/v1/categories?name=Seafood&active=true
func (c *Controller) GetAllCategories(ctx *gin.Context) {
	reqCtx := ctxutil.WithRequestID(ctx)

	if name := ctx.Query("name"); name != "" {
		category, err := c.categoryService.GetCategoryByName(reqCtx, name)
		if err != nil {
			response.HandleAppError(ctx, err)
			return
		}
		categories := []*categoryapp.CategoryResponse{}
		if category != nil {
			categories = append(categories, category)
		}
		response.HandleList(ctx, categories, "categories retrieved successfully")
		return
	}

	categories, err := c.categoryService.GetAllCategories(reqCtx, ctxutil.QueryBool(ctx, "active"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleList(ctx, categories, "categories retrieved successfully")
}

// UpdateCategory replaces the product associations when products is present
// PUT /api/v1/categories/:id
func (c *Controller) UpdateCategory(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req categoryapp.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	category, err := c.categoryService.UpdateCategory(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, category, "category updated successfully")
}

// RetireCategory returns 409 while products are still attached
// POST /api/v1/categories/:id/retire
func (c *Controller) RetireCategory(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	category, err := c.categoryService.RetireCategory(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, category, "category retired successfully")
}
