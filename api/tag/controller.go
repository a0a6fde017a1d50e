package tag

import (
	"net/http"

	"storefront/api/ctxutil"
	"storefront/api/response"
	tagapp "storefront/application/tag"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Controller Tag controller
type Controller struct {
	tagService *tagapp.ApplicationService
}

// NewController Create tag controller
func NewController(tagService *tagapp.ApplicationService) *Controller {
	return &Controller{
		tagService: tagService,
	}
}

// RegisterRoutes Register tag routes
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/tags")
	{
		group.POST("", c.CreateTag)
		group.GET("", c.GetAllTags)
		group.GET("/:id", c.GetTag)
		group.PUT("/:id", c.UpdateTag)
		group.POST("/:id/retire", c.RetireTag)
		group.POST("/:id/unretire", c.UnretireTag)
	}
}

// CreateTag POST /api/v1/tags
func (c *Controller) CreateTag(ctx *gin.Context) {
	var req tagapp.CreateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	tag, err := c.tagService.CreateTag(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, tag, "tag created successfully")
}

// GetTag GET /api/v1/tags/:id
func (c *Controller) GetTag(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	tag, err := c.tagService.GetTag(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	if tag == nil {
		response.HandleAppError(ctx, errors.NotFound("tag not found"))
		return
	}

	response.HandleSuccess(ctx, tag, "tag retrieved successfully")
}

// GetAllTags GET /api/v1/tags?name=Fresh&active=true
func (c *Controller) GetAllTags(ctx *gin.Context) {
	reqCtx := ctxutil.WithRequestID(ctx)

	if name := ctx.Query("name"); name != "" {
		tag, err := c.tagService.GetTagByName(reqCtx, name)
		if err != nil {
			response.HandleAppError(ctx, err)
			return
		}
		tags := []*tagapp.TagResponse{}
		if tag != nil {
			tags = append(tags, tag)
		}
		response.HandleList(ctx, tags, "tags retrieved successfully")
		return
	}

	tags, err := c.tagService.GetAllTags(reqCtx, ctxutil.QueryBool(ctx, "active"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleList(ctx, tags, "tags retrieved successfully")
}

// UpdateTag PUT /api/v1/tags/:id
func (c *Controller) UpdateTag(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	var req tagapp.UpdateTagRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	tag, err := c.tagService.UpdateTag(ctxutil.WithRequestID(ctx), id, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, tag, "tag updated successfully")
}

// RetireTag POST /api/v1/tags/:id/retire
func (c *Controller) RetireTag(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	tag, err := c.tagService.RetireTag(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, tag, "tag retired successfully")
}

// UnretireTag POST /api/v1/tags/:id/unretire
func (c *Controller) UnretireTag(ctx *gin.Context) {
	id, err := ctxutil.PathID(ctx, "id")
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	tag, err := c.tagService.UnretireTag(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, tag, "tag unretired successfully")
}
