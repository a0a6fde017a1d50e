package ctxutil

import (
	"context"
	"strconv"
	"time"

	"storefront/api/response"
	"storefront/infrastructure/persistence"
	"storefront/pkg/errors"

	"github.com/gin-gonic/gin"
)

// WithRequestID returns the request context tagged with the gin request id.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}

// PathID parses a positive integer path parameter.
func PathID(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest(name + " must be a positive integer")
	}
	return id, nil
}

// QueryID parses an optional positive integer query parameter; absent yields 0.
func QueryID(ctx *gin.Context, name string) (int64, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.BadRequest(name + " must be a positive integer")
	}
	return id, nil
}

// QueryTime parses an optional RFC 3339 query parameter; absent yields the zero time.
func QueryTime(ctx *gin.Context, name string) (time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, errors.BadRequest(name + " must be an RFC 3339 timestamp")
	}
	return t, nil
}

// QueryBool treats "true" and "1" as set.
func QueryBool(ctx *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(ctx.Query(name))
	return v
}
