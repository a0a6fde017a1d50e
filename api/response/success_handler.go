package response

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
)

func HandleSuccess(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusOK, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: requestID,
	})
}

func HandleCreated(c *gin.Context, data interface{}, message string) {
	requestID := getRequestID(c)
	c.JSON(http.StatusCreated, &Response{
		Success:   true,
		Data:      data,
		Message:   message,
		Code:      http.StatusCreated,
		RequestID: requestID,
	})
}

func HandleNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleList writes a slice; a nil slice is written as [].
func HandleList(c *gin.Context, items interface{}, message string) {
	requestID := getRequestID(c)
	total := 0
	if v := reflect.ValueOf(items); v.Kind() == reflect.Slice {
		total = v.Len()
		if v.IsNil() {
			items = []struct{}{}
		}
	}
	c.JSON(http.StatusOK, &ListResponse{
		Success:   true,
		Data:      items,
		Total:     total,
		Message:   message,
		Code:      http.StatusOK,
		RequestID: requestID,
	})
}
