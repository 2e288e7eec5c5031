package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SuccessResponse writes extras as a 200 JSON body with no envelope.
func SuccessResponse(c *gin.Context, extras any) {
	c.JSON(http.StatusOK, extras)
}

// SuccessResponseList writes a JSON array, never null.
func SuccessResponseList[T any](c *gin.Context, list []T) {
	if list == nil {
		list = []T{}
	}
	c.JSON(http.StatusOK, list)
}

// ErrorResponse aborts the request with an {"error": message} body.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, NewError(code, message))
}

// FromError writes err as-is when it is an Error and as a generic 500 otherwise.
func FromError(c *gin.Context, err error) {
	var apiErr Error
	if !errors.As(err, &apiErr) {
		apiErr = ErrServer
	}
	ErrorResponse(c, apiErr.Code, apiErr.Message)
}
