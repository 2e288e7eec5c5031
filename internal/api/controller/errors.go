package controller

import (
	"ctchen222/Exercise-Tracker/internal/api/response"
	"ctchen222/Exercise-Tracker/internal/api/service"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// handleError maps service errors to HTTP responses. Anything that is not a
// client mistake is logged and hidden behind a generic 500.
func handleError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		response.FromError(c, response.NewError(http.StatusBadRequest, msg))
	case errors.Is(err, service.ErrUnknownUser):
		response.FromError(c, response.NewError(http.StatusBadRequest, service.ErrUnknownUser.Error()))
	default:
		slog.ErrorContext(ctx, "request failed", "http.path", c.FullPath(), "error", err)
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, "internal error")
		response.FromError(c, err)
	}
}
