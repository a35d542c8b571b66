package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/investor-hub/backend/internal/middleware"
	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

// respondError renders err as an ErrorResponse. Internal errors are logged and
// rendered without details.
func respondError(c *gin.Context, err error) {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			appErr = models.NewTimeoutError(err)
		} else {
			appErr = models.NewInternalError(err)
		}
	}

	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		slog.ErrorContext(c.Request.Context(), "request error",
			"code", appErr.Code, "error", err)
	}
	c.AbortWithStatusJSON(status, models.ErrorResponse{Error: appErr.Message, Code: appErr.Code})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, models.NewValidationError(message))
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// currentUser returns the authenticated user id or renders 401.
func currentUser(c *gin.Context) (int, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondError(c, models.NewUnauthorizedError("User not authenticated"))
		return 0, false
	}
	return id, true
}

// queryInt parses an optional integer query parameter.
func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, name+" must be an integer")
		return 0, false
	}
	return n, true
}
