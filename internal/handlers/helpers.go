package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "refutree/internal/errors"
	"refutree/internal/logger"
	"refutree/internal/models"
	"refutree/internal/pagination"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", apperrors.ErrUnauthorized
	}
	return userID.(string), nil
}

// getActor returns the display name used to attribute mutations. Unattended
// jobs run without a user in the context and fall back to the system actor.
func getActor(c *gin.Context) string {
	if name, exists := c.Get("userName"); exists {
		if s, ok := name.(string); ok && s != "" {
			return s
		}
	}
	if email, exists := c.Get("email"); exists {
		if s, ok := email.(string); ok && s != "" {
			return s
		}
	}
	return models.SystemUser
}

// getPageRequest binds the page/page_size query parameters.
func getPageRequest(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	return page, nil
}

// parseDateParam parses an optional date query parameter, accepting either a
// plain date or a full RFC 3339 timestamp.
func parseDateParam(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+name+" date")
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
