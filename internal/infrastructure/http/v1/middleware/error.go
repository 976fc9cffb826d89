package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"spottive/internal/core/apperror"
	"spottive/pkg/logger"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorHandler renders errors attached to the gin context as JSON.
// Handlers call c.Error(err) and return; the mapping from error code
// to HTTP status lives here alone.
func ErrorHandler(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		appErr, ok := apperror.As(err)
		if !ok {
			appErr = apperror.Internal("internal server error", err)
		}

		if appErr.HTTPStatus() >= http.StatusInternalServerError {
			log.WithContext(c.Request.Context()).Errorw("request error",
				"error", err,
				"path", c.Request.URL.Path,
			)
		}

		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.HTTPStatus(), gin.H{"error": errorBody{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		}})
	}
}
