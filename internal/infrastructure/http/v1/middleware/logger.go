package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"spottive/pkg/logger"
)

// Logger logs one line per request with latency and status.
func Logger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		entry := log.WithContext(c.Request.Context()).With(
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)

		switch {
		case c.Writer.Status() >= 500:
			entry.Errorw("request failed")
		case c.Writer.Status() >= 400:
			entry.Warnw("request rejected")
		default:
			entry.Infow("request completed")
		}
	}
}
