// Package middleware holds the gin middleware chain: recovery, trace
// propagation, request logging, error rendering and authentication.
package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "spottive/internal/core/context"
)

const (
	headerTraceID   = "X-Trace-Id"
	headerRequestID = "X-Request-Id"
)

// Trace attaches a TraceContext to every request, honouring inbound
// trace ids so multi-service calls correlate.
func Trace() gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.NewTrace()
		if inbound := c.GetHeader(headerTraceID); inbound != "" {
			trace.TraceID = inbound
		}

		c.Request = c.Request.WithContext(appctx.WithTrace(c.Request.Context(), trace))
		c.Header(headerTraceID, trace.TraceID)
		c.Header(headerRequestID, trace.RequestID)
		c.Next()
	}
}
