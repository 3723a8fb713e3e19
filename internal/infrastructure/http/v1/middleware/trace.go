package middleware

import (
	"github.com/gin-gonic/gin"

	appctx "stockbook/internal/core/context"
	"stockbook/pkg/logger"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderTraceID   = "X-Trace-ID"

	// ContextRequestID is the gin context key holding the request id.
	ContextRequestID = "request_id"
)

// Trace middleware adds request tracing context and binds log to the
// request context. A client supplied X-Request-ID is kept.
func Trace(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		trace := appctx.NewTraceContext(c.GetHeader(HeaderRequestID))

		ctx := appctx.WithTrace(c.Request.Context(), trace)
		if log != nil {
			ctx = logger.WithLogger(ctx, log)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Set("trace_id", trace.TraceID)
		c.Set(ContextRequestID, trace.RequestID)

		c.Header(HeaderRequestID, trace.RequestID)
		c.Header(HeaderTraceID, trace.TraceID)

		c.Next()
	}
}
