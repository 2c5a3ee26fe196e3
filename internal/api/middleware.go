// File: internal/api/middleware.go
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kevinhagel/northstar-funding-sub000/internal/logging"
)

// RequestID stamps every inbound request with a request id (from the
// X-Request-ID header, or a fresh UUID), stores it on gin's context and
// on the request's context.Context so logging.Logger picks it up
// automatically, and echoes it back in the response header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Set("request_id", reqID)
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), reqID))
		c.Header("X-Request-ID", reqID)
		c.Next()
	}
}

// RequestLogging logs every request at Info level with method/path/status
// and the duration through the service's own Logger rather than a gin.Logger() that
// writes unstructured text.
func RequestLogging(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		ctx := c.Request.Context()
		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
			logger.Error(ctx, "request completed with errors", fields)
			return
		}
		logger.Info(ctx, "request completed", fields)
	}
}
