// Package middleware holds the request-scoped middleware for the proxy.
package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader is the HTTP header used to propagate the request ID.
const RequestIDHeader = "X-Request-Id"

// RequestID tags every request with a unique ID, sets it on the response,
// and logs the request with timing once handling completes. The ID is also
// stamped on the inbound request headers so relayed upstream calls carry it,
// which lets a shared log pipeline correlate proxy and navidrome entries.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Reuse an inbound ID when a load balancer already assigned one.
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Request.Header.Set(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		slog.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}
