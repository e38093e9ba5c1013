package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopkhata/shopkhata-backend/internal/platform/metrics"
)

// RequestMetrics records request latency and status for every handled request.
func RequestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.ObserveHTTPRequest(c.Request.Method, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
