package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"voxassist/call-api/internal/infrastructure/metrics"
)

// Metrics records Prometheus request metrics per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequest(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
