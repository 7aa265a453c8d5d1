package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stocker/backend/internal/infrastructure/telemetry"
)

// Metrics records request counts and latency per route.
// The route label uses the matched pattern, not the raw path,
// to keep label cardinality bounded.
func Metrics(metrics *telemetry.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		metrics.HTTPRequestsTotal.
			WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).
			Inc()
		metrics.HTTPRequestDuration.
			WithLabelValues(method, route).
			Observe(time.Since(start).Seconds())
	}
}
