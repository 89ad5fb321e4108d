package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/aalokdeep/workbench-api/pkg/metrics"
)

// Metrics records a counter per route template and response status.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.APIRequests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}
