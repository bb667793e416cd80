package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/wazai-maps/internal/service"
)

// unmatchedRoute labels requests that hit no registered route, so random
// paths cannot grow the label set.
const unmatchedRoute = "unmatched"

// Metrics records one observation per request labelled by route template
// (e.g. /api/v1/sessions/:id/map). Routes listed in skip are not recorded.
func Metrics(metricsSvc *service.MetricsService, skip ...string) gin.HandlerFunc {
	skipped := make(map[string]struct{}, len(skip))
	for _, route := range skip {
		skipped[route] = struct{}{}
	}
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		if _, ok := skipped[route]; ok {
			return
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
