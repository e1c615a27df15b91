package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

// UnmatchedRoute labels requests that hit no registered route.
const UnmatchedRoute = "unmatched"

// RequestCounter counts inbound requests by path.
type RequestCounter interface {
	RecordRequest(path string)
}

// HTTPObserver records request latency by route.
type HTTPObserver interface {
	ObserveHTTPRequest(method, path string, status int, duration time.Duration)
}

// Metrics counts every request except those to the skipped paths, so the
// metrics endpoints do not inflate their own numbers. Requests that match no
// route share the UnmatchedRoute bucket. Latency is observed per route template.
func Metrics(counter RequestCounter, observer HTTPObserver, skip ...string) gin.HandlerFunc {
	skipSet := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipSet[p] = struct{}{}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, skipped := skipSet[path]; skipped {
			c.Next()
			return
		}
		route := c.FullPath()
		if route == "" {
			route = UnmatchedRoute
			path = UnmatchedRoute
		}
		if counter != nil {
			counter.RecordRequest(path)
		}

		start := time.Now()
		c.Next()
		if observer == nil {
			return
		}
		observer.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
