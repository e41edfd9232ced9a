package middleware

import (
	"net/http"
	"strconv"
	"time"

	"osday/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Metrics collects HTTP request metrics, labelled by the matched chi route
// pattern to keep label cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := strconv.Itoa(ww.Status())

		metrics.RequestCounter.WithLabelValues(status, r.Method, route).Inc()
		metrics.RequestDuration.WithLabelValues(status, r.Method, route).Observe(time.Since(start).Seconds())
	})
}
