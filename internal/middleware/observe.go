package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestObserver receives one call per finished request.
type RequestObserver interface {
	ObserveRequest(route, method string, code int, elapsed time.Duration)
}

// Observe logs each request at debug level and reports it to obs (may be nil).
// The route label is the chi pattern, so ids in paths do not explode metric
// cardinality.
func Observe(logger *slog.Logger, obs RequestObserver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			code := ww.Status()
			if code == 0 {
				code = http.StatusOK
			}
			route := ""
			if rc := chi.RouteContext(r.Context()); rc != nil {
				route = rc.RoutePattern()
			}
			elapsed := time.Since(start)
			if obs != nil {
				obs.ObserveRequest(route, r.Method, code, elapsed)
			}
			logger.Debug("request",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", code,
				"bytes", ww.BytesWritten(),
				"elapsed", elapsed,
				"request_id", RequestIDFromContext(r.Context()))
		})
	}
}
