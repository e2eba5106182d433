package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/E-Mello/controlefin.app/internal/infrastructure/metrics"
)

// Metrics returns a middleware that records HTTP metrics into m.
func Metrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			m.HTTPInFlight.Inc()
			defer m.HTTPInFlight.Dec()

			// Wrap response writer to capture status code
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			m.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), wrapped.statusCode, time.Since(start))
		})
	}
}

// normalizePath collapses conta IDs to keep label cardinality bounded.
// /contas/01ABC123 -> /contas/:id
func normalizePath(path string) string {
	const prefix = "/contas/"

	rest, ok := strings.CutPrefix(path, prefix)
	if !ok || rest == "" {
		return path
	}

	suffix := ""
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		if i == 0 {
			return path
		}
		suffix = rest[i:]
	}

	return prefix + ":id" + suffix
}
