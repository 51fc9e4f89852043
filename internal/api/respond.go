package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jfsanchez2k/webflow-ecommerce/pkg/logging"
	"github.com/jfsanchez2k/webflow-ecommerce/pkg/metrics"
)

const serviceName = "storefront-api"

type errorResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, dataResponse{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, code int, msg string, details ...string) {
	writeJSON(w, code, errorResponse{Success: false, Error: msg, Details: details})
}

// recoverer is the per-request safety net: any panic becomes a generic 500
// with a short message, never a stack trace in the response.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.Log(logging.Fields{
					Service: serviceName,
					Step:    "panic",
					Status:  "error",
					Error:   fmt.Sprint(rec),
				})
				writeError(w, http.StatusInternalServerError, fmt.Sprintf("internal server error: %v", rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// instrument records an access log line plus request count and latency per
// route pattern.
func instrument(m *metrics.ServerMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = r.URL.Path
			}
			status := fmt.Sprintf("%d", ww.Status())

			logging.Log(logging.Fields{
				Service:    serviceName,
				Step:       r.Method + " " + pattern,
				Status:     status,
				DurationMS: elapsed.Milliseconds(),
			})
			if m != nil {
				m.Requests.WithLabelValues(pattern, status).Inc()
				m.LatencyMS.WithLabelValues(pattern).Observe(float64(elapsed.Milliseconds()))
			}
		})
	}
}
