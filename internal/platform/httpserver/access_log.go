package httpserver

import (
	"log/slog"
	"net/http"
	"time"

	"erpinterno/internal/shared/logging"
	"erpinterno/internal/shared/tenant"
)

const slowRequestThreshold = time.Second

// accessLog writes one record per request once the response is done.
// Requests slower than slow are logged at warn.
func accessLog(logger *slog.Logger, slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			elapsed := time.Since(start)

			// The gate fills missing request ids on the shared header map.
			ctx := logging.WithRequest(r.Context(), tenant.Partial(r.Header))
			attrs := []any{
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration_ms", elapsed.Milliseconds(),
			}
			l := logging.FromContext(ctx, logger)
			if elapsed > slow {
				l.Warn("slow request", append([]any{"event", "http_request_slow"}, attrs...)...)
				return
			}
			l.Info("request served", append([]any{"event", "http_request_served"}, attrs...)...)
		})
	}
}
