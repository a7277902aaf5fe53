package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/metrics"
)

type ctxKey string

const traceIDKey ctxKey = "trace_id"

const TraceHeader = "X-Trace-ID"

// TracingMiddleware reuses an incoming X-Trace-ID or issues a new one and
// echoes it back in the response.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get(TraceHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), traceIDKey, traceID)
		w.Header().Set(TraceHeader, traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// TraceID returns the request's trace id, or the zero UUID outside a request.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey).(string); ok {
		return id
	}
	return uuid.Nil.String()
}

// instrument records latency and volume per route pattern and logs the request.
func instrument(m *metrics.Metrics, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			// pattern, not raw path, keeps label cardinality bounded
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			elapsed := time.Since(start)

			m.TotalRequests.WithLabelValues(route).Inc()
			m.RequestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())

			logger.Debug("request served",
				zap.String("method", r.Method),
				zap.String("route", route),
				zap.Int("status", status),
				zap.Duration("elapsed", elapsed),
				zap.String("trace_id", TraceID(r.Context())))
		})
	}
}
