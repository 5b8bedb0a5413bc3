package router

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// observability opens a server span per request, records latency and count
// metrics and emits an access log line.
func observability(cfg config.Config, ins *instrument.Instrument) Middleware {
	tracer := ins.Tracer("router")
	meter := ins.Meter("router")

	reqCount, _ := meter.Int64Counter("http.server.request.count")
	reqLatency, _ := meter.Float64Histogram("http.server.request.duration",
		metric.WithUnit("ms"),
	)

	accessLog := cfg.GetBool("server.access_log")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
			)
			defer span.End()

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			elapsed := time.Since(start)
			attrs := attribute.NewSet(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
				attribute.Int("http.status_code", rec.status),
			)
			reqCount.Add(ctx, 1, metric.WithAttributeSet(attrs))
			reqLatency.Record(ctx, float64(elapsed.Milliseconds()), metric.WithAttributeSet(attrs))

			if accessLog {
				slog.InfoContext(ctx, "http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", rec.status,
					"duration_ms", elapsed.Milliseconds(),
					"remote", r.RemoteAddr,
				)
			}
		})
	}
}
