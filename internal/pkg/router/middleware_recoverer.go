package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/stacktrace"
)

func recoverer() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					slog.ErrorContext(r.Context(), "http handler panic recovered",
						"panic", rec,
						"method", r.Method,
						"path", r.URL.Path,
						"stack", stacktrace.InternalPaths(debug.Stack()),
					)

					errorCodec(w, r, goerror.NewServer(nil))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
