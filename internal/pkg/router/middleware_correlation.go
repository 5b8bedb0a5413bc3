package router

import (
	"net/http"

	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
)

const correlationHeader = "X-Correlation-ID"

// correlationID accepts an incoming correlation ID or mints one, stores it
// on the context and echoes it on the response.
func correlationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := r.Header.Get(correlationHeader)
			if cid == "" {
				cid = gen.Generate()
			}

			ctx := instrument.SetCorrelationID(r.Context(), cid)
			w.Header().Set(correlationHeader, cid)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
