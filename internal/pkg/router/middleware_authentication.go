package router

import (
	"net/http"
	"strings"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
)

// authentication verifies the bearer token on every endpoint outside the
// public set and stores the claims on the context. Only access tokens are
// accepted here; refresh tokens work solely on the refresh endpoint.
func authentication(signer jwt.JWT, public map[string]map[string]struct{}) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if paths, ok := public[r.Method]; ok {
				if _, ok := paths[r.URL.Path]; ok {
					next.ServeHTTP(w, r)

					return
				}
			}

			raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
			if raw == "" || raw == r.Header.Get("Authorization") {
				errorCodec(w, r, goerror.NewBusiness("missing bearer token", goerror.CodeUnauthorized))

				return
			}

			claims, err := signer.Verify(raw)
			if err != nil || claims.Kind != jwt.KindAccess {
				errorCodec(w, r, goerror.NewBusiness("invalid or expired token", goerror.CodeUnauthorized))

				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.SetAuth(r.Context(), claims)))
		})
	}
}
