package router

import (
	"net/http"

	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// maintenance short-circuits every request while the flag is on. The flag
// is read per request so a config reload takes effect without restart.
func maintenance(cfg config.Config) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.GetBool("server.maintenance") {
				errorCodec(w, r, goerror.NewBusiness("service is under maintenance", goerror.CodeTooManyRequest))

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
