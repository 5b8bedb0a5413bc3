package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChain(t *testing.T) {
	var order []string

	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("middle"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "middle", "inner", "handler"}, order)
}

func TestRealIP(t *testing.T) {
	tests := map[string]struct {
		headers map[string]string
		remote  string
		want    string
	}{
		"forwarded for takes the first hop": {
			headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"},
			remote:  "10.0.0.2:4321",
			want:    "203.0.113.9",
		},
		"real ip": {
			headers: map[string]string{"X-Real-IP": "203.0.113.7"},
			remote:  "10.0.0.2:4321",
			want:    "203.0.113.7",
		},
		"falls back to the socket": {
			remote: "192.0.2.4:9999",
			want:   "192.0.2.4",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var got string
			h := realIP()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tc.want, got)
		})
	}
}
