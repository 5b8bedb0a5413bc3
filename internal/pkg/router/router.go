// Package router wraps julienschmidt/httprouter with typed handlers,
// response codecs and the service middleware chain.
package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
)

// Handler is the typed endpoint signature. The returned value is encoded
// by okCodec; a non-nil error goes through errorCodec.
type Handler func(r *Request) (any, error)

// Config wires the router's middleware dependencies.
type Config struct {
	Cfg config.Config
	Ins *instrument.Instrument
	JWT jwt.JWT
	UID uid.StringID
}

// Router registers endpoints and applies the middleware chain on serve.
type Router struct {
	mux    *httprouter.Router
	config Config

	// public holds endpoints that skip authentication, method -> paths.
	public map[string]map[string]struct{}
}

// New creates a Router with an empty public set.
func New(cfg Config) *Router {
	mux := httprouter.New()
	mux.HandleMethodNotAllowed = true

	return &Router{
		mux:    mux,
		config: cfg,
		public: make(map[string]map[string]struct{}),
	}
}

// Endpoint registers a handler for method and path.
func (rtr *Router) Endpoint(method, path string, h Handler) {
	rtr.mux.Handler(method, path, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := &Request{w: w, r: r}

		data, err := h(req)
		if err != nil {
			errorCodec(w, r, err)

			return
		}

		okCodec(w, r, data)
	}))
}

// PublicEndpoint registers a handler that bypasses authentication.
func (rtr *Router) PublicEndpoint(method, path string, h Handler) {
	if rtr.public[method] == nil {
		rtr.public[method] = make(map[string]struct{})
	}
	rtr.public[method][path] = struct{}{}

	rtr.Endpoint(method, path, h)
}

// Handler returns the mux wrapped in the full middleware chain. The order
// matters: recovery outermost, then request identity, then observability,
// then gates.
func (rtr *Router) Handler() http.Handler {
	return Chain(rtr.mux,
		recoverer(),
		realIP(),
		correlationID(rtr.config.UID),
		observability(rtr.config.Cfg, rtr.config.Ins),
		maintenance(rtr.config.Cfg),
		authentication(rtr.config.JWT, rtr.public),
	)
}
