package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// maxBodyBytes caps request bodies at 1 MiB. Branding payloads carry small
// JSON metadata; anything larger is abuse.
const maxBodyBytes = 1 << 20

// Request bundles the writer, request and route params for typed handlers.
type Request struct {
	w http.ResponseWriter
	r *http.Request
}

// Context returns the request context.
func (req *Request) Context() context.Context {
	return req.r.Context()
}

// DecodeJSON reads the body into dst, rejecting unknown fields.
func (req *Request) DecodeJSON(dst any) error {
	req.r.Body = http.MaxBytesReader(req.w, req.r.Body, maxBodyBytes)

	dec := json.NewDecoder(req.r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return goerror.NewInvalidFormat("request body is required")
		}

		return goerror.NewInvalidFormat("request body is not valid json")
	}

	return nil
}

// Param returns a path parameter by name.
func (req *Request) Param(name string) string {
	return httprouter.ParamsFromContext(req.r.Context()).ByName(name)
}

// ParamInt64 returns a path parameter parsed as int64.
func (req *Request) ParamInt64(name string) (int64, error) {
	v, err := strconv.ParseInt(req.Param(name), 10, 64)
	if err != nil {
		return 0, goerror.NewInvalidFormat(name + " must be a number")
	}

	return v, nil
}

// Query returns a query string value, or def when absent.
func (req *Request) Query(name, def string) string {
	if v := req.r.URL.Query().Get(name); v != "" {
		return v
	}

	return def
}

// QueryInt returns a query string value parsed as int, or def when absent
// or unparseable.
func (req *Request) QueryInt(name string, def int) int {
	v, err := strconv.Atoi(req.r.URL.Query().Get(name))
	if err != nil {
		return def
	}

	return v
}

// Header returns a request header value.
func (req *Request) Header(name string) string {
	return req.r.Header.Get(name)
}
