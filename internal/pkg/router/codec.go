package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
)

// responseMessager lets a handler result override the default message.
type responseMessager interface {
	Message() string
}

// responseStatusCoder lets a handler result override the 200 status.
type responseStatusCoder interface {
	StatusCode() int
}

// responseMetaer lets a handler result attach pagination or similar meta.
type responseMetaer interface {
	Meta() map[string]any
}

type responseBody struct {
	Message       string         `json:"message"`
	Data          any            `json:"data,omitempty"`
	Meta          map[string]any `json:"meta,omitempty"`
	Errors        any            `json:"errors,omitempty"`
	CorrelationID string         `json:"correlation_id,omitempty"`
}

func okCodec(w http.ResponseWriter, r *http.Request, data any) {
	body := responseBody{Message: "success", Data: data}
	status := http.StatusOK

	if m, ok := data.(responseMessager); ok {
		body.Message = m.Message()
	}
	if sc, ok := data.(responseStatusCoder); ok {
		status = sc.StatusCode()
	}
	if mt, ok := data.(responseMetaer); ok {
		body.Meta = mt.Meta()
	}

	writeJSON(r.Context(), w, status, body)
}

func errorCodec(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	body := responseBody{CorrelationID: instrument.GetCorrelationID(ctx)}
	status := http.StatusInternalServerError

	var verr *validator.V10ValidationError
	var gerr *goerror.Error

	switch {
	case errors.As(err, &verr):
		status = http.StatusBadRequest
		body.Message = "validation failed"
		body.Errors = verr.Fields
	case errors.As(err, &gerr):
		status = gerr.StatusCode()
		body.Message = gerr.Msg()
		if fields := gerr.Fields(); len(fields) > 0 {
			body.Errors = fields
		}
	default:
		body.Message = "internal server error"
		slog.ErrorContext(ctx, "unclassified handler error", "error", err)
	}

	writeJSON(ctx, w, status, body)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "failed to encode response body", "error", err)
	}
}
