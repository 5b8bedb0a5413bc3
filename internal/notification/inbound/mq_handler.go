package inbound

import (
	"context"
	"encoding/json"

	"github.com/chamindaf/lion-svc/internal/notification/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/messaging"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

// Handler adapts broker messages into usecase calls.
type Handler struct {
	uc *usecase.Usecase
}

// NewHandler creates the message handlers.
func NewHandler(uc *usecase.Usecase) *Handler {
	return &Handler{uc: uc}
}

// OtpIssued delivers the login code email.
func (h *Handler) OtpIssued(ctx context.Context, msg messaging.Message) error {
	ctx = withCorrelation(ctx, msg)

	var ev event.OtpIssued
	if err := json.Unmarshal(msg.Data(), &ev); err != nil {
		return err
	}

	return h.uc.ConsumeOtpIssued(ctx, ev)
}

// TempPassword delivers the temporary password email.
func (h *Handler) TempPassword(ctx context.Context, msg messaging.Message) error {
	ctx = withCorrelation(ctx, msg)

	var ev event.TempPassword
	if err := json.Unmarshal(msg.Data(), &ev); err != nil {
		return err
	}

	return h.uc.ConsumeTempPassword(ctx, ev)
}

// withCorrelation carries the publisher's correlation ID into the consumer
// logs.
func withCorrelation(ctx context.Context, msg messaging.Message) context.Context {
	if cid := msg.Header()["cID"]; cid != "" {
		return instrument.SetCorrelationID(ctx, cid)
	}

	return ctx
}
