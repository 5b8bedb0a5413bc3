// Package usecase implements the notification delivery rules.
package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/mail"
)

type repoEmail interface {
	Send(ctx context.Context, p mail.Payload) error
}

// Dependency lists everything the Usecase needs.
type Dependency struct {
	RepoEmail  repoEmail
	Instrument *instrument.Instrument
}

// Usecase renders and delivers the notification emails.
type Usecase struct {
	repoEmail repoEmail
	tracer    trace.Tracer
}

// New builds the Usecase.
func New(dep Dependency) *Usecase {
	return &Usecase{
		repoEmail: dep.RepoEmail,
		tracer:    dep.Instrument.Tracer("notification.usecase"),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}
