// Package notification wires the email delivery consumers.
package notification

import (
	"context"
	"errors"

	"github.com/chamindaf/lion-svc/internal/notification/inbound"
	"github.com/chamindaf/lion-svc/internal/notification/outbound/email"
	"github.com/chamindaf/lion-svc/internal/notification/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/goroutine"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/mail"
	"github.com/chamindaf/lion-svc/internal/pkg/messaging"
)

// Dependency lists everything the module needs from the application.
type Dependency struct {
	Cfg       config.Config
	Ins       *instrument.Instrument
	Mail      mail.Mail
	Messaging messaging.Messaging
	Goroutine *goroutine.Manager
}

// New validates the dependencies and registers the consumers.
func New(ctx context.Context, dep Dependency) error {
	if dep.Cfg == nil || dep.Ins == nil || dep.Mail == nil ||
		dep.Messaging == nil || dep.Goroutine == nil {
		return errors.New("notification: missing dependency")
	}

	uc := usecase.New(usecase.Dependency{
		RepoEmail:  email.New(dep.Mail, dep.Cfg.GetInt("modules.notification.mail_retries")),
		Instrument: dep.Ins,
	})

	mq := inbound.NewMQ(dep.Messaging, dep.Goroutine, inbound.NewHandler(uc))

	return mq.Register(ctx, dep.Cfg)
}
