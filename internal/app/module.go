package app

import (
	"context"

	"github.com/chamindaf/lion-svc/internal/branding"
	"github.com/chamindaf/lion-svc/internal/identity"
	"github.com/chamindaf/lion-svc/internal/notification"
)

// initModules wires every feature module into the shared infrastructure.
func (a *App) initModules(ctx context.Context) error {
	if err := identity.New(identity.Dependency{
		Cfg:       a.cfg,
		Ins:       a.ins,
		DB:        a.db,
		Messaging: a.messaging,
		Hash:      a.hash,
		JWT:       a.jwt,
		Clock:     a.clock,
		UID:       a.snowflake,
		Validator: a.validator,
		Router:    a.router,
	}); err != nil {
		return err
	}

	if err := branding.New(branding.Dependency{
		Cfg:         a.cfg,
		Ins:         a.ins,
		DB:          a.db,
		Clock:       a.clock,
		UID:         a.snowflake,
		Validator:   a.validator,
		Idempotency: a.idem,
		Router:      a.router,
	}); err != nil {
		return err
	}

	return notification.New(ctx, notification.Dependency{
		Cfg:       a.cfg,
		Ins:       a.ins,
		Mail:      a.mailer,
		Messaging: a.messaging,
		Goroutine: a.goroutine,
	})
}
