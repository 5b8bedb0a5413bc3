// Package app assembles the service: shared infrastructure first, then the
// modules, then the HTTP server.
package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/chamindaf/lion-svc/internal/pkg/clock"
	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/goroutine"
	"github.com/chamindaf/lion-svc/internal/pkg/hash"
	"github.com/chamindaf/lion-svc/internal/pkg/idempotency"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/mail"
	"github.com/chamindaf/lion-svc/internal/pkg/messaging"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
)

// App holds every shared component for the lifetime of the process.
type App struct {
	cfg       config.Config
	ins       *instrument.Instrument
	db        *pgxpool.Pool
	redis     *redis.Client
	mailer    mail.Mail
	messaging messaging.Messaging
	jwt       jwt.JWT
	hash      hash.Hash
	clock     clock.Clocker
	uuid      uid.StringID
	snowflake uid.NumberID
	validator validator.Validator
	goroutine *goroutine.Manager
	idem      *idempotency.StateTracker
	router    *router.Router

	closers []func(context.Context) error
}

// Run builds the application and blocks until shutdown.
func Run(configPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &App{}

	steps := []func(context.Context) error{
		app.initConfig(configPath),
		app.initInstrument,
		app.initLibraries,
		app.initDatabase,
		app.initCache,
		app.initMail,
		app.initMessaging,
		app.initRouter,
		app.initModules,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			app.close(ctx)

			return err
		}
	}

	err := app.serve(ctx)

	app.goroutine.Wait()
	app.close(ctx)

	return err
}

func (a *App) addCloser(fn func(context.Context) error) {
	a.closers = append(a.closers, fn)
}

// close runs the closers in reverse registration order.
func (a *App) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close component", "error", err)
		}
	}
}
