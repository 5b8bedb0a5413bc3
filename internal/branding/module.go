// Package branding wires the branding change request module.
package branding

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chamindaf/lion-svc/internal/branding/inbound"
	"github.com/chamindaf/lion-svc/internal/branding/outbound/db"
	"github.com/chamindaf/lion-svc/internal/branding/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/clock"
	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/idempotency"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
)

// Dependency lists everything the module needs from the application.
type Dependency struct {
	Cfg         config.Config
	Ins         *instrument.Instrument
	DB          *pgxpool.Pool
	Clock       clock.Clocker
	UID         uid.NumberID
	Validator   validator.Validator
	Idempotency *idempotency.StateTracker
	Router      *router.Router
}

// New validates the dependencies, builds the layers and mounts the routes.
func New(dep Dependency) error {
	if dep.Cfg == nil || dep.Ins == nil || dep.DB == nil || dep.Clock == nil ||
		dep.UID == nil || dep.Validator == nil || dep.Idempotency == nil ||
		dep.Router == nil {
		return errors.New("branding: missing dependency")
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:      db.New(dep.DB, dep.Ins),
		Clock:       dep.Clock,
		UID:         dep.UID,
		Validator:   dep.Validator,
		Instrument:  dep.Ins,
		Idempotency: dep.Idempotency,
		PageSize:    dep.Cfg.GetInt("modules.branding.page_size"),
	})

	inbound.NewEndpoint(uc).RegisterRoutes(dep.Router)

	return nil
}
