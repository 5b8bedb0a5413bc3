// Package identity wires the login, token and user administration module.
package identity

import (
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chamindaf/lion-svc/internal/identity/inbound"
	"github.com/chamindaf/lion-svc/internal/identity/outbound/db"
	"github.com/chamindaf/lion-svc/internal/identity/outbound/mq"
	"github.com/chamindaf/lion-svc/internal/identity/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/clock"
	"github.com/chamindaf/lion-svc/internal/pkg/config"
	"github.com/chamindaf/lion-svc/internal/pkg/hash"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/messaging"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
)

// Dependency lists everything the module needs from the application.
type Dependency struct {
	Cfg       config.Config
	Ins       *instrument.Instrument
	DB        *pgxpool.Pool
	Messaging messaging.Messaging
	Hash      hash.Hash
	JWT       jwt.JWT
	Clock     clock.Clocker
	UID       uid.NumberID
	Validator validator.Validator
	Router    *router.Router
}

// New validates the dependencies, builds the layers and mounts the routes.
func New(dep Dependency) error {
	if dep.Cfg == nil || dep.Ins == nil || dep.DB == nil || dep.Messaging == nil ||
		dep.Hash == nil || dep.JWT == nil || dep.Clock == nil || dep.UID == nil ||
		dep.Validator == nil || dep.Router == nil {
		return errors.New("identity: missing dependency")
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.New(dep.DB, dep.Ins),
		RepoMessaging: mq.New(dep.Messaging),
		Hash:          dep.Hash,
		JWT:           dep.JWT,
		Clock:         dep.Clock,
		UID:           dep.UID,
		Validator:     dep.Validator,
		Instrument:    dep.Ins,
		OTP: usecase.OTPConfig{
			CodeLength:         dep.Cfg.GetInt("modules.identity.otp_length"),
			Validity:           dep.Cfg.GetMinute("modules.identity.otp_valid_minutes"),
			MaxAttempts:        dep.Cfg.GetInt("modules.identity.otp_max_attempts"),
			MaxGenerations:     dep.Cfg.GetInt("modules.identity.otp_max_generation_retries"),
			TempPasswordLength: dep.Cfg.GetInt("modules.identity.temp_password_length"),
		},
	})

	inbound.NewEndpoint(uc).RegisterRoutes(dep.Router)

	return nil
}
