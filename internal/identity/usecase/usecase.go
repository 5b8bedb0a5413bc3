// Package usecase implements the identity business rules: credential
// checks, login challenges, token issuance and user administration.
package usecase

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/clock"
	"github.com/chamindaf/lion-svc/internal/pkg/hash"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/otp"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

// OTPConfig fixes the challenge parameters at construction. Changing them
// requires a restart so concurrent logins never see mixed rules.
type OTPConfig struct {
	CodeLength         int
	Validity           time.Duration
	MaxAttempts        int
	MaxGenerations     int
	TempPasswordLength int
}

type repoDB interface {
	UserByEmail(ctx context.Context, email string) (*entity.User, error)
	UserByID(ctx context.Context, id int64) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) error
	Users(ctx context.Context, limit, offset int) ([]entity.User, int64, error)
	UpdateUser(ctx context.Context, user *entity.User) error

	CreateChallenge(ctx context.Context, ch *entity.OtpChallenge) error
	PendingChallengeHashes(ctx context.Context) ([]string, error)
	NewestPendingChallenge(ctx context.Context, userID int64) (*entity.OtpChallenge, error)
	UpdateChallengeStatus(ctx context.Context, id int64, status entity.ChallengeStatus) error
	IncrementChallengeAttempts(ctx context.Context, id int64) error

	// LockoutUser removes the challenge and deactivates the user in one
	// transaction.
	LockoutUser(ctx context.Context, challengeID, userID int64) error
}

type repoMessaging interface {
	PublishOtpIssued(ctx context.Context, ev event.OtpIssued) error
	PublishTempPassword(ctx context.Context, ev event.TempPassword) error
}

// Dependency lists everything the Usecase needs.
type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Hash          hash.Hash
	JWT           jwt.JWT
	Clock         clock.Clocker
	UID           uid.NumberID
	Validator     validator.Validator
	Instrument    *instrument.Instrument
	OTP           OTPConfig
}

// Usecase carries the identity operations.
type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	hash          hash.Hash
	jwt           jwt.JWT
	clock         clock.Clocker
	uid           uid.NumberID
	validator     validator.Validator
	tracer        trace.Tracer
	codeGen       *otp.CodeGenerator
	otpCfg        OTPConfig
}

// New builds the Usecase, defaulting any unset challenge parameter.
func New(dep Dependency) *Usecase {
	cfg := dep.OTP
	if cfg.CodeLength <= 0 {
		cfg.CodeLength = 6
	}
	if cfg.Validity <= 0 {
		cfg.Validity = 5 * time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.MaxGenerations <= 0 {
		cfg.MaxGenerations = 10
	}
	if cfg.TempPasswordLength <= 0 {
		cfg.TempPasswordLength = 12
	}

	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		hash:          dep.Hash,
		jwt:           dep.JWT,
		clock:         dep.Clock,
		uid:           dep.UID,
		validator:     dep.Validator,
		tracer:        dep.Instrument.Tracer("identity.usecase"),
		codeGen:       otp.NewCodeGenerator(cfg.CodeLength),
		otpCfg:        cfg,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}
