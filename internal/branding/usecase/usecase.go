// Package usecase implements the branding request business rules.
package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	identityent "github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/clock"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/idempotency"
	"github.com/chamindaf/lion-svc/internal/pkg/instrument"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
	"github.com/chamindaf/lion-svc/internal/pkg/validator"
)

type repoDB interface {
	CreateRequest(ctx context.Context, req *entity.Request) error
	RequestByID(ctx context.Context, id int64) (*entity.Request, error)
	Requests(ctx context.Context, statusID *int64, limit, offset int) ([]entity.Request, int64, error)
	UpdateRequest(ctx context.Context, req *entity.Request) error
	DeleteRequest(ctx context.Context, id int64) error

	CreateElement(ctx context.Context, el *entity.Element) error
	ElementsByRequest(ctx context.Context, requestID int64) ([]entity.Element, error)
	DeleteElement(ctx context.Context, requestID, elementID int64) error

	Lookups(ctx context.Context, category entity.LookupCategory) ([]entity.Lookup, error)
	LookupExists(ctx context.Context, category entity.LookupCategory, id int64) (bool, error)
}

// Dependency lists everything the Usecase needs.
type Dependency struct {
	RepoDB      repoDB
	Clock       clock.Clocker
	UID         uid.NumberID
	Validator   validator.Validator
	Instrument  *instrument.Instrument
	Idempotency *idempotency.StateTracker
	PageSize    int
}

// Usecase carries the branding operations.
type Usecase struct {
	repoDB      repoDB
	clock       clock.Clocker
	uid         uid.NumberID
	validator   validator.Validator
	tracer      trace.Tracer
	idempotency *idempotency.StateTracker
	pageSize    int
}

// New builds the Usecase, defaulting the page size.
func New(dep Dependency) *Usecase {
	if dep.PageSize <= 0 {
		dep.PageSize = 20
	}

	return &Usecase{
		repoDB:      dep.RepoDB,
		clock:       dep.Clock,
		uid:         dep.UID,
		validator:   dep.Validator,
		tracer:      dep.Instrument.Tracer("branding.usecase"),
		idempotency: dep.Idempotency,
		pageSize:    dep.PageSize,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name)
}

// authorizeMutation allows admins and the request owner.
func authorizeMutation(claims *jwt.Claims, req *entity.Request) error {
	if claims == nil {
		return goerror.NewBusiness("missing bearer token", goerror.CodeUnauthorized)
	}

	if claims.Role == string(identityent.RoleAdmin) || claims.UserID == req.CreatedBy {
		return nil
	}

	return goerror.NewBusiness("not allowed to modify this request", goerror.CodeForbidden)
}
