package usecase

import (
	"context"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/valueobject"
)

// CreateRequestInput is a new branding change request.
type CreateRequestInput struct {
	IdempotencyKey string

	RequestTypeID int64  `validate:"required"`
	OutletName    string `validate:"required"`
	OutletCode    string `validate:"required"`
	AddressLine1  string `validate:"required"`
	AddressLine2  string
	City          string
	TerritoryID   *int64
	ChannelID     *int64
	IsChain       bool
	Urgency       string `validate:"required,oneof=Low Medium High"`
	StatusID      int64  `validate:"required"`
	StageID       int64  `validate:"required"`
	ContactName   string `validate:"required"`
	ContactNumber string `validate:"required"`
	Metadata      valueobject.JSONMap
}

// CreateRequest persists the request. An idempotency key makes retries
// return the first result instead of creating duplicates.
func (s *Usecase) CreateRequest(ctx context.Context, in CreateRequestInput) (*entity.Request, error) {
	ctx, span := s.startSpan(ctx, "CreateRequest")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("missing bearer token", goerror.CodeUnauthorized)
	}

	out := &entity.Request{}
	result, err := s.idempotency.Exec(ctx, in.IdempotencyKey, out, func(ctx context.Context) (any, error) {
		return s.createRequest(ctx, in, claims.UserID)
	})
	if err != nil {
		return nil, err
	}

	req, ok := result.(*entity.Request)
	if !ok {
		return out, nil
	}

	return req, nil
}

func (s *Usecase) createRequest(ctx context.Context, in CreateRequestInput, createdBy int64) (*entity.Request, error) {
	for _, ref := range []struct {
		category entity.LookupCategory
		id       int64
	}{
		{entity.LookupRequestType, in.RequestTypeID},
		{entity.LookupStatus, in.StatusID},
		{entity.LookupStage, in.StageID},
	} {
		ok, err := s.repoDB.LookupExists(ctx, ref.category, ref.id)
		if err != nil {
			slog.ErrorContext(ctx, "failed to check lookup", "error", err, "category", ref.category)

			return nil, goerror.NewServer(err)
		}
		if !ok {
			return nil, goerror.NewInvalidInput(nil, string(ref.category), "unknown value")
		}
	}

	now := s.clock.Now()
	req := &entity.Request{
		ID:            s.uid.Generate(),
		RequestTypeID: in.RequestTypeID,
		OutletName:    in.OutletName,
		OutletCode:    in.OutletCode,
		AddressLine1:  in.AddressLine1,
		AddressLine2:  in.AddressLine2,
		City:          in.City,
		TerritoryID:   in.TerritoryID,
		ChannelID:     in.ChannelID,
		IsChain:       in.IsChain,
		Urgency:       entity.Urgency(in.Urgency),
		StatusID:      in.StatusID,
		StageID:       in.StageID,
		ContactName:   in.ContactName,
		ContactNumber: in.ContactNumber,
		Metadata:      in.Metadata,
		CreatedBy:     createdBy,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repoDB.CreateRequest(ctx, req); err != nil {
		slog.ErrorContext(ctx, "failed to create branding request", "error", err, "outlet_code", in.OutletCode)

		return nil, goerror.NewServer(err)
	}

	return req, nil
}
