package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/valueobject"
)

// UpdateRequestInput patches a branding request. Nil fields are untouched.
type UpdateRequestInput struct {
	ID            int64 `validate:"required"`
	OutletName    *string
	OutletCode    *string
	AddressLine1  *string
	AddressLine2  *string
	City          *string
	TerritoryID   *int64
	ChannelID     *int64
	IsChain       *bool
	Urgency       *string `validate:"omitempty,oneof=Low Medium High"`
	StatusID      *int64
	StageID       *int64
	ContactName   *string
	ContactNumber *string
	Metadata      valueobject.JSONMap
	SignedOff     *bool
}

// UpdateRequest applies the patch. Setting SignedOff stamps the sign-off
// time once; it cannot be cleared.
func (s *Usecase) UpdateRequest(ctx context.Context, in UpdateRequestInput) (*entity.Request, error) {
	ctx, span := s.startSpan(ctx, "UpdateRequest")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	req, err := s.repoDB.RequestByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Branding request not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch branding request", "error", err, "request_id", in.ID)

		return nil, goerror.NewServer(err)
	}

	if err := authorizeMutation(jwt.GetAuth(ctx), req); err != nil {
		return nil, err
	}

	if in.StatusID != nil {
		if err := s.checkLookup(ctx, entity.LookupStatus, *in.StatusID); err != nil {
			return nil, err
		}
		req.StatusID = *in.StatusID
	}
	if in.StageID != nil {
		if err := s.checkLookup(ctx, entity.LookupStage, *in.StageID); err != nil {
			return nil, err
		}
		req.StageID = *in.StageID
	}

	if in.OutletName != nil {
		req.OutletName = *in.OutletName
	}
	if in.OutletCode != nil {
		req.OutletCode = *in.OutletCode
	}
	if in.AddressLine1 != nil {
		req.AddressLine1 = *in.AddressLine1
	}
	if in.AddressLine2 != nil {
		req.AddressLine2 = *in.AddressLine2
	}
	if in.City != nil {
		req.City = *in.City
	}
	if in.TerritoryID != nil {
		req.TerritoryID = in.TerritoryID
	}
	if in.ChannelID != nil {
		req.ChannelID = in.ChannelID
	}
	if in.IsChain != nil {
		req.IsChain = *in.IsChain
	}
	if in.Urgency != nil {
		req.Urgency = entity.Urgency(*in.Urgency)
	}
	if in.ContactName != nil {
		req.ContactName = *in.ContactName
	}
	if in.ContactNumber != nil {
		req.ContactNumber = *in.ContactNumber
	}
	if in.Metadata != nil {
		req.Metadata = in.Metadata
	}
	if in.SignedOff != nil && *in.SignedOff && req.SignedOffAt == nil {
		now := s.clock.Now()
		req.SignedOffAt = &now
	}

	req.UpdatedAt = s.clock.Now()

	if err := s.repoDB.UpdateRequest(ctx, req); err != nil {
		slog.ErrorContext(ctx, "failed to update branding request", "error", err, "request_id", in.ID)

		return nil, goerror.NewServer(err)
	}

	return req, nil
}

func (s *Usecase) checkLookup(ctx context.Context, category entity.LookupCategory, id int64) error {
	ok, err := s.repoDB.LookupExists(ctx, category, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check lookup", "error", err, "category", category)

		return goerror.NewServer(err)
	}
	if !ok {
		return goerror.NewInvalidInput(nil, string(category), "unknown value")
	}

	return nil
}
