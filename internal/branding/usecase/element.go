package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
)

// AddElementInput attaches one branding element to a request.
type AddElementInput struct {
	RequestID     int64   `validate:"required"`
	ElementTypeID int64   `validate:"required"`
	Width         float64 `validate:"required,gt=0"`
	Height        float64 `validate:"required,gt=0"`
	Quantity      int     `validate:"required,min=1"`
	UnitCost      float64 `validate:"omitempty,min=0"`
}

// AddElement validates the references and persists the element.
func (s *Usecase) AddElement(ctx context.Context, in AddElementInput) (*entity.Element, error) {
	ctx, span := s.startSpan(ctx, "AddElement")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	req, err := s.repoDB.RequestByID(ctx, in.RequestID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Branding request not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch branding request", "error", err, "request_id", in.RequestID)

		return nil, goerror.NewServer(err)
	}

	if err := authorizeMutation(jwt.GetAuth(ctx), req); err != nil {
		return nil, err
	}

	if err := s.checkLookup(ctx, entity.LookupElementType, in.ElementTypeID); err != nil {
		return nil, err
	}

	el := &entity.Element{
		ID:            s.uid.Generate(),
		RequestID:     in.RequestID,
		ElementTypeID: in.ElementTypeID,
		Width:         in.Width,
		Height:        in.Height,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
	}
	if err := s.repoDB.CreateElement(ctx, el); err != nil {
		slog.ErrorContext(ctx, "failed to create branding element", "error", err, "request_id", in.RequestID)

		return nil, goerror.NewServer(err)
	}

	return el, nil
}

// ListElements returns the elements of one request.
func (s *Usecase) ListElements(ctx context.Context, requestID int64) ([]entity.Element, error) {
	ctx, span := s.startSpan(ctx, "ListElements")
	defer span.End()

	if _, err := s.repoDB.RequestByID(ctx, requestID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("Branding request not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch branding request", "error", err, "request_id", requestID)

		return nil, goerror.NewServer(err)
	}

	elements, err := s.repoDB.ElementsByRequest(ctx, requestID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list branding elements", "error", err, "request_id", requestID)

		return nil, goerror.NewServer(err)
	}

	return elements, nil
}

// RemoveElement detaches one element from a request.
func (s *Usecase) RemoveElement(ctx context.Context, requestID, elementID int64) error {
	ctx, span := s.startSpan(ctx, "RemoveElement")
	defer span.End()

	req, err := s.repoDB.RequestByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Branding request not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch branding request", "error", err, "request_id", requestID)

		return goerror.NewServer(err)
	}

	if err := authorizeMutation(jwt.GetAuth(ctx), req); err != nil {
		return err
	}

	if err := s.repoDB.DeleteElement(ctx, requestID, elementID); err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Branding element not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to delete branding element", "error", err, "element_id", elementID)

		return goerror.NewServer(err)
	}

	return nil
}
