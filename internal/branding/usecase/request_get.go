package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/branding/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// ListRequestsInput pages through requests, optionally by status.
type ListRequestsInput struct {
	StatusID *int64
	Limit    int `validate:"omitempty,min=1,max=100"`
	Offset   int `validate:"omitempty,min=0"`
}

// ListRequestsOutput carries one page plus the total.
type ListRequestsOutput struct {
	Requests []entity.Request
	Total    int64
}

// ListRequests returns a page of branding requests, newest first.
func (s *Usecase) ListRequests(ctx context.Context, in ListRequestsInput) (*ListRequestsOutput, error) {
	ctx, span := s.startSpan(ctx, "ListRequests")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	if in.Limit == 0 {
		in.Limit = s.pageSize
	}

	requests, total, err := s.repoDB.Requests(ctx, in.StatusID, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list branding requests", "error", err)

		return nil, goerror.NewServer(err)
	}

	return &ListRequestsOutput{Requests: requests, Total: total}, nil
}

// GetRequest returns one branding request with its elements loaded.
func (s *Usecase) GetRequest(ctx context.Context, id int64) (*entity.Request, []entity.Element, error) {
	ctx, span := s.startSpan(ctx, "GetRequest")
	defer span.End()

	req, err := s.repoDB.RequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, nil, goerror.NewBusiness("Branding request not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch branding request", "error", err, "request_id", id)

		return nil, nil, goerror.NewServer(err)
	}

	elements, err := s.repoDB.ElementsByRequest(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch branding elements", "error", err, "request_id", id)

		return nil, nil, goerror.NewServer(err)
	}

	return req, elements, nil
}
