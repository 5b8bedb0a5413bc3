package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
)

// DeleteRequest removes a branding request and its elements.
func (s *Usecase) DeleteRequest(ctx context.Context, id int64) error {
	ctx, span := s.startSpan(ctx, "DeleteRequest")
	defer span.End()

	req, err := s.repoDB.RequestByID(ctx, id)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return goerror.NewBusiness("Branding request not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch branding request", "error", err, "request_id", id)

		return goerror.NewServer(err)
	}

	if err := authorizeMutation(jwt.GetAuth(ctx), req); err != nil {
		return err
	}

	if err := s.repoDB.DeleteRequest(ctx, id); err != nil {
		slog.ErrorContext(ctx, "failed to delete branding request", "error", err, "request_id", id)

		return goerror.NewServer(err)
	}

	return nil
}
