package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// GetUser returns one account by ID, without credential material.
func (s *Usecase) GetUser(ctx context.Context, id int64) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "GetUser")
	defer span.End()

	user, err := s.repoDB.UserByID(ctx, id)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch user", "error", err, "user_id", id)

		return nil, goerror.NewServer(err)
	}

	user.PasswordHash = ""

	return user, nil
}
