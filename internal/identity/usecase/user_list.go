package usecase

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// ListUsersInput pages through accounts.
type ListUsersInput struct {
	Limit  int `validate:"omitempty,min=1,max=100"`
	Offset int `validate:"omitempty,min=0"`
}

// ListUsersOutput carries one page plus the total for pagination meta.
type ListUsersOutput struct {
	Users []entity.User
	Total int64
}

// ListUsers returns a page of accounts ordered by creation time.
func (s *Usecase) ListUsers(ctx context.Context, in ListUsersInput) (*ListUsersOutput, error) {
	ctx, span := s.startSpan(ctx, "ListUsers")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	if in.Limit == 0 {
		in.Limit = 20
	}

	users, total, err := s.repoDB.Users(ctx, in.Limit, in.Offset)
	if err != nil {
		slog.ErrorContext(ctx, "failed to list users", "error", err)

		return nil, goerror.NewServer(err)
	}

	// password hashes never leave the usecase layer
	users = lo.Map(users, func(u entity.User, _ int) entity.User {
		u.PasswordHash = ""

		return u
	})

	return &ListUsersOutput{Users: users, Total: total}, nil
}
