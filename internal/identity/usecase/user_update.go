package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// UpdateUserInput patches an account. Nil fields are left untouched; this
// is the only path that can change the active flag.
type UpdateUserInput struct {
	ID            int64 `validate:"required"`
	FirstName     *string
	LastName      *string
	Company       *string
	ContactNumber *string
	Role          *string `validate:"omitempty,oneof=Admin Vendor"`
	IsActive      *bool
}

// UpdateUser applies the patch and returns the updated account.
func (s *Usecase) UpdateUser(ctx context.Context, in UpdateUserInput) (*entity.User, error) {
	ctx, span := s.startSpan(ctx, "UpdateUser")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.repoDB.UserByID(ctx, in.ID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
		}

		slog.ErrorContext(ctx, "failed to fetch user", "error", err, "user_id", in.ID)

		return nil, goerror.NewServer(err)
	}

	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Company != nil {
		user.Company = *in.Company
	}
	if in.ContactNumber != nil {
		user.ContactNumber = *in.ContactNumber
	}
	if in.Role != nil {
		user.Role = entity.Role(*in.Role)
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	user.UpdatedAt = s.clock.Now()

	if err := s.repoDB.UpdateUser(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to update user", "error", err, "user_id", in.ID)

		return nil, goerror.NewServer(err)
	}

	user.PasswordHash = ""

	return user, nil
}
