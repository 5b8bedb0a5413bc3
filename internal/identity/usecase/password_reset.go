package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// ResetPasswordInput changes the caller's own password.
type ResetPasswordInput struct {
	Email           string `validate:"required,email"`
	CurrentPassword string `validate:"required"`
	NewPassword     string `validate:"required,password"`
}

// ResetPassword replaces the password after re-verifying the current one.
// It clears the temporary-password flag; account activation is a separate
// administrative action.
func (s *Usecase) ResetPassword(ctx context.Context, in ResetPasswordInput) error {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return err
	}

	user, err := s.repoDB.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "password reset for unknown email", "email", in.Email)

			return goerror.NewBusiness("Incorrect email or password", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to fetch user", "error", err, "email", in.Email)

		return goerror.NewServer(err)
	}

	if !s.hash.Verify(user.PasswordHash, in.CurrentPassword) {
		slog.WarnContext(ctx, "password reset with wrong current password", "user_id", user.ID)

		return goerror.NewBusiness("Incorrect email or password", goerror.CodeUnauthorized)
	}

	newHash, err := s.hash.Hash(in.NewPassword)
	if err != nil {
		return goerror.NewServer(err)
	}

	user.PasswordHash = string(newHash)
	user.IsTempPassword = false

	if err := s.repoDB.UpdateUser(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to update password", "error", err, "user_id", user.ID)

		return goerror.NewServer(err)
	}

	return nil
}
