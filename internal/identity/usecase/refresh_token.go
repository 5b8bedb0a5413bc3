package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
)

// RefreshTokenInput carries the refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string `validate:"required"`
}

// RefreshTokenOutput carries the replacement access token. The refresh
// token is not rotated.
type RefreshTokenOutput struct {
	AccessToken string
	TokenType   string
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (s *Usecase) RefreshToken(ctx context.Context, in RefreshTokenInput) (*RefreshTokenOutput, error) {
	ctx, span := s.startSpan(ctx, "RefreshToken")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	claims, err := s.jwt.Verify(in.RefreshToken)
	if err != nil || claims.Kind != jwt.KindRefresh {
		slog.WarnContext(ctx, "refresh with invalid token")

		return nil, goerror.NewBusiness("Invalid refresh token", goerror.CodeUnauthorized)
	}

	user, err := s.repoDB.UserByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "refresh for unknown user", "email", claims.Subject)

			return nil, goerror.NewBusiness("Invalid refresh token", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to fetch user", "error", err, "email", claims.Subject)

		return nil, goerror.NewServer(err)
	}

	access, err := s.jwt.GenerateAccess(user.Email, user.ID, string(user.Role))
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign access token", "error", err, "user_id", user.ID)

		return nil, goerror.NewServer(err)
	}

	return &RefreshTokenOutput{AccessToken: access, TokenType: "bearer"}, nil
}
