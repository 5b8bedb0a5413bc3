package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
)

// VerifyLoginInput is the second step of the two-step login.
type VerifyLoginInput struct {
	Email string `validate:"required,email"`
	Code  string `validate:"required,numeric"`
}

// VerifyLoginOutput carries the issued token pair.
type VerifyLoginOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// VerifyLogin checks the code against the newest pending challenge and
// issues the token pair.
//
// Wrong codes are tolerated up to the attempt limit; a wrong code arriving
// with the limit already reached removes the challenge and deactivates the
// account. Expiry is only checked once the code matches, so an attacker
// cannot distinguish an expired challenge from a wrong guess.
func (s *Usecase) VerifyLogin(ctx context.Context, in VerifyLoginInput) (*VerifyLoginOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyLogin")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.repoDB.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "verify login with unknown email", "email", in.Email)

			return nil, goerror.NewBusiness("Incorrect email", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to fetch user", "error", err, "email", in.Email)

		return nil, goerror.NewServer(err)
	}

	challenge, err := s.repoDB.NewestPendingChallenge(ctx, user.ID)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "verify login without pending challenge", "user_id", user.ID)

			return nil, goerror.NewBusiness("OTP not found", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to fetch challenge", "error", err, "user_id", user.ID)

		return nil, goerror.NewServer(err)
	}

	if !s.hash.Verify(challenge.CodeHash, in.Code) {
		return nil, s.handleWrongCode(ctx, user, challenge)
	}

	if challenge.IsExpired(s.clock.Now(), s.otpCfg.Validity) {
		if err := s.repoDB.UpdateChallengeStatus(ctx, challenge.ID, entity.ChallengeExpired); err != nil {
			slog.ErrorContext(ctx, "failed to expire challenge", "error", err, "challenge_id", challenge.ID)

			return nil, goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "verify login with expired challenge", "user_id", user.ID, "challenge_id", challenge.ID)

		return nil, goerror.NewBusiness("OTP has expired.", goerror.CodeForbidden)
	}

	if err := s.repoDB.UpdateChallengeStatus(ctx, challenge.ID, entity.ChallengeConsumed); err != nil {
		slog.ErrorContext(ctx, "failed to consume challenge", "error", err, "challenge_id", challenge.ID)

		return nil, goerror.NewServer(err)
	}

	access, err := s.jwt.GenerateAccess(user.Email, user.ID, string(user.Role))
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign access token", "error", err, "user_id", user.ID)

		return nil, goerror.NewServer(err)
	}

	refresh, err := s.jwt.GenerateRefresh(user.Email, user.ID, string(user.Role))
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign refresh token", "error", err, "user_id", user.ID)

		return nil, goerror.NewServer(err)
	}

	return &VerifyLoginOutput{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
	}, nil
}

func (s *Usecase) handleWrongCode(ctx context.Context, user *entity.User, challenge *entity.OtpChallenge) error {
	// attempts counts previous failures; reaching the limit locks out on
	// the next failure, not this one
	if challenge.Attempts >= s.otpCfg.MaxAttempts {
		if err := s.repoDB.LockoutUser(ctx, challenge.ID, user.ID); err != nil {
			if errors.Is(err, goerror.ErrNotFound) {
				slog.WarnContext(ctx, "lockout for missing user", "user_id", user.ID)

				return goerror.NewBusiness("User not found", goerror.CodeNotFound)
			}

			slog.ErrorContext(ctx, "failed to lock out user", "error", err, "user_id", user.ID)

			return goerror.NewServer(err)
		}

		slog.WarnContext(ctx, "user locked out after repeated wrong codes",
			"user_id", user.ID,
			"challenge_id", challenge.ID,
			"attempts", challenge.Attempts,
		)

		return goerror.NewBusiness("Maximum OTP attempts exceeded", goerror.CodeForbidden)
	}

	if err := s.repoDB.IncrementChallengeAttempts(ctx, challenge.ID); err != nil {
		slog.ErrorContext(ctx, "failed to increment challenge attempts", "error", err, "challenge_id", challenge.ID)

		return goerror.NewServer(err)
	}

	slog.WarnContext(ctx, "verify login with wrong code",
		"user_id", user.ID,
		"challenge_id", challenge.ID,
		"attempts", challenge.Attempts+1,
	)

	return goerror.NewBusiness("Incorrect OTP", goerror.CodeUnauthorized)
}
