package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

// LoginInput is the first step of the two-step login.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
}

// LoginOutput describes the issued challenge. The code itself is only
// delivered by email.
type LoginOutput struct {
	ChallengeID    int64
	UserID         int64
	Role           entity.Role
	FirstName      string
	LastName       string
	IsActive       bool
	IsTempPassword bool
	Attempts       int
	CreatedAt      time.Time
	ExpiresAt      time.Time
}

// Login verifies the credentials and issues a fresh login challenge.
// Unknown email and wrong password produce the same response.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (*LoginOutput, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	user, err := s.repoDB.UserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, goerror.ErrNotFound) {
			slog.WarnContext(ctx, "login with unknown email", "email", in.Email)

			return nil, goerror.NewBusiness("Incorrect email or password", goerror.CodeUnauthorized)
		}

		slog.ErrorContext(ctx, "failed to fetch user", "error", err, "email", in.Email)

		return nil, goerror.NewServer(err)
	}

	if !s.hash.Verify(user.PasswordHash, in.Password) {
		slog.WarnContext(ctx, "login with wrong password", "user_id", user.ID)

		return nil, goerror.NewBusiness("Incorrect email or password", goerror.CodeUnauthorized)
	}

	code, challenge, err := s.issueChallenge(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	ev := event.OtpIssued{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Code:      code,
		ExpiresAt: challenge.ExpiresAt(s.otpCfg.Validity),
	}
	if err := s.repoMessaging.PublishOtpIssued(ctx, ev); err != nil {
		// the login already succeeded; the user can request a new code if
		// the email never arrives
		slog.ErrorContext(ctx, "failed to publish otp issued event", "error", err, "user_id", user.ID)
	}

	return &LoginOutput{
		ChallengeID:    challenge.ID,
		UserID:         user.ID,
		Role:           user.Role,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		IsActive:       user.IsActive,
		IsTempPassword: user.IsTempPassword,
		Attempts:       challenge.Attempts,
		CreatedAt:      challenge.CreatedAt,
		ExpiresAt:      challenge.ExpiresAt(s.otpCfg.Validity),
	}, nil
}

// issueChallenge generates a code that does not collide with any pending
// challenge in the system, then persists its hash. The check is best-effort
// under concurrent logins.
func (s *Usecase) issueChallenge(ctx context.Context, userID int64) (string, *entity.OtpChallenge, error) {
	hashes, err := s.repoDB.PendingChallengeHashes(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to fetch pending challenge hashes", "error", err)

		return "", nil, goerror.NewServer(err)
	}

	var code string
	for i := 0; i < s.otpCfg.MaxGenerations; i++ {
		candidate, err := s.codeGen.Generate()
		if err != nil {
			return "", nil, goerror.NewServer(err)
		}

		if !matchesAny(s, hashes, candidate) {
			code = candidate

			break
		}
	}
	if code == "" {
		slog.ErrorContext(ctx, "otp generation exhausted", "user_id", userID, "max", s.otpCfg.MaxGenerations)

		return "", nil, goerror.NewServer(errors.New("otp generation exhausted"))
	}

	codeHash, err := s.hash.Hash(code)
	if err != nil {
		return "", nil, goerror.NewServer(err)
	}

	challenge := &entity.OtpChallenge{
		ID:        s.uid.Generate(),
		UserID:    userID,
		CodeHash:  string(codeHash),
		Attempts:  0,
		Status:    entity.ChallengePending,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repoDB.CreateChallenge(ctx, challenge); err != nil {
		slog.ErrorContext(ctx, "failed to persist challenge", "error", err, "user_id", userID)

		return "", nil, goerror.NewServer(err)
	}

	return code, challenge, nil
}

func matchesAny(s *Usecase, hashes []string, code string) bool {
	for _, h := range hashes {
		if s.hash.Verify(h, code) {
			return true
		}
	}

	return false
}
