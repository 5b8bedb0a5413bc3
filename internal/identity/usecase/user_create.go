package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/otp"
	"github.com/chamindaf/lion-svc/internal/shared/event"
)

// CreateUserInput is the administrative account creation request.
type CreateUserInput struct {
	Email         string `validate:"required,email"`
	Role          string `validate:"required,oneof=Admin Vendor"`
	FirstName     string `validate:"required"`
	LastName      string
	VendorID      *int64
	Company       string
	ContactNumber string
}

// CreateUserOutput is the created account without credential material.
type CreateUserOutput struct {
	User entity.User
}

// CreateUser provisions an account with a generated temporary password,
// inactive until an administrator activates it. Only administrators may
// create accounts. The temporary password is delivered by email.
func (s *Usecase) CreateUser(ctx context.Context, in CreateUserInput) (*CreateUserOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, err
	}

	claims := jwt.GetAuth(ctx)
	if claims == nil {
		return nil, goerror.NewBusiness("missing bearer token", goerror.CodeUnauthorized)
	}
	if claims.Role != string(entity.RoleAdmin) {
		slog.WarnContext(ctx, "create user by non-admin", "user_id", claims.UserID)

		return nil, goerror.NewBusiness("Only administrators can create users", goerror.CodeForbidden)
	}

	tempPassword, err := otp.GenerateTempPassword(s.otpCfg.TempPasswordLength)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	passwordHash, err := s.hash.Hash(tempPassword)
	if err != nil {
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	user := &entity.User{
		ID:             s.uid.Generate(),
		Email:          in.Email,
		Role:           entity.Role(in.Role),
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		VendorID:       in.VendorID,
		Company:        in.Company,
		ContactNumber:  in.ContactNumber,
		PasswordHash:   string(passwordHash),
		IsTempPassword: true,
		IsActive:       false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repoDB.CreateUser(ctx, user); err != nil {
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "create user with duplicate email", "email", in.Email)

			return nil, goerror.NewBusiness("A user with this email already exists", goerror.CodeConflict)
		}

		slog.ErrorContext(ctx, "failed to create user", "error", err, "email", in.Email)

		return nil, goerror.NewServer(err)
	}

	ev := event.TempPassword{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		Password:  tempPassword,
	}
	if err := s.repoMessaging.PublishTempPassword(ctx, ev); err != nil {
		// the account exists; the password email is retried by support
		slog.ErrorContext(ctx, "failed to publish temp password event", "error", err, "user_id", user.ID)
	}

	return &CreateUserOutput{User: *user}, nil
}
