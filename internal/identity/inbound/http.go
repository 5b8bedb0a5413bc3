// Package inbound exposes the identity operations over HTTP.
package inbound

import (
	"context"
	"net/http"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
	"github.com/chamindaf/lion-svc/internal/identity/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
)

type identityUsecase interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	VerifyLogin(ctx context.Context, in usecase.VerifyLoginInput) (*usecase.VerifyLoginOutput, error)
	RefreshToken(ctx context.Context, in usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error)
	ResetPassword(ctx context.Context, in usecase.ResetPasswordInput) error
	CreateUser(ctx context.Context, in usecase.CreateUserInput) (*usecase.CreateUserOutput, error)
	ListUsers(ctx context.Context, in usecase.ListUsersInput) (*usecase.ListUsersOutput, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	UpdateUser(ctx context.Context, in usecase.UpdateUserInput) (*entity.User, error)
}

// Endpoint holds the HTTP handlers for the identity module.
type Endpoint struct {
	uc identityUsecase
}

// NewEndpoint creates the identity endpoints.
func NewEndpoint(uc identityUsecase) *Endpoint {
	return &Endpoint{uc: uc}
}

// RegisterRoutes mounts the identity routes. The three login endpoints are
// public; everything else requires a bearer token.
func (e *Endpoint) RegisterRoutes(rtr *router.Router) {
	rtr.PublicEndpoint(http.MethodPost, "/api/v1/identity/login/otp", e.Login)
	rtr.PublicEndpoint(http.MethodPost, "/api/v1/identity/login/access_token", e.VerifyLogin)
	rtr.PublicEndpoint(http.MethodPost, "/api/v1/identity/login/refresh_token", e.RefreshToken)

	rtr.Endpoint(http.MethodPost, "/api/v1/identity/login/reset_password", e.ResetPassword)
	rtr.Endpoint(http.MethodPost, "/api/v1/identity/users", e.CreateUser)
	rtr.Endpoint(http.MethodGet, "/api/v1/identity/users", e.ListUsers)
	rtr.Endpoint(http.MethodGet, "/api/v1/identity/users/:id", e.GetUser)
	rtr.Endpoint(http.MethodPatch, "/api/v1/identity/users/:id", e.UpdateUser)
}
