package inbound

import (
	"github.com/chamindaf/lion-svc/internal/identity/usecase"
	"github.com/chamindaf/lion-svc/internal/pkg/goerror"
	"github.com/chamindaf/lion-svc/internal/pkg/jwt"
	"github.com/chamindaf/lion-svc/internal/pkg/router"
)

// Login godoc
//
//	@Summary		Start a login and issue a one-time password
//	@Tags			identity
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	loginRequest	true	"credentials"
//	@Success		200	{object}	loginResponse
//	@Failure		401	"incorrect email or password"
//	@Router			/api/v1/identity/login/otp [post]
func (e *Endpoint) Login(r *router.Request) (any, error) {
	var req loginRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	out, err := e.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return loginResponse{
		ChallengeID:    out.ChallengeID,
		UserID:         out.UserID,
		Role:           string(out.Role),
		FirstName:      out.FirstName,
		LastName:       out.LastName,
		IsActive:       out.IsActive,
		IsTempPassword: out.IsTempPassword,
		Attempts:       out.Attempts,
		CreatedAt:      out.CreatedAt,
		ExpiresAt:      out.ExpiresAt,
	}, nil
}

// VerifyLogin godoc
//
//	@Summary		Exchange a one-time password for a token pair
//	@Tags			identity
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	verifyLoginRequest	true	"email and code"
//	@Success		200	{object}	verifyLoginResponse
//	@Failure		401	"incorrect code"
//	@Failure		403	"expired code or attempts exceeded"
//	@Router			/api/v1/identity/login/access_token [post]
func (e *Endpoint) VerifyLogin(r *router.Request) (any, error) {
	var req verifyLoginRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	out, err := e.uc.VerifyLogin(r.Context(), usecase.VerifyLoginInput{
		Email: req.Email,
		Code:  req.Code,
	})
	if err != nil {
		return nil, err
	}

	return verifyLoginResponse{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		TokenType:    out.TokenType,
	}, nil
}

// RefreshToken godoc
//
//	@Summary		Exchange a refresh token for a new access token
//	@Tags			identity
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	refreshTokenRequest	true	"refresh token"
//	@Success		200	{object}	refreshTokenResponse
//	@Failure		401	"invalid refresh token"
//	@Router			/api/v1/identity/login/refresh_token [post]
func (e *Endpoint) RefreshToken(r *router.Request) (any, error) {
	var req refreshTokenRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	out, err := e.uc.RefreshToken(r.Context(), usecase.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	return refreshTokenResponse{
		AccessToken: out.AccessToken,
		TokenType:   out.TokenType,
	}, nil
}

// ResetPassword godoc
//
//	@Summary		Change the caller's password
//	@Tags			identity
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			payload	body	resetPasswordRequest	true	"current and new password"
//	@Success		200	{object}	resetPasswordResponse
//	@Failure		401	"wrong current password"
//	@Router			/api/v1/identity/login/reset_password [post]
func (e *Endpoint) ResetPassword(r *router.Request) (any, error) {
	var req resetPasswordRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	claims := jwt.GetAuth(r.Context())
	if claims == nil {
		return nil, goerror.NewBusiness("missing bearer token", goerror.CodeUnauthorized)
	}

	err := e.uc.ResetPassword(r.Context(), usecase.ResetPasswordInput{
		Email:           claims.Subject,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		return nil, err
	}

	return resetPasswordResponse{}, nil
}

// CreateUser godoc
//
//	@Summary		Create a user with a temporary password
//	@Tags			identity
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			payload	body	createUserRequest	true	"user"
//	@Success		201	{object}	createUserResponse
//	@Failure		409	"email already exists"
//	@Router			/api/v1/identity/users [post]
func (e *Endpoint) CreateUser(r *router.Request) (any, error) {
	var req createUserRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	out, err := e.uc.CreateUser(r.Context(), usecase.CreateUserInput{
		Email:         req.Email,
		Role:          req.Role,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		VendorID:      req.VendorID,
		Company:       req.Company,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		return nil, err
	}

	return createUserResponse{userResponse: newUserResponse(out.User)}, nil
}

// ListUsers godoc
//
//	@Summary		List users
//	@Tags			identity
//	@Produce		json
//	@Security		BearerAuth
//	@Param			limit	query	int	false	"page size"
//	@Param			offset	query	int	false	"rows to skip"
//	@Success		200	{object}	listUsersResponse
//	@Router			/api/v1/identity/users [get]
func (e *Endpoint) ListUsers(r *router.Request) (any, error) {
	in := usecase.ListUsersInput{
		Limit:  r.QueryInt("limit", 20),
		Offset: r.QueryInt("offset", 0),
	}

	out, err := e.uc.ListUsers(r.Context(), in)
	if err != nil {
		return nil, err
	}

	users := make([]userResponse, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, newUserResponse(u))
	}

	return listUsersResponse{
		Users:  users,
		total:  out.Total,
		limit:  in.Limit,
		offset: in.Offset,
	}, nil
}

// GetUser godoc
//
//	@Summary		Get one user
//	@Tags			identity
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path	int	true	"user id"
//	@Success		200	{object}	userResponse
//	@Failure		404	"user not found"
//	@Router			/api/v1/identity/users/{id} [get]
func (e *Endpoint) GetUser(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	user, err := e.uc.GetUser(r.Context(), id)
	if err != nil {
		return nil, err
	}

	return newUserResponse(*user), nil
}

// UpdateUser godoc
//
//	@Summary		Patch a user, including activation
//	@Tags			identity
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path	int					true	"user id"
//	@Param			payload	body	updateUserRequest	true	"fields to change"
//	@Success		200	{object}	userResponse
//	@Failure		404	"user not found"
//	@Router			/api/v1/identity/users/{id} [patch]
func (e *Endpoint) UpdateUser(r *router.Request) (any, error) {
	id, err := r.ParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req updateUserRequest
	if err := r.DecodeJSON(&req); err != nil {
		return nil, err
	}

	user, err := e.uc.UpdateUser(r.Context(), usecase.UpdateUserInput{
		ID:            id,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Company:       req.Company,
		ContactNumber: req.ContactNumber,
		Role:          req.Role,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return nil, err
	}

	return newUserResponse(*user), nil
}
