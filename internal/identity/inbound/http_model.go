package inbound

import (
	"net/http"
	"time"

	"github.com/chamindaf/lion-svc/internal/identity/entity"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ChallengeID    int64     `json:"otp_id"`
	UserID         int64     `json:"user_id"`
	Role           string    `json:"role"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	IsActive       bool      `json:"user_is_active"`
	IsTempPassword bool      `json:"is_temp_password"`
	Attempts       int       `json:"attempts"`
	CreatedAt      time.Time `json:"created_on"`
	ExpiresAt      time.Time `json:"expires_on"`
}

func (loginResponse) Message() string {
	return "one-time password sent"
}

type verifyLoginRequest struct {
	Email string `json:"email"`
	Code  string `json:"otp"`
}

type verifyLoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

type refreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type resetPasswordResponse struct{}

func (resetPasswordResponse) Message() string {
	return "password updated"
}

type createUserRequest struct {
	Email         string `json:"email"`
	Role          string `json:"role"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	VendorID      *int64 `json:"vendor_id"`
	Company       string `json:"company"`
	ContactNumber string `json:"contact_number"`
}

type userResponse struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	VendorID       *int64    `json:"vendor_id,omitempty"`
	Company        string    `json:"company,omitempty"`
	ContactNumber  string    `json:"contact_number,omitempty"`
	IsTempPassword bool      `json:"is_temp_password"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_on"`
	UpdatedAt      time.Time `json:"updated_on"`
}

func newUserResponse(u entity.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Email:          u.Email,
		Role:           string(u.Role),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		VendorID:       u.VendorID,
		Company:        u.Company,
		ContactNumber:  u.ContactNumber,
		IsTempPassword: u.IsTempPassword,
		IsActive:       u.IsActive,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

type createUserResponse struct {
	userResponse
}

func (createUserResponse) StatusCode() int {
	return http.StatusCreated
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`

	total  int64
	limit  int
	offset int
}

func (r listUsersResponse) Meta() map[string]any {
	return map[string]any{
		"total":  r.total,
		"limit":  r.limit,
		"offset": r.offset,
	}
}

type updateUserRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Company       *string `json:"company"`
	ContactNumber *string `json:"contact_number"`
	Role          *string `json:"role"`
	IsActive      *bool   `json:"is_active"`
}
