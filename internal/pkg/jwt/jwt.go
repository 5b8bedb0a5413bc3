package jwt

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes the two tokens issued on a successful login.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

var (
	// ErrInvalidToken covers every verification failure: expired, malformed,
	// wrong signature, wrong audience. Callers must not leak which one.
	ErrInvalidToken = errors.New("jwt: invalid token")
)

// Claims carried by both token kinds. Subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims

	UserID int64     `json:"uid,omitempty"`
	Role   string    `json:"role,omitempty"`
	Kind   TokenKind `json:"kind,omitempty"`
}

// JWT issues and verifies signed tokens.
type JWT interface {
	GenerateAccess(email string, userID int64, role string) (string, error)
	GenerateRefresh(email string, userID int64, role string) (string, error)
	Verify(token string) (*Claims, error)
}

type authKey struct{}

// SetAuth stores verified claims on the context for downstream handlers.
func SetAuth(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, authKey{}, claims)
}

// GetAuth returns the verified claims set by the authentication middleware,
// or nil when the request was not authenticated.
func GetAuth(ctx context.Context) *Claims {
	claims, _ := ctx.Value(authKey{}).(*Claims)

	return claims
}
