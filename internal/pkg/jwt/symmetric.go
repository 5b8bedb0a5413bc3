package jwt

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chamindaf/lion-svc/internal/pkg/clock"
	"github.com/chamindaf/lion-svc/internal/pkg/uid"
)

// Config captures everything a Symmetric signer needs. All values are
// fixed at construction; changing TTLs requires a restart.
type Config struct {
	Secret     []byte
	Algorithm  string // HS256, HS384 or HS512
	Issuer     string
	Audiences  []string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Clock      clock.Clocker
	UUID       uid.StringID
}

// Symmetric signs and verifies tokens with an HMAC shared secret.
type Symmetric struct {
	cfg    Config
	method jwt.SigningMethod
}

// NewSymmetric validates the config and returns a signer.
func NewSymmetric(cfg Config) (*Symmetric, error) {
	if len(cfg.Secret) < 32 {
		return nil, fmt.Errorf("jwt: secret must be at least 32 bytes, got %d", len(cfg.Secret))
	}

	var method jwt.SigningMethod
	switch cfg.Algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "", "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("jwt: unsupported algorithm %q", cfg.Algorithm)
	}

	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 24 * time.Hour
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.UTCClocker{}
	}
	if cfg.UUID == nil {
		cfg.UUID = uid.NewUUID()
	}

	return &Symmetric{cfg: cfg, method: method}, nil
}

// GenerateAccess issues a short-lived token used on every API call.
func (s *Symmetric) GenerateAccess(email string, userID int64, role string) (string, error) {
	return s.generate(email, userID, role, KindAccess, s.cfg.AccessTTL)
}

// GenerateRefresh issues the long-lived token exchanged for new access
// tokens. Refresh tokens are not rotated on exchange.
func (s *Symmetric) GenerateRefresh(email string, userID int64, role string) (string, error) {
	return s.generate(email, userID, role, KindRefresh, s.cfg.RefreshTTL)
}

func (s *Symmetric) generate(email string, userID int64, role string, kind TokenKind, ttl time.Duration) (string, error) {
	now := s.cfg.Clock.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.cfg.UUID.Generate(),
			Subject:   email,
			Issuer:    s.cfg.Issuer,
			Audience:  s.cfg.Audiences,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
		Kind:   kind,
	}

	return jwt.NewWithClaims(s.method, claims).SignedString(s.cfg.Secret)
}

// Verify parses and validates a token. Every failure collapses into
// ErrInvalidToken so responses cannot be used to probe token state.
func (s *Symmetric) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.cfg.Clock.Now),
	}
	if len(s.cfg.Audiences) > 0 {
		opts = append(opts, jwt.WithAudience(s.cfg.Audiences[0]))
	}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		// expiry is routine, anything else means a bad or forged token
		if errors.Is(err, jwt.ErrTokenExpired) {
			slog.Warn("token verification failed: expired")
		} else {
			slog.Error("token verification failed", "error", err)
		}

		return nil, ErrInvalidToken
	}

	return claims, nil
}
