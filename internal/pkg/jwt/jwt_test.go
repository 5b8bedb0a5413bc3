package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frozenClock struct {
	now time.Time
}

func (c *frozenClock) Now() time.Time { return c.now }

func newTestSigner(t *testing.T, clk *frozenClock) *Symmetric {
	t.Helper()

	signer, err := NewSymmetric(Config{
		Secret:     []byte("0123456789abcdef0123456789abcdef"),
		Algorithm:  "HS512",
		Issuer:     "lion-svc",
		Audiences:  []string{"lion-web"},
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Clock:      clk,
	})
	require.NoError(t, err)

	return signer
}

func TestSymmetric_RoundTrip(t *testing.T) {
	clk := &frozenClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	signer := newTestSigner(t, clk)

	t.Run("access token carries subject, role and kind", func(t *testing.T) {
		token, err := signer.GenerateAccess("tm@lion.example", 42, "Admin")
		require.NoError(t, err)

		claims, err := signer.Verify(token)

		require.NoError(t, err)
		assert.Equal(t, "tm@lion.example", claims.Subject)
		assert.Equal(t, int64(42), claims.UserID)
		assert.Equal(t, "Admin", claims.Role)
		assert.Equal(t, KindAccess, claims.Kind)
	})

	t.Run("refresh token outlives the access token", func(t *testing.T) {
		access, err := signer.GenerateAccess("tm@lion.example", 42, "Admin")
		require.NoError(t, err)
		refresh, err := signer.GenerateRefresh("tm@lion.example", 42, "Admin")
		require.NoError(t, err)

		accessClaims, err := signer.Verify(access)
		require.NoError(t, err)
		refreshClaims, err := signer.Verify(refresh)
		require.NoError(t, err)

		assert.Equal(t, KindRefresh, refreshClaims.Kind)
		assert.True(t, refreshClaims.ExpiresAt.After(accessClaims.ExpiresAt.Time))
	})
}

func TestSymmetric_Verify(t *testing.T) {
	clk := &frozenClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	signer := newTestSigner(t, clk)

	t.Run("expired token is invalid", func(t *testing.T) {
		token, err := signer.GenerateAccess("tm@lion.example", 42, "Admin")
		require.NoError(t, err)

		clk.now = clk.now.Add(16 * time.Minute)
		defer func() { clk.now = clk.now.Add(-16 * time.Minute) }()

		_, err = signer.Verify(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is invalid", func(t *testing.T) {
		_, err := signer.Verify("not.a.token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret is invalid", func(t *testing.T) {
		other, err := NewSymmetric(Config{
			Secret: []byte("ffffffffffffffffffffffffffffffff"),
			Issuer: "lion-svc",
			Clock:  clk,
		})
		require.NoError(t, err)

		token, err := other.GenerateAccess("tm@lion.example", 42, "Admin")
		require.NoError(t, err)

		_, err = signer.Verify(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewSymmetric(t *testing.T) {
	t.Run("short secret is rejected", func(t *testing.T) {
		_, err := NewSymmetric(Config{Secret: []byte("short")})

		assert.Error(t, err)
	})

	t.Run("unknown algorithm is rejected", func(t *testing.T) {
		_, err := NewSymmetric(Config{
			Secret:    []byte("0123456789abcdef0123456789abcdef"),
			Algorithm: "RS256",
		})

		assert.Error(t, err)
	})

	t.Run("algorithm selection", func(t *testing.T) {
		for alg, want := range map[string]string{
			"HS256": "HS256",
			"HS384": "HS384",
			"HS512": "HS512",
			"":      "HS512",
		} {
			signer, err := NewSymmetric(Config{
				Secret:    []byte("0123456789abcdef0123456789abcdef"),
				Algorithm: alg,
			})

			require.NoError(t, err)
			assert.Equal(t, want, signer.method.Alg())
		}
	})
}
