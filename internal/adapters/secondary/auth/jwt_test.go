package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret, subject, email string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerify(t *testing.T) {
	provider := NewJWTProvider("test-secret")

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, "test-secret", "p1", "p1@example.org", time.Now().Add(time.Hour))
		identity, err := provider.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "p1", identity.ID)
		assert.Equal(t, "p1@example.org", identity.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, "other-secret", "p1", "p1@example.org", time.Now().Add(time.Hour))
		_, err := provider.Verify(token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, "test-secret", "p1", "p1@example.org", time.Now().Add(-time.Hour))
		_, err := provider.Verify(token)
		assert.Error(t, err)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := signToken(t, "test-secret", "", "p1@example.org", time.Now().Add(time.Hour))
		_, err := provider.Verify(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := provider.Verify("not-a-token")
		assert.Error(t, err)
	})
}
