package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	t.Run("access token round-trip", func(t *testing.T) {
		token, err := m.GenerateAccessToken(42, "user@example.com")
		require.NoError(t, err)

		claims, err := m.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", claims.Email)

		userID, err := claims.UserID()
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("refresh token round-trip", func(t *testing.T) {
		token, err := m.GenerateRefreshToken(42)
		require.NoError(t, err)

		userID, err := m.ValidateRefreshToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("expired access token is rejected", func(t *testing.T) {
		token, err := m.GenerateExpiredAccessToken(42, "user@example.com")
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTManager("other-secret", 15*time.Minute, time.Hour)
		token, err := other.GenerateAccessToken(42, "user@example.com")
		require.NoError(t, err)

		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("pair carries both tokens", func(t *testing.T) {
		access, refresh, err := m.GenerateTokenPair(42, "user@example.com")
		require.NoError(t, err)
		assert.NotEmpty(t, access)
		assert.NotEmpty(t, refresh)
		assert.NotEqual(t, access, refresh)
	})
}
