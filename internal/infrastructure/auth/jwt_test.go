package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/strivehq/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars-long",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "strive-test",
	})
}

func TestGenerateTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "user@example.com")
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.True(t, pair.AccessTokenExpiresAt.Before(pair.RefreshTokenExpiresAt))
}

func TestValidateAccessToken(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	t.Run("valid token round trip", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(userID, "user@example.com")
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)

		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.NotEmpty(t, claims.ID)

		parsed, err := claims.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, userID, parsed)
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		pair, err := svc.GenerateTokenPair(userID, "user@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.RefreshToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		_, err := svc.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with different secret rejected", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{
			Secret:                 "another-secret-key-also-32-chars-xx",
			AccessTokenExpiration:  15 * time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "strive-test",
		})
		pair, err := other.GenerateTokenPair(userID, "user@example.com")
		require.NoError(t, err)

		_, err = svc.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		expiring := NewJWTService(config.JWTConfig{
			Secret:                 "test-secret-key-at-least-32-chars-long",
			AccessTokenExpiration:  -time.Minute,
			RefreshTokenExpiration: time.Hour,
			Issuer:                 "strive-test",
		})
		pair, err := expiring.GenerateTokenPair(userID, "user@example.com")
		require.NoError(t, err)

		_, err = expiring.ValidateAccessToken(pair.AccessToken)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})
}

func TestRefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "user@example.com")
	require.NoError(t, err)

	refreshed, err := svc.RefreshTokenPair(pair.RefreshToken)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken)
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}

func TestClaimsGetRemainingTTL(t *testing.T) {
	svc := newTestJWTService()
	pair, err := svc.GenerateTokenPair(uuid.New(), "user@example.com")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 10*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
