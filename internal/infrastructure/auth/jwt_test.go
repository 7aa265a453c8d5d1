package auth

import (
	"testing"
	"time"

	"github.com/stocker/backend/internal/domain/identity"
	"github.com/stocker/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		RefreshSecret:          "test-refresh-secret-test-refresh-secret",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "stocker-test",
	})
}

func testUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("jane@example.com", "jane", "hashed-secret")
	require.NoError(t, err)
	return user
}

func TestJWTService_RoundTrip(t *testing.T) {
	service := testJWTService()
	user := testUser(t)

	t.Run("access token carries the user's identity and version", func(t *testing.T) {
		token, expiresAt, err := service.GenerateAccessToken(user)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

		claims, err := service.ValidateAccessToken(token)

		require.NoError(t, err)
		assert.Equal(t, user.ID, claims.UserID)
		assert.Equal(t, user.Email, claims.Email)
		assert.Equal(t, user.TokenVersion, claims.TokenVersion)
		assert.NotEmpty(t, claims.TokenID)
	})

	t.Run("refresh token embeds the token version", func(t *testing.T) {
		token, _, err := service.GenerateRefreshToken(user)
		require.NoError(t, err)

		claims, err := service.ValidateRefreshToken(token)

		require.NoError(t, err)
		assert.Equal(t, user.TokenVersion, claims.TokenVersion)
	})
}

func TestJWTService_TypeConfusion(t *testing.T) {
	service := testJWTService()
	user := testUser(t)

	accessToken, _, err := service.GenerateAccessToken(user)
	require.NoError(t, err)
	refreshToken, _, err := service.GenerateRefreshToken(user)
	require.NoError(t, err)

	_, err = service.ValidateRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = service.ValidateAccessToken(refreshToken)
	assert.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	service := testJWTService()
	other := NewJWTService(config.JWTConfig{
		Secret:                 "a-completely-different-secret-value",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "stocker-test",
	})
	user := testUser(t)

	token, _, err := other.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-access-secret-test-access-secret",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "stocker-test",
	})
	user := testUser(t)

	token, _, err := service.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	service := testJWTService()

	_, err := service.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
