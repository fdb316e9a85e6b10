package auth_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mvera/storedash/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAccessToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	userID := uuid.New()

	t.Run("generates valid token", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID)
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		// Should be parseable
		claims, err := jwtService.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, auth.TokenTypeAccess, claims.TokenType)
	})

	t.Run("token contains correct issuer", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID)
		require.NoError(t, err)

		claims, err := jwtService.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, "storedash", claims.Issuer)
	})

	t.Run("token contains correct subject", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(userID)
		require.NoError(t, err)

		claims, err := jwtService.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.Subject)
	})
}

func TestJWTService_GeneratePair(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	access, refresh, err := jwtService.GeneratePair(userID)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := jwtService.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)

	refreshClaims, err := jwtService.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
}

func TestJWTService_ValidateAccessToken(t *testing.T) {
	userID := uuid.New()

	t.Run("validates correct token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

		token, err := jwtService.GenerateAccessToken(userID)
		require.NoError(t, err)

		claims, err := jwtService.ValidateAccessToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		// Create service with very short access expiry
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond, 24*time.Hour)

		token, err := jwtService.GenerateAccessToken(userID)
		require.NoError(t, err)

		// Wait for token to expire
		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateAccessToken(token)
		assert.Equal(t, auth.ErrExpiredToken, err)
	})

	t.Run("rejects refresh token presented as access token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

		refresh, err := jwtService.GenerateRefreshToken(userID)
		require.NoError(t, err)

		_, err = jwtService.ValidateAccessToken(refresh)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects tampered token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

		token, err := jwtService.GenerateAccessToken(userID)
		require.NoError(t, err)

		// Tamper with the token
		tamperedToken := token + "tampered"

		_, err = jwtService.ValidateAccessToken(tamperedToken)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects token signed with different secret", func(t *testing.T) {
		jwtService1 := auth.NewJWTService("secret-1", 15*time.Minute, 24*time.Hour)
		jwtService2 := auth.NewJWTService("secret-2", 15*time.Minute, 24*time.Hour)

		token, err := jwtService1.GenerateAccessToken(userID)
		require.NoError(t, err)

		_, err = jwtService2.ValidateAccessToken(token)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects malformed token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

		_, err := jwtService.ValidateAccessToken("not-a-valid-jwt")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("rejects empty token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

		_, err := jwtService.ValidateAccessToken("")
		assert.Equal(t, auth.ErrInvalidToken, err)
	})
}

func TestJWTService_ValidateRefreshToken(t *testing.T) {
	userID := uuid.New()

	t.Run("validates correct refresh token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

		refresh, err := jwtService.GenerateRefreshToken(userID)
		require.NoError(t, err)

		claims, err := jwtService.ValidateRefreshToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, auth.TokenTypeRefresh, claims.TokenType)
	})

	t.Run("rejects access token presented as refresh token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

		access, err := jwtService.GenerateAccessToken(userID)
		require.NoError(t, err)

		_, err = jwtService.ValidateRefreshToken(access)
		assert.Equal(t, auth.ErrInvalidToken, err)
	})

	t.Run("refresh token outlives the access token", func(t *testing.T) {
		jwtService := auth.NewJWTService("test-secret", 1*time.Millisecond, 24*time.Hour)

		access, refresh, err := jwtService.GeneratePair(userID)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = jwtService.ValidateAccessToken(access)
		assert.Equal(t, auth.ErrExpiredToken, err)

		claims, err := jwtService.ValidateRefreshToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	})
}
