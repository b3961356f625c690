package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kinovault/backend/auth"
)

func TestTokenService_Generate(t *testing.T) {
	signingKey := []byte("test-signing-key")
	tokenExpiration := 3600
	issuer := "test-issuer"

	service := auth.NewTokenService(signingKey, tokenExpiration, issuer, nil, nil)

	t.Run("generates a valid signed token", func(t *testing.T) {
		tokenString, err := service.Generate("alice")

		require.NoError(t, err)
		require.NotEmpty(t, tokenString)

		token, err := jwt.ParseWithClaims(tokenString, &auth.TokenClaims{}, func(token *jwt.Token) (any, error) {
			return signingKey, nil
		})

		require.NoError(t, err)
		assert.True(t, token.Valid)

		claims, ok := token.Claims.(*auth.TokenClaims)
		require.True(t, ok)
		assert.Equal(t, "alice", claims.Username())
		assert.Equal(t, issuer, claims.Issuer)
		assert.NotNil(t, claims.RegisteredClaims.IssuedAt)
		assert.NotNil(t, claims.RegisteredClaims.ExpiresAt)
	})

	t.Run("sets expiry TTL seconds after issuance at whole-second granularity", func(t *testing.T) {
		issued := time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.UTC)
		clocked := auth.NewTokenService(signingKey, tokenExpiration, issuer, nil, nil).
			WithClock(func() time.Time { return issued })

		tokenString, err := clocked.Generate("alice")
		require.NoError(t, err)

		claims, err := clocked.Validate(tokenString)
		require.NoError(t, err)

		assert.Equal(t, issued.Truncate(time.Second), claims.IssuedAt())
		assert.Equal(t, issued.Truncate(time.Second).Add(time.Duration(tokenExpiration)*time.Second), claims.Expires())
	})
}

func TestTokenService_Validate(t *testing.T) {
	signingKey := []byte("test-signing-key")
	service := auth.NewTokenService(signingKey, 3600, "test-issuer", nil, nil)

	t.Run("round trips a generated token", func(t *testing.T) {
		tokenString, err := service.Generate("alice")
		require.NoError(t, err)

		claims, err := service.Validate(tokenString)
		require.NoError(t, err)
		assert.Equal(t, "alice", claims.Username())
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		other := auth.NewTokenService([]byte("other-secret"), 3600, "test-issuer", nil, nil)
		tokenString, err := other.Generate("alice")
		require.NoError(t, err)

		_, err = service.Validate(tokenString)
		require.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
		assert.False(t, auth.IsTokenExpiredError(err))
	})

	t.Run("rejects garbage input as malformed", func(t *testing.T) {
		_, err := service.Validate("not-a-token")
		require.Error(t, err)
		assert.True(t, auth.IsMalformedError(err))
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		expiredIssuer := auth.NewTokenService(signingKey, 3600, "test-issuer", nil, nil).
			WithClock(func() time.Time { return past })

		tokenString, err := expiredIssuer.Generate("alice")
		require.NoError(t, err)

		_, err = service.Validate(tokenString)
		require.Error(t, err)
		assert.True(t, auth.IsTokenExpiredError(err))
		assert.False(t, auth.IsMalformedError(err))
	})

	t.Run("treats the expiry instant as expired", func(t *testing.T) {
		issued := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		issuerService := auth.NewTokenService(signingKey, 60, "test-issuer", nil, nil).
			WithClock(func() time.Time { return issued })

		tokenString, err := issuerService.Generate("alice")
		require.NoError(t, err)

		atExpiry := auth.NewTokenService(signingKey, 60, "test-issuer", nil, nil).
			WithClock(func() time.Time { return issued.Add(61 * time.Second) })

		_, err = atExpiry.Validate(tokenString)
		require.Error(t, err)
		assert.True(t, auth.IsTokenExpiredError(err))
	})
}

func TestTokenService_SubjectOf(t *testing.T) {
	service := auth.NewTokenService([]byte("test-signing-key"), 3600, "", nil, nil)

	tokenString, err := service.Generate("bob")
	require.NoError(t, err)

	subject, err := service.SubjectOf(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "bob", subject)

	_, err = service.SubjectOf("broken")
	assert.Error(t, err)
}

func TestTokenService_ValidateForSubject(t *testing.T) {
	service := auth.NewTokenService([]byte("test-signing-key"), 3600, "", nil, nil)

	tokenString, err := service.Generate("alice")
	require.NoError(t, err)

	assert.True(t, service.ValidateForSubject(tokenString, "alice"))
	assert.False(t, service.ValidateForSubject(tokenString, "mallory"))
	assert.False(t, service.ValidateForSubject("broken", "alice"))
}
