package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tech-arch1tect/mfakit/testutils"
)

func TestService_GenerateAndValidate(t *testing.T) {
	cfg := testutils.GetTestConfig()
	service := NewService(cfg, nil)
	identity := testutils.TestIdentities.Student

	t.Run("access token round trip", func(t *testing.T) {
		token, err := service.GenerateAccessToken(identity)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, identity, claims.Identity)
		assert.Equal(t, identity, claims.Subject)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
		assert.Equal(t, cfg.JWT.Issuer, claims.Issuer)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("refresh token round trip", func(t *testing.T) {
		token, err := service.GenerateRefreshToken(identity)
		require.NoError(t, err)

		claims, err := service.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})

	t.Run("unique token IDs", func(t *testing.T) {
		first, err := service.GenerateAccessToken(identity)
		require.NoError(t, err)
		second, err := service.GenerateAccessToken(identity)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}

func TestService_ValidateToken_Errors(t *testing.T) {
	cfg := testutils.GetTestConfig()
	service := NewService(cfg, nil)

	t.Run("malformed token", func(t *testing.T) {
		_, err := service.ValidateToken("not.a.token")
		testutils.AssertErrorType(t, ErrMalformedToken, err)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		otherCfg := testutils.GetTestConfig()
		otherCfg.JWT.SecretKey = "z9y8x7w6v5u4t3s2r1q0p9o8n7m6l5k4"
		other := NewService(otherCfg, nil)

		token, err := other.GenerateAccessToken("intruder@example.com")
		require.NoError(t, err)

		_, err = service.ValidateToken(token)
		testutils.AssertErrorType(t, ErrInvalidSignature, err)
	})
}

func TestService_NotConfigured(t *testing.T) {
	cfg := testutils.GetTestConfig()
	cfg.JWT.SecretKey = ""
	service := NewService(cfg, nil)

	assert.False(t, service.Enabled())

	_, err := service.GenerateAccessToken("u1")
	testutils.AssertErrorType(t, ErrNotConfigured, err)

	_, err = service.ValidateToken("whatever")
	testutils.AssertErrorType(t, ErrNotConfigured, err)
}
