package jwt

import (
	"testing"

	"revendapro/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAccessToken_RoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "maria", domain.RoleManager, testSecret, 15)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateAccessToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, domain.RoleManager, claims.Role)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(1, "joao", domain.RoleSeller, testSecret, 15)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "another-secret")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessToken_Expired(t *testing.T) {
	token, err := GenerateAccessToken(1, "joao", domain.RoleSeller, testSecret, -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(7, "tok-123", testSecret, 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "tok-123", claims.TokenID)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := ValidateAccessToken("not-a-jwt", testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
