package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateAccessToken(42, "user@dairy.test", "Distributor", "secret", 7)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "user@dairy.test", claims.Email)
	assert.Equal(t, "Distributor", claims.Role)
	assert.Equal(t, "dairyhub", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(42, "user@dairy.test", "Admin", "secret", 7)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "other")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
