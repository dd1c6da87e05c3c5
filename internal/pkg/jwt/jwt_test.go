package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rf-loans/internal/pkg/jwt"
)

const secret = "test-secret"

func Test_GenerateAndValidate(t *testing.T) {
	token, err := jwt.GenerateAccessToken(42, "admin", jwt.RoleAdmin, secret, time.Minute)
	require.NoError(t, err)

	claims, err := jwt.ValidateAccessToken(token, secret)

	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin())
	assert.Equal(t, "42", claims.Subject)
}

func Test_Validate_Expired(t *testing.T) {
	token, err := jwt.GenerateAccessToken(1, "op", "OPERATOR", secret, -time.Minute)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, secret)

	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func Test_Validate_WrongSecretOrGarbage(t *testing.T) {
	token, err := jwt.GenerateAccessToken(1, "op", "OPERATOR", secret, time.Minute)
	require.NoError(t, err)

	_, err = jwt.ValidateAccessToken(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)

	_, err = jwt.ValidateAccessToken("not-a-token", secret)
	assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
}
