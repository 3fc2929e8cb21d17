package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "key-one")
	token, err := GenerateToken(7)
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "key-two")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}
