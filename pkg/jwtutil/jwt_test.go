package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	j := NewJWTUtil("secret")

	token, err := j.GenerateToken("user-1", "buyer@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "buyer@example.com", claims.Email)
}

func TestValidateToken_Rejects(t *testing.T) {
	j := NewJWTUtil("secret")

	expired, err := j.GenerateToken("user-1", "buyer@example.com", -time.Minute)
	require.NoError(t, err)
	_, err = j.ValidateToken(expired)
	assert.Error(t, err, "expired session")

	foreign, err := NewJWTUtil("other").GenerateToken("user-1", "", time.Hour)
	require.NoError(t, err)
	_, err = j.ValidateToken(foreign)
	assert.Error(t, err, "wrong key")

	_, err = j.ValidateToken("not-a-token")
	assert.Error(t, err)

	_, err = NewJWTUtil("").ValidateToken(foreign)
	assert.Error(t, err)
}
