package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenGenerator_RoundTrip(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	token, err := tg.GenerateAccessToken(42, "maria", "comum")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, username, role, err := tg.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, "maria", username)
	assert.Equal(t, "comum", role)
}

func TestTokenGenerator_ExpiredToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", -time.Minute)

	token, err := tg.GenerateAccessToken(1, "admin", "admin")
	require.NoError(t, err)

	_, _, _, err = tg.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_WrongSecret(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)
	other := NewTokenGenerator("other-secret", time.Hour)

	token, err := tg.GenerateAccessToken(1, "admin", "admin")
	require.NoError(t, err)

	_, _, _, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestTokenGenerator_GarbageToken(t *testing.T) {
	tg := NewTokenGenerator("test-secret", time.Hour)

	_, _, _, err := tg.ValidateAccessToken("definitely-not-a-jwt")
	assert.Error(t, err)
}
