package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_AccessTokenRoundTrip(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@b.com", "landlord")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "landlord", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestManager_UsesConfiguredAccessExpiry(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	assert.Equal(t, 15*time.Minute, m.AccessExpiry())

	token, err := m.GenerateAccessToken("user-1", "a@b.com", "tenant")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestManager_RefreshTokenIsNotAccessToken(t *testing.T) {
	m := NewManager("test-secret", 15*time.Minute, 72*time.Hour)

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestManager_RejectsWrongSecret(t *testing.T) {
	m := NewManager("secret-a", 15*time.Minute, 72*time.Hour)
	other := NewManager("secret-b", 15*time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@b.com", "tenant")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestManager_RejectsExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 72*time.Hour)

	token, err := m.GenerateAccessToken("user-1", "a@b.com", "tenant")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}
