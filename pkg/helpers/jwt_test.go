package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	token, exp, err := m.GenerateAccessToken(42, "a@b.com", []string{"USER", "ADMIN"}, "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	claims, err := m.ParseAccessToken(token)
	require.NoError(t, err)

	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), uid)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, []string{"USER", "ADMIN"}, claims.Roles)
	assert.Equal(t, "sid-1", claims.SessionID)
}

func TestJWTManager_SecretsAreSeparate(t *testing.T) {
	m := NewJWTManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	access, _, err := m.GenerateAccessToken(1, "a@b.com", nil, "sid")
	require.NoError(t, err)
	refresh, _, err := m.GenerateRefreshToken(1, "a@b.com", nil, "sid")
	require.NoError(t, err)

	_, err = m.ParseRefreshToken(access)
	assert.Error(t, err)
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)

	other := NewJWTManager("different-secret", "refresh-secret", time.Minute, time.Hour)
	_, err = other.ParseAccessToken(access)
	assert.Error(t, err)
}
