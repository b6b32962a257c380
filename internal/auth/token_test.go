package auth

import (
	"testing"
	"time"

	"github.com/aronpal/accountd/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:       "user-1",
		Username: "jdoe",
		Email:    "jdoe@example.com",
		Role:     models.RoleUser,
	}
}

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", 60*time.Minute, 24*time.Hour)

	tokenString, err := tm.GenerateAccessToken(testUser())
	require.NoError(t, err)

	claims, err := tm.ValidateToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, models.TokenTypeAccess, claims.Type)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jdoe", claims.Username)
	assert.Equal(t, "jdoe@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_RefreshTokenType(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", 60*time.Minute, 24*time.Hour)

	tokenString, err := tm.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	claims, err := tm.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, models.TokenTypeRefresh, claims.Type)
}

func TestTokenManager_ExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", -1*time.Minute, 24*time.Hour)

	tokenString, err := tm.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = tm.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", 60*time.Minute, 24*time.Hour)
	other := NewTokenManager("another-secret-32-characters-ok!", 60*time.Minute, 24*time.Hour)

	tokenString, err := tm.GenerateAccessToken(testUser())
	require.NoError(t, err)

	_, err = other.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestTokenManager_AdminClaims(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", 60*time.Minute, 24*time.Hour)

	admin := testUser()
	admin.Role = models.RoleAdmin

	tokenString, err := tm.GenerateAccessToken(admin)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(tokenString)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin())
}
