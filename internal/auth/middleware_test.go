package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aronpal/accountd/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", time.Minute, time.Hour)
	handler := AuthMiddleware(tm)(okHandler())

	req := httptest.NewRequest("GET", "/api/auth/profile/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", time.Minute, time.Hour)
	handler := AuthMiddleware(tm)(okHandler())

	req := httptest.NewRequest("GET", "/api/auth/profile/", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", time.Minute, time.Hour)

	token, err := tm.GenerateAccessToken(testUser())
	require.NoError(t, err)

	var got *models.TokenClaims
	handler := AuthMiddleware(tm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUserFromContext(r)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/auth/profile/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)
}

func TestAuthMiddleware_RejectsRefreshToken(t *testing.T) {
	tm := NewTokenManager("test-secret-32-characters-long!", time.Minute, time.Hour)

	token, err := tm.GenerateRefreshToken(testUser())
	require.NoError(t, err)

	handler := AuthMiddleware(tm)(okHandler())

	req := httptest.NewRequest("GET", "/api/auth/profile/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     models.Role
		wantCode int
	}{
		{"admin allowed", models.RoleAdmin, http.StatusOK},
		{"user forbidden", models.RoleUser, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAdmin(okHandler())

			claims := &models.TokenClaims{UserID: "user-1", Role: tt.role, Type: models.TokenTypeAccess}
			req := httptest.NewRequest("GET", "/api/admin/users/", nil)
			req = req.WithContext(context.WithValue(req.Context(), UserContextKey, claims))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestRequireAdmin_NoClaims(t *testing.T) {
	handler := RequireAdmin(okHandler())

	req := httptest.NewRequest("GET", "/api/admin/users/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
