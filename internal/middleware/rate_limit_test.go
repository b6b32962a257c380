package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimitByIP(t *testing.T) {
	limiter := RateLimitByIP(RateLimitConfig{RequestsPerMinute: 3})

	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allows requests within the budget", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest("POST", "/api/auth/login/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}
	})

	t.Run("rejects requests over the budget", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/login/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.JSONEq(t, `{"error":"Rate limit exceeded"}`, w.Body.String())
	})

	t.Run("budgets are per IP", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/auth/login/", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestContainsSensitiveParam(t *testing.T) {
	tests := []struct {
		name     string
		rawQuery string
		want     bool
	}{
		{"empty", "", false},
		{"benign", "limit=10&offset=0", false},
		{"token", "token=abc123", true},
		{"otp", "otp=482913", true},
		{"mixed", "limit=10&password=hunter2", true},
		{"unparseable", "a=%zz", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsSensitiveParam(tt.rawQuery))
		})
	}
}
