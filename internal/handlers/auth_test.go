package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aronpal/accountd/internal/models"
	"github.com/aronpal/accountd/internal/services"
)

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successful login returns tokens and flags", func(t *testing.T) {
		service := &MockAuthService{
			LoginFunc: func(ctx context.Context, identifier, password string) (*services.LoginResponse, error) {
				assert.Equal(t, "alice", identifier)
				assert.Equal(t, "correct1horse", password)
				return &services.LoginResponse{
					Access:   "access.jwt",
					Refresh:  "refresh.jwt",
					ID:       "user_1",
					Username: "alice",
					Email:    "alice@example.com",
				}, nil
			},
		}
		handler := NewAuthHandler(service)

		req := NewTestRequest(t, "POST", "/api/auth/login/", LoginRequest{
			Username: "alice",
			Password: "correct1horse",
		})
		w := httptest.NewRecorder()
		handler.Login(w, req)

		var resp services.LoginResponse
		AssertJSONResponse(t, w, 200, &resp)
		assert.Equal(t, "access.jwt", resp.Access)
		assert.Equal(t, "refresh.jwt", resp.Refresh)
		assert.Equal(t, "user_1", resp.ID)
		assert.False(t, resp.IsAdmin)
	})

	t.Run("bad credentials", func(t *testing.T) {
		handler := NewAuthHandler(&MockAuthService{})

		req := NewTestRequest(t, "POST", "/api/auth/login/", LoginRequest{
			Username: "alice",
			Password: "wrong",
		})
		w := httptest.NewRecorder()
		handler.Login(w, req)

		AssertErrorResponse(t, w, 401, "unauthorized")
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := NewAuthHandler(&MockAuthService{})

		req := NewTestRequest(t, "POST", "/api/auth/login/", LoginRequest{Username: "alice"})
		w := httptest.NewRecorder()
		handler.Login(w, req)

		AssertErrorResponse(t, w, 400, "bad_request")
	})

	t.Run("malformed body", func(t *testing.T) {
		handler := NewAuthHandler(&MockAuthService{})

		req := httptest.NewRequest("POST", "/api/auth/login/", nil)
		w := httptest.NewRecorder()
		handler.Login(w, req)

		AssertErrorResponse(t, w, 400, "bad_request")
	})
}

func TestAuthHandler_Refresh(t *testing.T) {
	t.Run("valid refresh token", func(t *testing.T) {
		service := &MockAuthService{
			RefreshFunc: func(ctx context.Context, refreshToken string) (string, error) {
				assert.Equal(t, "refresh.jwt", refreshToken)
				return "new.access.jwt", nil
			},
		}
		handler := NewAuthHandler(service)

		req := NewTestRequest(t, "POST", "/api/auth/token/refresh/", RefreshRequest{Refresh: "refresh.jwt"})
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		var resp RefreshResponse
		AssertJSONResponse(t, w, 200, &resp)
		assert.Equal(t, "new.access.jwt", resp.Access)
	})

	t.Run("invalid refresh token", func(t *testing.T) {
		handler := NewAuthHandler(&MockAuthService{})

		req := NewTestRequest(t, "POST", "/api/auth/token/refresh/", RefreshRequest{Refresh: "garbage"})
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		AssertErrorResponse(t, w, 401, "unauthorized")
	})

	t.Run("missing token", func(t *testing.T) {
		handler := NewAuthHandler(&MockAuthService{})

		req := NewTestRequest(t, "POST", "/api/auth/token/refresh/", RefreshRequest{})
		w := httptest.NewRecorder()
		handler.Refresh(w, req)

		AssertErrorResponse(t, w, 400, "bad_request")
	})
}

func TestAuthHandler_Register(t *testing.T) {
	body := RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Phone:    "5550199",
		Password: "sturdy1password",
	}

	t.Run("successful registration", func(t *testing.T) {
		service := &MockAuthService{
			RegisterFunc: func(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error) {
				assert.False(t, actingAdmin)
				assert.Equal(t, "carol", input.Username)
				return services.NewTestUser("user_new", input.Username, input.Email), nil
			},
		}
		handler := NewAuthHandler(service)

		req := NewTestRequest(t, "POST", "/api/auth/register/", body)
		w := httptest.NewRecorder()
		handler.Register(w, req)

		var resp map[string]string
		AssertJSONResponse(t, w, 201, &resp)
		assert.Equal(t, "User registered successfully!", resp["message"])
	})

	t.Run("admin context allows role assignment", func(t *testing.T) {
		var gotActingAdmin bool
		service := &MockAuthService{
			RegisterFunc: func(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error) {
				gotActingAdmin = actingAdmin
				return services.NewTestAdmin("user_new", input.Username, input.Email), nil
			},
		}
		handler := NewAuthHandler(service)

		elevated := body
		elevated.Role = "admin"

		req := WithAdminContext(NewTestRequest(t, "POST", "/api/auth/register/", elevated), "admin_1", "root@example.com")
		w := httptest.NewRecorder()
		handler.Register(w, req)

		assert.Equal(t, 201, w.Code)
		assert.True(t, gotActingAdmin)
	})

	t.Run("duplicate username", func(t *testing.T) {
		handler := NewAuthHandler(&MockAuthService{})

		req := NewTestRequest(t, "POST", "/api/auth/register/", body)
		w := httptest.NewRecorder()
		handler.Register(w, req)

		AssertDetailResponse(t, w, 400, "Username already exists.")
	})

	t.Run("weak password", func(t *testing.T) {
		service := &MockAuthService{
			RegisterFunc: func(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error) {
				return nil, models.ErrWeakPassword
			},
		}
		handler := NewAuthHandler(service)

		weak := body
		weak.Password = "short1"

		req := NewTestRequest(t, "POST", "/api/auth/register/", weak)
		w := httptest.NewRecorder()
		handler.Register(w, req)

		AssertDetailResponse(t, w, 400, "Password must be at least 8 characters long and include letters and numbers.")
	})

	t.Run("missing fields", func(t *testing.T) {
		handler := NewAuthHandler(&MockAuthService{})

		incomplete := body
		incomplete.Phone = ""

		req := NewTestRequest(t, "POST", "/api/auth/register/", incomplete)
		w := httptest.NewRecorder()
		handler.Register(w, req)

		AssertDetailResponse(t, w, 400, "All fields are required.")
	})
}
