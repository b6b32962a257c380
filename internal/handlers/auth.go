package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aronpal/accountd/internal/auth"
	"github.com/aronpal/accountd/internal/models"
	"github.com/aronpal/accountd/internal/services"
	pkghttp "github.com/aronpal/accountd/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	Login(ctx context.Context, identifier, password string) (*services.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Register(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// Request DTOs

// LoginRequest represents the request body for login. The username field
// also accepts an email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents the request body for token refresh
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// RefreshResponse carries the re-issued access token
type RefreshResponse struct {
	Access string `json:"access"`
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=1"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

// Login handles user login
// @Summary User login
// @Accept json
// @Param request body LoginRequest true "Login request"
// @Produce json
// @Success 200 {object} services.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	resp, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			pkghttp.WriteUnauthorized(w, "Authentication failed")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Refresh handles access-token re-issuance
// @Summary Refresh access token
// @Accept json
// @Param request body RefreshRequest true "Refresh request"
// @Produce json
// @Success 200 {object} RefreshResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/token/refresh [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	access, err := h.service.Refresh(r.Context(), req.Refresh)
	if err != nil {
		if errors.Is(err, models.ErrUnauthorized) {
			pkghttp.WriteUnauthorized(w, "Authentication failed")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, RefreshResponse{Access: access})
}

// Register handles self-registration. An authenticated admin may register
// users with an explicit role; everyone else gets the standard role.
// @Summary User registration
// @Accept json
// @Param request body RegisterRequest true "Register request"
// @Produce json
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteDetail(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteDetail(w, http.StatusBadRequest, "All fields are required.")
		return
	}

	claims := auth.GetUserFromContext(r)
	actingAdmin := claims != nil && claims.IsAdmin()

	input := services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     models.Role(req.Role),
	}

	_, err := h.service.Register(r.Context(), input, actingAdmin)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteDetail(w, http.StatusBadRequest, "Username already exists.")
		case errors.Is(err, models.ErrWeakPassword):
			pkghttp.WriteDetail(w, http.StatusBadRequest, "Password must be at least 8 characters long and include letters and numbers.")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteDetail(w, http.StatusBadRequest, "All fields are required.")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "User registered successfully!",
	})
}
