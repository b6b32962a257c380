package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aronpal/accountd/internal/auth"
	"github.com/aronpal/accountd/internal/models"
	"github.com/aronpal/accountd/internal/services"
	pkghttp "github.com/aronpal/accountd/pkg/http"
)

// UserServiceInterface defines the interface for user business logic
type UserServiceInterface interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	ListUsers(ctx context.Context, actor *models.TokenClaims, limit, offset int) ([]*models.User, error)
	UpdateProfile(ctx context.Context, userID string, update services.ProfileUpdate) (*models.User, error)
	AdminUpdateUser(ctx context.Context, id string, update services.AdminUserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, actorID, targetID string) error
}

// UserHandler handles profile and directory HTTP requests
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// Request/Response DTOs

// UpdateProfileRequest represents the request body for a profile update
type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=1"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=1"`
}

// UserResponse represents a user in the HTTP response
type UserResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// userModelToResponse converts a user model to a response DTO
func userModelToResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: user.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// GetProfile returns the caller's own record
//
// @Summary Get own profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/profile [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}

// UpdateProfile applies a partial update to the caller's own record
//
// @Summary Update own profile
// @Security BearerAuth
// @Accept json
// @Param request body UpdateProfileRequest true "Profile update"
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/profile [post]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req UpdateProfileRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateProfile(r.Context(), claims.UserID, services.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteBadRequest(w, "Username or email already in use")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(updated))
}

// ListUsers returns the directory: everything for admins, a one-element
// list holding the caller for everyone else.
//
// @Summary List users
// @Security BearerAuth
// @Param limit query int false "Limit (default 50)" default(50)
// @Param offset query int false "Offset (default 0)" default(0)
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	limit := 50
	offset := 0

	if l := r.URL.Query().Get("limit"); l != "" {
		if err := parseIntParam(l, &limit, 1, 100); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid limit parameter")
			return
		}
	}

	if o := r.URL.Query().Get("offset"); o != "" {
		if err := parseIntParam(o, &offset, 0, 100000); err != nil {
			pkghttp.WriteBadRequest(w, "Invalid offset parameter")
			return
		}
	}

	users, err := h.service.ListUsers(r.Context(), claims, limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteNotFound(w, "User not found")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := make([]*UserResponse, len(users))
	for i, user := range users {
		response[i] = userModelToResponse(user)
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}

// GetUser retrieves a user by ID for the directory detail view
//
// @Summary Get user by ID
// @Security BearerAuth
// @Param id path string true "User ID"
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /auth/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	user, err := h.service.GetUserByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteDetail(w, http.StatusNotFound, "User not found.")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(user))
}

// parseIntParam parses an integer parameter and enforces a range
func parseIntParam(value string, dest *int, min, max int) error {
	n := 0
	if err := json.Unmarshal([]byte(value), &n); err != nil {
		return err
	}

	if n < min || n > max {
		return errors.New("parameter out of range")
	}

	*dest = n
	return nil
}
