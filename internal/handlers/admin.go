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

// AdminServiceInterface defines the interface for dashboard aggregation
type AdminServiceInterface interface {
	GetDashboardStats(ctx context.Context) (*services.DashboardStatsResponse, error)
}

// AdminHandler handles the privileged user-management endpoints. Routes are
// mounted behind the admin gate; handlers still read claims for actor identity.
type AdminHandler struct {
	users     UserServiceInterface
	authn     AuthServiceInterface
	stats     AdminServiceInterface
	addresses AddressServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(users UserServiceInterface, authn AuthServiceInterface, stats AdminServiceInterface, addresses AddressServiceInterface) *AdminHandler {
	return &AdminHandler{
		users:     users,
		authn:     authn,
		stats:     stats,
		addresses: addresses,
	}
}

// AdminCreateUserRequest represents the request body for a privileged user
// creation. The role is honored and an address may be attached in the same
// call.
type AdminCreateUserRequest struct {
	Username string          `json:"username" validate:"required,min=1"`
	Email    string          `json:"email" validate:"required,email"`
	Phone    string          `json:"phone" validate:"required,min=1"`
	Password string          `json:"password" validate:"required"`
	Role     string          `json:"role" validate:"omitempty,oneof=user admin"`
	Address  *AddressRequest `json:"address" validate:"omitempty"`
}

// AdminUpdateUserRequest represents the request body for a privileged update
type AdminUpdateUserRequest struct {
	Username string `json:"username" validate:"omitempty,min=1"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=1"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
	IsActive *bool  `json:"is_active"`
}

// ListUsers returns the full directory for the admin console
//
// @Summary List all users
// @Security BearerAuth
// @Param limit query int false "Limit (default 50)" default(50)
// @Param offset query int false "Offset (default 0)" default(0)
// @Produce json
// @Success 200 {array} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
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

	users, err := h.users.ListUsers(r.Context(), claims, limit, offset)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := make([]*UserResponse, len(users))
	for i, user := range users {
		response[i] = userModelToResponse(user)
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}

// CreateUser creates a user with an admin-assigned role, optionally
// attaching an address in the same call
//
// @Summary Create a user
// @Security BearerAuth
// @Accept json
// @Param request body AdminCreateUserRequest true "Create user request"
// @Produce json
// @Success 201 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users [post]
func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req AdminCreateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.authn.Register(r.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		Role:     models.Role(req.Role),
	}, true)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "Username or email already exists")
		case errors.Is(err, models.ErrWeakPassword):
			pkghttp.WriteBadRequest(w, "Password must be at least 8 characters long and include letters and numbers.")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "All fields are required.")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	if req.Address != nil {
		addr := req.Address.toModel()
		addr.UserID = created.ID
		if _, err := h.addresses.CreateAddress(r.Context(), claims, addr); err != nil {
			// The account exists at this point; surface the partial failure
			pkghttp.WriteInternalError(w, "User created but address could not be saved")
			return
		}
	}

	pkghttp.WriteJSON(w, http.StatusCreated, userModelToResponse(created))
}

// UpdateUser applies a privileged partial update to any user
//
// @Summary Update a user
// @Security BearerAuth
// @Param id path string true "User ID"
// @Accept json
// @Param request body AdminUpdateUserRequest true "Update user request"
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	var req AdminUpdateUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.users.AdminUpdateUser(r.Context(), userID, services.AdminUserUpdate{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.Role(req.Role),
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		case errors.Is(err, models.ErrConflict):
			pkghttp.WriteConflict(w, "Username or email already in use")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid role")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, userModelToResponse(updated))
}

// DeleteUser removes a user. Admins cannot delete their own account.
//
// @Summary Delete a user
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	userID := chi.URLParam(r, "id")
	if userID == "" {
		pkghttp.WriteBadRequest(w, "User ID is required")
		return
	}

	if err := h.users.DeleteUser(r.Context(), claims.UserID, userID); err != nil {
		switch {
		case errors.Is(err, models.ErrSelfDeletion):
			pkghttp.WriteBadRequest(w, "You cannot delete your own account")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "User not found")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DashboardStats returns aggregate user counts for the admin dashboard
//
// @Summary Admin dashboard statistics
// @Security BearerAuth
// @Produce json
// @Success 200 {object} services.DashboardStatsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetDashboardStats(r.Context())
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, stats)
}
