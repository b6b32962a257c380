package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aronpal/accountd/internal/auth"
	"github.com/aronpal/accountd/internal/models"
	pkghttp "github.com/aronpal/accountd/pkg/http"
)

// AddressServiceInterface defines the interface for address business logic
type AddressServiceInterface interface {
	CreateAddress(ctx context.Context, actor *models.TokenClaims, addr *models.Address) (*models.Address, error)
	ListAddresses(ctx context.Context, actor *models.TokenClaims, filterUserID string) ([]*models.Address, error)
	GetAddress(ctx context.Context, actor *models.TokenClaims, id string) (*models.Address, error)
	UpdateAddress(ctx context.Context, actor *models.TokenClaims, id string, fields *models.Address) (*models.Address, error)
	HasAddress(ctx context.Context, userID string) (bool, error)
}

// AddressHandler handles postal-address HTTP requests
type AddressHandler struct {
	service AddressServiceInterface
}

// NewAddressHandler creates a new AddressHandler
func NewAddressHandler(service AddressServiceInterface) *AddressHandler {
	return &AddressHandler{
		service: service,
	}
}

// Request/Response DTOs

// AddressRequest represents the request body for creating or updating an address
type AddressRequest struct {
	UserID   string `json:"user_id" validate:"omitempty"`
	House    string `json:"house" validate:"required,min=1"`
	Street   string `json:"street" validate:"required,min=1"`
	Landmark string `json:"landmark" validate:"omitempty"`
	Area     string `json:"area" validate:"required,min=1"`
	District string `json:"district" validate:"required,min=1"`
	State    string `json:"state" validate:"required,min=1"`
	Country  string `json:"country" validate:"required,min=1"`
	Pincode  string `json:"pincode" validate:"required,min=4,max=10"`
}

// AddressResponse represents an address in the HTTP response
type AddressResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	House     string `json:"house"`
	Street    string `json:"street"`
	Landmark  string `json:"landmark"`
	Area      string `json:"area"`
	District  string `json:"district"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Pincode   string `json:"pincode"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CheckAddressResponse reports whether the caller has a saved address
type CheckAddressResponse struct {
	HasAddress bool `json:"has_address"`
}

func addressModelToResponse(addr *models.Address) *AddressResponse {
	return &AddressResponse{
		ID:        addr.ID,
		UserID:    addr.UserID,
		House:     addr.House,
		Street:    addr.Street,
		Landmark:  addr.Landmark,
		Area:      addr.Area,
		District:  addr.District,
		State:     addr.State,
		Country:   addr.Country,
		Pincode:   addr.Pincode,
		CreatedAt: addr.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: addr.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (req *AddressRequest) toModel() *models.Address {
	return &models.Address{
		UserID:   req.UserID,
		House:    req.House,
		Street:   req.Street,
		Landmark: req.Landmark,
		Area:     req.Area,
		District: req.District,
		State:    req.State,
		Country:  req.Country,
		Pincode:  req.Pincode,
	}
}

// CreateAddress creates an address owned by the caller (admins may create
// for another user via user_id)
//
// @Summary Create address
// @Security BearerAuth
// @Accept json
// @Param request body AddressRequest true "Address"
// @Produce json
// @Success 201 {object} AddressResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /addresses [post]
func (h *AddressHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	var req AddressRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	created, err := h.service.CreateAddress(r.Context(), claims, req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteBadRequest(w, "Invalid address")
		case errors.Is(err, models.ErrUnauthorized):
			pkghttp.WriteUnauthorized(w, "unauthorized")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusCreated, addressModelToResponse(created))
}

// ListAddresses lists the caller's addresses (admin: all, or ?user= filter)
//
// @Summary List addresses
// @Security BearerAuth
// @Param user query string false "Filter by owner (admin only)"
// @Produce json
// @Success 200 {array} AddressResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /addresses [get]
func (h *AddressHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	addresses, err := h.service.ListAddresses(r.Context(), claims, r.URL.Query().Get("user"))
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	response := make([]*AddressResponse, len(addresses))
	for i, addr := range addresses {
		response[i] = addressModelToResponse(addr)
	}

	pkghttp.WriteJSON(w, http.StatusOK, response)
}

// GetAddress retrieves one address with an ownership check
//
// @Summary Get address by ID
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Produce json
// @Success 200 {object} AddressResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /addresses/{id} [get]
func (h *AddressHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	addressID := chi.URLParam(r, "id")
	if addressID == "" {
		pkghttp.WriteBadRequest(w, "Address ID is required")
		return
	}

	addr, err := h.service.GetAddress(r.Context(), claims, addressID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Address not found")
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "You cannot access this address")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, addressModelToResponse(addr))
}

// UpdateAddress updates an address's postal fields with an ownership check
//
// @Summary Update address
// @Security BearerAuth
// @Param id path string true "Address ID"
// @Accept json
// @Param request body AddressRequest true "Address"
// @Produce json
// @Success 200 {object} AddressResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /addresses/{id} [put]
func (h *AddressHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	addressID := chi.URLParam(r, "id")
	if addressID == "" {
		pkghttp.WriteBadRequest(w, "Address ID is required")
		return
	}

	var req AddressRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateAddress(r.Context(), claims, addressID, req.toModel())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteNotFound(w, "Address not found")
		case errors.Is(err, models.ErrForbidden):
			pkghttp.WriteForbidden(w, "You cannot access this address")
		default:
			pkghttp.WriteInternalError(w, "Internal server error")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, addressModelToResponse(updated))
}

// CheckAddress reports whether the caller has at least one saved address
//
// @Summary Check for a saved address
// @Security BearerAuth
// @Produce json
// @Success 200 {object} CheckAddressResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /addresses/check [get]
func (h *AddressHandler) CheckAddress(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	has, err := h.service.HasAddress(r.Context(), claims.UserID)
	if err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, CheckAddressResponse{HasAddress: has})
}
