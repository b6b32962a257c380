package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aronpal/accountd/internal/models"
	pkghttp "github.com/aronpal/accountd/pkg/http"
)

// PasswordResetServiceInterface defines the interface for the reset lifecycle
type PasswordResetServiceInterface interface {
	RequestCode(ctx context.Context, email string) error
	VerifyAndReset(ctx context.Context, email, code, newPassword, confirmPassword string) error
}

// PasswordResetHandler handles the OTP password-reset endpoints. Response
// bodies follow the single-field detail dialect the frontend already speaks.
type PasswordResetHandler struct {
	service PasswordResetServiceInterface
}

// NewPasswordResetHandler creates a new PasswordResetHandler
func NewPasswordResetHandler(service PasswordResetServiceInterface) *PasswordResetHandler {
	return &PasswordResetHandler{
		service: service,
	}
}

// Request/Response DTOs

// SendOTPRequest represents the request body for requesting a reset code
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SendOTPResponse confirms that a reset code was issued and mailed
type SendOTPResponse struct {
	Detail string `json:"detail"`
	Sent   bool   `json:"sent"`
}

// VerifyOTPRequest represents the request body for verifying a reset code
type VerifyOTPRequest struct {
	Email           string `json:"email" validate:"required,email"`
	OTP             string `json:"otp" validate:"required,len=6,numeric"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

// SendOTP issues a reset code for a registered email and mails it
//
// @Summary Request a password-reset code
// @Accept json
// @Param request body SendOTPRequest true "Send OTP request"
// @Produce json
// @Success 200 {object} SendOTPResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /password-reset/send-otp [post]
func (h *PasswordResetHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteDetail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteDetail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := h.service.RequestCode(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteDetail(w, http.StatusNotFound, "Email not found — please register first.")
		case errors.Is(err, models.ErrEmailDelivery):
			pkghttp.WriteDetail(w, http.StatusInternalServerError, "Failed to send OTP email.")
		case errors.Is(err, models.ErrBadRequest):
			pkghttp.WriteDetail(w, http.StatusBadRequest, "Invalid input")
		default:
			pkghttp.WriteDetail(w, http.StatusInternalServerError, "Failed to send OTP email.")
		}
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, SendOTPResponse{
		Detail: "Verifiaction code sent successfully to your email.",
		Sent:   true,
	})
}

// VerifyOTP checks a submitted code and replaces the account password
//
// @Summary Verify a reset code and set a new password
// @Accept json
// @Param request body VerifyOTPRequest true "Verify OTP request"
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /password-reset/verify-otp [post]
func (h *PasswordResetHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteDetail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteDetail(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err := h.service.VerifyAndReset(r.Context(), req.Email, req.OTP, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrPasswordMismatch):
			pkghttp.WriteDetail(w, http.StatusBadRequest, "Passwords do not match")
		case errors.Is(err, models.ErrWeakPassword):
			pkghttp.WriteDetail(w, http.StatusBadRequest, "Password must be at least 8 characters long and include letters and numbers.")
		case errors.Is(err, models.ErrInvalidResetCode):
			pkghttp.WriteDetail(w, http.StatusBadRequest, "Invalid or expired OTP")
		case errors.Is(err, models.ErrNotFound):
			pkghttp.WriteDetail(w, http.StatusNotFound, "User not found. Please register first.")
		default:
			pkghttp.WriteDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	pkghttp.WriteDetail(w, http.StatusOK, "Password updated successfully.")
}
