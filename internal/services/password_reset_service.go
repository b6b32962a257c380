package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aronpal/accountd/internal/models"
	pkgauth "github.com/aronpal/accountd/pkg/auth"
)

// ResetCodeLedger defines the interface for the reset-code store
type ResetCodeLedger interface {
	Create(ctx context.Context, email, code string, expiresAt time.Time) (*models.PasswordResetCode, error)
	ConsumeAndResetPassword(ctx context.Context, email, code, passwordHash string) error
}

// PasswordResetService orchestrates the recovery-code lifecycle: issue a code,
// request delivery, verify a submitted code, and replace the credential.
type PasswordResetService struct {
	users   UserRepository
	codes   ResetCodeLedger
	email   EmailSender
	codeTTL time.Duration
	logger  *slog.Logger
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(users UserRepository, codes ResetCodeLedger, email EmailSender, codeTTL time.Duration, logger *slog.Logger) *PasswordResetService {
	return &PasswordResetService{
		users:   users,
		codes:   codes,
		email:   email,
		codeTTL: codeTTL,
		logger:  logger,
	}
}

// RequestCode issues a recovery code for the account registered under email
// and requests delivery. Unknown emails get ErrNotFound before anything is
// generated or sent. A delivery failure surfaces as ErrEmailDelivery; the
// ledger entry written just before is kept, so the code in the user's inbox
// (if the failure was partial) still works until it expires.
func (s *PasswordResetService) RequestCode(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return models.ErrBadRequest
	}

	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("reset code requested for unknown email")
			return models.ErrNotFound
		}
		s.logger.Error("failed to look up user for reset code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	code, err := pkgauth.GenerateResetCode()
	if err != nil {
		s.logger.Error("failed to generate reset code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	expiresAt := time.Now().Add(s.codeTTL)

	if _, err := s.codes.Create(ctx, email, code, expiresAt); err != nil {
		s.logger.Error("failed to record reset code", slog.Any("error", err))
		return models.ErrInternalServer
	}

	subject := "Your OTP for Password Reset"
	body := fmt.Sprintf("Your OTP is: %s\nIt expires at %s UTC.\nIf you didn't request this, ignore.",
		code, expiresAt.UTC().Format("15:04:05"))

	if err := s.email.Send(ctx, subject, body, []string{email}); err != nil {
		s.logger.Error("failed to deliver reset code email", slog.Any("error", err))
		return models.ErrEmailDelivery
	}

	s.logger.Info("reset code issued", slog.String("expires_at", expiresAt.UTC().Format(time.RFC3339)))
	return nil
}

// VerifyAndReset validates a submitted code and, on success, replaces the
// account credential and invalidates every outstanding code for the email.
// The credential replacement and the ledger purge are one transaction; a
// given code is consumed at most once even under concurrent submissions.
func (s *PasswordResetService) VerifyAndReset(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return models.ErrPasswordMismatch
	}

	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return models.ErrWeakPassword
	}

	email = strings.ToLower(strings.TrimSpace(email))

	passwordHash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.codes.ConsumeAndResetPassword(ctx, email, code, passwordHash); err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidResetCode):
			s.logger.Info("reset attempt with invalid or expired code")
			return models.ErrInvalidResetCode
		case errors.Is(err, models.ErrNotFound):
			s.logger.Warn("valid reset code for email with no matching user")
			return models.ErrNotFound
		default:
			s.logger.Error("failed to consume reset code", slog.Any("error", err))
			return models.ErrInternalServer
		}
	}

	s.logger.Info("password reset completed")
	return nil
}
