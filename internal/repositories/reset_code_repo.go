package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aronpal/accountd/internal/database"
	"github.com/aronpal/accountd/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ResetCodeRepository is the ledger of issued password-reset codes.
type ResetCodeRepository struct {
	db *database.DB
}

func NewResetCodeRepository(db *database.DB) *ResetCodeRepository {
	return &ResetCodeRepository{db: db}
}

func scanResetCodeRow(scanner rowScanner) (*models.PasswordResetCode, error) {
	var code models.PasswordResetCode

	err := scanner.Scan(&code.ID, &code.Email, &code.Code, &code.ExpiresAt, &code.CreatedAt)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	return &code, nil
}

// Create inserts a new ledger entry. Outstanding codes for the same email are
// left untouched; issuance is additive.
func (r *ResetCodeRepository) Create(ctx context.Context, email, code string, expiresAt time.Time) (*models.PasswordResetCode, error) {
	query := `
		INSERT INTO password_reset_codes (id, email, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, code, expires_at, created_at
	`

	entry, err := scanResetCodeRow(r.db.Pool.QueryRow(ctx, query, uuid.New().String(), email, code, expiresAt))
	if err != nil {
		return nil, fmt.Errorf("failed to create reset code: %w", err)
	}

	return entry, nil
}

// GetLatestValid returns the still-valid (email, code) match with the latest
// expiry, or ErrNotFound.
func (r *ResetCodeRepository) GetLatestValid(ctx context.Context, email, code string, now time.Time) (*models.PasswordResetCode, error) {
	query := `
		SELECT id, email, code, expires_at, created_at
		FROM password_reset_codes
		WHERE email = $1 AND code = $2 AND expires_at >= $3
		ORDER BY expires_at DESC
		LIMIT 1
	`

	return scanResetCodeRow(r.db.Pool.QueryRow(ctx, query, email, code, now))
}

// DeleteByEmail removes every ledger entry for an email.
func (r *ResetCodeRepository) DeleteByEmail(ctx context.Context, email string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM password_reset_codes WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("failed to delete reset codes for email: %w", err)
	}

	return nil
}

// ConsumeAndResetPassword performs the verify-time state change as one
// transaction: lock the newest valid (email, code) entry, replace the user's
// credential hash, then burn every outstanding code for the email. The row
// lock serializes racing verifications; the loser re-reads after the winner's
// delete commits, finds no valid entry, and gets ErrInvalidResetCode.
func (r *ResetCodeRepository) ConsumeAndResetPassword(ctx context.Context, email, code, passwordHash string) error {
	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		var codeID string
		err := tx.QueryRow(ctx, `
			SELECT id FROM password_reset_codes
			WHERE email = $1 AND code = $2 AND expires_at >= now()
			ORDER BY expires_at DESC
			LIMIT 1
			FOR UPDATE
		`, email, code).Scan(&codeID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return models.ErrInvalidResetCode
			}
			return database.MapPostgresError(err)
		}

		tag, err := tx.Exec(ctx, `
			UPDATE users SET password_hash = $1, password_changed_at = now(), updated_at = now()
			WHERE email = lower($2)
		`, passwordHash, email)
		if err != nil {
			return database.MapPostgresError(err)
		}
		if tag.RowsAffected() == 0 {
			// ledger entry without a matching user; should not happen
			// against a consistent store
			return models.ErrNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM password_reset_codes WHERE email = $1`, email); err != nil {
			return database.MapPostgresError(err)
		}

		return nil
	})
}

// CleanupExpired deletes codes that expired more than a day ago. Verification
// already filters on expiry, so this is hygiene, not correctness.
func (r *ResetCodeRepository) CleanupExpired(ctx context.Context) (int64, error) {
	result, err := r.db.Pool.Exec(ctx, `
		DELETE FROM password_reset_codes
		WHERE expires_at < now() - INTERVAL '24 hours'
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired reset codes: %w", err)
	}

	return result.RowsAffected(), nil
}
