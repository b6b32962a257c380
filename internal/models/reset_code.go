package models

import (
	"time"
)

// PasswordResetCode is a single issued recovery code. Email is a denormalized
// string rather than a foreign key: issuance and verification both key on the
// address the caller supplied, and multiple outstanding codes per email are
// allowed. Verification selects the still-valid match with the latest expiry.
type PasswordResetCode struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"` // 6-digit zero-padded numeric string
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired checks if the code has expired.
func (c *PasswordResetCode) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
