package models

import "errors"

// Sentinel errors for common failure conditions
var (
	ErrNotFound       = errors.New("resource not found")
	ErrConflict       = errors.New("resource already exists")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")

	// Password reset errors
	ErrInvalidResetCode = errors.New("invalid or expired reset code")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password does not meet requirements")
	ErrEmailDelivery    = errors.New("failed to send email")

	// Directory errors
	ErrSelfDeletion = errors.New("cannot delete own account")
)
