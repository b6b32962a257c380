package models

import (
	"time"
)

// Role is the single privilege level for a user. The legacy is_staff and
// is_superuser flags exposed on the wire both derive from it.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID                string
	Username          string
	Email             string // stored lower-case
	Phone             string
	PasswordHash      string
	Role              Role
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PasswordChangedAt *time.Time // last credential change, used for token invalidation
}

// IsAdmin reports whether the user holds the admin privilege level.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
