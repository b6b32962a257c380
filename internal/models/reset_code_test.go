package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPasswordResetCode_IsExpired(t *testing.T) {
	live := &PasswordResetCode{Email: "user@example.com", Code: "123456", ExpiresAt: time.Now().Add(5 * time.Minute)}
	assert.False(t, live.IsExpired())

	expired := &PasswordResetCode{Email: "user@example.com", Code: "123456", ExpiresAt: time.Now().Add(-1 * time.Second)}
	assert.True(t, expired.IsExpired())
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleUser.IsValid())
	assert.True(t, RoleAdmin.IsValid())
	assert.False(t, Role("superuser").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestUser_IsAdmin(t *testing.T) {
	admin := &User{Role: RoleAdmin}
	assert.True(t, admin.IsAdmin())

	user := &User{Role: RoleUser}
	assert.False(t, user.IsAdmin())
}
