package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aronpal/accountd/internal/models"
)

func TestUserService_ListUsers(t *testing.T) {
	alice := NewTestUser("user_1", "alice", "alice@example.com")
	bob := NewTestUser("user_2", "bob", "bob@example.com")

	repo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
			if id == alice.ID {
				return alice, nil
			}
			return nil, models.ErrNotFound
		},
		ListFunc: func(ctx context.Context, limit, offset int) ([]*models.User, error) {
			return []*models.User{bob, alice}, nil
		},
	}
	service := NewUserService(repo, testLogger())

	t.Run("admin sees the full directory", func(t *testing.T) {
		users, err := service.ListUsers(context.Background(), AdminClaims("admin_1"), 50, 0)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("non-admin gets only their own record", func(t *testing.T) {
		users, err := service.ListUsers(context.Background(), UserClaims("user_1"), 50, 0)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "user_1", users[0].ID)
	})

	t.Run("nil actor", func(t *testing.T) {
		_, err := service.ListUsers(context.Background(), nil, 50, 0)
		assert.ErrorIs(t, err, models.ErrUnauthorized)
	})

	t.Run("repo failure", func(t *testing.T) {
		broken := NewUserService(&MockUserRepository{
			ListFunc: func(ctx context.Context, limit, offset int) ([]*models.User, error) {
				return nil, errors.New("connection refused")
			},
		}, testLogger())

		_, err := broken.ListUsers(context.Background(), AdminClaims("admin_1"), 50, 0)
		assert.ErrorIs(t, err, models.ErrInternalServer)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	t.Run("applies only non-empty fields", func(t *testing.T) {
		var saved *models.User

		repo := &MockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
				return NewTestUser("user_1", "alice", "alice@example.com"), nil
			},
			UpdateFunc: func(ctx context.Context, id string, user *models.User) (*models.User, error) {
				saved = user
				return user, nil
			},
		}
		service := NewUserService(repo, testLogger())

		updated, err := service.UpdateProfile(context.Background(), "user_1", ProfileUpdate{
			Email: " Alice.New@Example.com ",
		})
		require.NoError(t, err)

		assert.Equal(t, "alice.new@example.com", saved.Email)
		assert.Equal(t, "alice", saved.Username)
		assert.Equal(t, "5550100", saved.Phone)
		assert.Equal(t, updated, saved)
	})

	t.Run("unknown user", func(t *testing.T) {
		service := NewUserService(&MockUserRepository{}, testLogger())

		_, err := service.UpdateProfile(context.Background(), "ghost", ProfileUpdate{Username: "new"})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("duplicate email surfaces as conflict", func(t *testing.T) {
		repo := &MockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
				return NewTestUser("user_1", "alice", "alice@example.com"), nil
			},
			UpdateFunc: func(ctx context.Context, id string, user *models.User) (*models.User, error) {
				return nil, models.ErrConflict
			},
		}
		service := NewUserService(repo, testLogger())

		_, err := service.UpdateProfile(context.Background(), "user_1", ProfileUpdate{Email: "taken@example.com"})
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}

func TestUserService_AdminUpdateUser(t *testing.T) {
	newRepo := func() *MockUserRepository {
		return &MockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
				return NewTestUser("user_1", "alice", "alice@example.com"), nil
			},
			UpdateFunc: func(ctx context.Context, id string, user *models.User) (*models.User, error) {
				return user, nil
			},
		}
	}

	t.Run("role and active flag", func(t *testing.T) {
		service := NewUserService(newRepo(), testLogger())

		inactive := false
		updated, err := service.AdminUpdateUser(context.Background(), "user_1", AdminUserUpdate{
			Role:     models.RoleAdmin,
			IsActive: &inactive,
		})
		require.NoError(t, err)

		assert.Equal(t, models.RoleAdmin, updated.Role)
		assert.False(t, updated.IsActive)
	})

	t.Run("invalid role", func(t *testing.T) {
		service := NewUserService(newRepo(), testLogger())

		_, err := service.AdminUpdateUser(context.Background(), "user_1", AdminUserUpdate{
			Role: models.Role("superduper"),
		})
		assert.ErrorIs(t, err, models.ErrBadRequest)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Run("deletes another user", func(t *testing.T) {
		deleted := ""
		repo := &MockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*models.User, error) {
				return NewTestUser(id, "bob", "bob@example.com"), nil
			},
			DeleteFunc: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}
		service := NewUserService(repo, testLogger())

		err := service.DeleteUser(context.Background(), "admin_1", "user_2")
		require.NoError(t, err)
		assert.Equal(t, "user_2", deleted)
	})

	t.Run("self-deletion is blocked", func(t *testing.T) {
		repo := &MockUserRepository{
			DeleteFunc: func(ctx context.Context, id string) error {
				t.Fatal("delete must not be called")
				return nil
			},
		}
		service := NewUserService(repo, testLogger())

		err := service.DeleteUser(context.Background(), "admin_1", "admin_1")
		assert.ErrorIs(t, err, models.ErrSelfDeletion)
	})

	t.Run("unknown target", func(t *testing.T) {
		service := NewUserService(&MockUserRepository{}, testLogger())

		err := service.DeleteUser(context.Background(), "admin_1", "ghost")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
