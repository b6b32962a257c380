package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/aronpal/accountd/internal/models"
)

// UserService handles profile and directory business logic
type UserService struct {
	repo   UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(repo UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// ProfileUpdate carries a partial profile update; empty fields are unchanged.
type ProfileUpdate struct {
	Username string
	Email    string
	Phone    string
}

// AdminUserUpdate carries a privileged partial update.
type AdminUserUpdate struct {
	Username string
	Email    string
	Phone    string
	Role     models.Role
	IsActive *bool
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found", slog.String("user_id", id))
			return nil, models.ErrNotFound
		}
		s.logger.Error("failed to get user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return user, nil
}

// ListUsers returns the directory. Admins see all users newest-first;
// everyone else gets a one-element list holding only their own record rather
// than a hard 403.
func (s *UserService) ListUsers(ctx context.Context, actor *models.TokenClaims, limit, offset int) ([]*models.User, error) {
	if actor == nil {
		return nil, models.ErrUnauthorized
	}

	if !actor.IsAdmin() {
		self, err := s.GetUserByID(ctx, actor.UserID)
		if err != nil {
			return nil, err
		}
		return []*models.User{self}, nil
	}

	users, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		s.logger.Error("failed to list users", slog.Int("limit", limit), slog.Int("offset", offset), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return users, nil
}

// UpdateProfile applies a partial update to the caller's own record
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(update.Username); v != "" {
		user.Username = v
	}
	if v := strings.ToLower(strings.TrimSpace(update.Email)); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(update.Phone); v != "" {
		user.Phone = v
	}

	updated, err := s.repo.Update(ctx, userID, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update profile", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("profile updated", slog.String("user_id", userID))
	return updated, nil
}

// AdminUpdateUser applies a privileged partial update to any user record
func (s *UserService) AdminUpdateUser(ctx context.Context, id string, update AdminUserUpdate) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(update.Username); v != "" {
		user.Username = v
	}
	if v := strings.ToLower(strings.TrimSpace(update.Email)); v != "" {
		user.Email = v
	}
	if v := strings.TrimSpace(update.Phone); v != "" {
		user.Phone = v
	}
	if update.Role != "" {
		if !update.Role.IsValid() {
			return nil, models.ErrBadRequest
		}
		user.Role = update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}

	updated, err := s.repo.Update(ctx, id, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to update user", slog.String("user_id", id), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user updated", slog.String("user_id", id))
	return updated, nil
}

// DeleteUser removes a user record. Deleting one's own account is forbidden.
func (s *UserService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		s.logger.Info("self-deletion attempt blocked", slog.String("user_id", actorID))
		return models.ErrSelfDeletion
	}

	if _, err := s.GetUserByID(ctx, targetID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to delete user", slog.String("user_id", targetID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("user deleted", slog.String("user_id", targetID))
	return nil
}
