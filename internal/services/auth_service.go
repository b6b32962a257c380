package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aronpal/accountd/internal/auth"
	"github.com/aronpal/accountd/internal/models"
	pkgauth "github.com/aronpal/accountd/pkg/auth"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, id string, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id string) error
	CountTotal(ctx context.Context) (int64, error)
	CountByActive(ctx context.Context, active bool) (int64, error)
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	CountNewSince(ctx context.Context, since time.Time) (int64, error)
}

// TokenIssuer defines the interface for minting and validating session tokens
type TokenIssuer interface {
	GenerateAccessToken(user *models.User) (string, error)
	GenerateRefreshToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*models.TokenClaims, error)
}

// AuthService handles authentication business logic
type AuthService struct {
	repo   UserRepository
	tm     TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo UserRepository, tm TokenIssuer, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tm:     tm,
		logger: logger,
	}
}

// LoginResponse is the flat token-plus-flags object the login endpoint
// returns. The three privilege flags all derive from the single role field.
type LoginResponse struct {
	Access      string `json:"access"`
	Refresh     string `json:"refresh"`
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
	IsAdmin     bool   `json:"is_admin"`
}

// RegisterInput carries a registration request into the service
type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
	Role     models.Role
}

// Login authenticates by username or email and returns a token pair. Unknown
// users, wrong passwords and inactive accounts are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*LoginResponse, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, models.ErrUnauthorized
	}

	var user *models.User
	var err error
	if strings.Contains(identifier, "@") {
		user, err = s.repo.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.repo.GetByUsername(ctx, identifier)
	}
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: invalid credentials")
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to look up user for login", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if !user.IsActive {
		s.logger.Info("login blocked: inactive account", slog.String("user_id", user.ID))
		return nil, models.ErrUnauthorized
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials")
		return nil, models.ErrUnauthorized
	}

	accessToken, err := s.tm.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	refreshToken, err := s.tm.GenerateRefreshToken(user)
	if err != nil {
		s.logger.Error("failed to generate refresh token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))

	isAdmin := user.IsAdmin()
	return &LoginResponse{
		Access:      accessToken,
		Refresh:     refreshToken,
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		IsSuperuser: isAdmin,
		IsStaff:     isAdmin,
		IsAdmin:     isAdmin,
	}, nil
}

// Refresh re-issues an access token with identical claims from a valid
// refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshTokenString string) (string, error) {
	if refreshTokenString = strings.TrimSpace(refreshTokenString); refreshTokenString == "" {
		return "", models.ErrUnauthorized
	}

	claims, err := s.tm.ValidateToken(refreshTokenString)
	if err != nil {
		s.logger.Info("refresh token validation failed", slog.Any("error", err))
		return "", models.ErrUnauthorized
	}

	if claims.Type != models.TokenTypeRefresh {
		s.logger.Warn("refresh attempt with non-refresh token", slog.String("user_id", claims.UserID))
		return "", models.ErrUnauthorized
	}

	user, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("user not found for token refresh", slog.String("user_id", claims.UserID))
			return "", models.ErrUnauthorized
		}
		s.logger.Error("failed to get user for token refresh", slog.String("user_id", claims.UserID), slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	if !user.IsActive {
		s.logger.Info("token refresh blocked: inactive account", slog.String("user_id", user.ID))
		return "", models.ErrUnauthorized
	}

	// Invalidate tokens minted before the last credential change
	if user.PasswordChangedAt != nil && claims.IssuedAt != nil {
		if claims.IssuedAt.Time.Before(*user.PasswordChangedAt) {
			s.logger.Info("token refresh blocked: issued before password change",
				slog.String("user_id", user.ID))
			return "", models.ErrUnauthorized
		}
	}

	accessToken, err := s.tm.GenerateAccessToken(user)
	if err != nil {
		s.logger.Error("failed to generate access token", slog.String("user_id", user.ID), slog.Any("error", err))
		return "", models.ErrInternalServer
	}

	s.logger.Info("token refreshed", slog.String("user_id", user.ID))
	return accessToken, nil
}

// Register creates a new account. Unless actingAdmin is set, the requested
// role is ignored and the account is created with the standard role.
func (s *AuthService) Register(ctx context.Context, input RegisterInput, actingAdmin bool) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)

	if input.Username == "" || input.Email == "" || input.Phone == "" || input.Password == "" {
		return nil, models.ErrBadRequest
	}

	role := models.RoleUser
	if actingAdmin && input.Role.IsValid() {
		role = input.Role
	}

	if err := pkgauth.ValidatePassword(input.Password); err != nil {
		return nil, models.ErrWeakPassword
	}

	if _, err := s.repo.GetByUsername(ctx, input.Username); err == nil {
		s.logger.Info("registration failed: username taken")
		return nil, models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check username availability", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if _, err := s.repo.GetByEmail(ctx, input.Email); err == nil {
		s.logger.Info("registration failed: email taken")
		return nil, models.ErrConflict
	} else if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check email availability", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	passwordHash, err := pkgauth.HashPassword(input.Password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered", slog.String("user_id", created.ID), slog.String("role", string(created.Role)))
	return created, nil
}

// compile-time check that the concrete token manager satisfies TokenIssuer
var _ TokenIssuer = (*auth.TokenManager)(nil)
