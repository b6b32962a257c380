package services

import (
	"context"
	"time"

	"github.com/aronpal/accountd/internal/models"
)

// MockUserRepository implements UserRepository for testing
type MockUserRepository struct {
	GetByIDFunc       func(ctx context.Context, id string) (*models.User, error)
	GetByEmailFunc    func(ctx context.Context, email string) (*models.User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (*models.User, error)
	ListFunc          func(ctx context.Context, limit, offset int) ([]*models.User, error)
	CreateFunc        func(ctx context.Context, user *models.User) (*models.User, error)
	UpdateFunc        func(ctx context.Context, id string, user *models.User) (*models.User, error)
	DeleteFunc        func(ctx context.Context, id string) error
	CountTotalFunc    func(ctx context.Context) (int64, error)
	CountByActiveFunc func(ctx context.Context, active bool) (int64, error)
	CountByRoleFunc   func(ctx context.Context, role models.Role) (int64, error)
	CountNewSinceFunc func(ctx context.Context, since time.Time) (int64, error)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFunc != nil {
		return m.GetByUsernameFunc(ctx, username)
	}
	return nil, models.ErrNotFound
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	return []*models.User{}, nil
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Update(ctx context.Context, id string, user *models.User) (*models.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, user)
	}
	return nil, models.ErrInternalServer
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) CountTotal(ctx context.Context) (int64, error) {
	if m.CountTotalFunc != nil {
		return m.CountTotalFunc(ctx)
	}
	return 0, nil
}

func (m *MockUserRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	if m.CountByActiveFunc != nil {
		return m.CountByActiveFunc(ctx, active)
	}
	return 0, nil
}

func (m *MockUserRepository) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	if m.CountByRoleFunc != nil {
		return m.CountByRoleFunc(ctx, role)
	}
	return 0, nil
}

func (m *MockUserRepository) CountNewSince(ctx context.Context, since time.Time) (int64, error) {
	if m.CountNewSinceFunc != nil {
		return m.CountNewSinceFunc(ctx, since)
	}
	return 0, nil
}

// MockResetCodeLedger implements ResetCodeLedger for testing
type MockResetCodeLedger struct {
	CreateFunc                  func(ctx context.Context, email, code string, expiresAt time.Time) (*models.PasswordResetCode, error)
	ConsumeAndResetPasswordFunc func(ctx context.Context, email, code, passwordHash string) error
}

func (m *MockResetCodeLedger) Create(ctx context.Context, email, code string, expiresAt time.Time) (*models.PasswordResetCode, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, email, code, expiresAt)
	}
	return &models.PasswordResetCode{ID: "code_123", Email: email, Code: code, ExpiresAt: expiresAt, CreatedAt: time.Now()}, nil
}

func (m *MockResetCodeLedger) ConsumeAndResetPassword(ctx context.Context, email, code, passwordHash string) error {
	if m.ConsumeAndResetPasswordFunc != nil {
		return m.ConsumeAndResetPasswordFunc(ctx, email, code, passwordHash)
	}
	return nil
}

// MockEmailSender implements EmailSender for testing
type MockEmailSender struct {
	SendFunc func(ctx context.Context, subject, body string, to []string) error
}

func (m *MockEmailSender) Send(ctx context.Context, subject, body string, to []string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, subject, body, to)
	}
	return nil
}

// MockAddressRepository implements AddressRepository for testing
type MockAddressRepository struct {
	CreateFunc        func(ctx context.Context, addr *models.Address) (*models.Address, error)
	GetByIDFunc       func(ctx context.Context, id string) (*models.Address, error)
	ListByUserIDFunc  func(ctx context.Context, userID string) ([]*models.Address, error)
	ListAllFunc       func(ctx context.Context) ([]*models.Address, error)
	UpdateFunc        func(ctx context.Context, id string, addr *models.Address) (*models.Address, error)
	ExistsForUserFunc func(ctx context.Context, userID string) (bool, error)
}

func (m *MockAddressRepository) Create(ctx context.Context, addr *models.Address) (*models.Address, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, addr)
	}
	addr.ID = "addr_123"
	return addr, nil
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id string) (*models.Address, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, models.ErrNotFound
}

func (m *MockAddressRepository) ListByUserID(ctx context.Context, userID string) ([]*models.Address, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return []*models.Address{}, nil
}

func (m *MockAddressRepository) ListAll(ctx context.Context) ([]*models.Address, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return []*models.Address{}, nil
}

func (m *MockAddressRepository) Update(ctx context.Context, id string, addr *models.Address) (*models.Address, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, addr)
	}
	return nil, models.ErrInternalServer
}

func (m *MockAddressRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	if m.ExistsForUserFunc != nil {
		return m.ExistsForUserFunc(ctx, userID)
	}
	return false, nil
}

// MockTokenIssuer implements TokenIssuer for testing
type MockTokenIssuer struct {
	GenerateAccessTokenFunc  func(user *models.User) (string, error)
	GenerateRefreshTokenFunc func(user *models.User) (string, error)
	ValidateTokenFunc        func(tokenString string) (*models.TokenClaims, error)
}

func (m *MockTokenIssuer) GenerateAccessToken(user *models.User) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(user)
	}
	return "access_token_" + user.ID, nil
}

func (m *MockTokenIssuer) GenerateRefreshToken(user *models.User) (string, error) {
	if m.GenerateRefreshTokenFunc != nil {
		return m.GenerateRefreshTokenFunc(user)
	}
	return "refresh_token_" + user.ID, nil
}

func (m *MockTokenIssuer) ValidateToken(tokenString string) (*models.TokenClaims, error) {
	if m.ValidateTokenFunc != nil {
		return m.ValidateTokenFunc(tokenString)
	}
	return nil, models.ErrUnauthorized
}

// NewTestUser constructs an active standard user for tests
func NewTestUser(id, username, email string) *models.User {
	now := time.Now()
	return &models.User{
		ID:        id,
		Username:  username,
		Email:     email,
		Phone:     "5550100",
		Role:      models.RoleUser,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestAdmin constructs an active admin user for tests
func NewTestAdmin(id, username, email string) *models.User {
	user := NewTestUser(id, username, email)
	user.Role = models.RoleAdmin
	return user
}

// AdminClaims builds admin token claims for tests
func AdminClaims(userID string) *models.TokenClaims {
	return &models.TokenClaims{UserID: userID, Role: models.RoleAdmin, Type: models.TokenTypeAccess}
}

// UserClaims builds standard token claims for tests
func UserClaims(userID string) *models.TokenClaims {
	return &models.TokenClaims{UserID: userID, Role: models.RoleUser, Type: models.TokenTypeAccess}
}
