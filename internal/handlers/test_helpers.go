package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/aronpal/accountd/internal/auth"
	"github.com/aronpal/accountd/internal/models"
	"github.com/aronpal/accountd/internal/services"
	pkghttp "github.com/aronpal/accountd/pkg/http"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithAuthContext adds standard user claims to the request context
func WithAuthContext(req *http.Request, userID, email string) *http.Request {
	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   models.RoleUser,
		Type:   models.TokenTypeAccess,
	}
	ctx := context.WithValue(req.Context(), auth.UserContextKey, claims)
	return req.WithContext(ctx)
}

// WithAdminContext adds admin claims to the request context
func WithAdminContext(req *http.Request, userID, email string) *http.Request {
	claims := &models.TokenClaims{
		UserID: userID,
		Email:  email,
		Role:   models.RoleAdmin,
		Type:   models.TokenTypeAccess,
	}
	ctx := context.WithValue(req.Context(), auth.UserContextKey, claims)
	return req.WithContext(ctx)
}

// WithChiRouteContext adds chi URL parameters to the request context
func WithChiRouteContext(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AssertJSONResponse checks the status code and decodes the JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks the status code and the standard error body
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.Equal(t, expectedError, resp.Error, "Error code mismatch")
	assert.NotEmpty(t, resp.Message, "Error message should not be empty")
}

// AssertDetailResponse checks the status code and the single-field detail body
func AssertDetailResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedDetail string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode detail response")
	assert.Equal(t, expectedDetail, resp["detail"])
}

// MockAuthService implements AuthServiceInterface for testing
type MockAuthService struct {
	LoginFunc    func(ctx context.Context, identifier, password string) (*services.LoginResponse, error)
	RefreshFunc  func(ctx context.Context, refreshToken string) (string, error)
	RegisterFunc func(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*services.LoginResponse, error) {
	if m.LoginFunc == nil {
		return nil, models.ErrUnauthorized
	}
	return m.LoginFunc(ctx, identifier, password)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc == nil {
		return "", models.ErrUnauthorized
	}
	return m.RefreshFunc(ctx, refreshToken)
}

func (m *MockAuthService) Register(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error) {
	if m.RegisterFunc == nil {
		return nil, models.ErrConflict
	}
	return m.RegisterFunc(ctx, input, actingAdmin)
}

// MockUserService implements UserServiceInterface for testing
type MockUserService struct {
	GetUserByIDFunc     func(ctx context.Context, id string) (*models.User, error)
	ListUsersFunc       func(ctx context.Context, actor *models.TokenClaims, limit, offset int) ([]*models.User, error)
	UpdateProfileFunc   func(ctx context.Context, userID string, update services.ProfileUpdate) (*models.User, error)
	AdminUpdateUserFunc func(ctx context.Context, id string, update services.AdminUserUpdate) (*models.User, error)
	DeleteUserFunc      func(ctx context.Context, actorID, targetID string) error
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.GetUserByIDFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetUserByIDFunc(ctx, id)
}

func (m *MockUserService) ListUsers(ctx context.Context, actor *models.TokenClaims, limit, offset int) ([]*models.User, error) {
	if m.ListUsersFunc == nil {
		return []*models.User{}, nil
	}
	return m.ListUsersFunc(ctx, actor, limit, offset)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, update services.ProfileUpdate) (*models.User, error) {
	if m.UpdateProfileFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateProfileFunc(ctx, userID, update)
}

func (m *MockUserService) AdminUpdateUser(ctx context.Context, id string, update services.AdminUserUpdate) (*models.User, error) {
	if m.AdminUpdateUserFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.AdminUpdateUserFunc(ctx, id, update)
}

func (m *MockUserService) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if m.DeleteUserFunc == nil {
		return nil
	}
	return m.DeleteUserFunc(ctx, actorID, targetID)
}

// MockPasswordResetService implements PasswordResetServiceInterface for testing
type MockPasswordResetService struct {
	RequestCodeFunc    func(ctx context.Context, email string) error
	VerifyAndResetFunc func(ctx context.Context, email, code, newPassword, confirmPassword string) error
}

func (m *MockPasswordResetService) RequestCode(ctx context.Context, email string) error {
	if m.RequestCodeFunc == nil {
		return nil
	}
	return m.RequestCodeFunc(ctx, email)
}

func (m *MockPasswordResetService) VerifyAndReset(ctx context.Context, email, code, newPassword, confirmPassword string) error {
	if m.VerifyAndResetFunc == nil {
		return nil
	}
	return m.VerifyAndResetFunc(ctx, email, code, newPassword, confirmPassword)
}

// MockAddressService implements AddressServiceInterface for testing
type MockAddressService struct {
	CreateAddressFunc func(ctx context.Context, actor *models.TokenClaims, addr *models.Address) (*models.Address, error)
	ListAddressesFunc func(ctx context.Context, actor *models.TokenClaims, filterUserID string) ([]*models.Address, error)
	GetAddressFunc    func(ctx context.Context, actor *models.TokenClaims, id string) (*models.Address, error)
	UpdateAddressFunc func(ctx context.Context, actor *models.TokenClaims, id string, fields *models.Address) (*models.Address, error)
	HasAddressFunc    func(ctx context.Context, userID string) (bool, error)
}

func (m *MockAddressService) CreateAddress(ctx context.Context, actor *models.TokenClaims, addr *models.Address) (*models.Address, error) {
	if m.CreateAddressFunc == nil {
		return nil, models.ErrInternalServer
	}
	return m.CreateAddressFunc(ctx, actor, addr)
}

func (m *MockAddressService) ListAddresses(ctx context.Context, actor *models.TokenClaims, filterUserID string) ([]*models.Address, error) {
	if m.ListAddressesFunc == nil {
		return []*models.Address{}, nil
	}
	return m.ListAddressesFunc(ctx, actor, filterUserID)
}

func (m *MockAddressService) GetAddress(ctx context.Context, actor *models.TokenClaims, id string) (*models.Address, error) {
	if m.GetAddressFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.GetAddressFunc(ctx, actor, id)
}

func (m *MockAddressService) UpdateAddress(ctx context.Context, actor *models.TokenClaims, id string, fields *models.Address) (*models.Address, error) {
	if m.UpdateAddressFunc == nil {
		return nil, models.ErrNotFound
	}
	return m.UpdateAddressFunc(ctx, actor, id, fields)
}

func (m *MockAddressService) HasAddress(ctx context.Context, userID string) (bool, error) {
	if m.HasAddressFunc == nil {
		return false, nil
	}
	return m.HasAddressFunc(ctx, userID)
}

// MockAdminService implements AdminServiceInterface for testing
type MockAdminService struct {
	GetDashboardStatsFunc func(ctx context.Context) (*services.DashboardStatsResponse, error)
}

func (m *MockAdminService) GetDashboardStats(ctx context.Context) (*services.DashboardStatsResponse, error) {
	if m.GetDashboardStatsFunc == nil {
		return &services.DashboardStatsResponse{}, nil
	}
	return m.GetDashboardStatsFunc(ctx)
}
