package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aronpal/accountd/internal/models"
	"github.com/aronpal/accountd/internal/services"
)

func newAdminHandler(users *MockUserService, authn *MockAuthService, stats *MockAdminService, addresses *MockAddressService) *AdminHandler {
	if users == nil {
		users = &MockUserService{}
	}
	if authn == nil {
		authn = &MockAuthService{}
	}
	if stats == nil {
		stats = &MockAdminService{}
	}
	if addresses == nil {
		addresses = &MockAddressService{}
	}
	return NewAdminHandler(users, authn, stats, addresses)
}

func TestAdminHandler_CreateUser(t *testing.T) {
	body := AdminCreateUserRequest{
		Username: "staff",
		Email:    "staff@example.com",
		Phone:    "5550177",
		Password: "sturdy1password",
		Role:     "admin",
	}

	t.Run("creates with requested role", func(t *testing.T) {
		authn := &MockAuthService{
			RegisterFunc: func(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error) {
				assert.True(t, actingAdmin)
				assert.Equal(t, models.RoleAdmin, input.Role)
				return services.NewTestAdmin("user_new", input.Username, input.Email), nil
			},
		}
		handler := newAdminHandler(nil, authn, nil, nil)

		req := WithAdminContext(NewTestRequest(t, "POST", "/api/admin/users/", body), "admin_1", "root@example.com")
		w := httptest.NewRecorder()
		handler.CreateUser(w, req)

		var resp UserResponse
		AssertJSONResponse(t, w, 201, &resp)
		assert.Equal(t, "admin", resp.Role)
	})

	t.Run("attaches an address to the new account", func(t *testing.T) {
		authn := &MockAuthService{
			RegisterFunc: func(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error) {
				return services.NewTestUser("user_new", input.Username, input.Email), nil
			},
		}
		var gotAddr *models.Address
		addresses := &MockAddressService{
			CreateAddressFunc: func(ctx context.Context, actor *models.TokenClaims, addr *models.Address) (*models.Address, error) {
				gotAddr = addr
				created := *addr
				created.ID = "addr_1"
				return &created, nil
			},
		}
		handler := newAdminHandler(nil, authn, nil, addresses)

		withAddr := body
		withAddr.Role = "user"
		withAddr.Address = &AddressRequest{
			House:    "21B",
			Street:   "Hill Road",
			Area:     "Bandra West",
			District: "Mumbai",
			State:    "Maharashtra",
			Country:  "India",
			Pincode:  "400050",
		}

		req := WithAdminContext(NewTestRequest(t, "POST", "/api/admin/users/", withAddr), "admin_1", "root@example.com")
		w := httptest.NewRecorder()
		handler.CreateUser(w, req)

		var resp UserResponse
		AssertJSONResponse(t, w, 201, &resp)
		assert.NotNil(t, gotAddr)
		assert.Equal(t, "user_new", gotAddr.UserID)
		assert.Equal(t, "400050", gotAddr.Pincode)
	})

	t.Run("incomplete address fails before the account is created", func(t *testing.T) {
		registered := false
		authn := &MockAuthService{
			RegisterFunc: func(ctx context.Context, input services.RegisterInput, actingAdmin bool) (*models.User, error) {
				registered = true
				return services.NewTestUser("user_new", input.Username, input.Email), nil
			},
		}
		handler := newAdminHandler(nil, authn, nil, nil)

		withAddr := body
		withAddr.Address = &AddressRequest{House: "21B"}

		req := WithAdminContext(NewTestRequest(t, "POST", "/api/admin/users/", withAddr), "admin_1", "root@example.com")
		w := httptest.NewRecorder()
		handler.CreateUser(w, req)

		AssertErrorResponse(t, w, 400, "bad_request")
		assert.False(t, registered)
	})

	t.Run("duplicate is a conflict", func(t *testing.T) {
		handler := newAdminHandler(nil, &MockAuthService{}, nil, nil)

		req := WithAdminContext(NewTestRequest(t, "POST", "/api/admin/users/", body), "admin_1", "root@example.com")
		w := httptest.NewRecorder()
		handler.CreateUser(w, req)

		AssertErrorResponse(t, w, 409, "conflict")
	})

	t.Run("invalid role value", func(t *testing.T) {
		handler := newAdminHandler(nil, nil, nil, nil)

		invalid := body
		invalid.Role = "superduper"

		req := WithAdminContext(NewTestRequest(t, "POST", "/api/admin/users/", invalid), "admin_1", "root@example.com")
		w := httptest.NewRecorder()
		handler.CreateUser(w, req)

		AssertErrorResponse(t, w, 400, "bad_request")
	})
}

func TestAdminHandler_UpdateUser(t *testing.T) {
	t.Run("privileged update", func(t *testing.T) {
		var gotUpdate services.AdminUserUpdate
		users := &MockUserService{
			AdminUpdateUserFunc: func(ctx context.Context, id string, update services.AdminUserUpdate) (*models.User, error) {
				assert.Equal(t, "user_2", id)
				gotUpdate = update
				user := services.NewTestUser(id, "bob", "bob@example.com")
				user.IsActive = false
				return user, nil
			},
		}
		handler := newAdminHandler(users, nil, nil, nil)

		inactive := false
		req := WithAdminContext(NewTestRequest(t, "PUT", "/api/admin/users/user_2", AdminUpdateUserRequest{
			IsActive: &inactive,
		}), "admin_1", "root@example.com")
		req = WithChiRouteContext(req, map[string]string{"id": "user_2"})
		w := httptest.NewRecorder()
		handler.UpdateUser(w, req)

		var resp UserResponse
		AssertJSONResponse(t, w, 200, &resp)
		assert.False(t, resp.IsActive)
		assert.NotNil(t, gotUpdate.IsActive)
		assert.False(t, *gotUpdate.IsActive)
	})

	t.Run("unknown target", func(t *testing.T) {
		handler := newAdminHandler(&MockUserService{}, nil, nil, nil)

		req := WithAdminContext(NewTestRequest(t, "PUT", "/api/admin/users/ghost", AdminUpdateUserRequest{
			Username: "newname",
		}), "admin_1", "root@example.com")
		req = WithChiRouteContext(req, map[string]string{"id": "ghost"})
		w := httptest.NewRecorder()
		handler.UpdateUser(w, req)

		AssertErrorResponse(t, w, 404, "not_found")
	})
}

func TestAdminHandler_DeleteUser(t *testing.T) {
	t.Run("deletes another user", func(t *testing.T) {
		var gotActor, gotTarget string
		users := &MockUserService{
			DeleteUserFunc: func(ctx context.Context, actorID, targetID string) error {
				gotActor = actorID
				gotTarget = targetID
				return nil
			},
		}
		handler := newAdminHandler(users, nil, nil, nil)

		req := WithAdminContext(NewTestRequest(t, "DELETE", "/api/admin/users/user_2", nil), "admin_1", "root@example.com")
		req = WithChiRouteContext(req, map[string]string{"id": "user_2"})
		w := httptest.NewRecorder()
		handler.DeleteUser(w, req)

		assert.Equal(t, 204, w.Code)
		assert.Equal(t, "admin_1", gotActor)
		assert.Equal(t, "user_2", gotTarget)
	})

	t.Run("self-deletion is rejected", func(t *testing.T) {
		users := &MockUserService{
			DeleteUserFunc: func(ctx context.Context, actorID, targetID string) error {
				return models.ErrSelfDeletion
			},
		}
		handler := newAdminHandler(users, nil, nil, nil)

		req := WithAdminContext(NewTestRequest(t, "DELETE", "/api/admin/users/admin_1", nil), "admin_1", "root@example.com")
		req = WithChiRouteContext(req, map[string]string{"id": "admin_1"})
		w := httptest.NewRecorder()
		handler.DeleteUser(w, req)

		AssertErrorResponse(t, w, 400, "bad_request")
	})
}

func TestAdminHandler_DashboardStats(t *testing.T) {
	stats := &MockAdminService{
		GetDashboardStatsFunc: func(ctx context.Context) (*services.DashboardStatsResponse, error) {
			return &services.DashboardStatsResponse{
				TotalUsers:    42,
				ActiveUsers:   40,
				InactiveUsers: 2,
				AdminCount:    3,
				NewUsersToday: 5,
			}, nil
		},
	}
	handler := newAdminHandler(nil, nil, stats, nil)

	req := WithAdminContext(NewTestRequest(t, "GET", "/api/admin/stats/", nil), "admin_1", "root@example.com")
	w := httptest.NewRecorder()
	handler.DashboardStats(w, req)

	var resp services.DashboardStatsResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, int64(42), resp.TotalUsers)
	assert.Equal(t, int64(2), resp.InactiveUsers)
	assert.Equal(t, int64(5), resp.NewUsersToday)
}
