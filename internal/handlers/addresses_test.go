package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aronpal/accountd/internal/models"
)

func testAddressRequest() AddressRequest {
	return AddressRequest{
		House:    "12B",
		Street:   "Hill Road",
		Area:     "Bandra West",
		District: "Mumbai Suburban",
		State:    "Maharashtra",
		Country:  "India",
		Pincode:  "400050",
	}
}

func TestAddressHandler_CreateAddress(t *testing.T) {
	t.Run("creates for the caller", func(t *testing.T) {
		service := &MockAddressService{
			CreateAddressFunc: func(ctx context.Context, actor *models.TokenClaims, addr *models.Address) (*models.Address, error) {
				assert.Equal(t, "user_1", actor.UserID)
				addr.ID = "addr_1"
				addr.UserID = actor.UserID
				return addr, nil
			},
		}
		handler := NewAddressHandler(service)

		req := WithAuthContext(NewTestRequest(t, "POST", "/api/addresses", testAddressRequest()), "user_1", "alice@example.com")
		w := httptest.NewRecorder()
		handler.CreateAddress(w, req)

		var resp AddressResponse
		AssertJSONResponse(t, w, 201, &resp)
		assert.Equal(t, "addr_1", resp.ID)
		assert.Equal(t, "user_1", resp.UserID)
		assert.Equal(t, "400050", resp.Pincode)
	})

	t.Run("missing required field", func(t *testing.T) {
		handler := NewAddressHandler(&MockAddressService{})

		incomplete := testAddressRequest()
		incomplete.Pincode = ""

		req := WithAuthContext(NewTestRequest(t, "POST", "/api/addresses", incomplete), "user_1", "alice@example.com")
		w := httptest.NewRecorder()
		handler.CreateAddress(w, req)

		AssertErrorResponse(t, w, 400, "bad_request")
	})

	t.Run("no claims", func(t *testing.T) {
		handler := NewAddressHandler(&MockAddressService{})

		req := NewTestRequest(t, "POST", "/api/addresses", testAddressRequest())
		w := httptest.NewRecorder()
		handler.CreateAddress(w, req)

		AssertErrorResponse(t, w, 401, "unauthorized")
	})
}

func TestAddressHandler_ListAddresses(t *testing.T) {
	t.Run("forwards the admin owner filter", func(t *testing.T) {
		var gotFilter string
		service := &MockAddressService{
			ListAddressesFunc: func(ctx context.Context, actor *models.TokenClaims, filterUserID string) ([]*models.Address, error) {
				gotFilter = filterUserID
				return []*models.Address{{ID: "addr_1", UserID: "user_2"}}, nil
			},
		}
		handler := NewAddressHandler(service)

		req := WithAdminContext(NewTestRequest(t, "GET", "/api/addresses?user=user_2", nil), "admin_1", "root@example.com")
		w := httptest.NewRecorder()
		handler.ListAddresses(w, req)

		var resp []*AddressResponse
		AssertJSONResponse(t, w, 200, &resp)
		assert.Len(t, resp, 1)
		assert.Equal(t, "user_2", gotFilter)
	})

	t.Run("empty list encodes as an array", func(t *testing.T) {
		handler := NewAddressHandler(&MockAddressService{})

		req := WithAuthContext(NewTestRequest(t, "GET", "/api/addresses", nil), "user_1", "alice@example.com")
		w := httptest.NewRecorder()
		handler.ListAddresses(w, req)

		assert.Equal(t, 200, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})
}

func TestAddressHandler_GetAddress(t *testing.T) {
	t.Run("forbidden for non-owner", func(t *testing.T) {
		service := &MockAddressService{
			GetAddressFunc: func(ctx context.Context, actor *models.TokenClaims, id string) (*models.Address, error) {
				return nil, models.ErrForbidden
			},
		}
		handler := NewAddressHandler(service)

		req := WithAuthContext(NewTestRequest(t, "GET", "/api/addresses/addr_1", nil), "user_2", "bob@example.com")
		req = WithChiRouteContext(req, map[string]string{"id": "addr_1"})
		w := httptest.NewRecorder()
		handler.GetAddress(w, req)

		AssertErrorResponse(t, w, 403, "forbidden")
	})

	t.Run("not found", func(t *testing.T) {
		handler := NewAddressHandler(&MockAddressService{})

		req := WithAuthContext(NewTestRequest(t, "GET", "/api/addresses/ghost", nil), "user_1", "alice@example.com")
		req = WithChiRouteContext(req, map[string]string{"id": "ghost"})
		w := httptest.NewRecorder()
		handler.GetAddress(w, req)

		AssertErrorResponse(t, w, 404, "not_found")
	})
}

func TestAddressHandler_UpdateAddress(t *testing.T) {
	service := &MockAddressService{
		UpdateAddressFunc: func(ctx context.Context, actor *models.TokenClaims, id string, fields *models.Address) (*models.Address, error) {
			assert.Equal(t, "addr_1", id)
			fields.ID = id
			fields.UserID = actor.UserID
			return fields, nil
		},
	}
	handler := NewAddressHandler(service)

	updated := testAddressRequest()
	updated.Street = "Linking Road"

	req := WithAuthContext(NewTestRequest(t, "PUT", "/api/addresses/addr_1", updated), "user_1", "alice@example.com")
	req = WithChiRouteContext(req, map[string]string{"id": "addr_1"})
	w := httptest.NewRecorder()
	handler.UpdateAddress(w, req)

	var resp AddressResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "Linking Road", resp.Street)
}

func TestAddressHandler_CheckAddress(t *testing.T) {
	service := &MockAddressService{
		HasAddressFunc: func(ctx context.Context, userID string) (bool, error) {
			return userID == "user_1", nil
		},
	}
	handler := NewAddressHandler(service)

	req := WithAuthContext(NewTestRequest(t, "GET", "/api/addresses/check", nil), "user_1", "alice@example.com")
	w := httptest.NewRecorder()
	handler.CheckAddress(w, req)

	var resp CheckAddressResponse
	AssertJSONResponse(t, w, 200, &resp)
	assert.True(t, resp.HasAddress)
}
