package handlers_test

import (
	"net/http"
	"testing"

	"github.com/mvera/storedash/internal/api/dto"
	"github.com/mvera/storedash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthEndpoints_RegisterLoginRefresh(t *testing.T) {
	s := setupRouter(t)

	var registered dto.AuthResponse

	t.Run("register with store", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register",
			map[string]interface{}{
				"email":      "merchant@example.com",
				"password":   "password123",
				"name":       "Merchant",
				"store_name": "Merchant Store",
			})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusCreated)

		testutil.ParseJSONResponse(t, rr, &registered)
		assert.NotEmpty(t, registered.AccessToken)
		assert.NotEmpty(t, registered.RefreshToken)
		assert.Equal(t, "store_owner", registered.User.Role)
		require.NotNil(t, registered.Store)
		assert.Equal(t, "merchant-store", registered.Store.Slug)
		assert.Equal(t, "pending", registered.Store.Status)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register",
			map[string]interface{}{
				"email":    "merchant@example.com",
				"password": "password123",
				"name":     "Copycat",
			})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("register validates input", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register",
			map[string]interface{}{
				"email":    "not-an-email",
				"password": "password123",
				"name":     "Bad",
			})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("register rejects weak password", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/register",
			map[string]interface{}{
				"email":    "weak@example.com",
				"password": "lettersonly",
				"name":     "Weak",
			})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		assert.Contains(t, rr.Body.String(), "digit")
	})

	t.Run("login returns token pair", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login",
			map[string]interface{}{
				"email":    "merchant@example.com",
				"password": "password123",
			})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/login",
			map[string]interface{}{
				"email":    "merchant@example.com",
				"password": "wrong-password",
			})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("refresh mints a new pair", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/refresh-token",
			map[string]interface{}{"refresh_token": registered.RefreshToken})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp dto.AuthResponse
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("refresh rejects access token", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodPost, "/api/v1/auth/refresh-token",
			map[string]interface{}{"refresh_token": registered.AccessToken})
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestAuthEndpoints_Me(t *testing.T) {
	s := setupRouter(t)

	t.Run("returns identity with store relationships", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/auth/me", nil, s.Token)
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var identity struct {
			UserID      string `json:"user_id"`
			Email       string `json:"email"`
			Role        string `json:"role"`
			OwnedStores []struct {
				ID string `json:"id"`
			} `json:"owned_stores"`
		}
		testutil.ParseJSONResponse(t, rr, &identity)
		assert.Equal(t, s.Owner.ID.String(), identity.UserID)
		assert.Equal(t, s.Owner.Email, identity.Email)
		require.Len(t, identity.OwnedStores, 1)
		assert.Equal(t, s.Store.ID.String(), identity.OwnedStores[0].ID)
	})

	t.Run("requires authentication", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, http.MethodGet, "/api/v1/auth/me", nil)
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}

func TestStoreEndpoints(t *testing.T) {
	s := setupRouter(t)

	t.Run("lists owned stores", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/stores", nil, s.Token)
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var resp struct {
			Owned   []dto.StoreDTO `json:"owned"`
			Staffed []dto.StoreDTO `json:"staffed"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)
		require.Len(t, resp.Owned, 1)
		assert.Equal(t, s.Store.ID.String(), resp.Owned[0].ID)
		assert.Empty(t, resp.Staffed)
	})

	t.Run("updates store but never its slug", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, http.MethodPut, "/api/v1/stores/"+s.Store.ID.String(),
			map[string]interface{}{"name": "Renamed Store"}, s.Token)
		rr := s.do(req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		get := testutil.AuthenticatedRequest(t, http.MethodGet, "/api/v1/stores/"+s.Store.ID.String(), nil, s.Token)
		rr = s.do(get)
		testutil.AssertStatus(t, rr, http.StatusOK)

		var store dto.StoreDTO
		testutil.ParseJSONResponse(t, rr, &store)
		assert.Equal(t, "Renamed Store", store.Name)
		assert.Equal(t, s.Store.Slug, store.Slug)
	})
}
