package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotcomico/dotmarket-client/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)
	return client, server
}

func TestClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestClient_AttachesHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode(model.User{ID: 1})
	}))
	client.SetTokenSource(staticToken("abc123"))

	_, err := client.Me(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer abc123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_NoTokenNoAuthHeader(t *testing.T) {
	var gotAuth string
	sawAuth := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		sawAuth = true
		json.NewEncoder(w).Encode([]model.Category{})
	}))
	client.SetTokenSource(staticToken(""))

	_, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	require.True(t, sawAuth)
	assert.Empty(t, gotAuth)
}

func TestClient_DecodesAPIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "name is required",
			"errors":  []map[string]string{{"field": "name", "msg": "name is required"}},
		})
	}))

	_, err := client.GetProduct(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "name is required", apiErr.Message)
	require.Len(t, apiErr.Errors, 1)
	assert.Equal(t, "name", apiErr.Errors[0].Field)
}

func TestClient_UnauthorizedHookFiresOncePerResponse(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	fired := 0
	client.SetUnauthorizedHook(func() { fired++ })

	_, err := client.ListMyOrders(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, fired)

	_, err = client.ListMyOrders(context.Background())
	require.Error(t, err)
	assert.Equal(t, 2, fired)
}

func TestClient_ForbiddenDoesNotFireHook(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))

	fired := 0
	client.SetUnauthorizedHook(func() { fired++ })

	_, err := client.ListUsers(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, fired)
}

func TestClient_ProductFiltersAsQuery(t *testing.T) {
	var gotQuery map[string][]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(model.ProductPage{})
	}))

	_, err := client.ListProducts(context.Background(), &model.ProductFilters{
		Search:   "milk",
		Category: "dairy",
		MinPrice: 1.5,
		Page:     2,
		Limit:    20,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"milk"}, gotQuery["search"])
	assert.Equal(t, []string{"dairy"}, gotQuery["category"])
	assert.Equal(t, []string{"1.5"}, gotQuery["minPrice"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"20"}, gotQuery["limit"])
	assert.NotContains(t, gotQuery, "maxPrice")
}

func TestClient_Login(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var creds LoginCredentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "dana@example.com", creds.Email)

		json.NewEncoder(w).Encode(AuthResponse{
			Token: "tok",
			User:  model.User{ID: 1, Username: "dana", Role: model.RoleCustomer},
		})
	}))

	resp, err := client.Login(context.Background(), LoginCredentials{Email: "dana@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "dana", resp.User.Username)
}

func TestClient_CreateOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders", r.URL.Path)

		var input model.CreateOrderInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Len(t, input.Items, 1)
		assert.Equal(t, 3, input.Items[0].ProductID)

		json.NewEncoder(w).Encode(model.Order{ID: 10, Status: model.OrderStatusPending, TotalAmount: 7.5})
	}))

	order, err := client.CreateOrder(context.Background(), model.CreateOrderInput{
		Items:   []model.OrderItemInput{{ProductID: 3, Quantity: 2}},
		Address: "1 Market St",
	})
	require.NoError(t, err)
	assert.Equal(t, 10, order.ID)
}

func TestClient_UpdateOrderStatusPath(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/5/status", r.URL.Path)

		var payload map[string]model.OrderStatus
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		json.NewEncoder(w).Encode(model.Order{ID: 5, Status: payload["status"]})
	}))

	order, err := client.UpdateOrderStatus(context.Background(), 5, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, order.Status)
}

func TestClient_NetworkErrorWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client, err := NewClient(Config{BaseURL: server.URL})
	require.NoError(t, err)
	server.Close()

	_, err = client.ListCategories(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestClient_MultipartCreateProduct(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Bananas", r.FormValue("name"))
		assert.Equal(t, "1.29", r.FormValue("price"))
		assert.Equal(t, "50", r.FormValue("stock"))

		json.NewEncoder(w).Encode(model.Product{ID: 9, Name: "Bananas"})
	}))

	product, err := client.CreateProduct(context.Background(), ProductInput{
		Name:       "Bananas",
		Price:      1.29,
		Stock:      50,
		CategoryID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 9, product.ID)
}
