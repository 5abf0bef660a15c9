package orderserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdirectory "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/directory"
	ordersmemory "github.com/Apurer/go-gin-order-api/internal/domains/orders/adapters/memory"
	ordersapp "github.com/Apurer/go-gin-order-api/internal/domains/orders/application"
	usersmemory "github.com/Apurer/go-gin-order-api/internal/domains/users/adapters/memory"
	usersapp "github.com/Apurer/go-gin-order-api/internal/domains/users/application"
	"github.com/Apurer/go-gin-order-api/internal/platform/auth"
)

type testServer struct {
	router   *gin.Engine
	users    *usersapp.Service
	userRepo *usersmemory.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewManager("test-secret", time.Hour)
	userRepo := usersmemory.NewRepository()
	userService := usersapp.NewService(userRepo, usersmemory.NewSessionStore(), tokens)
	orderService := ordersapp.NewService(ordersmemory.NewRepository(), ordersdirectory.New(userRepo))

	handlers := ApiHandleFunctions{
		OrdersAPI: NewOrdersAPI(orderService),
		UsersAPI:  NewUsersAPI(userService),
	}
	router := NewRouterWithGinEngine(gin.New(), handlers, NewAuthGuard(tokens))
	return &testServer{router: router, users: userService, userRepo: userRepo}
}

// registerAndLogin creates an account and returns its id and bearer token.
func (s *testServer) registerAndLogin(t *testing.T, name, email string, admin bool) (int64, string) {
	t.Helper()
	user, err := s.users.Register(context.Background(), name, email, "secret1")
	require.NoError(t, err)
	if admin {
		user.IsAdmin = true
		_, err = s.userRepo.Save(context.Background(), user)
		require.NoError(t, err)
	}
	_, token, err := s.users.Login(context.Background(), email, "secret1")
	require.NoError(t, err)
	return user.ID, token
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func createOrderPayload() map[string]any {
	return map[string]any{
		"orderItems": []map[string]any{
			{"product": "prod-1", "name": "Widget", "qty": 2, "price": 10.00},
			{"product": "prod-2", "name": "Gadget", "qty": 1, "price": 17.50},
		},
		"shippingAddress": map[string]any{
			"address": "1 Main St", "city": "Metropolis", "postalCode": "12345", "country": "US",
		},
		"paymentMethod": "PayPal",
		"itemsPrice":    37.50,
		"taxPrice":      3.00,
		"shippingPrice": 2.00,
		"totalPrice":    42.50,
	}
}

func decodeOrder(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateOrder_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/api/orders", "", createOrderPayload())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateOrder_Success(t *testing.T) {
	srv := newTestServer(t)
	userID, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)

	w := srv.do(http.MethodPost, "/api/orders", token, createOrderPayload())
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeOrder(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, float64(userID), body["user"])
	assert.Equal(t, false, body["isPaid"])
	assert.Equal(t, false, body["isDelivered"])
	assert.Equal(t, 42.50, body["totalPrice"])
	assert.Len(t, body["orderItems"], 2)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)

	payload := createOrderPayload()
	payload["orderItems"] = []map[string]any{}
	w := srv.do(http.MethodPost, "/api/orders", token, payload)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	list := srv.do(http.MethodGet, "/api/orders/myorders", token, nil)
	require.Equal(t, http.StatusOK, list.Code)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestGetOrderById_ResolvesOwner(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)

	created := srv.do(http.MethodPost, "/api/orders", token, createOrderPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	orderID := decodeOrder(t, created)["id"].(string)

	w := srv.do(http.MethodGet, "/api/orders/"+orderID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeOrder(t, w)
	owner, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", owner["name"])
	assert.Equal(t, "alice@example.com", owner["email"])
}

func TestGetOrderById_NotFound(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)

	w := srv.do(http.MethodGet, "/api/orders/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderToPaid_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)

	created := srv.do(http.MethodPost, "/api/orders", token, createOrderPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	orderID := decodeOrder(t, created)["id"].(string)

	confirmation := map[string]any{
		"id":          "PAY1",
		"status":      "COMPLETED",
		"update_time": "2024-03-01T10:00:00Z",
		"payer":       map[string]any{"email_address": "alice@example.com"},
	}
	paid := srv.do(http.MethodPut, fmt.Sprintf("/api/orders/%s/pay", orderID), token, confirmation)
	require.Equal(t, http.StatusOK, paid.Code)

	body := decodeOrder(t, paid)
	assert.Equal(t, true, body["isPaid"])
	assert.NotEmpty(t, body["paidAt"])
	result, ok := body["paymentResult"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "PAY1", result["id"])
	assert.Equal(t, "COMPLETED", result["status"])

	reloaded := srv.do(http.MethodGet, "/api/orders/"+orderID, token, nil)
	require.Equal(t, http.StatusOK, reloaded.Code)
	reloadedBody := decodeOrder(t, reloaded)
	assert.Equal(t, true, reloadedBody["isPaid"])
	assert.Equal(t, false, reloadedBody["isDelivered"])
}

func TestUpdateOrderToPaid_NotFound(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)

	w := srv.do(http.MethodPut, "/api/orders/missing/pay", token, map[string]any{"id": "PAY1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOrderToDelivered_AdminOnly(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)
	_, adminToken := srv.registerAndLogin(t, "Root", "root@example.com", true)

	created := srv.do(http.MethodPost, "/api/orders", token, createOrderPayload())
	require.Equal(t, http.StatusCreated, created.Code)
	orderID := decodeOrder(t, created)["id"].(string)

	denied := srv.do(http.MethodPut, fmt.Sprintf("/api/orders/%s/deliver", orderID), token, nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)

	delivered := srv.do(http.MethodPut, fmt.Sprintf("/api/orders/%s/deliver", orderID), adminToken, nil)
	require.Equal(t, http.StatusOK, delivered.Code)
	body := decodeOrder(t, delivered)
	assert.Equal(t, true, body["isDelivered"])
	assert.Equal(t, false, body["isPaid"])
}

func TestGetMyOrders_FiltersCaller(t *testing.T) {
	srv := newTestServer(t)
	_, aliceToken := srv.registerAndLogin(t, "Alice", "alice@example.com", false)
	_, bobToken := srv.registerAndLogin(t, "Bob", "bob@example.com", false)

	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/orders", aliceToken, createOrderPayload()).Code)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/orders", aliceToken, createOrderPayload()).Code)
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/orders", bobToken, createOrderPayload()).Code)

	w := srv.do(http.MethodGet, "/api/orders/myorders", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 2)
}

func TestGetOrders_AdminListsAll(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)
	_, adminToken := srv.registerAndLogin(t, "Root", "root@example.com", true)

	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/orders", token, createOrderPayload()).Code)

	denied := srv.do(http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusForbidden, denied.Code)

	w := srv.do(http.MethodGet, "/api/orders", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(t, all, 1)
	owner, ok := all[0]["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", owner["name"])
	_, hasEmail := owner["email"]
	assert.False(t, hasEmail)
}
