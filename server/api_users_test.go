package orderserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_Success(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/api/users", "", map[string]any{
		"name": "Alice", "email": "Alice@Example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "alice@example.com", body["email"])
	assert.NotZero(t, body["id"])
	assert.Equal(t, false, body["isAdmin"])
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	payload := map[string]any{"name": "Alice", "email": "alice@example.com", "password": "secret1"}
	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/users", "", payload).Code)

	w := srv.do(http.MethodPost, "/api/users", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUser_WeakPassword(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodPost, "/api/users", "", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginUser_ReturnsToken(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/users", "", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "secret1",
	}).Code)

	w := srv.do(http.MethodPost, "/api/users/login", "", map[string]any{
		"email": "alice@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	profile := srv.do(http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, profile.Code)
	var profileBody map[string]any
	require.NoError(t, json.Unmarshal(profile.Body.Bytes(), &profileBody))
	assert.Equal(t, "Alice", profileBody["name"])
}

func TestLoginUser_WrongPassword(t *testing.T) {
	srv := newTestServer(t)

	require.Equal(t, http.StatusCreated, srv.do(http.MethodPost, "/api/users", "", map[string]any{
		"name": "Alice", "email": "alice@example.com", "password": "secret1",
	}).Code)

	w := srv.do(http.MethodPost, "/api/users/login", "", map[string]any{
		"email": "alice@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetUserProfile_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutUser(t *testing.T) {
	srv := newTestServer(t)
	_, token := srv.registerAndLogin(t, "Alice", "alice@example.com", false)

	w := srv.do(http.MethodPost, "/api/users/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
