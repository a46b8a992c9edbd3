package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/shopme/shopme-backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	token, userID := registerUser(t, env, "Alice", "alice@example.com")
	require.NotEmpty(t, token)
	require.NotZero(t, userID)

	var stored models.User
	require.NoError(t, env.DB.First(&stored, userID).Error)
	require.Equal(t, "alice@example.com", stored.Email)
	require.NotEqual(t, "password123", stored.PasswordHash)

	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	}, "")
	require.NoError(t, env.Auth.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, "alice@example.com", resp.User.Email)
	require.Equal(t, "user", resp.User.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	registerUser(t, env, "Alice", "alice@example.com")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/register", map[string]string{
		"name":     "Other Alice",
		"email":    "alice@example.com",
		"password": "password123",
	}, "")
	err := env.Auth.Register(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
	require.Equal(t, "User already exists", he.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	registerUser(t, env, "Alice", "alice@example.com")

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, "")
	err := env.Auth.Login(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
	require.Equal(t, "Invalid credentials", he.Message)
}

func TestLoginUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "password123",
	}, "")
	err := env.Auth.Login(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAdminLogin(t *testing.T) {
	env := newTestEnv(t)

	token := adminToken(t, env)
	require.NotEmpty(t, token)

	_, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/admin/login", map[string]string{
		"email":    "admin@shopme.com",
		"password": "nope",
	}, "")
	err := env.Auth.AdminLogin(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireLoginRejectsMissingToken(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, "")
	err := env.Verifier.RequireLogin(env.Cart.GetCart)(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireLoginRejectsGarbageToken(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/cart", nil, "not-a-jwt")
	err := env.Verifier.RequireLogin(env.Cart.GetCart)(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusBadRequest, he.Code)
}

func TestAdminOnlyRejectsRegularUser(t *testing.T) {
	env := newTestEnv(t)

	token, _ := registerUser(t, env, "Alice", "alice@example.com")

	_, c := env.doJSONRequest(http.MethodGet, "/api/v1/admin/orders", nil, token)
	err := env.Verifier.AdminOnly(env.Orders.ListAllOrders)(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)
	require.Equal(t, "Admin access required", he.Message)
}
