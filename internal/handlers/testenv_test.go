package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shopme/shopme-backend/internal/config"
	"github.com/shopme/shopme-backend/internal/middleware/auth"
	"github.com/shopme/shopme-backend/internal/models"
	"github.com/shopme/shopme-backend/internal/service/coupon"
	"github.com/shopme/shopme-backend/internal/service/order"
	"github.com/shopme/shopme-backend/internal/service/search"
)

type testEnv struct {
	T        *testing.T
	E        *echo.Echo
	DB       *gorm.DB
	Verifier *auth.TokenVerifier
	Auth     *AuthHandler
	Products *ProductHandler
	Cart     *CartHandler
	Orders   *OrderHandler
	Wishlist *WishlistHandler
	Reviews  *ReviewHandler
	Coupons  *CouponHandler
	Search   *SearchHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))

	secret := []byte("test-secret")

	env := &testEnv{
		T:        t,
		E:        echo.New(),
		DB:       db,
		Verifier: &auth.TokenVerifier{JWTSecret: secret},
		Auth: &AuthHandler{
			DB:            db,
			JWTSecret:     secret,
			AdminEmail:    "admin@shopme.com",
			AdminPassword: "admin123",
		},
		Products: &ProductHandler{DB: db},
		Cart:     &CartHandler{DB: db},
		Orders:   &OrderHandler{Svc: &order.Service{DB: db}},
		Wishlist: &WishlistHandler{DB: db},
		Reviews:  &ReviewHandler{DB: db},
		Coupons:  &CouponHandler{Svc: &coupon.Service{DB: db}},
		Search:   &SearchHandler{Index: search.Index},
	}
	return env
}

func (env *testEnv) doJSONRequest(method, path string, body interface{}, token string) (*httptest.ResponseRecorder, echo.Context) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := env.E.NewContext(req, rec)
	return rec, c
}

// registerUser creates an account through the register handler and returns
// its bearer token plus the user id.
func registerUser(t *testing.T, env *testEnv, name, email string) (string, uint) {
	t.Helper()

	payload := map[string]string{
		"name":     name,
		"email":    email,
		"password": "password123",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/register", payload, "")
	require.NoError(t, env.Auth.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID uint `json:"id"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User.ID
}

func seedProduct(t *testing.T, env *testEnv, name, price string, stock int) models.Product {
	t.Helper()

	p := models.Product{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Category:      "electronics",
		StockQuantity: stock,
		IsActive:      true,
	}
	require.NoError(t, env.DB.Create(&p).Error)
	return p
}

func adminToken(t *testing.T, env *testEnv) string {
	t.Helper()

	payload := map[string]string{
		"email":    "admin@shopme.com",
		"password": "admin123",
	}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/v1/auth/admin/login", payload, "")
	require.NoError(t, env.Auth.AdminLogin(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}
