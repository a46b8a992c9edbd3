package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// TokenVerifier checks the bearer token on protected routes. It is the only
// place token parsing happens: everything behind it trusts the userID and role
// values it puts into the echo context.
type TokenVerifier struct {
	JWTSecret []byte
}

func (t *TokenVerifier) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.parseBearer(c)
		if err != nil {
			return err
		}
		setUserContext(c, claims)
		return next(c)
	}
}

func (t *TokenVerifier) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := t.parseBearer(c)
		if err != nil {
			return err
		}
		if role, _ := claims["role"].(string); role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
		}
		setUserContext(c, claims)
		return next(c)
	}
}

func (t *TokenVerifier) parseBearer(c echo.Context) (jwt.MapClaims, error) {
	raw := strings.TrimPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
	if raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Access denied")
	}

	token, err := jwt.Parse(raw, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", tok.Header["alg"])
		}
		return t.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid token")
	}
	if _, ok := claims["userId"].(float64); !ok {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid token")
	}
	return claims, nil
}
