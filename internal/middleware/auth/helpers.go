package auth

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

func setUserContext(c echo.Context, claims jwt.MapClaims) {
	c.Set("userID", uint(claims["userId"].(float64)))
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	} else {
		c.Set("role", "user")
	}
}

// UserID returns the authenticated user id placed into the context by
// RequireLogin / AdminOnly.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, errors.New("unauthorized")
	}
	return id, nil
}

func Role(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
