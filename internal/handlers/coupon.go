package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/shopme/shopme-backend/internal/service/coupon"
)

type CouponHandler struct {
	Svc *coupon.Service
}

func (h *CouponHandler) Validate(c echo.Context) error {
	var req struct {
		Code        string          `json:"code"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code required")
	}

	v, err := h.Svc.Validate(c.Request().Context(), req.Code, req.TotalAmount)
	if err != nil {
		if errors.Is(err, coupon.ErrInvalidCoupon) {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid or expired coupon")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, v)
}

func (h *CouponHandler) Apply(c echo.Context) error {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if req.Code == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "code required")
	}

	if err := h.Svc.Apply(c.Request().Context(), req.Code); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Coupon applied successfully"})
}
