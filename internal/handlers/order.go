package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/shopme/shopme-backend/internal/logging"
	"github.com/shopme/shopme-backend/internal/middleware/auth"
	"github.com/shopme/shopme-backend/internal/mykafka"
	"github.com/shopme/shopme-backend/internal/service/order"
)

type OrderHandler struct {
	Svc      *order.Service
	Producer *mykafka.Producer
}

func (h *OrderHandler) publish(c echo.Context, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "order_events", fmt.Sprint(event["userID"]), event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

// CreateOrder turns the caller's cart into an order. The caller gets either a
// committed order id or an error with nothing persisted, never anything in
// between.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	userID, err := auth.UserID(c)
	if err != nil {
		l.Warn("create_order_error", "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req struct {
		ShippingAddress string `json:"shipping_address"`
		Phone           string `json:"phone"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	o, err := h.Svc.Checkout(ctx, userID, req.ShippingAddress, req.Phone)
	if err != nil {
		var stockErr *order.InsufficientStockError
		switch {
		case errors.Is(err, order.ErrEmptyCart):
			l.Warn("create_order_error", "status", 400, "reason", "empty cart")
			return echo.NewHTTPError(http.StatusBadRequest, "Cart is empty")
		case errors.As(err, &stockErr):
			l.Warn("create_order_error", "status", 400, "reason", "insufficient stock",
				"product", stockErr.ProductName, "available", stockErr.Available, "requested", stockErr.Requested)
			return echo.NewHTTPError(http.StatusBadRequest, stockErr.Error())
		case errors.Is(err, order.ErrValidation):
			l.Warn("create_order_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("create_order_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	l.Info("create_order_success", "orderID", o.ID, "total", o.TotalAmount)
	h.publish(c, map[string]any{
		"type":    "order_created",
		"userID":  userID,
		"orderID": o.ID,
		"total":   o.TotalAmount,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Order created successfully",
		"order_id": o.ID,
	})
}

func (h *OrderHandler) MyOrders(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	views, err := h.Svc.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, views)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	view, err := h.Svc.GetByID(c.Request().Context(), uint(id), userID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, view)
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	if err := h.Svc.UpdateStatus(ctx, uint(id), req.Status); err != nil {
		switch {
		case errors.Is(err, order.ErrNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "Order not found")
		case errors.Is(err, order.ErrValidation):
			l.Warn("update_status_error", "status", 400, "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		default:
			l.Error("update_status_error", "status", 500, "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Order status updated"})
}

// ListAllOrders is the admin dashboard's order feed.
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	views, err := h.Svc.ListAll(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	return c.JSON(http.StatusOK, views)
}
