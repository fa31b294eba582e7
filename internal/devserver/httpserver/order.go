package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/service"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "create_order")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req transport.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_order_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	order, err := h.Svc.CreateOrder(ctx, userID, req)
	if err != nil {
		msg := "No order items"
		if errors.Is(err, service.ErrNotFound) {
			msg = "Product not found"
		}
		return httpError(err, msg)
	}
	return c.JSON(http.StatusCreated, transport.FromOrder(order))
}

func (h *OrderHTTP) MyOrders(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orders, err := h.Svc.MyOrders(c.Request().Context(), userID)
	if err != nil {
		return httpError(err, "")
	}
	return c.JSON(http.StatusOK, transport.FromOrders(orders))
}
