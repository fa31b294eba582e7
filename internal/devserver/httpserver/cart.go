package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/service"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	items, err := h.Svc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return httpError(err, "")
	}
	return c.JSON(http.StatusOK, transport.FromCart(items))
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add_to_cart")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("add_to_cart_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}
	productID, err := bodyID(req.ProductID)
	if err != nil {
		return err
	}

	items, err := h.Svc.AddToCart(ctx, userID, productID, req.Quantity)
	if err != nil {
		msg := "Quantity must be at least 1"
		if errors.Is(err, service.ErrNotFound) {
			msg = "Product not found"
		}
		l.Warn("add_to_cart_failed", "product_id", productID, "error", err)
		return httpError(err, msg)
	}
	l.Info("item_added", "user_id", userID, "product_id", productID, "quantity", req.Quantity)
	return c.JSON(http.StatusOK, transport.FromCart(items))
}

func (h *CartHTTP) UpdateCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "update_cart")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	var req transport.UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	items, err := h.Svc.UpdateQuantity(ctx, userID, productID, req.Quantity)
	if err != nil {
		msg := "Quantity must be at least 1"
		if errors.Is(err, service.ErrNotFound) {
			msg = "Product not in cart"
		}
		l.Warn("update_cart_failed", "product_id", productID, "error", err)
		return httpError(err, msg)
	}
	return c.JSON(http.StatusOK, transport.FromCart(items))
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	items, err := h.Svc.Remove(c.Request().Context(), userID, productID)
	if err != nil {
		return httpError(err, "Product not in cart")
	}
	return c.JSON(http.StatusOK, transport.FromCart(items))
}
