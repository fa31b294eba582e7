package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/service"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type FavoriteHTTP struct {
	Svc *service.FavoriteService
}

func (h *FavoriteHTTP) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	favs, err := h.Svc.List(c.Request().Context(), userID)
	if err != nil {
		return httpError(err, "")
	}
	return c.JSON(http.StatusOK, transport.FromFavorites(favs))
}

// Add answers with the new favorite and its product populated.
func (h *FavoriteHTTP) Add(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "add_favorite")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req transport.FavoriteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}
	productID, err := bodyID(req.ProductID)
	if err != nil {
		return err
	}

	fav, err := h.Svc.Add(ctx, userID, productID)
	if err != nil {
		msg := "Product not found"
		if errors.Is(err, service.ErrConflict) {
			msg = "Product already in favorites"
		}
		l.Warn("add_favorite_failed", "product_id", productID, "error", err)
		return httpError(err, msg)
	}
	return c.JSON(http.StatusCreated, transport.FromFavorite(fav))
}

func (h *FavoriteHTTP) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := paramID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.Svc.Remove(c.Request().Context(), userID, productID); err != nil {
		return httpError(err, "Favorite not found")
	}
	return c.JSON(http.StatusOK, transport.Message{Message: "Removed from favorites"})
}
