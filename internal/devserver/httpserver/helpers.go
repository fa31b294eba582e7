package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/coffee_shop/pkg/middleware/auth"
)

func currentUserID(c echo.Context) (uuid.UUID, error) {
	s, ok := middleware.UserID(c)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, no token")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
	}
	return id, nil
}

func paramID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid id")
	}
	return id, nil
}

func bodyID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}
	return id, nil
}
