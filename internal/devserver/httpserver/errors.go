package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/service"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
)

// ErrorHandler renders every error as {"message": "..."}.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if s, ok := he.Message.(string); ok {
			msg = s
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, transport.Message{Message: msg})
}

// httpError maps a service error to its status, using msg for the expected
// failures.
func httpError(err error, msg string) *echo.HTTPError {
	switch {
	case errors.Is(err, service.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	case errors.Is(err, service.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, msg).SetInternal(err)
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msg).SetInternal(err)
	case errors.Is(err, service.ErrConflict):
		return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(err)
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error").SetInternal(err)
	}
}

func isConflict(err error) bool {
	return errors.Is(err, service.ErrConflict)
}
