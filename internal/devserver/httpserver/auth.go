package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/service"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/transport"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	res, err := h.Svc.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return httpError(err, registerMessage(err))
	}

	l.Info("register_successful", "user_id", res.User.ID)
	return c.JSON(http.StatusCreated, transport.FromUser(res.User, res.Token))
}

func registerMessage(err error) string {
	if isConflict(err) {
		return "User already exists"
	}
	return "Please fill in all fields"
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return httpError(err, "Invalid email or password")
	}

	l.Info("login_successful", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.FromUser(res.User, res.Token))
}

func (h *AuthHTTP) Me(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	u, err := h.Svc.Me(c.Request().Context(), userID)
	if err != nil {
		return httpError(err, "User not found")
	}
	return c.JSON(http.StatusOK, transport.FromUser(u, ""))
}

func (h *AuthHTTP) UpdateUser(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_update_user")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req transport.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	u, err := h.Svc.UpdateProfile(ctx, userID, req.Name, req.Email)
	if err != nil {
		msg := "Name and email are required"
		if isConflict(err) {
			msg = "Email already in use"
		}
		l.Warn("update_user_failed", "error", err)
		return httpError(err, msg)
	}
	return c.JSON(http.StatusOK, transport.FromUser(u, ""))
}

func (h *AuthHTTP) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth_change_password")

	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	var req transport.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	if err := h.Svc.ChangePassword(ctx, userID, req.CurrentPassword, req.NewPassword); err != nil {
		msg := "Current password is incorrect"
		if errors.Is(err, service.ErrValidation) {
			msg = "Current and new password are required"
		}
		l.Warn("change_password_failed", "error", err)
		return httpError(err, msg)
	}
	l.Info("password_changed")
	return c.JSON(http.StatusOK, transport.Message{Message: "Password updated successfully"})
}
