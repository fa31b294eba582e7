package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"

	contextToken = "user"
)

// BearerAuth checks "Authorization: Bearer <jwt>" access tokens signed with
// JWTSecret.
type BearerAuth struct {
	JWTSecret []byte
}

func NewBearerAuth(secret []byte) *BearerAuth {
	return &BearerAuth{JWTSecret: secret}
}

type ValidatorFunc func(claims *tokens.AccessClaims) error

func (m *BearerAuth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, nil)
}

func (m *BearerAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireAuthWithValidator(next, func(claims *tokens.AccessClaims) error {
		if claims.Role != "admin" {
			return echo.NewHTTPError(http.StatusForbidden, "Not authorized as an admin")
		}
		return nil
	})
}

func (m *BearerAuth) requireAuthWithValidator(next echo.HandlerFunc, validator ValidatorFunc) echo.HandlerFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		SigningKey:    m.JWTSecret,
		SigningMethod: "HS256",
		ContextKey:    contextToken,
		NewClaimsFunc: func(echo.Context) jwt.Claims { return new(tokens.AccessClaims) },
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed").SetInternal(err)
		},
	})

	return parse(func(c echo.Context) error {
		token, ok := c.Get(contextToken).(*jwt.Token)
		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
		}
		claims, ok := token.Claims.(*tokens.AccessClaims)
		if !ok || claims.Subject == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Not authorized, token failed")
		}

		if validator != nil {
			if err := validator(claims); err != nil {
				return err
			}
		}

		setUserContext(c, claims)
		return next(c)
	})
}

func setUserContext(c echo.Context, claims *tokens.AccessClaims) {
	c.Set(ContextUserID, claims.Subject)
	c.Set(ContextRole, claims.Role)
}

// UserID returns the subject set by RequireAuth.
func UserID(c echo.Context) (string, bool) {
	id, ok := c.Get(ContextUserID).(string)
	return id, ok && id != ""
}
