// Package storefront holds the services behind each storefront screen. They
// keep no state of their own beyond advisory snapshots and read the current
// user from the session.
package storefront

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/coffee_shop/internal/session"
)

// API is the subset of *apiclient.Client the services call.
type API interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
	Put(ctx context.Context, path string, in, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Session is the subset of *session.Controller the services call.
type Session interface {
	User() (session.User, bool)
	UpdateUser(patch session.UserPatch) (session.User, error)
}

func requireUser(s Session) (session.User, error) {
	u, ok := s.User()
	if !ok {
		return session.User{}, ErrNotAuthenticated
	}
	return u, nil
}

func requireAdmin(s Session) error {
	u, err := requireUser(s)
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return ErrForbidden
	}
	return nil
}

func requireID(what, id string) error {
	if id == "" {
		return fmt.Errorf("%s id is required: %w", what, ErrValidation)
	}
	return nil
}
