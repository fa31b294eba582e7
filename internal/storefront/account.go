package storefront

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/coffee_shop/internal/session"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

// Account backs the profile screens.
type Account struct {
	api     API
	session Session
}

func NewAccount(api API, s Session) *Account {
	return &Account{api: api, session: s}
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile sends the new fields and merges whatever the server echoes
// back into the session user.
func (a *Account) UpdateProfile(ctx context.Context, name, email string) (session.User, error) {
	if _, err := requireUser(a.session); err != nil {
		return session.User{}, err
	}
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return session.User{}, fmt.Errorf("name and email are required: %w", ErrValidation)
	}

	var patch session.UserPatch
	if err := a.api.Put(ctx, "/auth/updateUser", updateProfileRequest{Name: name, Email: email}, &patch); err != nil {
		logging.FromContext(ctx).With("svc", "account.update_profile").Warn("update_profile_failed", "error", err)
		return session.User{}, fmt.Errorf("update profile: %w", err)
	}
	return a.session.UpdateUser(patch)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (a *Account) ChangePassword(ctx context.Context, current, next, confirm string) error {
	if _, err := requireUser(a.session); err != nil {
		return err
	}
	if current == "" || next == "" {
		return fmt.Errorf("current and new password are required: %w", ErrValidation)
	}
	if next != confirm {
		return ErrPasswordMismatch
	}

	if err := a.api.Put(ctx, "/auth/changePassword", changePasswordRequest{CurrentPassword: current, NewPassword: next}, nil); err != nil {
		logging.FromContext(ctx).With("svc", "account.change_password").Warn("change_password_failed", "error", err)
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}
