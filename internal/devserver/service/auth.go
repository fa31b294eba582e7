package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/models"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
	"github.com/Skotchmaster/coffee_shop/internal/events"
	pkg_hash "github.com/Skotchmaster/coffee_shop/pkg/hash"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Events    events.Publisher
}

type AuthResult struct {
	User  *models.User
	Token string
}

func (s *AuthService) issue(u *models.User) (*AuthResult, error) {
	token, _, err := tokens.CreateAccessToken(s.JWTSecret, u.ID.String(), u.Role, s.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{User: u, Token: token}, nil
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("name, email and password are required: %w", ErrValidation)
	}

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 400, "reason", "user already exist")
			return nil, fmt.Errorf("user already exists: %w", ErrConflict)
		}
		l.Error("register_error", "status", 500, "error", err)
		return nil, err
	}

	s.publish(ctx, events.TopicUserEvents, user.ID.String(), events.UserRegistered{
		Type:   events.TypeUserRegistered,
		UserID: user.ID.String(),
		Email:  user.Email,
	})

	return s.issue(&user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "email", email)

	user, err := s.Repo.UserExist(ctx, email, password)
	if err != nil {
		if errors.Is(err, repo.ErrInvalidCredentials) {
			l.Warn("login_failed", "status", 401, "reason", "invalid email or password")
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, err
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	u, err := s.Repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return u, err
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, name, email string) (*models.User, error) {
	name, email = strings.TrimSpace(name), strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil, fmt.Errorf("name and email are required: %w", ErrValidation)
	}

	u, err := s.Repo.UpdateProfile(ctx, userID, name, email)
	switch {
	case errors.Is(err, repo.ErrUserAlreadyExist):
		return nil, fmt.Errorf("email already in use: %w", ErrConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("user not found: %w", ErrNotFound)
	}
	return u, err
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if current == "" || next == "" {
		return fmt.Errorf("current and new password are required: %w", ErrValidation)
	}
	u, err := s.Me(ctx, userID)
	if err != nil {
		return err
	}
	if !pkg_hash.CheckPassword(u.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	pwHash, err := pkg_hash.HashPassword(next)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePasswordHash(ctx, userID, pwHash)
}

// SeedAdmin creates the admin account when it does not exist yet.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.seed_admin", "email", email)

	pwHash, err := pkg_hash.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{Name: "Admin", Email: email, PasswordHash: pwHash, Role: models.RoleAdmin}
	err = s.Repo.CreateUserIfNotExists(ctx, &admin)
	if errors.Is(err, repo.ErrUserAlreadyExist) {
		l.Info("admin_exists")
		return nil
	}
	if err != nil {
		return err
	}
	l.Info("admin_created", "user_id", admin.ID)
	return nil
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event any) {
	publish(ctx, s.Events, topic, key, event)
}

// publish never fails the request; a lost event is only logged.
func publish(ctx context.Context, p events.Publisher, topic, key string, event any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", topic, "key", key, "error", err)
	}
}
