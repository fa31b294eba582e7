package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/coffee_shop/internal/notice"
	"github.com/Skotchmaster/coffee_shop/pkg/kvstore"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
	"github.com/Skotchmaster/coffee_shop/pkg/tokens"
)

// TokenKey is the store key the bearer token is persisted under.
const TokenKey = "userToken"

var (
	ErrValidation       = errors.New("validation")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrMissingToken     = errors.New("response carried no token")
)

// Transport is the part of the API client the controller drives.
type Transport interface {
	SetToken(token string)
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, in, out any) error
}

// Controller owns the current user and is the only writer of both token
// copies: the transport's and the persisted one. While a user is set both
// copies hold its token; while it is nil both are cleared.
type Controller struct {
	api      Transport
	store    kvstore.Store
	notifier notice.Notifier
	log      *slog.Logger
	now      func() time.Time

	// opMu serializes transitions; mu guards the fields below and is never
	// held across I/O.
	opMu sync.Mutex

	mu    sync.RWMutex
	state State
	user  *User

	ready     chan struct{}
	readyOnce sync.Once
}

type Option func(*Controller)

func WithNotifier(n notice.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func New(api Transport, store kvstore.Store, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		store:    store,
		notifier: notice.Discard{},
		now:      time.Now,
		state:    Restoring,
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) logger(ctx context.Context) *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return logging.FromContext(ctx)
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) User() (User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return User{}, false
	}
	return *c.user, true
}

func (c *Controller) IsAdmin() bool {
	u, ok := c.User()
	return ok && u.IsAdmin()
}

// Loading is true until the startup restore has finished.
func (c *Controller) Loading() bool {
	select {
	case <-c.ready:
		return false
	default:
		return true
	}
}

// Ready is closed once the startup restore has finished, whatever its outcome.
func (c *Controller) Ready() <-chan struct{} {
	return c.ready
}

func (c *Controller) finishRestore() {
	c.readyOnce.Do(func() { close(c.ready) })
}

// Restore runs the startup transition out of Restoring. A persisted token is
// applied to the transport and checked against /auth/me. Any failure ends
// anonymous with both token copies cleared. Calling it again after startup is
// a no-op.
func (c *Controller) Restore(ctx context.Context) State {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	defer c.finishRestore()

	if st := c.State(); st != Restoring {
		return st
	}
	l := c.logger(ctx).With("svc", "session.restore")

	token, err := c.store.Get(ctx, TokenKey)
	if errors.Is(err, kvstore.ErrNotFound) || (err == nil && token == "") {
		c.becomeAnonymous()
		l.Info("restore_anonymous", "reason", "no stored token")
		return Anonymous
	}
	if err != nil {
		c.becomeAnonymous()
		l.Error("restore_failed", "reason", "cannot read stored token", "error", err)
		return Anonymous
	}

	if tokens.Expired(token, c.now()) {
		c.becomeAnonymous()
		c.forgetToken(ctx, l)
		l.Info("restore_anonymous", "reason", "stored token expired")
		return Anonymous
	}

	c.api.SetToken(token)
	var u User
	if err := c.api.Get(ctx, "/auth/me", &u); err != nil {
		c.becomeAnonymous()
		c.forgetToken(ctx, l)
		l.Warn("restore_failed", "reason", "cannot fetch profile", "error", err)
		return Anonymous
	}

	u.Token = token
	c.setUser(u)
	l.Info("restore_authenticated", "user_id", u.ID)
	return Authenticated
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. On failure the state is left as
// it was and the transport error is returned wrapped.
func (c *Controller) Login(ctx context.Context, email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, fmt.Errorf("email and password are required: %w", ErrValidation)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()
	l := c.logger(ctx).With("svc", "session.login", "email", email)

	var u User
	if err := c.api.Post(ctx, "/auth/login", credentials{Email: email, Password: password}, &u); err != nil {
		l.Warn("login_failed", "error", err)
		return User{}, fmt.Errorf("login: %w", err)
	}

	if err := c.adopt(ctx, u); err != nil {
		l.Error("login_failed", "reason", "cannot adopt session", "error", err)
		return User{}, err
	}
	l.Info("login_successful", "user_id", u.ID)
	return u, nil
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and signs straight into it.
func (c *Controller) Register(ctx context.Context, in RegisterInput) (User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return User{}, fmt.Errorf("name, email and password are required: %w", ErrValidation)
	}

	c.opMu.Lock()
	defer c.opMu.Unlock()
	l := c.logger(ctx).With("svc", "session.register", "email", in.Email)

	var u User
	if err := c.api.Post(ctx, "/auth/register", in, &u); err != nil {
		l.Warn("register_failed", "error", err)
		return User{}, fmt.Errorf("register: %w", err)
	}

	if err := c.adopt(ctx, u); err != nil {
		l.Error("register_failed", "reason", "cannot adopt session", "error", err)
		return User{}, err
	}
	l.Info("register_successful", "user_id", u.ID)
	return u, nil
}

// adopt persists first so a store failure leaves the state untouched.
func (c *Controller) adopt(ctx context.Context, u User) error {
	if u.Token == "" {
		return ErrMissingToken
	}
	if err := c.store.Set(ctx, TokenKey, u.Token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	c.api.SetToken(u.Token)
	c.setUser(u)
	c.finishRestore()
	return nil
}

// Logout always ends anonymous. The local transition happens first; a store
// failure is reported as a notice, never returned.
func (c *Controller) Logout(ctx context.Context) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	l := c.logger(ctx).With("svc", "session.logout")

	c.becomeAnonymous()
	c.finishRestore()

	if err := c.store.Remove(ctx, TokenKey); err != nil {
		l.Error("logout_failed", "reason", "cannot remove stored token", "error", err)
		c.notifier.Notify(ctx, notice.FromError("Logout failed", err, "Could not log out. Please try again later."))
		return
	}

	l.Info("successful_logout")
	c.notifier.Notify(ctx, notice.Success("Logged out", "You have been logged out."))
}

// UpdateUser shallow-merges patch into the current user. It does not talk to
// the backend; callers pass in what the server already accepted.
func (c *Controller) UpdateUser(patch UserPatch) (User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return User{}, ErrNotAuthenticated
	}
	merged := c.user.Merge(patch)
	c.user = &merged
	return merged, nil
}

func (c *Controller) setUser(u User) {
	c.mu.Lock()
	c.user = &u
	c.state = Authenticated
	c.mu.Unlock()
}

func (c *Controller) becomeAnonymous() {
	c.mu.Lock()
	c.user = nil
	c.state = Anonymous
	c.mu.Unlock()
	c.api.SetToken("")
}

func (c *Controller) forgetToken(ctx context.Context, l *slog.Logger) {
	if err := c.store.Remove(ctx, TokenKey); err != nil {
		l.Error("forget_token_failed", "error", err)
	}
}
