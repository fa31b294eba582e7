// Package devtest runs the development backend in-process for tests.
package devtest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/httpserver"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
	"github.com/Skotchmaster/coffee_shop/internal/events"
	"github.com/Skotchmaster/coffee_shop/pkg/db"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

const (
	AdminEmail    = "admin@coffee.test"
	AdminPassword = "admin-password"

	secret = "devtest-secret-0123456789"
)

type Server struct {
	URL    string
	Events *events.Recorder
	Deps   *httpserver.Deps
}

// APIURL is the base URL clients are configured with.
func (s *Server) APIURL() string {
	return s.URL + "/api"
}

// Start serves a fresh in-memory backend with a seeded admin until the test
// ends.
func Start(t testing.TB) *Server {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := (&repo.GormRepo{DB: gdb}).Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	rec := &events.Recorder{}
	deps := httpserver.NewDeps(gdb, []byte(secret), time.Hour, rec)
	if err := deps.AuthHandler.Svc.SeedAdmin(ctx, AdminEmail, AdminPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	srv := httptest.NewServer(httpserver.New(logging.Discard(), deps))
	t.Cleanup(func() {
		srv.Close()
		_ = db.Close(gdb)
	})

	return &Server{URL: srv.URL, Events: rec, Deps: deps}
}
