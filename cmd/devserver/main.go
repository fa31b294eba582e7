package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/coffee_shop/internal/devserver/httpserver"
	"github.com/Skotchmaster/coffee_shop/internal/devserver/repo"
	"github.com/Skotchmaster/coffee_shop/internal/events"
	"github.com/Skotchmaster/coffee_shop/pkg/config"
	"github.com/Skotchmaster/coffee_shop/pkg/db"
	"github.com/Skotchmaster/coffee_shop/pkg/logging"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	if err == nil {
		err = (&repo.GormRepo{DB: gdb}).Migrate(initCtx)
	}
	cancel()
	if err != nil {
		logger.Error("db_init_failed", "error", err)
		os.Exit(1)
	}

	var pub events.Publisher = events.Nop{}
	if brokers := cfg.Brokers(); len(brokers) > 0 {
		prod, err := events.NewProducer(brokers)
		if err != nil {
			logger.Error("kafka_init_failed", "error", err)
			os.Exit(1)
		}
		pub = prod
		logger.Info("kafka_enabled", "brokers", brokers)
	}

	deps := httpserver.NewDeps(gdb, []byte(cfg.JWTSecret), cfg.TokenTTL, pub)
	if cfg.SeedAdmin() {
		if err := deps.AuthHandler.Svc.SeedAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logger.Error("seed_admin_failed", "error", err)
			os.Exit(1)
		}
	}

	e := httpserver.New(logger, deps)
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	go func() {
		logger.Info("server_started", "addr", cfg.ListenAddr)
		if err := e.Start(cfg.ListenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := pub.Close(); err != nil {
		logger.Error("kafka_close_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}
	logger.Info("shutdown_complete")
}
