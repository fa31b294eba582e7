package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config drives the storefront client binary.
type Config struct {
	APIURL         string        `env:"STOREFRONT_API_URL" envDefault:"http://localhost:5000/api"`
	StoreURL       string        `env:"STOREFRONT_STORE_URL" envDefault:"sqlite://storefront.db"`
	LogLevel       string        `env:"STOREFRONT_LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"STOREFRONT_REQUEST_TIMEOUT" envDefault:"15s"`
	PaymentMethod  string        `env:"STOREFRONT_PAYMENT_METHOD" envDefault:"COD"`
}

// ServerConfig drives the reference development backend.
type ServerConfig struct {
	ListenAddr    string        `env:"DEVSERVER_ADDR" envDefault:":5000"`
	DatabaseURL   string        `env:"DEVSERVER_DATABASE_URL" envDefault:"file::memory:?cache=shared"`
	JWTSecret     string        `env:"DEVSERVER_JWT_SECRET,required"`
	TokenTTL      time.Duration `env:"DEVSERVER_TOKEN_TTL" envDefault:"24h"`
	AdminEmail    string        `env:"DEVSERVER_ADMIN_EMAIL"`
	AdminPassword string        `env:"DEVSERVER_ADMIN_PASSWORD"`
	KafkaBrokers  string        `env:"KAFKA_BROKERS"`
	LogLevel      string        `env:"DEVSERVER_LOG_LEVEL" envDefault:"info"`
}

func (c ServerConfig) Brokers() []string {
	return CSV(c.KafkaBrokers)
}

func (c ServerConfig) SeedAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := requireURL("STOREFRONT_API_URL", cfg.APIURL); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("STOREFRONT_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	cfg.PaymentMethod = strings.TrimSpace(cfg.PaymentMethod)
	if cfg.PaymentMethod == "" {
		cfg.PaymentMethod = "COD"
	}

	return cfg, nil
}

func LoadServer() (*ServerConfig, error) {
	loadDotEnv()

	cfg := &ServerConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := MinLength("DEVSERVER_JWT_SECRET", cfg.JWTSecret, 16); err != nil {
		return nil, err
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("DEVSERVER_TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	return cfg, nil
}

func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		slog.Debug("env_file_not_loaded", "reason", "using system environment variables", "error", err)
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
