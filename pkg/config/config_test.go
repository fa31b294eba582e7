package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIURL)
	assert.Equal(t, "sqlite://storefront.db", cfg.StoreURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "COD", cfg.PaymentMethod)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STOREFRONT_API_URL", "https://shop.example.com/api")
	t.Setenv("STOREFRONT_STORE_URL", "memory://")
	t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "3s")
	t.Setenv("STOREFRONT_PAYMENT_METHOD", "  CARD ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example.com/api", cfg.APIURL)
	assert.Equal(t, "memory://", cfg.StoreURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "CARD", cfg.PaymentMethod)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "ftp url", key: "STOREFRONT_API_URL", val: "ftp://shop"},
		{name: "no host", key: "STOREFRONT_API_URL", val: "http://"},
		{name: "zero timeout", key: "STOREFRONT_REQUEST_TIMEOUT", val: "0s"},
		{name: "garbage timeout", key: "STOREFRONT_REQUEST_TIMEOUT", val: "soon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadServer(t *testing.T) {
	t.Setenv("DEVSERVER_JWT_SECRET", "short")
	_, err := LoadServer()
	require.Error(t, err)

	t.Setenv("DEVSERVER_JWT_SECRET", "0123456789abcdef-dev")
	t.Setenv("KAFKA_BROKERS", "kafka:9092, ,kafka2:9092")
	t.Setenv("DEVSERVER_ADMIN_EMAIL", "admin@shop.local")
	t.Setenv("DEVSERVER_ADMIN_PASSWORD", "admin123")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"kafka:9092", "kafka2:9092"}, cfg.Brokers())
	assert.True(t, cfg.SeedAdmin())
}

func TestCSV(t *testing.T) {
	t.Parallel()

	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a", "b"}, CSV(" a ,b,,"))
}
