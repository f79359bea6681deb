package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://six7backend.onrender.com/api", cfg.API.BaseURL)
	assert.Equal(t, 3, cfg.API.RetryAttempts)
	assert.Equal(t, 5*time.Second, cfg.Chat.RoomPollInterval)
	assert.Equal(t, 15*time.Second, cfg.Chat.UnreadPollInterval)
	assert.Equal(t, "50", cfg.Checkout.DeliveryFee)
	assert.Equal(t, "memory", cfg.Session.Store)
}

func TestNewConfigOptions(t *testing.T) {
	cfg, err := NewConfig(
		WithBaseURL("http://localhost:5000/api"),
		WithTimeout(10*time.Second),
		WithRetry(2, 100*time.Millisecond),
		WithSessionStore("file", "/tmp/session.json"),
		WithChatIntervals(time.Second, 3*time.Second),
		WithLogLevel("DEBUG"),
	)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 2, cfg.API.RetryAttempts)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.Equal(t, "/tmp/session.json", cfg.Session.FilePath)
	assert.Equal(t, time.Second, cfg.Chat.RoomPollInterval)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("FOODSTREET_API_URL", "http://env.example/api")
	t.Setenv("FOODSTREET_SESSION_STORE", "file")
	t.Setenv("FOODSTREET_LOG_LEVEL", "WARN")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://env.example/api", cfg.API.BaseURL)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.Equal(t, "WARN", cfg.Logging.Level)
}

func TestNewConfigOptionBeatsEnv(t *testing.T) {
	t.Setenv("FOODSTREET_API_URL", "http://env.example/api")

	cfg, err := NewConfig(WithBaseURL("http://option.example/api"))
	require.NoError(t, err)
	assert.Equal(t, "http://option.example/api", cfg.API.BaseURL)
}

func TestNewConfigFromYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
api:
  base_url: http://file.example/api
  retry_attempts: 5
chat:
  room_poll_interval: 2s
session:
  store: file
  file_path: /tmp/s.json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("FOODSTREET_CONFIG_FILE", path)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://file.example/api", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.RetryAttempts)
	assert.Equal(t, 2*time.Second, cfg.Chat.RoomPollInterval)
	assert.Equal(t, "/tmp/s.json", cfg.Session.FilePath)
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"empty base URL", []Option{func(c *Config) error { c.API.BaseURL = ""; return nil }}},
		{"unknown session store", []Option{WithSessionStore("cookie", "")}},
		{"redis without URL", []Option{WithSessionStore("redis", "")}},
		{"zero retries", []Option{WithRetry(0, time.Second)}},
		{"negative poll interval", []Option{WithChatIntervals(-time.Second, time.Second)}},
		{"unparseable delivery fee", []Option{func(c *Config) error { c.Checkout.DeliveryFee = "fifty pesos"; return nil }}},
		{"negative delivery fee", []Option{func(c *Config) error { c.Checkout.DeliveryFee = "-50"; return nil }}},
		{"unparseable tax rate", []Option{func(c *Config) error { c.Checkout.TaxRate = "twelve percent"; return nil }}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.opts...)
			assert.Error(t, err)
		})
	}
}

func TestCheckoutAmountsParse(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "50", cfg.Checkout.DeliveryFeeAmount().String())
	assert.Equal(t, "0.12", cfg.Checkout.TaxRateValue().String())
}
