package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the client.
// It supports three-layer configuration priority:
//  1. Default values (lowest priority)
//  2. Config file, then environment variables
//  3. Functional options (highest priority)
//
// Example usage:
//
//	cfg, err := core.NewConfig(
//	    core.WithBaseURL("https://six7backend.onrender.com/api"),
//	    core.WithSessionStore("file", "~/.foodstreet/session.json"),
//	)
type Config struct {
	// API configuration
	API APIConfig `yaml:"api"`

	// Session persistence configuration
	Session SessionConfig `yaml:"session"`

	// Checkout configuration
	Checkout CheckoutConfig `yaml:"checkout"`

	// Chat polling configuration
	Chat ChatConfig `yaml:"chat"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging"`

	// Telemetry configuration (optional)
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type APIConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	RetryAttempts int           `yaml:"retry_attempts"`
	RetryDelay    time.Duration `yaml:"retry_delay"`
}

type SessionConfig struct {
	// Store selects the persistence backend: "memory", "file" or "redis".
	Store    string `yaml:"store"`
	FilePath string `yaml:"file_path"`
	RedisURL string `yaml:"redis_url"`
}

type CheckoutConfig struct {
	// DeliveryFee is the flat fee applied to delivery orders, in pesos.
	DeliveryFee string `yaml:"delivery_fee"`
	// TaxRate is the preview-only tax rate shown on the cart summary.
	TaxRate string `yaml:"tax_rate"`
}

// DeliveryFeeAmount returns the parsed fee. Validate rejects values that do
// not parse, so this cannot fail after NewConfig.
func (c *CheckoutConfig) DeliveryFeeAmount() decimal.Decimal {
	fee, _ := decimal.NewFromString(c.DeliveryFee)
	return fee
}

// TaxRateValue returns the parsed preview tax rate.
func (c *CheckoutConfig) TaxRateValue() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.TaxRate)
	return rate
}

type ChatConfig struct {
	RoomPollInterval   time.Duration `yaml:"room_poll_interval"`
	UnreadPollInterval time.Duration `yaml:"unread_poll_interval"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Option is a functional option for configuring the client
type Option func(*Config) error

// DefaultConfig returns a config with sensible defaults matching the
// production backend.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:       "https://six7backend.onrender.com/api",
			Timeout:       30 * time.Second,
			RetryAttempts: 3,
			RetryDelay:    2 * time.Second,
		},
		Session: SessionConfig{
			Store:    "memory",
			FilePath: defaultSessionPath(),
		},
		Checkout: CheckoutConfig{
			DeliveryFee: "50",
			TaxRate:     "0.12",
		},
		Chat: ChatConfig{
			RoomPollInterval:   5 * time.Second,
			UnreadPollInterval: 15 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			ServiceName: "foodstreet-client",
		},
	}
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".foodstreet", "session.json")
}

// NewConfig creates a configuration with the layered priority applied.
func NewConfig(opts ...Option) (*Config, error) {
	cfg := DefaultConfig()

	if path := os.Getenv("FOODSTREET_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig mirrors Config for YAML decoding; durations are strings in
// Go duration syntax ("30s", "2m") and zero values mean "keep the default".
type fileConfig struct {
	API struct {
		BaseURL       string `yaml:"base_url"`
		Timeout       string `yaml:"timeout"`
		RetryAttempts int    `yaml:"retry_attempts"`
		RetryDelay    string `yaml:"retry_delay"`
	} `yaml:"api"`
	Session struct {
		Store    string `yaml:"store"`
		FilePath string `yaml:"file_path"`
		RedisURL string `yaml:"redis_url"`
	} `yaml:"session"`
	Checkout struct {
		DeliveryFee string `yaml:"delivery_fee"`
		TaxRate     string `yaml:"tax_rate"`
	} `yaml:"checkout"`
	Chat struct {
		RoomPollInterval   string `yaml:"room_poll_interval"`
		UnreadPollInterval string `yaml:"unread_poll_interval"`
	} `yaml:"chat"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Telemetry struct {
		Enabled     bool   `yaml:"enabled"`
		ServiceName string `yaml:"service_name"`
	} `yaml:"telemetry"`
}

// loadFile merges a YAML config file over the current values.
func (c *Config) loadFile(path string) error {
	ext := filepath.Ext(path)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("unsupported config file type %q: %w", ext, ErrValidation)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	setString := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setDuration := func(dst *time.Duration, v string) error {
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing duration %q in %s: %w", v, path, err)
		}
		*dst = d
		return nil
	}

	setString(&c.API.BaseURL, fc.API.BaseURL)
	if fc.API.RetryAttempts > 0 {
		c.API.RetryAttempts = fc.API.RetryAttempts
	}
	if err := setDuration(&c.API.Timeout, fc.API.Timeout); err != nil {
		return err
	}
	if err := setDuration(&c.API.RetryDelay, fc.API.RetryDelay); err != nil {
		return err
	}
	setString(&c.Session.Store, fc.Session.Store)
	setString(&c.Session.FilePath, fc.Session.FilePath)
	setString(&c.Session.RedisURL, fc.Session.RedisURL)
	setString(&c.Checkout.DeliveryFee, fc.Checkout.DeliveryFee)
	setString(&c.Checkout.TaxRate, fc.Checkout.TaxRate)
	if err := setDuration(&c.Chat.RoomPollInterval, fc.Chat.RoomPollInterval); err != nil {
		return err
	}
	if err := setDuration(&c.Chat.UnreadPollInterval, fc.Chat.UnreadPollInterval); err != nil {
		return err
	}
	setString(&c.Logging.Level, fc.Logging.Level)
	setString(&c.Logging.Format, fc.Logging.Format)
	if fc.Telemetry.Enabled {
		c.Telemetry.Enabled = true
	}
	setString(&c.Telemetry.ServiceName, fc.Telemetry.ServiceName)
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FOODSTREET_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("FOODSTREET_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.API.Timeout = d
		}
	}
	if v := os.Getenv("FOODSTREET_API_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.RetryAttempts = n
		}
	}
	if v := os.Getenv("FOODSTREET_SESSION_STORE"); v != "" {
		c.Session.Store = v
	}
	if v := os.Getenv("FOODSTREET_SESSION_FILE"); v != "" {
		c.Session.FilePath = v
	}
	if v := os.Getenv("FOODSTREET_REDIS_URL"); v != "" {
		c.Session.RedisURL = v
	}
	if v := os.Getenv("FOODSTREET_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FOODSTREET_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("FOODSTREET_TELEMETRY_ENABLED"); v != "" {
		c.Telemetry.Enabled = v == "true" || v == "1"
	}
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base URL is required: %w", ErrValidation)
	}
	switch c.Session.Store {
	case "memory", "file", "redis":
	default:
		return fmt.Errorf("unknown session store %q: %w", c.Session.Store, ErrValidation)
	}
	if c.Session.Store == "redis" && c.Session.RedisURL == "" {
		return fmt.Errorf("redis session store requires a redis URL: %w", ErrValidation)
	}
	if c.API.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1: %w", ErrValidation)
	}
	if c.Chat.RoomPollInterval <= 0 || c.Chat.UnreadPollInterval <= 0 {
		return fmt.Errorf("chat poll intervals must be positive: %w", ErrValidation)
	}
	fee, err := decimal.NewFromString(c.Checkout.DeliveryFee)
	if err != nil || fee.IsNegative() {
		return fmt.Errorf("delivery fee %q is not a valid amount: %w", c.Checkout.DeliveryFee, ErrValidation)
	}
	rate, err := decimal.NewFromString(c.Checkout.TaxRate)
	if err != nil || rate.IsNegative() {
		return fmt.Errorf("tax rate %q is not a valid rate: %w", c.Checkout.TaxRate, ErrValidation)
	}
	return nil
}

// WithBaseURL sets the backend API base URL
func WithBaseURL(url string) Option {
	return func(c *Config) error {
		if url == "" {
			return fmt.Errorf("base URL cannot be empty: %w", ErrValidation)
		}
		c.API.BaseURL = url
		return nil
	}
}

// WithTimeout sets the HTTP request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Config) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive: %w", ErrValidation)
		}
		c.API.Timeout = d
		return nil
	}
}

// WithRetry sets the read-path retry policy
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Config) error {
		c.API.RetryAttempts = attempts
		c.API.RetryDelay = delay
		return nil
	}
}

// WithSessionStore selects the session persistence backend.
// The second argument is the file path for "file" or the URL for "redis".
func WithSessionStore(kind, location string) Option {
	return func(c *Config) error {
		c.Session.Store = kind
		switch kind {
		case "file":
			c.Session.FilePath = location
		case "redis":
			c.Session.RedisURL = location
		}
		return nil
	}
}

// WithChatIntervals overrides the chat polling cadence
func WithChatIntervals(room, unread time.Duration) Option {
	return func(c *Config) error {
		c.Chat.RoomPollInterval = room
		c.Chat.UnreadPollInterval = unread
		return nil
	}
}

// WithLogLevel sets the log level
func WithLogLevel(level string) Option {
	return func(c *Config) error {
		c.Logging.Level = level
		return nil
	}
}

// WithTelemetry enables tracing with the given service name
func WithTelemetry(enabled bool, serviceName string) Option {
	return func(c *Config) error {
		c.Telemetry.Enabled = enabled
		if serviceName != "" {
			c.Telemetry.ServiceName = serviceName
		}
		return nil
	}
}
