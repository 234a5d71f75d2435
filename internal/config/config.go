package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// devSessionSecret is only used when PANEL_SESSION_SECRET is unset.
const devSessionSecret = "panel-development-session-secret"

// ErrMissingBaseURL is returned when the remote authority URL is not configured.
var ErrMissingBaseURL = errors.New("PANEL_API_BASE_URL is not set")

// Provider exposes configuration values to the rest of the application.
type Provider interface {
	GetAPIBaseURL() string
	GetAddr() string
	GetSessionSecret() string
	GetAPITimeout() time.Duration
	GetValidateRetries() int
	GetValidateBackoff() time.Duration
	GetLoginRedirectDelay() time.Duration
	GetLoginRateLimit() int
}

// Config holds all configuration for the application.
type Config struct {
	APIBaseURL         string
	Addr               string
	SessionSecret      string
	APITimeout         time.Duration
	ValidateRetries    int
	ValidateBackoff    time.Duration
	LoginRedirectDelay time.Duration
	LoginRateLimit     int
}

// New loads configuration from a .env file (if present) and the environment.
// The base URL of the remote authority is read once here and never again.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		APIBaseURL:    os.Getenv("PANEL_API_BASE_URL"),
		Addr:          stringOr("PANEL_ADDR", ":8080"),
		SessionSecret: os.Getenv("PANEL_SESSION_SECRET"),
	}
	if cfg.APIBaseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if cfg.SessionSecret == "" {
		slog.Warn("PANEL_SESSION_SECRET is not set, using the development secret")
		cfg.SessionSecret = devSessionSecret
	}

	var err error
	if cfg.APITimeout, err = durationOr("PANEL_API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ValidateRetries, err = intOr("PANEL_VALIDATE_RETRIES", 2); err != nil {
		return nil, err
	}
	if cfg.ValidateBackoff, err = durationOr("PANEL_VALIDATE_BACKOFF", 250*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.LoginRedirectDelay, err = durationOr("PANEL_LOGIN_REDIRECT_DELAY", 1500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = intOr("PANEL_LOGIN_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.ValidateRetries < 0 {
		return nil, fmt.Errorf("PANEL_VALIDATE_RETRIES must not be negative, got %d", cfg.ValidateRetries)
	}
	return cfg, nil
}

func (c *Config) GetAPIBaseURL() string                { return c.APIBaseURL }
func (c *Config) GetAddr() string                      { return c.Addr }
func (c *Config) GetSessionSecret() string             { return c.SessionSecret }
func (c *Config) GetAPITimeout() time.Duration         { return c.APITimeout }
func (c *Config) GetValidateRetries() int              { return c.ValidateRetries }
func (c *Config) GetValidateBackoff() time.Duration    { return c.ValidateBackoff }
func (c *Config) GetLoginRedirectDelay() time.Duration { return c.LoginRedirectDelay }
func (c *Config) GetLoginRateLimit() int               { return c.LoginRateLimit }

func stringOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func intOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
