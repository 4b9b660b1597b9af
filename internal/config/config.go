package config

import (
	"errors"

	"github.com/kelseyhightower/envconfig"
)

const EnvProduction = "production"

// Config holds environment-driven configuration for the whole service.
type Config struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	AppURL      string `envconfig:"APP_URL" default:"http://localhost:3000"`

	JWTSecret   string `envconfig:"JWT_SECRET"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	RedisURL    string `envconfig:"REDIS_URL"`

	AdminEmail        string `envconfig:"ADMIN_EMAIL"`
	AdminPasswordHash string `envconfig:"ADMIN_PASSWORD_HASH"`

	PayPalMode         string `envconfig:"PAYPAL_MODE" default:"sandbox"`
	PayPalClientID     string `envconfig:"PAYPAL_CLIENT_ID"`
	PayPalClientSecret string `envconfig:"PAYPAL_CLIENT_SECRET"`
}

var (
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is not configured")
	ErrMissingPayPalCreds = errors.New("PayPal credentials are required in production")
)

// Load reads configuration from environment variables and enforces the
// startup-time invariants: production never runs without provider
// credentials, and the admin gate never runs without a signing secret.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.IsProduction() && !c.PayPalConfigured() {
		return ErrMissingPayPalCreds
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// PayPalConfigured reports whether real provider credentials are present.
// When false outside production the payment layer falls back to the demo
// gateway.
func (c Config) PayPalConfigured() bool {
	return c.PayPalClientID != "" && c.PayPalClientSecret != ""
}

// PayPalAPIURL returns the provider base URL for the configured mode.
func (c Config) PayPalAPIURL() string {
	if c.PayPalMode == "live" {
		return "https://api-m.paypal.com"
	}
	return "https://api-m.sandbox.paypal.com"
}
