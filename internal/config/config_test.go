package config

import "testing"

func TestValidate_RequiresJWTSecret(t *testing.T) {
	cfg := Config{Environment: "development"}
	if err := cfg.Validate(); err != ErrMissingJWTSecret {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestValidate_ProductionRequiresPayPalCreds(t *testing.T) {
	cfg := Config{Environment: EnvProduction, JWTSecret: "s"}
	if err := cfg.Validate(); err != ErrMissingPayPalCreds {
		t.Fatalf("expected ErrMissingPayPalCreds, got %v", err)
	}

	cfg.PayPalClientID = "id"
	cfg.PayPalClientSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidate_DevelopmentAllowsMissingCreds(t *testing.T) {
	cfg := Config{Environment: "development", JWTSecret: "s"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
	if cfg.PayPalConfigured() {
		t.Fatal("expected PayPalConfigured to be false")
	}
}

func TestPayPalAPIURL(t *testing.T) {
	if url := (Config{PayPalMode: "live"}).PayPalAPIURL(); url != "https://api-m.paypal.com" {
		t.Fatalf("unexpected live URL %q", url)
	}
	if url := (Config{PayPalMode: "sandbox"}).PayPalAPIURL(); url != "https://api-m.sandbox.paypal.com" {
		t.Fatalf("unexpected sandbox URL %q", url)
	}
}
