package config

import (
	"os"
	"strings"
	"testing"
)

func setEnv(t *testing.T, kv map[string]string) {
	t.Helper()
	for k, v := range kv {
		t.Setenv(k, v)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	os.Unsetenv("DATABASE_URL")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Fatalf("err = %v, want DATABASE_URL error", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL": "postgres://localhost/blendwell",
	})

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if !cfg.IsDev() {
		t.Error("expected development mode by default")
	}
	if cfg.DBMaxConns != 20 || cfg.DBMinConns != 5 {
		t.Errorf("pool sizes = %d/%d, want 20/5", cfg.DBMaxConns, cfg.DBMinConns)
	}
	if cfg.RateLimitRPS != 100 || cfg.RateLimitBurst != 200 {
		t.Errorf("rate limit = %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestValidateProductionRequiresIssuer(t *testing.T) {
	cfg := &Config{
		Env:            "production",
		DatabaseURL:    "postgres://localhost/blendwell",
		AIBaseURL:      "https://api.example.com/v1",
		AIAPIKey:       "key",
		RateLimitRPS:   100,
		RateLimitBurst: 200,
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "AUTH_ISSUER") {
		t.Fatalf("err = %v, want AUTH_ISSUER error", err)
	}

	cfg.AuthIssuer = "https://auth.example.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate with issuer: %v", err)
	}
}

func TestValidateDevNeedsSomeAuthConfig(t *testing.T) {
	cfg := &Config{
		Env:            "development",
		DatabaseURL:    "postgres://localhost/blendwell",
		AIBaseURL:      "https://api.example.com/v1",
		RateLimitRPS:   100,
		RateLimitBurst: 200,
	}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without issuer or signing key")
	}

	cfg.AuthSigningKey = "dev-secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate with signing key: %v", err)
	}
}

func TestValidateRequiresAIBaseURL(t *testing.T) {
	cfg := &Config{
		Env:            "development",
		DatabaseURL:    "postgres://localhost/blendwell",
		AuthSigningKey: "dev-secret",
		RateLimitRPS:   100,
		RateLimitBurst: 200,
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "AI_BASE_URL") {
		t.Fatalf("err = %v, want AI_BASE_URL error", err)
	}
}
