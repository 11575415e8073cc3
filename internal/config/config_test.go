package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_MemoryDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"JWT_SECRET": "s3cret",
		"DB_DRIVER":  "memory",
	}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "5000" {
		t.Fatalf("expected default port 5000, got %q", cfg.App.HTTPPort)
	}
	if cfg.JWT.ExpiresIn != 100*time.Hour {
		t.Fatalf("unexpected jwt expiry %s", cfg.JWT.ExpiresIn)
	}
	if cfg.GitHub.BaseURL != "https://api.github.com" {
		t.Fatalf("unexpected github base url %q", cfg.GitHub.BaseURL)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "*" {
		t.Fatalf("unexpected cors origins %v", cfg.CORS.AllowOrigins)
	}
}

func TestFromEnv_PortFallback(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"JWT_SECRET": "s3cret",
		"DB_DRIVER":  "memory",
		"PORT":       "8080",
	}))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.App.HTTPPort != "8080" {
		t.Fatalf("expected PORT fallback, got %q", cfg.App.HTTPPort)
	}
}

func TestFromEnv_MissingRequired(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{}))
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, key := range []string{"JWT_SECRET", "DB_HOST", "DB_NAME"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %v", key, err)
		}
	}
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{
		"JWT_SECRET":     "s3cret",
		"DB_DRIVER":      "memory",
		"GITHUB_TIMEOUT": "soon",
	}))
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestFromEnv_UnknownDriver(t *testing.T) {
	_, err := FromEnv(envMap(map[string]string{
		"JWT_SECRET": "s3cret",
		"DB_DRIVER":  "mongo",
	}))
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}

func TestFromEnv_RedisDisabled(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"JWT_SECRET":     "s3cret",
		"DB_DRIVER":      "memory",
		"REDIS_DISABLED": "1",
	}))
	if err != nil || !cfg.Redis.Disabled {
		t.Fatalf("expected redis disabled, got %+v err=%v", cfg.Redis, err)
	}
}

func TestFromEnv_SeedDemo(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"JWT_SECRET": "s3cret",
		"DB_DRIVER":  "memory",
		"SEED_DEMO":  "true",
	}))
	if err != nil || !cfg.App.SeedDemo {
		t.Fatalf("expected SeedDemo enabled, got %v err=%v", cfg.App.SeedDemo, err)
	}

	_, err = FromEnv(envMap(map[string]string{
		"JWT_SECRET": "s3cret",
		"DB_DRIVER":  "memory",
		"SEED_DEMO":  "maybe",
	}))
	if !errors.Is(err, errInvalidEnv) {
		t.Fatalf("expected errInvalidEnv, got %v", err)
	}
}
