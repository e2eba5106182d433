package config_test

import (
	"testing"
	"time"

	"github.com/E-Mello/controlefin.app/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.CacheEnabled() {
		t.Fatalf("expected cache to be disabled without REDIS_URL")
	}

	if cfg.SnapshotCacheTTL != 5*time.Minute {
		t.Fatalf("expected default snapshot TTL 5m, got %s", cfg.SnapshotCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("RATE_LIMIT_RPS", "12.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://controlefin.app")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if !cfg.CacheEnabled() || cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.RateLimitRPS != 12.5 {
		t.Fatalf("expected rate limit override, got %v", cfg.RateLimitRPS)
	}

	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected two CORS origins, got %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoadRejectsInvalidPool(t *testing.T) {
	t.Setenv("DATABASE_MIN_CONNS", "20")
	t.Setenv("DATABASE_MAX_CONNS", "5")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when min conns exceed max conns")
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("SNAPSHOT_CACHE_TTL", "forever")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected parse error for malformed duration")
	}
}
