package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SECURE_COOKIE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Errorf("expected 720h TTL, got %s", cfg.SessionTTL)
	}
	if cfg.SecureCookie {
		t.Error("expected insecure cookies by default")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("SECURE_COOKIE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.SessionSecret != "s3cret" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected 2h TTL, got %s", cfg.SessionTTL)
	}
	if !cfg.SecureCookie {
		t.Error("expected secure cookies")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "-5m")
	t.Setenv("SECURE_COOKIE", "maybe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SessionTTL != 720*time.Hour {
		t.Errorf("expected fallback TTL, got %s", cfg.SessionTTL)
	}
	if cfg.SecureCookie {
		t.Error("expected fallback to insecure cookies")
	}
}
