package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "8080")
	}
	if cfg.JWT.AccessTTLSeconds != 900 {
		t.Errorf("AccessTTLSeconds = %d, expected 900", cfg.JWT.AccessTTLSeconds)
	}
	if cfg.JWT.RefreshTTLSeconds != 604800 {
		t.Errorf("RefreshTTLSeconds = %d, expected 604800", cfg.JWT.RefreshTTLSeconds)
	}
	if !cfg.Cookie.Secure {
		t.Error("Cookie.Secure should default to true")
	}
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("server:\n  port: \"9090\"\njwt:\n  secret: file-secret\n  access_ttl_seconds: 300\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "9090")
	}
	if cfg.JWT.Secret != "file-secret" {
		t.Errorf("JWT.Secret = %q, expected %q", cfg.JWT.Secret, "file-secret")
	}
	if cfg.JWT.AccessTTLSeconds != 300 {
		t.Errorf("AccessTTLSeconds = %d, expected 300", cfg.JWT.AccessTTLSeconds)
	}
	// Unset file keys keep their defaults
	if cfg.JWT.RefreshTTLSeconds != 604800 {
		t.Errorf("RefreshTTLSeconds = %d, expected default 604800", cfg.JWT.RefreshTTLSeconds)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_ACCESS_TTL", "120")
	t.Setenv("COOKIE_SECURE", "false")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("Server.Port = %q, expected %q", cfg.Server.Port, "7070")
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Errorf("JWT.Secret = %q, expected %q", cfg.JWT.Secret, "env-secret")
	}
	if cfg.JWT.AccessTTLSeconds != 120 {
		t.Errorf("AccessTTLSeconds = %d, expected 120", cfg.JWT.AccessTTLSeconds)
	}
	if cfg.Cookie.Secure {
		t.Error("COOKIE_SECURE=false should disable the secure flag")
	}
}

func TestJWTConfig_TTLDurations(t *testing.T) {
	j := JWTConfig{AccessTTLSeconds: 900, RefreshTTLSeconds: 604800}

	if j.AccessTTL() != 15*time.Minute {
		t.Errorf("AccessTTL() = %v, expected 15m", j.AccessTTL())
	}
	if j.RefreshTTL() != 7*24*time.Hour {
		t.Errorf("RefreshTTL() = %v, expected 168h", j.RefreshTTL())
	}
}
