package config

import (
	"os"
	"strings"
	"testing"
)

// unsetenv clears key for the test and restores it afterwards.
func unsetenv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "PORTFOLIO_LOG_LEVEL", "PORTFOLIO_CONTENT", "PORTFOLIO_WATCH"} {
		unsetenv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected addr :8080, got %q", cfg.Addr())
	}
	if cfg.Development() {
		t.Fatal("expected release mode by default")
	}
	if cfg.Watch {
		t.Fatal("expected watch off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("PORTFOLIO_CONTENT", "/tmp/content.yaml")
	t.Setenv("PORTFOLIO_WATCH", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9000 || !cfg.Development() || cfg.Content != "/tmp/content.yaml" || !cfg.Watch {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadError(t *testing.T) {
	t.Setenv("PORT", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}
