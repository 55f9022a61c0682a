package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.API.BaseURL != defaultAPIBaseURL {
		t.Fatalf("expected default api base url %s, got %s", defaultAPIBaseURL, cfg.API.BaseURL)
	}
	if cfg.API.Timeout != defaultAPITimeout {
		t.Fatalf("expected default api timeout %s, got %s", defaultAPITimeout, cfg.API.Timeout)
	}
	if cfg.API.RateLimit != 0 {
		t.Fatalf("expected pacing disabled by default, got %v", cfg.API.RateLimit)
	}
	if cfg.Console.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Console.Port)
	}
	if cfg.Console.MarketInterval != defaultMarketInterval {
		t.Fatalf("expected default market interval %s, got %s", defaultMarketInterval, cfg.Console.MarketInterval)
	}
	if len(cfg.Console.AllowedOrigins) != 1 || cfg.Console.AllowedOrigins[0] != defaultCORSOrigins {
		t.Fatalf("unexpected default origins %v", cfg.Console.AllowedOrigins)
	}
	if cfg.Session.Dir == "" {
		t.Fatalf("expected a default session dir")
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envAPIBaseURL, "http://api.example.com")
	t.Setenv(envAPITimeout, "3s")
	t.Setenv(envAPIRateLimit, "2.5")
	t.Setenv(envAPIRateBurst, "4")
	t.Setenv(envSessionDir, "/tmp/sessions")
	t.Setenv(envCookieSecret, "cookie-secret")
	t.Setenv(envCookieSecure, "true")
	t.Setenv(envPort, "5000")
	t.Setenv(envCORSOrigins, "http://a.example, http://b.example ,")
	t.Setenv(envMarketInterval, "45s")
	t.Setenv(envLogFile, "/tmp/console.log")

	cfg := Load()

	if cfg.API.BaseURL != "http://api.example.com" {
		t.Fatalf("expected api base url override, got %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Fatalf("expected timeout 3s, got %s", cfg.API.Timeout)
	}
	if cfg.API.RateLimit != 2.5 || cfg.API.RateBurst != 4 {
		t.Fatalf("unexpected rate settings %+v", cfg.API)
	}
	if cfg.Session.Dir != "/tmp/sessions" || cfg.Session.CookieSecret != "cookie-secret" || !cfg.Session.SecureCookies {
		t.Fatalf("unexpected session config %+v", cfg.Session)
	}
	if cfg.Console.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Console.Port)
	}
	if len(cfg.Console.AllowedOrigins) != 2 || cfg.Console.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("unexpected origins %v", cfg.Console.AllowedOrigins)
	}
	if cfg.Console.MarketInterval != 45*time.Second {
		t.Fatalf("expected market interval 45s, got %s", cfg.Console.MarketInterval)
	}
	if cfg.Log.File != "/tmp/console.log" {
		t.Fatalf("expected log file override, got %s", cfg.Log.File)
	}
}

func TestLoadTimeoutZeroDisables(t *testing.T) {
	t.Setenv(envAPITimeout, "0")

	if got := Load().API.Timeout; got != 0 {
		t.Fatalf("expected disabled timeout, got %s", got)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envAPITimeout, "soon")
	t.Setenv(envAPIRateLimit, "-1")
	t.Setenv(envMarketInterval, "0s")

	cfg := Load()

	if cfg.API.Timeout != defaultAPITimeout {
		t.Fatalf("expected default timeout on invalid value, got %s", cfg.API.Timeout)
	}
	if cfg.API.RateLimit != 0 {
		t.Fatalf("expected default rate on negative value, got %v", cfg.API.RateLimit)
	}
	if cfg.Console.MarketInterval != defaultMarketInterval {
		t.Fatalf("expected default market interval on non-positive value, got %s", cfg.Console.MarketInterval)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("API_BASE_URL=http://dotenv.example\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv(envAPIBaseURL, "")
	os.Unsetenv(envAPIBaseURL)

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("expected missing files to be ignored, got %v", err)
	}
	if got := Load().API.BaseURL; got != "http://dotenv.example" {
		t.Fatalf("expected base url from .env, got %s", got)
	}
}
