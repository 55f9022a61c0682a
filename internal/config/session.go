package config

import (
	"os"
	"path/filepath"
)

// SessionConfig controls where the logged-in user record is kept.
type SessionConfig struct {
	// Dir holds the CLI's session file.
	Dir string
	// CookieSecret signs console session cookies. Empty means an ephemeral key per process.
	CookieSecret string
	// SecureCookies marks console cookies HTTPS-only.
	SecureCookies bool
}

func loadSession() SessionConfig {
	return SessionConfig{
		Dir:           envOrDefault(envSessionDir, defaultSessionDir()),
		CookieSecret:  envOrDefault(envCookieSecret, ""),
		SecureCookies: boolEnvOrDefault(envCookieSecure, false),
	}
}

func defaultSessionDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, defaultSessionSubdir)
}
