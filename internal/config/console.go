package config

import (
	"strings"
	"time"
)

// ConsoleConfig controls the local console API started by `serve`.
type ConsoleConfig struct {
	Port           string
	AllowedOrigins []string
	MarketInterval time.Duration
}

func loadConsole() ConsoleConfig {
	return ConsoleConfig{
		Port:           envOrDefault(envPort, defaultPort),
		AllowedOrigins: splitList(envOrDefault(envCORSOrigins, defaultCORSOrigins)),
		MarketInterval: durationEnvOrDefault(envMarketInterval, defaultMarketInterval),
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
