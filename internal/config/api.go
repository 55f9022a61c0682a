package config

import "time"

// APIConfig controls how the console reaches the remote player-management service.
type APIConfig struct {
	BaseURL string
	// Timeout bounds each request; zero disables the bound.
	Timeout time.Duration
	// RateLimit paces requests per second; zero disables pacing.
	RateLimit float64
	RateBurst int
}

func loadAPI() APIConfig {
	return APIConfig{
		BaseURL:   envOrDefault(envAPIBaseURL, defaultAPIBaseURL),
		Timeout:   nonNegativeDurationEnvOrDefault(envAPITimeout, defaultAPITimeout),
		RateLimit: floatEnvOrDefault(envAPIRateLimit, 0),
		RateBurst: intEnvOrDefault(envAPIRateBurst, defaultRateBurst),
	}
}
