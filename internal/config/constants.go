package config

import "time"

const (
	envAPIBaseURL     = "API_BASE_URL"
	envAPITimeout     = "API_TIMEOUT"
	envAPIRateLimit   = "API_RATE_LIMIT"
	envAPIRateBurst   = "API_RATE_BURST"
	envSessionDir     = "SESSION_DIR"
	envCookieSecret   = "SESSION_COOKIE_SECRET"
	envCookieSecure   = "SESSION_COOKIE_SECURE"
	envPort           = "PORT"
	envCORSOrigins    = "CORS_ALLOWED_ORIGINS"
	envMarketInterval = "MARKET_REFRESH_INTERVAL"
	envMetricsPort    = "METRICS_PORT"
	envMetricsOn      = "METRICS_ENABLED"
	envOtelEndpoint   = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService    = "OTEL_SERVICE_NAME"
	envOtelInsecure   = "OTEL_EXPORTER_OTLP_INSECURE"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"
	envLogFile        = "LOG_FILE"

	// The remote service the legacy pages talked to.
	defaultAPIBaseURL = "http://localhost:8000"
	defaultAPITimeout = 10 * Duration(time.Second)
	defaultRateBurst  = 1

	defaultPort           = "4000"
	defaultCORSOrigins    = "http://localhost:3000"
	defaultMarketInterval = 2 * Duration(time.Minute)
	defaultMetricsPort    = "9090"
	defaultServiceName    = "transfer-console"
	defaultSessionSubdir  = "transfer-console"
)
