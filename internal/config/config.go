package config

// Config holds runtime configuration for the console.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Console ConsoleConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		API:     loadAPI(),
		Session: loadSession(),
		Console: loadConsole(),
		Metrics: loadMetrics(),
		Log:     loadLog(),
	}
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string
	Format string
	File   string
}

func loadLog() LogConfig {
	return LogConfig{
		Level:  envOrDefault(envLogLevel, "info"),
		Format: envOrDefault(envLogFormat, "text"),
		File:   envOrDefault(envLogFile, ""),
	}
}
