package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// PreciseCalculatorConfig holds configuration for the optional external
// high-precision calculator
type PreciseCalculatorConfig struct {
	// Enabled turns the external precision path on
	Enabled bool
	// Command is the interpreter or binary to invoke
	Command string
	// Script is the calculator entrypoint passed to the command
	Script string
	// Timeout bounds a single calculator exchange; on expiry the
	// in-process fallback answers instead
	Timeout time.Duration
}

// Config holds all engine configuration
type Config struct {
	// Runtime environment
	Environment string

	// Logging
	LogLevel string

	// Feature flags
	EnableMetrics bool
	EnableTracing bool

	// Tracing
	TracingEndpoint string

	// MetricsNamespace prefixes every Prometheus metric
	MetricsNamespace string

	// DynamicConfigPath points at the watched tuning file; empty
	// disables hot reload
	DynamicConfigPath string

	// HarmonicMatchTolerance is the correlation window as a fraction
	// of the aspect ratio
	HarmonicMatchTolerance float64

	// Precise calculator configuration
	Precise PreciseCalculatorConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		EnableMetrics:   getEnvBool("ENABLE_METRICS", false),
		EnableTracing:   getEnvBool("ENABLE_TRACING", false),
		TracingEndpoint: getEnv("TRACING_ENDPOINT", ""),

		MetricsNamespace:  getEnv("METRICS_NAMESPACE", "astrotune"),
		DynamicConfigPath: getEnv("DYNAMIC_CONFIG_PATH", ""),

		HarmonicMatchTolerance: getEnvFloat("HARMONIC_MATCH_TOLERANCE", 0.05),

		Precise: PreciseCalculatorConfig{
			Enabled: getEnvBool("PRECISE_EPHEMERIS_ENABLED", false),
			Command: getEnv("PRECISE_EPHEMERIS_COMMAND", "python3"),
			Script:  getEnv("PRECISE_EPHEMERIS_SCRIPT", "astrology_engine.py"),
			Timeout: time.Duration(getEnvInt("PRECISE_EPHEMERIS_TIMEOUT_MS", 5000)) * time.Millisecond,
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load is an alias for LoadConfig for backwards compatibility
func Load() (*Config, error) {
	return LoadConfig()
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.HarmonicMatchTolerance <= 0 || c.HarmonicMatchTolerance > 0.5 {
		return fmt.Errorf("HARMONIC_MATCH_TOLERANCE must be within (0, 0.5]")
	}
	if c.Precise.Enabled {
		if c.Precise.Script == "" {
			return fmt.Errorf("PRECISE_EPHEMERIS_SCRIPT is required when the precise path is enabled")
		}
		if c.Precise.Timeout <= 0 {
			return fmt.Errorf("PRECISE_EPHEMERIS_TIMEOUT_MS must be positive")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
