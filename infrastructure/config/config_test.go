package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "LOG_LEVEL", "ENABLE_METRICS", "ENABLE_TRACING",
		"METRICS_NAMESPACE", "DYNAMIC_CONFIG_PATH", "HARMONIC_MATCH_TOLERANCE",
		"PRECISE_EPHEMERIS_ENABLED", "PRECISE_EPHEMERIS_COMMAND",
		"PRECISE_EPHEMERIS_SCRIPT", "PRECISE_EPHEMERIS_TIMEOUT_MS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "astrotune", cfg.MetricsNamespace)
	assert.False(t, cfg.EnableMetrics)
	assert.False(t, cfg.EnableTracing)
	assert.Empty(t, cfg.DynamicConfigPath)
	assert.InDelta(t, 0.05, cfg.HarmonicMatchTolerance, 1e-9)

	assert.False(t, cfg.Precise.Enabled)
	assert.Equal(t, "python3", cfg.Precise.Command)
	assert.Equal(t, "astrology_engine.py", cfg.Precise.Script)
	assert.Equal(t, 5*time.Second, cfg.Precise.Timeout)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ENABLE_METRICS", "true")
	t.Setenv("HARMONIC_MATCH_TOLERANCE", "0.1")
	t.Setenv("PRECISE_EPHEMERIS_ENABLED", "1")
	t.Setenv("PRECISE_EPHEMERIS_TIMEOUT_MS", "2500")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.EnableMetrics)
	assert.InDelta(t, 0.1, cfg.HarmonicMatchTolerance, 1e-9)
	assert.True(t, cfg.Precise.Enabled)
	assert.Equal(t, 2500*time.Millisecond, cfg.Precise.Timeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "tolerance zero",
			mutate:  func(c *Config) { c.HarmonicMatchTolerance = 0 },
			wantErr: true,
		},
		{
			name:    "tolerance too large",
			mutate:  func(c *Config) { c.HarmonicMatchTolerance = 0.6 },
			wantErr: true,
		},
		{
			name: "precise enabled without script",
			mutate: func(c *Config) {
				c.Precise.Enabled = true
				c.Precise.Script = ""
			},
			wantErr: true,
		},
		{
			name: "precise enabled without timeout",
			mutate: func(c *Config) {
				c.Precise.Enabled = true
				c.Precise.Timeout = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig()
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
