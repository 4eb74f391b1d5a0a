package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	// Server defaults
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, 30, cfg.Server.WriteTimeout)

	// Logging defaults
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	// History defaults
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "./data/calculations.db", cfg.History.DatabasePath)
	assert.Equal(t, 1000, cfg.History.MaxEntries)

	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  func() *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			config:  DefaultConfig,
			wantErr: false,
		},
		{
			name: "invalid port",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Server.Port = 0
				return cfg
			},
			wantErr: true,
			errMsg:  "invalid server port",
		},
		{
			name: "empty host",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Server.Host = ""
				return cfg
			},
			wantErr: true,
			errMsg:  "server host cannot be empty",
		},
		{
			name: "non-positive timeouts",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.Server.ReadTimeout = 0
				return cfg
			},
			wantErr: true,
			errMsg:  "server timeouts must be positive",
		},
		{
			name: "history enabled without path",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.History.Enabled = true
				cfg.History.DatabasePath = ""
				return cfg
			},
			wantErr: true,
			errMsg:  "history database path cannot be empty",
		},
		{
			name: "history enabled with bad max entries",
			config: func() *Config {
				cfg := DefaultConfig()
				cfg.History.Enabled = true
				cfg.History.MaxEntries = 0
				return cfg
			},
			wantErr: true,
			errMsg:  "history max entries must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config().Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("CALC_PORT", "9100")
	t.Setenv("CALC_HOST", "0.0.0.0")
	t.Setenv("CALC_READ_TIMEOUT_SECONDS", "15")
	t.Setenv("CALC_LOG_LEVEL", "debug")
	t.Setenv("CALC_HISTORY_ENABLED", "true")
	t.Setenv("CALC_HISTORY_DB_PATH", "/tmp/calc-test.db")
	t.Setenv("CALC_HISTORY_MAX_ENTRIES", "50")
	t.Setenv("CALC_CORS_ALLOWED_ORIGINS", "http://example.com, http://other.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 15, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/calc-test.db", cfg.History.DatabasePath)
	assert.Equal(t, 50, cfg.History.MaxEntries)
	assert.Equal(t, []string{"http://example.com", "http://other.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_IgnoresMalformedEnv(t *testing.T) {
	t.Setenv("CALC_PORT", "not-a-port")
	t.Setenv("CALC_HISTORY_ENABLED", "maybe")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// Malformed values fall back to defaults rather than failing startup.
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.False(t, cfg.History.Enabled)
}

func TestListenAddr(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost:8000", cfg.ListenAddr())
}
