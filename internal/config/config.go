// Package config loads the calculator service configuration from defaults,
// an optional .env file and CALC_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `json:"server"`
	Logging LoggingConfig `json:"logging"`
	History HistoryConfig `json:"history"`
	CORS    CORSConfig    `json:"cors"`
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Port         int    `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout_seconds"`
	WriteTimeout int    `json:"write_timeout_seconds"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// HistoryConfig controls the optional calculation history store.
type HistoryConfig struct {
	Enabled      bool   `json:"enabled"`
	DatabasePath string `json:"database_path"`
	MaxEntries   int    `json:"max_entries"`
}

// CORSConfig represents cross-origin configuration for the browser UI.
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8000,
			Host:         "localhost",
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		History: HistoryConfig{
			Enabled:      false,
			DatabasePath: "./data/calculations.db",
			MaxEntries:   1000,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:8000",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:8000",
			},
		},
	}
}

// LoadConfig loads configuration from environment variables and defaults
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Don't fail if .env doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := DefaultConfig()

	loadFromEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(config *Config) {
	loadServerConfig(config)
	loadLoggingConfig(config)
	loadHistoryConfig(config)
	loadCORSConfig(config)
}

// loadServerConfig loads server configuration from environment
func loadServerConfig(config *Config) {
	if port := os.Getenv("CALC_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CALC_HOST"); host != "" {
		config.Server.Host = host
	}
	if readTimeout := os.Getenv("CALC_READ_TIMEOUT_SECONDS"); readTimeout != "" {
		if rt, err := strconv.Atoi(readTimeout); err == nil {
			config.Server.ReadTimeout = rt
		}
	}
	if writeTimeout := os.Getenv("CALC_WRITE_TIMEOUT_SECONDS"); writeTimeout != "" {
		if wt, err := strconv.Atoi(writeTimeout); err == nil {
			config.Server.WriteTimeout = wt
		}
	}
}

// loadLoggingConfig loads logging configuration from environment
func loadLoggingConfig(config *Config) {
	if level := os.Getenv("CALC_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("CALC_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

// loadHistoryConfig loads calculation history configuration from environment
func loadHistoryConfig(config *Config) {
	if enabled := os.Getenv("CALC_HISTORY_ENABLED"); enabled != "" {
		if e, err := strconv.ParseBool(enabled); err == nil {
			config.History.Enabled = e
		}
	}
	if path := os.Getenv("CALC_HISTORY_DB_PATH"); path != "" {
		config.History.DatabasePath = path
	}
	if maxEntries := os.Getenv("CALC_HISTORY_MAX_ENTRIES"); maxEntries != "" {
		if m, err := strconv.Atoi(maxEntries); err == nil {
			config.History.MaxEntries = m
		}
	}
}

// loadCORSConfig loads CORS configuration from environment
func loadCORSConfig(config *Config) {
	if origins := os.Getenv("CALC_CORS_ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		allowed := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				allowed = append(allowed, trimmed)
			}
		}
		if len(allowed) > 0 {
			config.CORS.AllowedOrigins = allowed
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if c.History.Enabled {
		if c.History.DatabasePath == "" {
			return fmt.Errorf("history database path cannot be empty when history is enabled")
		}
		if c.History.MaxEntries <= 0 {
			return fmt.Errorf("history max entries must be positive")
		}
	}

	return nil
}

// ListenAddr returns the host:port address the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetDataDir returns the history database directory, creating it if necessary
func (c *Config) GetDataDir() (string, error) {
	dataDir := filepath.Dir(c.History.DatabasePath)
	if dataDir == "" {
		dataDir = "./data"
	}

	absPath, err := filepath.Abs(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for data directory: %w", err)
	}

	if err := os.MkdirAll(absPath, 0750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}

	return absPath, nil
}
