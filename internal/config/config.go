package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Import configuration
	Import ImportConfig

	// Logging configuration
	Log LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigin      string
}

// ImportConfig holds roster import settings
type ImportConfig struct {
	MaxInputBytes    int64 // raw text accepted by one import
	MaxRosterRecords int   // cap for JSON roster replacement, 0 = no cap
	HistoryLimit     int   // import attempts kept in memory
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables, after loading
// a .env file from the working directory when one exists
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		},
		Import: ImportConfig{
			MaxInputBytes:    getInt64Env("MAX_IMPORT_BYTES", 1024*1024), // 1MB
			MaxRosterRecords: getIntEnv("MAX_ROSTER_RECORDS", 10000),
			HistoryLimit:     getIntEnv("IMPORT_HISTORY_LIMIT", 100),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", defaultLogFormat()),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("PORT must be numeric, got %q", c.Server.Port)
	}
	if c.Import.MaxInputBytes <= 0 {
		return fmt.Errorf("MAX_IMPORT_BYTES must be positive")
	}
	if c.Import.HistoryLimit <= 0 {
		return fmt.Errorf("IMPORT_HISTORY_LIMIT must be positive")
	}
	if c.Log.Format != "json" && c.Log.Format != "pretty" {
		return fmt.Errorf("LOG_FORMAT must be json or pretty, got %q", c.Log.Format)
	}
	return nil
}

// Helper functions for environment variable parsing

func defaultLogFormat() string {
	if os.Getenv("ENV") == "development" {
		return "pretty"
	}
	return "json"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
