package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	ServerPort      int           `json:"server_port"`
	LogLevel        string        `json:"log_level"`
	LogFormat       string        `json:"log_format"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	CORSOrigins     string        `json:"cors_allowed_origins"`
	ActivityLogSize int           `json:"activity_log_size"`
}

// Load reads configuration from environment variables with sensible defaults.
// Unparseable numbers and durations fall back to their default.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnvInt("PORT", 3000),
		LogLevel:        getEnvString("LOG_LEVEL", "info"),
		LogFormat:       getEnvString("LOG_FORMAT", "text"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
		CORSOrigins:     getEnvString("CORS_ALLOWED_ORIGINS", "*"),
		ActivityLogSize: getEnvInt("ACTIVITY_LOG_SIZE", 100),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Address returns the listen address in host:port form.
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func (c *Config) validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.ServerPort)
	}

	level := strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level '%s': must be debug, info, warn, or error", c.LogLevel)
	}
	c.LogLevel = level

	format := strings.ToLower(strings.TrimSpace(c.LogFormat))
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format '%s': must be text or json", c.LogFormat)
	}
	c.LogFormat = format

	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("invalid shutdown timeout %v: must not exceed 5 minutes", c.ShutdownTimeout)
	}

	c.CORSOrigins = strings.TrimSpace(c.CORSOrigins)
	if c.CORSOrigins == "" {
		return fmt.Errorf("cors allowed origins cannot be empty")
	}

	if c.ActivityLogSize < 1 {
		return fmt.Errorf("invalid activity log size %d: must be at least 1", c.ActivityLogSize)
	}

	return nil
}
