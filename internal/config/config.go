package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// Diagnostics backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the dashboard
type Config struct {
	Server      ServerConfig
	API         APIConfig
	Catalog     CatalogConfig
	Diagnostics DiagnosticsConfig
	Redis       RedisConfig
	Database    DatabaseConfig
	Upstream    UpstreamConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
}

// APIConfig holds the fitness API connection settings
type APIConfig struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// CatalogConfig holds the descriptor override file location
type CatalogConfig struct {
	File string
}

// DiagnosticsConfig selects where payload shape warnings are kept
type DiagnosticsConfig struct {
	Backend  string
	Capacity int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	DSN string
}

// UpstreamConfig holds the API readiness monitor configuration
type UpstreamConfig struct {
	CheckInterval time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 3000),
		},
		API: APIConfig{
			BaseURL: getEnv("API_BASE_URL", defaultBaseURL()),
			Token:   getEnv("API_TOKEN", ""),
			Timeout: getEnvAsDuration("API_TIMEOUT", 10*time.Second),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", "./catalog.yaml"),
		},
		Diagnostics: DiagnosticsConfig{
			Backend:  getEnv("DIAGNOSTICS_BACKEND", BackendMemory),
			Capacity: getEnvAsInt("DIAGNOSTICS_CAPACITY", 100),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DATABASE_DSN", ""),
		},
		Upstream: UpstreamConfig{
			CheckInterval: getEnvAsDuration("UPSTREAM_CHECK_INTERVAL", 30*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL: %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API timeout must be positive")
	}

	if c.Diagnostics.Capacity < 1 {
		return fmt.Errorf("diagnostics capacity must be at least 1")
	}

	switch c.Diagnostics.Backend {
	case BackendMemory, BackendRedis:
	case BackendPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database DSN is required for the postgres diagnostics backend")
		}
	default:
		return fmt.Errorf("unknown diagnostics backend: %q", c.Diagnostics.Backend)
	}

	return nil
}

// defaultBaseURL follows the Codespaces port-forward convention when available
func defaultBaseURL() string {
	if name := getEnv("CODESPACE_NAME", ""); name != "" {
		return fmt.Sprintf("https://%s-8000.app.github.dev", name)
	}
	return "http://localhost:8000"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
