package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Logging  LoggingConfig

	// SeedDemo loads a demo artist with a small catalog into an empty store.
	SeedDemo bool
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds database connection settings. An empty URL keeps the
// catalog in memory only.
type DatabaseConfig struct {
	URL         string
	AutoMigrate bool
}

// AuthConfig selects how bearer tokens are validated.
type AuthConfig struct {
	Mode       string // remote, jwt
	ServiceURL string
	JWTSecret  string
	CookieName string
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// RedisConfig enables the token validation cache when URL is set.
type RedisConfig struct {
	URL string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from the environment, after merging an optional
// .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	var problems []string

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		problems = append(problems, "PORT must be a number")
	}
	cfg.Server = ServerConfig{Port: port, Host: getEnvOrDefault("HOST", "0.0.0.0")}

	cfg.Database = DatabaseConfig{
		URL:         os.Getenv("DATABASE_URL"),
		AutoMigrate: getBool("DB_AUTO_MIGRATE", true, &problems),
	}

	cfg.Auth = AuthConfig{
		Mode:       strings.ToLower(getEnvOrDefault("AUTH_MODE", "remote")),
		ServiceURL: os.Getenv("AUTH_SERVICE_URL"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		CookieName: getEnvOrDefault("AUTH_COOKIE", "oversound_auth"),
		Timeout:    getDuration("AUTH_TIMEOUT", 5*time.Second, &problems),
		CacheTTL:   getDuration("AUTH_CACHE_TTL", time.Minute, &problems),
	}
	cfg.Redis = RedisConfig{URL: os.Getenv("REDIS_URL")}
	cfg.CORS = CORSConfig{AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))}
	cfg.Logging = LoggingConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}
	cfg.SeedDemo = getBool("SEED_DEMO", false, &problems)

	if len(problems) > 0 {
		return nil, fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	switch c.Auth.Mode {
	case "remote":
		if c.Auth.ServiceURL == "" {
			errors = append(errors, "AUTH_SERVICE_URL is required when AUTH_MODE=remote")
		}
	case "jwt":
		if len(c.Auth.JWTSecret) < 16 {
			errors = append(errors, "JWT_SECRET must be at least 16 characters when AUTH_MODE=jwt")
		}
	default:
		errors = append(errors, "AUTH_MODE must be one of: remote, jwt")
	}
	if c.Auth.CookieName == "" {
		errors = append(errors, "AUTH_COOKIE must not be empty")
	}
	if c.Auth.Timeout <= 0 {
		errors = append(errors, "AUTH_TIMEOUT must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, fallback bool, problems *[]string) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		*problems = append(*problems, key+" must be a boolean")
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration, problems *[]string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		*problems = append(*problems, key+" must be a duration such as 5s")
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
