// ABOUTME: Configuration loader for the sizing service
// ABOUTME: Loads settings from an optional .env file and environment variables with defaults

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, lifetime of memoized advanced reports
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	ShutdownTimeout    int      // seconds to drain in-flight requests on SIGTERM

	// Rate Limiting
	RateLimitEnabled  bool // Enable rate limiting (default: true)
	RateLimitEstimate int  // Requests per minute for estimate endpoints (default: 60)
	RateLimitDefault  int  // Requests per minute for all other endpoints (default: 100)

	// Observability
	MetricsEnabled bool // Expose /metrics (default: true)
}

// Load reads configuration from the environment. A .env file in the working
// directory, or the file named by ENV_FILE, is loaded first without
// overriding variables that are already set.
func Load() (*Config, error) {
	if err := loadDotEnv(getEnv("ENV_FILE", ".env")); err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		ShutdownTimeout:    getEnvInt("SHUTDOWN_TIMEOUT", 10),

		RateLimitEnabled:  getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitEstimate: getEnvInt("RATE_LIMIT_ESTIMATE", 60),
		RateLimitDefault:  getEnvInt("RATE_LIMIT_DEFAULT", 100),

		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.Port)
	}
	if cfg.CacheTTL < 0 {
		return nil, fmt.Errorf("CACHE_TTL must not be negative, got %d", cfg.CacheTTL)
	}
	if cfg.ShutdownTimeout < 1 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be at least 1, got %d", cfg.ShutdownTimeout)
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_ESTIMATE", cfg.RateLimitEstimate},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

// loadDotEnv loads path into the environment. A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
