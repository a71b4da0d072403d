package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds runtime settings read from the environment at startup.
type Config struct {
	Port         string
	DatabasePath string
	JWTSecret    string
	BcryptCost   int
	LogLevel     slog.Level

	// AuthRatePerMinute and AuthBurst bound /signup and /login per client IP.
	AuthRatePerMinute float64
	AuthBurst         float64
}

// Load reads configuration from environment variables, applying defaults and
// validating the values main cannot start without.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		DatabasePath:      getEnv("DATABASE_PATH", "weeklist.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		BcryptCost:        10,
		LogLevel:          slog.LevelInfo,
		AuthRatePerMinute: 10,
		AuthBurst:         5,
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return cfg, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return cfg, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return cfg, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	var err error
	if cfg.AuthRatePerMinute, err = positiveFloat("AUTH_RATE_LIMIT", cfg.AuthRatePerMinute); err != nil {
		return cfg, err
	}
	if cfg.AuthBurst, err = positiveFloat("AUTH_RATE_BURST", cfg.AuthBurst); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func positiveFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, parsed)
	}
	return parsed, nil
}
