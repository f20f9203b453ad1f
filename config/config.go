// Package config centralizes the service configuration.
// Values come from environment variables; a .env file is loaded first when present.
//
// One Config value is built at startup and passed down, instead of scattering
// os.Getenv calls through the code.
package config

import (
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/akinalp/bloglist/pkg/logger"
	"github.com/akinalp/bloglist/pkg/ratelimit"
)

// Config carries every configuration value.
// Each sub-struct covers one concern.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Log      logger.Config
	CORS     CORSConfig
	Stats    StatsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string // SQLite file path (e.g. ./data/bloglist.db)
}

// AuthConfig holds token and password settings.
type AuthConfig struct {
	Secret             string        // token signing key, keep it secret
	TokenExpiry        time.Duration // lifetime of issued tokens
	BcryptCost         int
	LoginRatePerMinute int // login attempts allowed per client IP per minute
	// TrustedProxies may set X-Forwarded-For / X-Real-IP. Empty means the
	// TCP peer is always the client.
	TrustedProxies []netip.Prefix
}

// CORSConfig lists allowed browser origins.
type CORSConfig struct {
	AllowedOrigins []string
}

// StatsConfig controls the aggregate cache.
type StatsConfig struct {
	CacheTTL time.Duration
}

// Load builds a Config from environment variables.
// A missing .env file is not an error; in production real env vars are used.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := getEnvInt("SERVER_PORT", 3003)
	if err != nil {
		return nil, err
	}

	expiryMinutes, err := getEnvInt("JWT_EXPIRY_MINUTES", 60)
	if err != nil {
		return nil, err
	}

	bcryptCost, err := getEnvInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}

	loginRate, err := getEnvInt("LOGIN_RATE_PER_MINUTE", 10)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := getEnvInt("STATS_CACHE_TTL_SECONDS", 30)
	if err != nil {
		return nil, err
	}

	trustedProxies, err := ratelimit.ParsePrefixes(splitList(getEnv("TRUSTED_PROXIES", "")))
	if err != nil {
		return nil, fmt.Errorf("invalid TRUSTED_PROXIES: %w", err)
	}

	secret := getEnv("SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("SECRET environment variable is required")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: port,
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/bloglist.db"),
		},
		Auth: AuthConfig{
			Secret:             secret,
			TokenExpiry:        time.Duration(expiryMinutes) * time.Minute,
			BcryptCost:         bcryptCost,
			LoginRatePerMinute: loginRate,
			TrustedProxies:     trustedProxies,
		},
		Log: logger.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", logger.FormatJSON),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		},
		Stats: StatsConfig{
			CacheTTL: time.Duration(cacheTTL) * time.Second,
		},
	}

	if err := cfg.Log.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Addr returns the listen address (e.g. "0.0.0.0:3003").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv reads an environment variable, falling back when unset.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
