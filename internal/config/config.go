// Package config centralizes how Shopfloor reads environment variables
// and exposes them as strongly typed values.
package config

import (
	"crypto/rand"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents runtime configuration for the service.
type Config struct {
	Address        string
	AppEnv         string
	JWTSecret      []byte
	TokenTTL       time.Duration
	SweepInterval  time.Duration
	NotifyCooldown time.Duration
	StatsTTL       time.Duration
	QRBaseURL      string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	DatabaseDSN    string
	SeedDemoData   bool
}

const (
	defaultAddress       = ":8080"
	defaultTokenTTL      = 12 * time.Hour
	defaultSweepInterval = 5 * time.Minute
	defaultCooldown      = 30 * time.Minute
	defaultStatsTTL      = time.Minute
	defaultQRBaseURL     = "https://shopfloor.local/parts"
)

// Load reads configuration from environment variables falling back to
// defaults. A missing JWT secret is generated, which is fine for a
// single-instance dev deployment; production sets SHOPFLOOR_JWT_SECRET.
func Load() (*Config, error) {
	cfg := &Config{
		Address:        readEnv("SHOPFLOOR_ADDRESS", defaultAddress),
		AppEnv:         readEnv("APP_ENV", "development"),
		JWTSecret:      parseSecret("SHOPFLOOR_JWT_SECRET"),
		TokenTTL:       parseDuration("SHOPFLOOR_TOKEN_TTL", defaultTokenTTL),
		SweepInterval:  parseDuration("SHOPFLOOR_SWEEP_INTERVAL", defaultSweepInterval),
		NotifyCooldown: parseDuration("SHOPFLOOR_NOTIFY_COOLDOWN", defaultCooldown),
		StatsTTL:       parseDuration("SHOPFLOOR_STATS_TTL", defaultStatsTTL),
		QRBaseURL:      readEnv("SHOPFLOOR_QR_BASE_URL", defaultQRBaseURL),
		RedisAddr:      readEnv("REDIS_ADDR", ""),
		RedisPassword:  readEnv("REDIS_PASSWORD", ""),
		RedisDB:        parseInt("REDIS_DB", 0),
		DatabaseDSN:    readEnv("SHOPFLOOR_DB_DSN", ""),
		SeedDemoData:   parseBool("SHOPFLOOR_SEED_DEMO", true),
	}
	if cfg.JWTSecret == nil {
		cfg.JWTSecret = randomSecret()
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaultSweepInterval
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return cfg, nil
}

func readEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func parseInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return def
}

func parseDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}

func parseSecret(key string) []byte {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return []byte(v)
	}
	return nil
}

func randomSecret() []byte {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return []byte("shopfloor-dev-secret")
	}
	return buf
}
