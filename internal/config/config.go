package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Throttle ThrottleConfig
	Redis    RedisConfig
	Docs     DocsConfig
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int
}

// DatabaseConfig holds the postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string
}

// AuthConfig holds the RSA signing keys and token lifetimes.
type AuthConfig struct {
	PrivateKey      string
	PublicKey       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// ThrottleConfig holds the request rate limiter settings.
type ThrottleConfig struct {
	TTL   time.Duration
	Limit int
}

// RedisConfig holds the optional redis backend for throttling.
// Throttling is disabled when Addr is empty.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// DocsConfig controls whether swagger documentation is served.
type DocsConfig struct {
	Enabled bool
}

// Load builds Config from environment variables. A missing required key or a
// value that cannot be coerced makes Load fail; callers are expected to treat
// that as fatal so the process never starts half-configured.
func Load() (*Config, error) {
	l := &loader{}

	cfg := &Config{
		Server: ServerConfig{
			Port: l.getInt("PORT", 4000),
		},
		Database: DatabaseConfig{
			Host:     l.requireString("DB_HOST"),
			Port:     l.getInt("DB_PORT", 5432),
			Username: l.requireString("DB_USERNAME"),
			Password: l.requireString("DB_PASSWORD"),
			Database: l.requireString("DB_DATABASE"),
		},
		Auth: AuthConfig{
			PrivateKey:      l.requireString("JWT_PRIVATE_KEY"),
			PublicKey:       l.requireString("JWT_PUBLIC_KEY"),
			AccessTokenTTL:  time.Duration(l.getInt("JWT_EXPIRATION_TIME", 3600)) * time.Second,
			RefreshTokenTTL: time.Duration(l.getInt("JWT_REFRESH_EXPIRATION_TIME", 604800)) * time.Second,
		},
		Throttle: ThrottleConfig{
			TTL:   time.Duration(l.getInt("THROTTLE_TTL", 60)) * time.Second,
			Limit: l.getInt("THROTTLE_LIMIT", 10),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       l.getInt("REDIS_DB", 0),
		},
		Docs: DocsConfig{
			Enabled: l.requireBool("ENABLE_DOCUMENTATION"),
		},
	}

	if l.err != nil {
		return nil, l.err
	}
	return cfg, nil
}

// loader records the first lookup failure so Load can report it once.
type loader struct {
	err error
}

func (l *loader) requireString(key string) string {
	v := os.Getenv(key)
	if v == "" {
		l.fail("%s environment variable is not set", key)
		return ""
	}
	// PEM keys are often stored single-line with escaped newlines.
	return strings.ReplaceAll(v, `\n`, "\n")
}

func (l *loader) getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		l.fail("%s environment variable is not a number", key)
		return def
	}
	return parsed
}

func (l *loader) requireBool(key string) bool {
	v := os.Getenv(key)
	if v == "" {
		l.fail("%s environment variable is not set", key)
		return false
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		l.fail("%s environment variable is not a boolean", key)
		return false
	}
	return parsed
}

func (l *loader) fail(format string, args ...interface{}) {
	if l.err == nil {
		l.err = fmt.Errorf(format, args...)
	}
}
