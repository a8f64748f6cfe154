// Package config loads application settings from a .env file and environment variables.
// Environment variables always take precedence over .env file values.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// Supported session backends.
const (
	SessionSQL   = "sql"
	SessionRedis = "redis"
)

// Config holds all application configuration.
type Config struct {
	// Database – either set DatabaseURL directly, or the individual (postgres) fields.
	DBDriver    string
	DatabaseURL string
	DBUser      string
	DBPass      string
	DBHost      string
	DBPort      string
	DBName      string
	DBSSLMode   string

	// Session cookie signing secret (required).
	SecretKey      string
	SessionBackend string
	SessionTTL     time.Duration
	CookieSecure   bool

	// Redis – used only when SessionBackend is "redis".
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Server
	Debug      bool
	Port       string
	TLSDomains []string

	// Source database – used only by cmd/migrate.
	SourceDriver string
	SourceDSN    string
}

// Load reads configuration from a .env file (if present) and then from
// environment variables. Environment variables always win.
func Load() (*Config, error) {
	v := newViper()

	// Defaults
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_USER", "recipes")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "recipes")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SESSION_BACKEND", SessionSQL)
	v.SetDefault("SESSION_TTL", "168h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("PORT", ":5555")
	v.SetDefault("DEBUG", false)
	v.SetDefault("SOURCE_DRIVER", DriverMySQL)

	cfg := &Config{
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBUser:         v.GetString("DB_USER"),
		DBPass:         v.GetString("DB_PASS"),
		DBHost:         v.GetString("DB_HOST"),
		DBPort:         v.GetString("DB_PORT"),
		DBName:         v.GetString("DB_NAME"),
		DBSSLMode:      v.GetString("DB_SSLMODE"),
		SecretKey:      v.GetString("SECRET_KEY"),
		SessionBackend: strings.ToLower(v.GetString("SESSION_BACKEND")),
		SessionTTL:     v.GetDuration("SESSION_TTL"),
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		Debug:          v.GetBool("DEBUG"),
		Port:           v.GetString("PORT"),
		TLSDomains:     splitTrimmed(v.GetString("TLS_DOMAINS")),
		SourceDriver:   strings.ToLower(v.GetString("SOURCE_DRIVER")),
		SourceDSN:      v.GetString("SOURCE_DSN"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DSN returns the connection string for the configured driver.
// DATABASE_URL takes precedence over individual fields, which describe a
// PostgreSQL server.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser,
		c.DBPass,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.DBSSLMode,
	)
}

// SessionKey returns the session cookie signing key as a byte slice.
func (c *Config) SessionKey() []byte {
	return []byte(c.SecretKey)
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" && c.DBPass == "" {
			return errors.New("config: DATABASE_URL or DB_PASS must be set")
		}
	case DriverMySQL, DriverSQLite:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL must be set for driver %q", c.DBDriver)
		}
	default:
		return fmt.Errorf("config: unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.SecretKey == "" {
		return errors.New("config: SECRET_KEY must be set")
	}
	if c.SessionBackend != SessionSQL && c.SessionBackend != SessionRedis {
		return fmt.Errorf("config: unsupported SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: SESSION_TTL must be positive")
	}
	if !c.Debug && len(c.TLSDomains) == 0 {
		return errors.New("config: TLS_DOMAINS must be set unless DEBUG is enabled")
	}
	return nil
}

func newViper() *viper.Viper {
	// Silently load .env – OK if the file doesn't exist (production uses real env vars).
	if err := godotenv.Load(); err != nil {
		log.Println("config: no .env file found, using environment variables only")
	}

	v := viper.New()
	v.AutomaticEnv()
	return v
}

func splitTrimmed(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
