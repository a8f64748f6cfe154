package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/recipeapi/config"
)

func setBase(t *testing.T) {
	t.Helper()
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("SECRET_KEY", "dev")
	t.Setenv("DEBUG", "true")
	t.Setenv("SESSION_BACKEND", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("TLS_DOMAINS", "")
}

func TestLoadDefaults(t *testing.T) {
	setBase(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverPostgres, cfg.DBDriver)
	assert.Equal(t, ":5555", cfg.Port)
	assert.Equal(t, config.SessionSQL, cfg.SessionBackend)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "postgres://recipes:pw@localhost:5432/recipes?sslmode=disable", cfg.DSN())
	assert.Equal(t, []byte("dev"), cfg.SessionKey())
}

func TestLoadEnvOverrides(t *testing.T) {
	setBase(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DATABASE_URL", "file:recipes.db?_foreign_keys=on")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("TLS_DOMAINS", " a.example , ,b.example")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "file:recipes.db?_foreign_keys=on", cfg.DSN())
	assert.Equal(t, config.SessionRedis, cfg.SessionBackend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"a.example", "b.example"}, cfg.TLSDomains)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"missing secret", map[string]string{"SECRET_KEY": ""}, "SECRET_KEY"},
		{"missing postgres password", map[string]string{"DB_PASS": ""}, "DB_PASS"},
		{"unknown driver", map[string]string{"DB_DRIVER": "oracle"}, "unsupported DB_DRIVER"},
		{"sqlite needs url", map[string]string{"DB_DRIVER": "sqlite"}, "DATABASE_URL"},
		{"unknown session backend", map[string]string{"SESSION_BACKEND": "memcached"}, "SESSION_BACKEND"},
		{"tls domains in production", map[string]string{"DEBUG": "false"}, "TLS_DOMAINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBase(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
