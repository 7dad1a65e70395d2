package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noConfigFile(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestLoad_Defaults(t *testing.T) {
	noConfigFile(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "sqlite", cfg.DatabaseDriver)
	assert.Equal(t, "./resume.db", cfg.DatabaseURL)
	assert.Equal(t, 15*time.Minute, cfg.CodeTTL)
	assert.Equal(t, 6, cfg.CodeLength)
	assert.False(t, cfg.StrictDelivery)
	assert.Equal(t, 2*time.Hour, cfg.DraftTTL)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := "port: 9000\ncode_length: 8\nsmtp:\n  host: smtp.example.com\n  from: noreply@example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("CODE_TTL", "5m")
	t.Setenv("STRICT_DELIVERY", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.ServerPort)
	assert.Equal(t, 8, cfg.CodeLength)
	assert.Equal(t, 5*time.Minute, cfg.CodeTTL)
	assert.True(t, cfg.StrictDelivery)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"port", "PORT", "eighty"},
		{"duration", "CODE_TTL", "soon"},
		{"driver", "DATABASE_DRIVER", "mongo"},
		{"short code", "CODE_LENGTH", "4"},
		{"bool", "STRICT_DELIVERY", "maybe"},
		{"negative draft ttl", "DRAFT_TTL", "-1h"},
		{"negative code ttl", "CODE_TTL", "-5m"},
		{"negative token ttl", "TOKEN_TTL", "-24h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noConfigFile(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoad_ProductionRequiresSecret(t *testing.T) {
	noConfigFile(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}
