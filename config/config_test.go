package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("STORAGE_DRIVER", "local")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "local", cfg.StorageDriver)
}

func TestLoadConfigRequiresSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownStorage(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_DRIVER", "ftp")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("X_DURATION", "90m")
	assert.Equal(t, 90*time.Minute, getEnvDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "30")
	assert.Equal(t, 30*time.Second, getEnvDuration("X_DURATION", time.Second))

	t.Setenv("X_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvDuration("X_DURATION", time.Second))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"https://a.dev", "http://localhost:3000"}, splitList(" https://a.dev/ ,,http://localhost:3000"))
	assert.Nil(t, splitList(""))
}
