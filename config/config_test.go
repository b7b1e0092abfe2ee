package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LICENSE_TOKEN_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Server.TrustProxyHeaders)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 8760*time.Hour, cfg.Token.TTL)
	assert.Equal(t, 7, cfg.Grace.Days)
	assert.Equal(t, 5, cfg.RateLimit.ActivatePerWindow)
	assert.Equal(t, 60, cfg.RateLimit.ValidatePerWindow)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, "memory", cfg.RateLimit.Backend)
	assert.Empty(t, cfg.Device.HashSalt)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LICENSE_TOKEN_SECRET", testSecret)
	t.Setenv("LICENSE_SERVER_PORT", "9090")
	t.Setenv("LICENSE_DEVICE_HASH_SALT", "deploy-a")
	t.Setenv("LICENSE_GRACE_DAYS", "3")
	t.Setenv("LICENSE_RATE_LIMIT_BACKEND", "redis")
	t.Setenv("LICENSE_RATE_LIMIT_REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "deploy-a", cfg.Device.HashSalt)
	assert.Equal(t, 3, cfg.Grace.Days)
	assert.Equal(t, "redis", cfg.RateLimit.Backend)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("LICENSE_TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("LICENSE_TOKEN_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoad_InvalidDriver(t *testing.T) {
	t.Setenv("LICENSE_TOKEN_SECRET", testSecret)
	t.Setenv("LICENSE_DATABASE_DRIVER", "oracle")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite or mysql")
}

func TestLoad_RedisBackendRequiresURL(t *testing.T) {
	t.Setenv("LICENSE_TOKEN_SECRET", testSecret)
	t.Setenv("LICENSE_RATE_LIMIT_BACKEND", "redis")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_URL")
}

func TestLoad_RedisURLScheme(t *testing.T) {
	t.Setenv("LICENSE_TOKEN_SECRET", testSecret)
	t.Setenv("LICENSE_RATE_LIMIT_BACKEND", "redis")
	t.Setenv("LICENSE_RATE_LIMIT_REDIS_URL", "localhost:6379")

	_, err := Load()
	require.Error(t, err)
}
