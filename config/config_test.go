package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "REDIS_URL", "LOCK_BACKEND", "LOCK_TIMEOUT",
		"PROPERTY_TIMEZONE", "JWT_SECRET", "CORS_ALLOWED_ORIGINS", "RATE_LIMIT", "INVENTORY_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, LockBackendLocal, cfg.LockBackend)
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, "120-1m", cfg.RateLimit)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOCK_TIMEOUT", "750ms")
	t.Setenv("PROPERTY_TIMEZONE", "Australia/Sydney")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, LockBackendRedis, cfg.LockBackend, "redis is the default backend when REDIS_URL is set")
	assert.Equal(t, 750*time.Millisecond, cfg.LockTimeout)
	assert.Equal(t, "Australia/Sydney", cfg.Location.String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOCK_TIMEOUT", "-1s")
	t.Setenv("PROPERTY_TIMEZONE", "Mars/Olympus")
	t.Setenv("LOCK_BACKEND", "Postgres")

	cfg := Load()
	assert.Equal(t, 2*time.Second, cfg.LockTimeout)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, LockBackendPostgres, cfg.LockBackend)
}
