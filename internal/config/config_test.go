package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "APP_BASE_PATH", "POSTGRES_DSN", "REDIS_ADDR", "REDIS_DB",
		"AUTH_REQUIRE_TOKEN", "HTTP_CORS_ALLOWED_ORIGIN", "EXPIRY_SWEEP_INTERVAL_MINUTES",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "", cfg.App.BasePath)
	assert.Equal(t, "http://localhost:3000", cfg.HTTP.CORSAllowedOrigin)
	assert.Equal(t, 30*time.Second, cfg.HTTP.RequestTimeout())
	assert.Empty(t, cfg.Redis.Addr)
	assert.False(t, cfg.Auth.RequireToken)
	assert.Equal(t, time.Duration(0), cfg.Expiry.SweepInterval())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_BASE_PATH", "api/")
	t.Setenv("AUTH_REQUIRE_TOKEN", "true")
	t.Setenv("AUTH_BCRYPT_COST", "not-a-number")
	t.Setenv("EXPIRY_SWEEP_INTERVAL_MINUTES", "15")
	t.Setenv("REDIS_DB", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "/api", cfg.App.BasePath)
	assert.True(t, cfg.Auth.RequireToken)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.Expiry.SweepInterval())
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoadRejectsInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_DB")
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":      "",
		"/":     "",
		"api":   "/api",
		"/api/": "/api",
		" /v1 ": "/v1",
		"a/b/":  "/a/b",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeBasePath(in), "input %q", in)
	}
}
