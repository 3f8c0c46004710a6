package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.False(t, cfg.IsProduction())

	assert.Equal(t, "fi_session", cfg.Session.CookieName)
	assert.Equal(t, 7, cfg.Session.Days)
	assert.Equal(t, "/login", cfg.Session.LoginPath)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.Duration())

	assert.Equal(t, 100, cfg.RateLimit.Max)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 5, cfg.RateLimit.LeadMax)
	assert.Equal(t, time.Hour, cfg.RateLimit.LeadWindow)

	assert.Equal(t, 72, cfg.Invite.ExpirationHours)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_COOKIE_NAME", "custom_session")
	t.Setenv("SESSION_DAYS", "14")
	t.Setenv("RATE_LIMIT_MAX", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_LEAD_MAX", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "custom_session", cfg.Session.CookieName)
	assert.Equal(t, 14, cfg.Session.Days)
	assert.Equal(t, 10, cfg.RateLimit.Max)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, 2, cfg.RateLimit.LeadMax)
}

func TestMalformedEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("SESSION_DAYS", "a week")
	t.Setenv("RATE_LIMIT_WINDOW", "sixty")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Session.Days)
	assert.Equal(t, 60*time.Second, cfg.RateLimit.Window)
}

func TestDSN(t *testing.T) {
	c := DBConfig{
		Host: "db.internal", Port: "5432", User: "app",
		Password: "secret", DBName: "faith_platform", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal port=5432 user=app password=secret dbname=faith_platform sslmode=require",
		c.GetDSN())
}
