package config_test

import (
	"testing"
	"time"

	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad_Defaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 10, cfg.RateLimit)
}

func TestMustLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HERMES_ENV", "local")
	t.Setenv("HERMES_PORT", "9090")
	t.Setenv("HERMES_PROVIDER_TYPE", "ors")
	t.Setenv("HERMES_PROVIDER_KEY", "testAPIKey")
	t.Setenv("HERMES_MAX_RETRIES", "5")
	t.Setenv("HERMES_TIMEOUT", "30s")
	t.Setenv("HERMES_WORKERS", "8")
	t.Setenv("HERMES_RATE_LIMIT", "2")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "ors", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.APIKey)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 2, cfg.RateLimit)
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("HERMES_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}

func TestMustLoad_MaxRetriesError(t *testing.T) {
	t.Setenv("HERMES_MAX_RETRIES", "error_value")

	assert.PanicsWithValue(t, "failed to parse max retries from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("HERMES_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse timeout from configuration, must be a positive duration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_WorkersError(t *testing.T) {
	t.Setenv("HERMES_WORKERS", "error_value")

	assert.PanicsWithValue(t, "failed to parse workers from configuration, must be a positive integer", func() {
		config.MustLoad()
	})
}
