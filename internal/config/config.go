package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the drive-time checker.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP server.
// - ProviderType: The type of routing provider to use (google, ors).
// - APIKey: The API key for accessing the routing provider.
// - MaxRetries: The maximum number of attempts per routing request.
// - Timeout: The per-request timeout for routing calls.
// - Workers: The number of concurrent workers resolving candidates.
// - RateLimit: The provider request budget in requests per second.
type Config struct {
	Env          string        // Env is the current environment: local, development, production.
	Port         int           // Port is the HTTP server port.
	ProviderType string        // ProviderType specifies which routing provider to use.
	APIKey       string        // The API key for accessing the routing provider.
	MaxRetries   int           // The maximum number of attempts per routing request.
	Timeout      time.Duration // The per-request timeout for routing calls.
	Workers      int           // The number of concurrent workers resolving candidates.
	RateLimit    int           // The provider request budget in requests per second.
}

// MustLoad loads the configuration from the environment (and an optional .env
// file) and returns a Config struct. It panics when a value cannot be parsed
// or violates its bounds, since the process cannot run without valid settings.
func MustLoad() *Config {
	_ = godotenv.Load()

	vpr := viper.New()
	vpr.SetEnvPrefix("HERMES")
	vpr.AutomaticEnv()

	vpr.SetDefault("env", "production")
	vpr.SetDefault("port", 8080)
	vpr.SetDefault("provider_type", "google")
	vpr.SetDefault("max_retries", 3)
	vpr.SetDefault("timeout", "10s")
	vpr.SetDefault("workers", 4)
	vpr.SetDefault("rate_limit", 10)

	cfg := &Config{
		Env:          vpr.GetString("env"),
		Port:         vpr.GetInt("port"),
		ProviderType: vpr.GetString("provider_type"),
		APIKey:       vpr.GetString("provider_key"),
		MaxRetries:   vpr.GetInt("max_retries"),
		Timeout:      vpr.GetDuration("timeout"),
		Workers:      vpr.GetInt("workers"),
		RateLimit:    vpr.GetInt("rate_limit"),
	}

	if cfg.Port <= 0 {
		panic("failed to parse port from configuration, must be a positive integer")
	}
	if cfg.MaxRetries < 1 {
		panic("failed to parse max retries from configuration, must be a positive integer")
	}
	if cfg.Timeout <= 0 {
		panic("failed to parse timeout from configuration, must be a positive duration")
	}
	if cfg.Workers < 1 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	return cfg
}
