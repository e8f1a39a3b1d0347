package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.pe/")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "https://api.example.pe", cfg.APIBaseURL)
	assert.Equal(t, "/api/refresh", cfg.RefreshPath)
	assert.Equal(t, 5*time.Second, cfg.BannerTTL)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 168*time.Hour, cfg.SessionMaxAge)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:8000")
	t.Setenv("RUN_ADDRESS", ":9090")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("API_RATE_RPS", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":9090", cfg.Address)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 2.5, cfg.RateRPS)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			APIBaseURL:    "http://localhost:8000",
			DBDriver:      "sqlite",
			RateRPS:       1,
			RateBurst:     1,
			BannerTTL:     time.Second,
			SessionMaxAge: time.Hour,
			PruneInterval: time.Minute,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing base url", func(c *Config) { c.APIBaseURL = "" }},
		{"relative base url", func(c *Config) { c.APIBaseURL = "/api" }},
		{"unknown driver", func(c *Config) { c.DBDriver = "postgres" }},
		{"zero rate", func(c *Config) { c.RateRPS = 0 }},
		{"zero banner ttl", func(c *Config) { c.BannerTTL = 0 }},
		{"zero session age", func(c *Config) { c.SessionMaxAge = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, base().Validate())
}
