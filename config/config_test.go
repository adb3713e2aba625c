package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, RenderModeBrowser, config.RenderMode)
	assert.True(t, config.BrowserHeadless)
	assert.Equal(t, 30*time.Second, config.BrowserTimeout)
	assert.Equal(t, 20*time.Second, config.NavigationTimeout)
	assert.Equal(t, time.Second, config.ScrapeDelayMin)
	assert.Equal(t, 3*time.Second, config.ScrapeDelayMax)
	assert.Equal(t, 3, config.MaxRetries)
	assert.Equal(t, []string{"CLUB_GG", "GG_POKER", "POKERSTARS"}, config.Providers)
	assert.Equal(t, "localhost:6379", config.RedisAddr)
	assert.Equal(t, "localhost:11211", config.MemcacheAddr)
	require.NoError(t, config.Validate())

	// Test with environment variables
	t.Setenv("RENDER_MODE", "HTTP")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("SCRAPE_DELAY_MIN", "0.5")
	t.Setenv("SCRAPE_DELAY_MAX", "1.5")
	t.Setenv("MAX_RETRIES", "5")
	t.Setenv("PROVIDERS", "gg_poker, pokerstars ,")
	t.Setenv("STAKES_MAX", "500")
	t.Setenv("CRAWL_INTERVAL_SECONDS", "30")

	config = LoadConfig()
	assert.Equal(t, RenderModeHTTP, config.RenderMode)
	assert.False(t, config.BrowserHeadless)
	assert.Equal(t, 500*time.Millisecond, config.ScrapeDelayMin)
	assert.Equal(t, 1500*time.Millisecond, config.ScrapeDelayMax)
	assert.Equal(t, 5, config.MaxRetries)
	assert.Equal(t, []string{"gg_poker", "pokerstars"}, config.Providers)
	assert.Equal(t, 500.0, config.StakesMax)
	assert.Equal(t, 30*time.Second, config.CrawlInterval)
	assert.NoError(t, config.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"bad render mode", func(c *Config) { c.RenderMode = "carrier-pigeon" }, "RENDER_MODE"},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, "MAX_RETRIES"},
		{"inverted delay", func(c *Config) { c.ScrapeDelayMax = c.ScrapeDelayMin / 2 }, "delay"},
		{"no providers", func(c *Config) { c.Providers = nil }, "PROVIDERS"},
		{"inverted stakes", func(c *Config) { c.StakesMin, c.StakesMax = 10, 5 }, "STAKES_MIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := LoadConfig()
			tt.mutate(config)
			err := config.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
