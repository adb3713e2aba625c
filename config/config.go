package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	perrors "sjsage522/pokerscraper/pkg/errors"
)

// Render modes select the page provider implementation
const (
	RenderModeBrowser = "browser"
	RenderModeHTTP    = "http"
	RenderModeFixture = "fixture"
)

// Config represents the application configuration
type Config struct {
	// Browser configuration
	RenderMode       string
	BrowserHeadless  bool
	BrowserRemoteURL string
	BrowserTimeout   time.Duration

	// Navigation configuration
	NavigationTimeout time.Duration
	ScrapeDelayMin    time.Duration
	ScrapeDelayMax    time.Duration
	MaxRetries        int
	JSSettle          time.Duration
	ContentWait       time.Duration
	ContentMinLength  int

	// Providers to scrape, in request order
	Providers         []string
	ScrapeConcurrency int
	DebugRawHTML      bool

	// URLs for the provider scrapers
	ClubGGURL          string
	GGPokerURL         string
	GGPokerScheduleURL string
	PokerStarsURL      string

	// Heuristic bounds in whole currency units; zero keeps the provider default
	BuyInMin  float64
	BuyInMax  float64
	StakesMin float64
	StakesMax float64

	// Static HTTP fetching
	HTTPRequestsPerMinute int
	FixtureDir            string

	// Redis configuration
	RedisAddr            string
	RedisDB              int
	RedisStream          string
	RedisStreamCount     int
	RedisStreamMaxLength int

	// Memcache configuration
	MemcacheAddr string
	BlockTime    time.Duration

	// Worker configuration
	CrawlInterval time.Duration

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	return &Config{
		RenderMode:       strings.ToLower(getEnv("RENDER_MODE", RenderModeBrowser)),
		BrowserHeadless:  getEnvBool("BROWSER_HEADLESS", true),
		BrowserRemoteURL: getEnv("BROWSER_REMOTE_URL", ""),
		BrowserTimeout:   getEnvMillis("BROWSER_TIMEOUT_MS", 30000),

		NavigationTimeout: getEnvMillis("NAVIGATION_TIMEOUT_MS", 20000),
		ScrapeDelayMin:    getEnvSeconds("SCRAPE_DELAY_MIN", 1.0),
		ScrapeDelayMax:    getEnvSeconds("SCRAPE_DELAY_MAX", 3.0),
		MaxRetries:        getEnvInt("MAX_RETRIES", 3),
		JSSettle:          getEnvMillis("JS_SETTLE_MS", 2000),
		ContentWait:       getEnvMillis("CONTENT_WAIT_MS", 10000),
		ContentMinLength:  getEnvInt("CONTENT_MIN_LENGTH", 100),

		Providers:         getEnvList("PROVIDERS", []string{"CLUB_GG", "GG_POKER", "POKERSTARS"}),
		ScrapeConcurrency: getEnvInt("SCRAPE_CONCURRENCY", 3),
		DebugRawHTML:      getEnvBool("DEBUG_RAW_HTML", false),

		ClubGGURL:          getEnv("CLUBGG_URL", "https://www.clubgg.com"),
		GGPokerURL:         getEnv("GGPOKER_URL", "https://www.ggpoker.com/tournaments"),
		GGPokerScheduleURL: getEnv("GGPOKER_SCHEDULE_URL", "https://www.ggpoker.com/promotions/tournament-schedule"),
		PokerStarsURL:      getEnv("POKERSTARS_URL", "https://www.pokerstars.com/poker/tournaments/"),

		BuyInMin:  getEnvFloat("BUYIN_MIN", 0),
		BuyInMax:  getEnvFloat("BUYIN_MAX", 0),
		StakesMin: getEnvFloat("STAKES_MIN", 0),
		StakesMax: getEnvFloat("STAKES_MAX", 0),

		HTTPRequestsPerMinute: getEnvInt("HTTP_REQUESTS_PER_MINUTE", 30),
		FixtureDir:            getEnv("FIXTURE_DIR", "fixtures"),

		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		RedisStream:          getEnv("REDIS_STREAM", "poker_results"),
		RedisStreamCount:     getEnvInt("REDIS_STREAM_COUNT", 1),
		RedisStreamMaxLength: getEnvInt("REDIS_STREAM_MAX_LENGTH", 500),

		MemcacheAddr: getEnv("MEMCACHE_ADDR", "localhost:11211"),
		BlockTime:    time.Duration(getEnvInt("BLOCK_TIME_SECONDS", 300)) * time.Second,

		CrawlInterval: time.Duration(getEnvInt("CRAWL_INTERVAL_SECONDS", 900)) * time.Second,

		Environment: getEnv("POKER_ENVIRONMENT", "development"),
	}
}

// Validate checks the configuration for values the scrapers cannot run with
func (c *Config) Validate() error {
	switch c.RenderMode {
	case RenderModeBrowser, RenderModeHTTP, RenderModeFixture:
	default:
		return perrors.NewConfiguration(fmt.Sprintf("unknown RENDER_MODE %q", c.RenderMode), nil)
	}
	if c.MaxRetries < 1 {
		return perrors.NewConfiguration("MAX_RETRIES must be at least 1", nil)
	}
	if c.ScrapeDelayMin < 0 || c.ScrapeDelayMax < c.ScrapeDelayMin {
		return perrors.NewConfiguration(
			fmt.Sprintf("invalid scrape delay range [%v, %v]", c.ScrapeDelayMin, c.ScrapeDelayMax), nil)
	}
	if c.NavigationTimeout <= 0 {
		return perrors.NewConfiguration("NAVIGATION_TIMEOUT_MS must be positive", nil)
	}
	if len(c.Providers) == 0 {
		return perrors.NewConfiguration("PROVIDERS must name at least one provider", nil)
	}
	if c.ScrapeConcurrency < 0 {
		return perrors.NewConfiguration("SCRAPE_CONCURRENCY must not be negative", nil)
	}
	if c.BuyInMax > 0 && c.BuyInMin > c.BuyInMax {
		return perrors.NewConfiguration("BUYIN_MIN exceeds BUYIN_MAX", nil)
	}
	if c.StakesMax > 0 && c.StakesMin >= c.StakesMax {
		return perrors.NewConfiguration("STAKES_MIN must be below STAKES_MAX", nil)
	}
	if c.RedisStreamCount < 1 {
		return perrors.NewConfiguration("REDIS_STREAM_COUNT must be at least 1", nil)
	}
	return nil
}

// IsProduction reports whether the process runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvMillis reads an integer millisecond value
func getEnvMillis(key string, defaultMillis int) time.Duration {
	return time.Duration(getEnvInt(key, defaultMillis)) * time.Millisecond
}

// getEnvSeconds reads a fractional second value
func getEnvSeconds(key string, defaultSeconds float64) time.Duration {
	return time.Duration(getEnvFloat(key, defaultSeconds) * float64(time.Second))
}

// getEnvList reads a comma separated list
func getEnvList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
