package crawler

import (
	"context"
	"time"

	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/internal/strategy"
)

// Scraper interface defines the contract for all provider scrapers
type Scraper interface {
	// Scrape runs one scrape. It always returns a finalized result; failures
	// are reported through its errors list and success flag.
	Scrape(ctx context.Context) *poker.ScraperResult

	// Provider returns the provider the scraper lists games for
	Provider() poker.Provider
}

// Policy selects how a site runs its strategies
type Policy int

const (
	// PolicyRunAll runs every strategy and unions the results
	PolicyRunAll Policy = iota
	// PolicyFallback stops at the first strategy that produced games
	PolicyFallback
)

func (p Policy) String() string {
	if p == PolicyFallback {
		return "fallback"
	}
	return "run-all"
}

// RegexOptions toggles the regex strategy's game kinds
type RegexOptions struct {
	Tournaments bool
	Cash        bool
}

func (o RegexOptions) enabled() bool {
	return o.Tournaments || o.Cash
}

// Site contains the configuration for one provider scraper
type Site struct {
	Provider poker.Provider
	// URLs are tried in order; the first that loads is scraped
	URLs      []string
	WaitForJS bool

	Selectors []strategy.SelectorGroup
	Regex     RegexOptions
	Embedded  strategy.EmbeddedConfig
	Bounds    parser.Bounds
	Policy    Policy

	ClubID   string
	ClubName string

	// Cooldown after a failed navigation
	CacheKey  string
	BlockTime time.Duration
}
