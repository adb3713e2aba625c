// Package aggregator runs provider scrapers concurrently and collects one
// entry per requested provider. A failing or panicking scraper only
// affects its own entry.
package aggregator

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	"sjsage522/pokerscraper/internal/crawler"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/logger"
)

// Scrapers looks up the scraper for a provider
type Scrapers interface {
	Get(provider poker.Provider) (crawler.Scraper, bool)
}

// Entry is one provider's outcome
type Entry struct {
	Provider poker.Provider       `json:"provider"`
	Success  bool                 `json:"success"`
	Error    string               `json:"error,omitempty"`
	Result   *poker.ScraperResult `json:"result,omitempty"`
}

// Aggregator fans scrapes out across providers
type Aggregator struct {
	scrapers    Scrapers
	providers   []poker.Provider
	concurrency int
	log         *logger.Logger
}

// New creates an aggregator for providers, in request order. concurrency
// caps simultaneous scrapes; zero means no cap.
func New(scrapers Scrapers, providers []poker.Provider, concurrency int) *Aggregator {
	return &Aggregator{
		scrapers:    scrapers,
		providers:   providers,
		concurrency: concurrency,
		log:         logger.ForComponent("aggregator"),
	}
}

// Providers returns the requested providers
func (a *Aggregator) Providers() []poker.Provider {
	return a.providers
}

// ScrapeAll runs every requested provider and returns their entries in
// request order
func (a *Aggregator) ScrapeAll(ctx context.Context) []Entry {
	start := time.Now()
	entries := make([]Entry, len(a.providers))

	var g errgroup.Group
	if a.concurrency > 0 {
		g.SetLimit(a.concurrency)
	}
	for i, provider := range a.providers {
		i, provider := i, provider
		g.Go(func() error {
			entries[i] = a.ScrapeOne(ctx, provider)
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	for _, e := range entries {
		if e.Success {
			succeeded++
		}
	}
	a.log.Info().
		Int("providers", len(entries)).
		Int("succeeded", succeeded).
		Dur("elapsed", time.Since(start)).
		Msg("scrape round finished")
	return entries
}

// ScrapeOne runs a single provider with the same isolation as ScrapeAll
func (a *Aggregator) ScrapeOne(ctx context.Context, provider poker.Provider) (entry Entry) {
	entry.Provider = provider

	defer func() {
		if r := recover(); r != nil {
			a.log.Error().
				Str("provider", string(provider)).
				Str("stack", string(debug.Stack())).
				Msgf("scraper panicked: %v", r)
			entry = Entry{Provider: provider, Error: fmt.Sprintf("scraper panicked: %v", r)}
		}
	}()

	s, ok := a.scrapers.Get(provider)
	if !ok {
		entry.Error = fmt.Sprintf("no scraper registered for %s", provider)
		return entry
	}

	result := s.Scrape(ctx)
	if result == nil {
		entry.Error = "scraper returned no result"
		return entry
	}
	entry.Result = result
	entry.Success = result.Success
	if !result.Success && len(result.Errors) > 0 {
		entry.Error = result.Errors[0]
	}
	return entry
}
