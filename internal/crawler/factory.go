package crawler

import (
	"sjsage522/pokerscraper/config"
	"sjsage522/pokerscraper/internal/browser"
	"sjsage522/pokerscraper/internal/navigator"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/logger"
	perrors "sjsage522/pokerscraper/pkg/errors"
	"sjsage522/pokerscraper/services/cache"
)

// Registry holds scrapers by provider in registration order
type Registry struct {
	scrapers map[poker.Provider]Scraper
	order    []poker.Provider
}

// NewRegistry registers scrapers; a later scraper replaces an earlier one
// for the same provider
func NewRegistry(scrapers ...Scraper) *Registry {
	r := &Registry{scrapers: make(map[poker.Provider]Scraper)}
	for _, s := range scrapers {
		r.Register(s)
	}
	return r
}

func (r *Registry) Register(s Scraper) {
	p := s.Provider()
	if _, exists := r.scrapers[p]; !exists {
		r.order = append(r.order, p)
	}
	r.scrapers[p] = s
}

// Get returns the scraper for provider
func (r *Registry) Get(provider poker.Provider) (Scraper, bool) {
	s, ok := r.scrapers[provider]
	return s, ok
}

// Providers returns the registered providers in registration order
func (r *Registry) Providers() []poker.Provider {
	out := make([]poker.Provider, len(r.order))
	copy(out, r.order)
	return out
}

// NavigatorConfig maps the configuration onto navigation timing
func NavigatorConfig(cfg *config.Config) navigator.Config {
	nc := navigator.DefaultConfig()
	nc.MaxRetries = cfg.MaxRetries
	nc.DelayMin = cfg.ScrapeDelayMin
	nc.DelayMax = cfg.ScrapeDelayMax
	nc.NavigationTimeout = cfg.NavigationTimeout
	nc.JSSettle = cfg.JSSettle
	nc.ContentWait = cfg.ContentWait
	nc.MinContentLength = cfg.ContentMinLength
	return nc
}

// ResolveProviders parses provider names, keeping the given order and
// dropping repeats
func ResolveProviders(names []string) ([]poker.Provider, error) {
	var out []poker.Provider
	seen := make(map[poker.Provider]bool)
	for _, name := range names {
		p, err := poker.ParseProvider(name)
		if err != nil {
			return nil, perrors.NewConfiguration("invalid provider", err)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out, nil
}

// CreateScrapers creates a scraper for every provider with a site
// definition, sharing one page provider and cooldown cache
func CreateScrapers(cfg *config.Config, pages browser.PageProvider, cacheSvc cache.CacheService, opts ...ScraperOption) *Registry {
	navCfg := NavigatorConfig(cfg)
	registry := NewRegistry()

	for _, provider := range SupportedProviders() {
		site, err := SiteFor(provider, cfg)
		if err != nil {
			logger.Warn("skipping %s: %v", provider, err)
			continue
		}
		if len(site.URLs) == 0 {
			logger.Warn("skipping %s: no URL configured", provider)
			continue
		}

		scraperOpts := append([]ScraperOption{
			WithCache(cacheSvc),
			WithDebugRawHTML(cfg.DebugRawHTML),
		}, opts...)
		registry.Register(NewSiteScraper(site, pages, navCfg, scraperOpts...))
		logger.Debug("registered %s scraper with URLs %v", provider, site.URLs)
	}

	logger.Info("Created %d scrapers", len(registry.order))
	return registry
}
