package crawler

import (
	"context"
	"fmt"
	"time"

	"sjsage522/pokerscraper/internal/browser"
	"sjsage522/pokerscraper/internal/navigator"
	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/internal/strategy"
	"sjsage522/pokerscraper/logger"
	perrors "sjsage522/pokerscraper/pkg/errors"
	"sjsage522/pokerscraper/services/cache"
)

// SiteScraper scrapes one provider site. Each Scrape call opens its own
// page session, so one SiteScraper may serve sequential runs.
type SiteScraper struct {
	site         Site
	pages        browser.PageProvider
	navCfg       navigator.Config
	navOpts      []navigator.Option
	cooldown     cooldown
	debugRawHTML bool
	clock        func() time.Time
}

// ScraperOption customizes a SiteScraper
type ScraperOption func(*SiteScraper)

// WithNavigatorOptions passes options to every run's navigator
func WithNavigatorOptions(opts ...navigator.Option) ScraperOption {
	return func(s *SiteScraper) { s.navOpts = append(s.navOpts, opts...) }
}

// WithCache enables the cooldown after failed navigations
func WithCache(cacheSvc cache.CacheService) ScraperOption {
	return func(s *SiteScraper) { s.cooldown.cache = cacheSvc }
}

// WithDebugRawHTML keeps the rendered markup on results
func WithDebugRawHTML(enabled bool) ScraperOption {
	return func(s *SiteScraper) { s.debugRawHTML = enabled }
}

// WithClock replaces the run clock
func WithClock(clock func() time.Time) ScraperOption {
	return func(s *SiteScraper) { s.clock = clock }
}

// NewSiteScraper creates a scraper for site
func NewSiteScraper(site Site, pages browser.PageProvider, navCfg navigator.Config, opts ...ScraperOption) *SiteScraper {
	s := &SiteScraper{
		site:     site,
		pages:    pages,
		navCfg:   navCfg,
		cooldown: cooldown{key: site.CacheKey, block: site.BlockTime},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SiteScraper) Provider() poker.Provider {
	return s.site.Provider
}

// Site returns the scraper's site definition
func (s *SiteScraper) Site() Site {
	return s.site
}

// Scrape runs NotStarted -> Navigating -> Extracting -> Aggregating -> Done.
// Navigation failures end the run early with success=false and whatever
// was collected so far.
func (s *SiteScraper) Scrape(ctx context.Context) *poker.ScraperResult {
	now := s.clock()
	provider := string(s.site.Provider)
	log := logger.ForProvider(provider)
	result := poker.NewScraperResult(s.site.Provider, s.pages.Source(), now)
	r := &run{}

	fail := func(err error) *poker.ScraperResult {
		result.AddError(err.Error())
		r.advance(StateDone)
		result.Finalize(false)
		log.Warn().Err(err).Msg("scrape failed")
		return result
	}

	if s.cooldown.active() {
		return fail(perrors.NewCooldown(provider, s.cooldown.block))
	}

	r.advance(StateNavigating)
	nav := navigator.New(s.pages, s.navCfg, append([]navigator.Option{navigator.WithProvider(provider)}, s.navOpts...)...)
	defer nav.Close()

	if err := nav.Start(ctx); err != nil {
		return fail(err)
	}
	if err := s.navigate(ctx, nav, result); err != nil {
		s.cooldown.trip()
		return fail(err)
	}

	r.advance(StateExtracting)
	if title, err := nav.Title(ctx); err == nil {
		result.SetPageTitle(title)
	} else {
		log.Debug().Err(err).Msg("page title unavailable")
	}
	if s.debugRawHTML {
		if markup, err := nav.RawMarkup(ctx); err == nil {
			result.SetRawHTML(markup)
		}
	}

	games := s.extract(ctx, nav, now, result)

	r.advance(StateAggregating)
	unique := Dedup(games)
	for _, g := range unique {
		result.AddGame(g)
	}

	r.advance(StateDone)
	result.Finalize(true)
	log.Info().
		Int("games", result.GameCount).
		Int("duplicates", len(games)-len(unique)).
		Int("warnings", len(result.Warnings)).
		Msg("scrape finished")
	return result
}

// navigate tries the site URLs in order. A URL that fails while another
// remains is only a warning.
func (s *SiteScraper) navigate(ctx context.Context, nav *navigator.Navigator, result *poker.ScraperResult) error {
	if len(s.site.URLs) == 0 {
		return perrors.NewConfiguration(fmt.Sprintf("%s has no URLs", s.site.Provider), nil)
	}

	var lastErr error
	for i, url := range s.site.URLs {
		err := nav.Navigate(ctx, url, s.site.WaitForJS)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		if i < len(s.site.URLs)-1 {
			result.AddWarning(fmt.Sprintf("%s unavailable, trying next URL: %v", url, err))
		}
	}
	return lastErr
}

// Strategies builds the site's strategies for one run. They share opts so
// default start times are identical across strategies.
func (s *SiteScraper) Strategies(opts parser.Options) []strategy.Strategy {
	var strategies []strategy.Strategy
	if len(s.site.Selectors) > 0 {
		strategies = append(strategies, strategy.NewStructural(opts, s.site.Selectors...))
	}
	if s.site.Regex.enabled() {
		strategies = append(strategies, strategy.NewRegex(opts, s.site.Regex.Tournaments, s.site.Regex.Cash))
	}
	if len(s.site.Embedded.Anchors) > 0 || s.site.Embedded.JSONLD {
		strategies = append(strategies, strategy.NewEmbedded(opts, s.site.Embedded))
	}
	return strategies
}

func (s *SiteScraper) extract(ctx context.Context, page strategy.Page, now time.Time, result *poker.ScraperResult) []poker.PokerGame {
	opts := parser.Options{
		Provider: s.site.Provider,
		Bounds:   s.site.Bounds,
		Now:      now,
		ClubID:   s.site.ClubID,
		ClubName: s.site.ClubName,
		KeepRaw:  s.debugRawHTML,
	}
	log := logger.ForProvider(string(s.site.Provider))

	var games []poker.PokerGame
	for _, st := range s.Strategies(opts) {
		if ctx.Err() != nil {
			result.AddWarning(fmt.Sprintf("extraction interrupted: %v", ctx.Err()))
			break
		}
		found := st.Extract(ctx, page)
		log.Debug().Str("strategy", st.Name()).Int("games", len(found)).Msg("strategy finished")

		if st.Name() == "structural" && len(found) == 0 {
			result.AddWarning("structural extraction found no listings, falling back to page content")
		}
		games = append(games, found...)
		if s.site.Policy == PolicyFallback && len(found) > 0 {
			break
		}
	}
	return games
}
