package main

import (
	"context"

	"sjsage522/pokerscraper/config"
	"sjsage522/pokerscraper/helpers"
	"sjsage522/pokerscraper/internal/aggregator"
	"sjsage522/pokerscraper/internal/browser"
	"sjsage522/pokerscraper/internal/crawler"
	"sjsage522/pokerscraper/logger"
	perrors "sjsage522/pokerscraper/pkg/errors"
	"sjsage522/pokerscraper/services/cache"
	"sjsage522/pokerscraper/services/publisher"
)

// Services holds all the initialized services
type Services struct {
	Pages      browser.PageProvider
	Cache      cache.CacheService
	Publisher  publisher.Publisher
	Aggregator *aggregator.Aggregator
}

// Cleanup cleans up all services
func (s *Services) Cleanup() {
	if s.Publisher != nil {
		if err := s.Publisher.Close(); err != nil {
			logger.LogError("services", err, "closing publisher")
		}
	}
	if s.Pages != nil {
		if err := s.Pages.Close(); err != nil {
			logger.LogError("services", err, "closing page provider")
		}
	}
}

// newPageProvider selects the renderer for the configured mode
func newPageProvider(cfg *config.Config) browser.PageProvider {
	switch cfg.RenderMode {
	case config.RenderModeHTTP:
		return browser.NewStaticProvider(helpers.NewHTTPFetcher(cfg.NavigationTimeout, cfg.HTTPRequestsPerMinute), "")
	case config.RenderModeFixture:
		return browser.NewFixtureProvider(cfg.FixtureDir)
	default:
		return browser.NewRodProvider(browser.RodConfig{
			Headless:  cfg.BrowserHeadless,
			RemoteURL: cfg.BrowserRemoteURL,
			Timeout:   cfg.BrowserTimeout,
		})
	}
}

// newCache connects the cooldown cache. Scraping works without it, so an
// unreachable memcache only disables cooldowns.
func newCache(cfg *config.Config) cache.CacheService {
	if cfg.MemcacheAddr == "" || cfg.RenderMode == config.RenderModeFixture {
		return nil
	}
	mc := cache.NewMemcacheService(cfg.MemcacheAddr)
	if err := mc.Ping(); err != nil {
		logger.Warn("memcache at %s unavailable, cooldowns disabled: %v", cfg.MemcacheAddr, err)
		return nil
	}
	logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
	return mc
}

// buildAggregator wires scrapers for the configured providers
func buildAggregator(cfg *config.Config, pages browser.PageProvider, cacheSvc cache.CacheService) (*aggregator.Aggregator, error) {
	providers, err := crawler.ResolveProviders(cfg.Providers)
	if err != nil {
		return nil, err
	}
	registry := crawler.CreateScrapers(cfg, pages, cacheSvc)
	return aggregator.New(registry, providers, cfg.ScrapeConcurrency), nil
}

// initializeServices initializes all required services; the publisher
// is only connected when publish is set
func initializeServices(ctx context.Context, cfg *config.Config, publish bool) (*Services, error) {
	services := &Services{Pages: newPageProvider(cfg)}
	services.Cache = newCache(cfg)

	agg, err := buildAggregator(cfg, services.Pages, services.Cache)
	if err != nil {
		services.Cleanup()
		return nil, err
	}
	services.Aggregator = agg

	if publish {
		redisPublisher := publisher.NewRedisPublisher(
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		services.Publisher = redisPublisher
		if err := redisPublisher.Ping(ctx); err != nil {
			services.Cleanup()
			return nil, perrors.NewPublisher("", "redis at "+cfg.RedisAddr+" unavailable", err)
		}
		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	return services, nil
}
