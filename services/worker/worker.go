package worker

import (
	"context"
	"encoding/json"
	"time"

	"sjsage522/pokerscraper/internal/aggregator"
	"sjsage522/pokerscraper/logger"
	"sjsage522/pokerscraper/services/publisher"
)

// Scraper runs one scrape round across providers
type Scraper interface {
	ScrapeAll(ctx context.Context) []aggregator.Entry
}

// Worker handles the scraping and publishing process
type Worker struct {
	scraper       Scraper
	publisher     publisher.Publisher
	crawlInterval time.Duration
	verbose       bool
	log           *logger.Logger
}

// NewWorker creates a new worker. verbose logs a sample listing per
// provider after each round.
func NewWorker(scraper Scraper, pub publisher.Publisher, crawlInterval time.Duration, verbose bool) *Worker {
	return &Worker{
		scraper:       scraper,
		publisher:     pub,
		crawlInterval: crawlInterval,
		verbose:       verbose,
		log:           logger.ForComponent("worker"),
	}
}

// Start runs a round immediately and then every crawl interval until ctx
// is cancelled
func (w *Worker) Start(ctx context.Context) error {
	for {
		start := time.Now()
		published := w.RunOnce(ctx)
		w.log.Info().Dur("elapsed", time.Since(start)).Int("published", published).Msg("round finished")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(w.crawlInterval):
		}
	}
}

// RunOnce scrapes every provider, publishes each entry and trims the
// streams. It returns the number of entries published.
func (w *Worker) RunOnce(ctx context.Context) int {
	entries := w.scraper.ScrapeAll(ctx)

	published := 0
	for _, entry := range entries {
		if w.publishEntry(ctx, entry) {
			published++
		}
	}

	// Trim all streams after publishing
	if err := w.publisher.TrimStreams(ctx); err != nil {
		w.log.Error().Err(err).Msg("stream trimming failed")
	}
	return published
}

func (w *Worker) publishEntry(ctx context.Context, entry aggregator.Entry) bool {
	log := w.log.WithField("provider", string(entry.Provider))
	if !entry.Success {
		log.Warn().Str("error", entry.Error).Msg("provider scrape failed")
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Msg("entry encoding failed")
		return false
	}
	if err := w.publisher.Publish(ctx, string(entry.Provider), data); err != nil {
		log.Error().Err(err).Msg("publish failed")
		return false
	}

	if w.verbose && entry.Result != nil && len(entry.Result.Games) > 0 {
		sample, _ := json.Marshal(entry.Result.Games[0])
		log.Info().RawJSON("sample", sample).Int("games", entry.Result.GameCount).Msg("published")
	}
	return true
}
