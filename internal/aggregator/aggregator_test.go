package aggregator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pokerscraper/internal/crawler"
	"sjsage522/pokerscraper/internal/poker"
)

// mockScraper returns a canned result, fails, or panics
type mockScraper struct {
	provider poker.Provider
	games    int
	fail     string
	panics   bool
	delay    time.Duration

	running *int32
	peak    *int32
}

func (m *mockScraper) Provider() poker.Provider {
	return m.provider
}

func (m *mockScraper) Scrape(ctx context.Context) *poker.ScraperResult {
	if m.running != nil {
		n := atomic.AddInt32(m.running, 1)
		defer atomic.AddInt32(m.running, -1)
		for {
			peak := atomic.LoadInt32(m.peak)
			if n <= peak || atomic.CompareAndSwapInt32(m.peak, peak, n) {
				break
			}
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.panics {
		panic("browser crashed")
	}

	result := poker.NewScraperResult(m.provider, poker.SourceMock, time.Now())
	if m.fail != "" {
		result.AddError(m.fail)
		result.Finalize(false)
		return result
	}
	for i := 0; i < m.games; i++ {
		info, _ := poker.NewTournamentInfo(int64(100*(i+1)), time.Now(), nil, "")
		result.AddGame(poker.NewTournamentGame(m.provider, poker.VariantNLHE, info))
	}
	result.Finalize(true)
	return result
}

func TestScrapeAllIsolatesFailures(t *testing.T) {
	registry := crawler.NewRegistry(
		&mockScraper{provider: poker.ProviderClubGG, games: 2, delay: 20 * time.Millisecond},
		&mockScraper{provider: poker.ProviderGGPoker, fail: "[navigation] GG_POKER: navigate failed"},
		&mockScraper{provider: poker.ProviderPokerStars, games: 1},
	)
	providers := []poker.Provider{poker.ProviderClubGG, poker.ProviderGGPoker, poker.ProviderPokerStars}

	entries := New(registry, providers, 0).ScrapeAll(context.Background())

	require.Len(t, entries, 3)
	for i, p := range providers {
		assert.Equal(t, p, entries[i].Provider)
	}

	assert.True(t, entries[0].Success)
	assert.Equal(t, 2, entries[0].Result.GameCount)

	assert.False(t, entries[1].Success)
	assert.Contains(t, entries[1].Error, "navigate failed")
	require.NotNil(t, entries[1].Result)

	assert.True(t, entries[2].Success)
	assert.Equal(t, 1, entries[2].Result.GameCount)
}

func TestScrapeAllRecoversPanics(t *testing.T) {
	registry := crawler.NewRegistry(
		&mockScraper{provider: poker.ProviderClubGG, games: 1},
		&mockScraper{provider: poker.ProviderGGPoker, panics: true},
		&mockScraper{provider: poker.ProviderPokerStars, games: 1},
	)

	entries := New(registry, []poker.Provider{
		poker.ProviderClubGG, poker.ProviderGGPoker, poker.ProviderPokerStars,
	}, 2).ScrapeAll(context.Background())

	require.Len(t, entries, 3)
	assert.True(t, entries[0].Success)
	assert.False(t, entries[1].Success)
	assert.Contains(t, entries[1].Error, "browser crashed")
	assert.Nil(t, entries[1].Result)
	assert.True(t, entries[2].Success)
}

func TestScrapeAllUnknownProvider(t *testing.T) {
	entries := New(crawler.NewRegistry(), []poker.Provider{poker.ProviderWPTGlobal}, 0).
		ScrapeAll(context.Background())

	require.Len(t, entries, 1)
	assert.False(t, entries[0].Success)
	assert.Contains(t, entries[0].Error, "no scraper registered")
}

func TestScrapeAllRespectsConcurrencyLimit(t *testing.T) {
	var running, peak int32
	var scrapers []crawler.Scraper
	var providers []poker.Provider
	for _, p := range []poker.Provider{
		poker.ProviderClubGG, poker.ProviderGGPoker, poker.ProviderPokerStars, poker.ProviderPoker888,
	} {
		scrapers = append(scrapers, &mockScraper{provider: p, delay: 20 * time.Millisecond, running: &running, peak: &peak})
		providers = append(providers, p)
	}

	entries := New(crawler.NewRegistry(scrapers...), providers, 1).ScrapeAll(context.Background())

	assert.Len(t, entries, 4)
	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestScrapeOne(t *testing.T) {
	registry := crawler.NewRegistry(&mockScraper{provider: poker.ProviderGGPoker, games: 3})
	a := New(registry, nil, 0)

	entry := a.ScrapeOne(context.Background(), poker.ProviderGGPoker)
	assert.True(t, entry.Success)
	assert.Empty(t, entry.Error)
	assert.Equal(t, 3, entry.Result.TournamentCount)
}
