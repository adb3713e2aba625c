package crawler

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"sjsage522/pokerscraper/internal/browser"
	"sjsage522/pokerscraper/internal/navigator"
	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/internal/strategy"
)

var runClock = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

// MockCacheService implements a simple in-memory cache for testing
type MockCacheService struct {
	cache map[string][]byte
	ttl   map[string]time.Duration
}

func NewMockCacheService() *MockCacheService {
	return &MockCacheService{
		cache: make(map[string][]byte),
		ttl:   make(map[string]time.Duration),
	}
}

func (m *MockCacheService) Get(key string) ([]byte, error) {
	if val, ok := m.cache[key]; ok {
		return val, nil
	}
	return nil, &mockError{message: "cache miss"}
}

func (m *MockCacheService) Set(key string, value []byte, expiration time.Duration) error {
	m.cache[key] = value
	m.ttl[key] = expiration
	return nil
}

func (m *MockCacheService) Delete(key string) error {
	delete(m.cache, key)
	return nil
}

type mockError struct {
	message string
}

func (e *mockError) Error() string {
	return e.message
}

// pageServer serves canned markup by URL and counts fetches
type pageServer struct {
	mu     sync.Mutex
	pages  map[string]string
	counts map[string]int
}

func newPageServer(pages map[string]string) *pageServer {
	return &pageServer{pages: pages, counts: make(map[string]int)}
}

func (p *pageServer) Fetch(_ context.Context, url string) (io.Reader, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.counts[url]++
	markup, ok := p.pages[url]
	if !ok {
		return nil, errors.New("connection refused")
	}
	return strings.NewReader(markup), nil
}

func (p *pageServer) fetches(url string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.counts[url]
}

func testNavConfig() navigator.Config {
	return navigator.Config{
		MaxRetries:        2,
		NavigationTimeout: time.Second,
	}
}

func noSleep(context.Context, time.Duration) error { return nil }

func newTestScraper(site Site, server *pageServer, opts ...ScraperOption) *SiteScraper {
	pages := browser.NewStaticProvider(server, poker.SourceMock)
	opts = append([]ScraperOption{
		WithClock(func() time.Time { return runClock }),
		WithNavigatorOptions(navigator.WithSleep(noSleep)),
	}, opts...)
	return NewSiteScraper(site, pages, testNavConfig(), opts...)
}

// lobbySite is a cash and tournament site in the shape of the club lobby
func lobbySite(urls ...string) Site {
	return Site{
		Provider: poker.ProviderClubGG,
		URLs:     urls,
		Selectors: []strategy.SelectorGroup{
			{Kind: strategy.KindAny, Selectors: []string{".game-card"}},
		},
		Regex:     RegexOptions{Tournaments: true, Cash: true},
		Bounds:    parser.DefaultBounds(),
		ClubID:    ClubGGClubID,
		ClubName:  ClubGGClubName,
		CacheKey:  "lobby_cooldown",
		BlockTime: 5 * time.Minute,
	}
}

func testParserOptions() parser.Options {
	return parser.Options{Provider: poker.ProviderClubGG, Bounds: parser.DefaultBounds(), Now: runClock}
}
