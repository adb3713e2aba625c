package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/logger"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	scriptTextsJS = `() => Array.from(document.scripts).map(s => s.textContent || '')`
	bodyLengthJS  = `() => document.body ? document.body.innerText.length : 0`
	titleJS       = `() => document.title || ''`
)

// RodConfig configures the headless browser
type RodConfig struct {
	Headless bool
	// RemoteURL is the DevTools websocket of an external Chrome; empty
	// launches a local one.
	RemoteURL string
	UserAgent string
	// Timeout bounds browser launch and connection.
	Timeout time.Duration
}

// RodProvider renders pages in Chrome through go-rod. The browser process is
// started lazily on the first session and shared by all later sessions.
type RodProvider struct {
	cfg     RodConfig
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	log     *logger.Logger
}

// NewRodProvider creates a provider; Chrome is not started until OpenSession
func NewRodProvider(cfg RodConfig) *RodProvider {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &RodProvider{cfg: cfg, log: logger.ForComponent("browser")}
}

func (p *RodProvider) Source() string {
	return poker.SourceWeb
}

func (p *RodProvider) connect(ctx context.Context) (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser != nil {
		return p.browser, nil
	}

	wsURL := p.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().
			Headless(p.cfg.Headless).
			Set("disable-blink-features", "AutomationControlled").
			NoSandbox(true)

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		p.lnch = l
		p.log.Info().Str("url", wsURL).Bool("headless", p.cfg.Headless).Msg("launched local chrome")
	} else {
		p.log.Info().Str("url", wsURL).Msg("connecting to remote chrome")
	}

	connectCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	b := rod.New().ControlURL(wsURL).Context(connectCtx)
	if err := b.Connect(); err != nil {
		p.cleanupLocked()
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	// detach from the connect deadline for the browser lifetime
	p.browser = b.Context(context.Background())
	return p.browser, nil
}

// OpenSession creates a stealth tab with a desktop user agent and viewport
func (p *RodProvider) OpenSession(ctx context.Context) (Session, error) {
	b, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
		UserAgent:      p.cfg.UserAgent,
		AcceptLanguage: "en-US,en;q=0.9",
	}); err != nil {
		p.log.Warn().Err(err).Msg("set user agent failed")
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             1920,
		Height:            1080,
		DeviceScaleFactor: 1,
	}); err != nil {
		p.log.Warn().Err(err).Msg("set viewport failed")
	}

	return &rodSession{page: page}, nil
}

// Close shuts the browser down and removes the launcher's profile
func (p *RodProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	p.cleanupLocked()
	return err
}

func (p *RodProvider) cleanupLocked() {
	if p.lnch != nil {
		p.lnch.Cleanup()
		p.lnch = nil
	}
}

type rodSession struct {
	page *rod.Page
}

func (s *rodSession) Goto(ctx context.Context, url string, wait WaitUntil, timeout time.Duration) error {
	navCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	event := proto.PageLifecycleEventNameDOMContentLoaded
	if wait == WaitLoad {
		event = proto.PageLifecycleEventNameLoad
	}

	page := s.page.Context(navCtx)
	waitNav := page.WaitNavigation(event)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("browser: navigate %s: %w", url, err)
	}
	waitNav()

	if err := navCtx.Err(); err != nil {
		return fmt.Errorf("browser: wait for %s on %s: %w", event, url, err)
	}
	return nil
}

func (s *rodSession) QueryOne(ctx context.Context, selector string) (Element, bool, error) {
	found, el, err := s.page.Context(ctx).Has(selector)
	if err != nil {
		return nil, false, fmt.Errorf("browser: query %q: %w", selector, err)
	}
	if !found {
		return nil, false, nil
	}
	return rodElement{el: el}, true, nil
}

func (s *rodSession) QueryAll(ctx context.Context, selector string) ([]Element, error) {
	els, err := s.page.Context(ctx).Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("browser: query %q: %w", selector, err)
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, rodElement{el: el})
	}
	return out, nil
}

func (s *rodSession) RawMarkup(ctx context.Context) (string, error) {
	html, err := s.page.Context(ctx).HTML()
	if err != nil {
		return "", fmt.Errorf("browser: read markup: %w", err)
	}
	return html, nil
}

func (s *rodSession) ScriptTexts(ctx context.Context) ([]string, error) {
	res, err := s.page.Context(ctx).Eval(scriptTextsJS)
	if err != nil {
		return nil, fmt.Errorf("browser: read scripts: %w", err)
	}
	items := res.Value.Arr()
	texts := make([]string, 0, len(items))
	for _, item := range items {
		texts = append(texts, item.Str())
	}
	return texts, nil
}

func (s *rodSession) BodyTextLength(ctx context.Context) (int, error) {
	res, err := s.page.Context(ctx).Eval(bodyLengthJS)
	if err != nil {
		return 0, err
	}
	return res.Value.Int(), nil
}

func (s *rodSession) Title(ctx context.Context) (string, error) {
	res, err := s.page.Context(ctx).Eval(titleJS)
	if err != nil {
		return "", err
	}
	return res.Value.Str(), nil
}

func (s *rodSession) Close() error {
	return s.page.Close()
}

type rodElement struct {
	el *rod.Element
}

func (e rodElement) Text() (string, bool) {
	text, err := e.el.Text()
	if err != nil {
		return "", false
	}
	return text, true
}
