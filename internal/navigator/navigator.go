// Package navigator drives one page session: navigation with a retry
// budget, a render-settle heuristic for script-built pages, and read-only
// query primitives used by the extraction strategies.
package navigator

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"sjsage522/pokerscraper/internal/browser"
	"sjsage522/pokerscraper/logger"
	perrors "sjsage522/pokerscraper/pkg/errors"
)

// Config holds navigation timing. MaxRetries is the total attempt budget.
type Config struct {
	MaxRetries          int
	DelayMin            time.Duration
	DelayMax            time.Duration
	NavigationTimeout   time.Duration
	JSSettle            time.Duration
	ContentWait         time.Duration
	ContentPollInterval time.Duration
	MinContentLength    int
}

// DefaultConfig mirrors the production defaults
func DefaultConfig() Config {
	return Config{
		MaxRetries:          3,
		DelayMin:            1 * time.Second,
		DelayMax:            3 * time.Second,
		NavigationTimeout:   20 * time.Second,
		JSSettle:            2 * time.Second,
		ContentWait:         10 * time.Second,
		ContentPollInterval: 250 * time.Millisecond,
		MinContentLength:    100,
	}
}

// SleepFunc waits for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// Option customizes a Navigator
type Option func(*Navigator)

// WithSleep replaces the wall-clock sleep, mainly for tests
func WithSleep(fn SleepFunc) Option {
	return func(n *Navigator) { n.sleep = fn }
}

// WithRand replaces the [0,1) source used for retry jitter
func WithRand(fn func() float64) Option {
	return func(n *Navigator) { n.rand = fn }
}

// WithProvider tags errors and logs with the provider name
func WithProvider(name string) Option {
	return func(n *Navigator) { n.provider = name }
}

// Navigator owns a single session. It is not safe for concurrent use.
type Navigator struct {
	pages     browser.PageProvider
	cfg       Config
	session   browser.Session
	navigated bool
	provider  string

	sleep SleepFunc
	rand  func() float64
	log   *logger.Logger
}

// New creates a navigator; call Start before Navigate
func New(pages browser.PageProvider, cfg Config, opts ...Option) *Navigator {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	if cfg.DelayMax < cfg.DelayMin {
		cfg.DelayMax = cfg.DelayMin
	}
	if cfg.ContentPollInterval <= 0 {
		cfg.ContentPollInterval = DefaultConfig().ContentPollInterval
	}

	n := &Navigator{
		pages: pages,
		cfg:   cfg,
		sleep: sleepContext,
		rand:  rand.Float64,
	}
	for _, opt := range opts {
		opt(n)
	}
	n.log = logger.ForComponent("navigator").WithField("provider", n.provider)
	return n
}

// Start opens the session. Calling it again is a no-op.
func (n *Navigator) Start(ctx context.Context) error {
	if n.session != nil {
		return nil
	}
	session, err := n.pages.OpenSession(ctx)
	if err != nil {
		return perrors.NewNavigation(n.provider, "failed to open page session", err)
	}
	n.session = session
	return nil
}

// Navigate loads url, retrying up to MaxRetries attempts with a random
// delay between attempts. With waitForJS it then lets scripts settle and
// polls until the body has content; a lapse there is not an error.
func (n *Navigator) Navigate(ctx context.Context, url string, waitForJS bool) error {
	if n.session == nil {
		return perrors.NewNotStarted("navigate called before Start")
	}
	n.navigated = false

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= n.cfg.MaxRetries; attempt++ {
		attempts = attempt
		err := n.session.Goto(ctx, url, browser.WaitDOMContentLoaded, n.cfg.NavigationTimeout)
		if err == nil {
			n.navigated = true
			n.log.Debug().Str("url", url).Int("attempt", attempt).Msg("navigated")
			if waitForJS {
				n.settle(ctx)
			}
			return nil
		}

		lastErr = err
		n.log.Warn().Err(err).Str("url", url).Int("attempt", attempt).Int("max", n.cfg.MaxRetries).Msg("navigation attempt failed")

		var crawlErr *perrors.CrawlerError
		if errors.As(err, &crawlErr) && !crawlErr.IsRetryable() {
			break
		}

		if ctx.Err() != nil {
			lastErr = ctx.Err()
			break
		}
		if attempt < n.cfg.MaxRetries {
			if err := n.sleep(ctx, n.retryDelay()); err != nil {
				lastErr = err
				break
			}
		}
	}

	return perrors.NewNavigation(n.provider,
		fmt.Sprintf("navigate %s failed after %d attempt(s)", url, attempts), lastErr)
}

func (n *Navigator) retryDelay() time.Duration {
	span := n.cfg.DelayMax - n.cfg.DelayMin
	return n.cfg.DelayMin + time.Duration(n.rand()*float64(span))
}

func (n *Navigator) settle(ctx context.Context) {
	if err := n.sleep(ctx, n.cfg.JSSettle); err != nil {
		return
	}

	polls := int(n.cfg.ContentWait / n.cfg.ContentPollInterval)
	for i := 0; i <= polls; i++ {
		length, err := n.session.BodyTextLength(ctx)
		if err == nil && length > n.cfg.MinContentLength {
			return
		}
		if i == polls {
			break
		}
		if err := n.sleep(ctx, n.cfg.ContentPollInterval); err != nil {
			return
		}
	}
	n.log.Debug().Dur("waited", n.cfg.ContentWait).Msg("content wait lapsed, continuing with current page")
}

func (n *Navigator) ready() error {
	if n.session == nil {
		return perrors.NewNotStarted("no open session")
	}
	if !n.navigated {
		return perrors.NewNotStarted("no page loaded")
	}
	return nil
}

// QueryText returns the trimmed text of the first match
func (n *Navigator) QueryText(ctx context.Context, selector string) (string, bool, error) {
	if err := n.ready(); err != nil {
		return "", false, err
	}
	el, found, err := n.session.QueryOne(ctx, selector)
	if err != nil || !found {
		return "", false, err
	}
	text, ok := el.Text()
	if !ok {
		return "", false, nil
	}
	return strings.TrimSpace(text), true, nil
}

// QueryAllText returns trimmed, non-empty texts of every match in document order
func (n *Navigator) QueryAllText(ctx context.Context, selector string) ([]string, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	els, err := n.session.QueryAll(ctx, selector)
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, len(els))
	for _, el := range els {
		text, ok := el.Text()
		if !ok {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			texts = append(texts, text)
		}
	}
	return texts, nil
}

func (n *Navigator) RawMarkup(ctx context.Context) (string, error) {
	if err := n.ready(); err != nil {
		return "", err
	}
	return n.session.RawMarkup(ctx)
}

// ScriptContents returns the text of every script element, empty ones included
func (n *Navigator) ScriptContents(ctx context.Context) ([]string, error) {
	if err := n.ready(); err != nil {
		return nil, err
	}
	return n.session.ScriptTexts(ctx)
}

func (n *Navigator) Title(ctx context.Context) (string, error) {
	if err := n.ready(); err != nil {
		return "", err
	}
	return n.session.Title(ctx)
}

// Close releases the session; safe to call repeatedly or before Start
func (n *Navigator) Close() error {
	if n.session == nil {
		return nil
	}
	err := n.session.Close()
	n.session = nil
	n.navigated = false
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
