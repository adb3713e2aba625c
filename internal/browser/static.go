package browser

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"sjsage522/pokerscraper/internal/poker"
	perrors "sjsage522/pokerscraper/pkg/errors"
)

// Fetcher returns the markup at url as UTF-8
type Fetcher interface {
	Fetch(ctx context.Context, url string) (io.Reader, error)
}

// FetcherFunc adapts a function to Fetcher
type FetcherFunc func(ctx context.Context, url string) (io.Reader, error)

func (f FetcherFunc) Fetch(ctx context.Context, url string) (io.Reader, error) {
	return f(ctx, url)
}

// StaticProvider parses fetched markup with goquery. Scripts are not
// executed, so it suits server-rendered pages and saved fixtures.
type StaticProvider struct {
	fetcher Fetcher
	source  string
}

// NewStaticProvider creates a provider; an empty source means web
func NewStaticProvider(fetcher Fetcher, source string) *StaticProvider {
	if source == "" {
		source = poker.SourceWeb
	}
	return &StaticProvider{fetcher: fetcher, source: source}
}

func (p *StaticProvider) Source() string {
	return p.source
}

func (p *StaticProvider) OpenSession(ctx context.Context) (Session, error) {
	return &staticSession{fetcher: p.fetcher}, nil
}

func (p *StaticProvider) Close() error {
	return nil
}

type staticSession struct {
	fetcher Fetcher
	doc     *goquery.Document
	markup  string
	closed  bool
}

// Goto ignores wait: a fetched document is complete once read
func (s *staticSession) Goto(ctx context.Context, url string, _ WaitUntil, timeout time.Duration) error {
	if s.closed {
		return perrors.NewNotStarted("browser: session closed")
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return fmt.Errorf("browser: fetch %s: %w", url, err)
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("browser: read %s: %w", url, err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("browser: parse %s: %w", url, err)
	}
	s.doc = doc
	s.markup = string(body)
	return nil
}

func (s *staticSession) find(selector string) (*goquery.Selection, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	matcher, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("browser: invalid selector %q: %w", selector, err)
	}
	return s.doc.FindMatcher(matcher), nil
}

func (s *staticSession) QueryOne(_ context.Context, selector string) (Element, bool, error) {
	sel, err := s.find(selector)
	if err != nil {
		return nil, false, err
	}
	if sel.Length() == 0 {
		return nil, false, nil
	}
	return staticElement{sel: sel.First()}, true, nil
}

func (s *staticSession) QueryAll(_ context.Context, selector string) ([]Element, error) {
	sel, err := s.find(selector)
	if err != nil {
		return nil, err
	}
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, item *goquery.Selection) {
		out = append(out, staticElement{sel: item})
	})
	return out, nil
}

func (s *staticSession) RawMarkup(context.Context) (string, error) {
	if s.doc == nil {
		return "", ErrNoDocument
	}
	return s.markup, nil
}

func (s *staticSession) ScriptTexts(context.Context) ([]string, error) {
	if s.doc == nil {
		return nil, ErrNoDocument
	}
	var texts []string
	s.doc.Find("script").Each(func(_ int, item *goquery.Selection) {
		texts = append(texts, item.Text())
	})
	return texts, nil
}

func (s *staticSession) BodyTextLength(context.Context) (int, error) {
	if s.doc == nil {
		return 0, ErrNoDocument
	}
	return len([]rune(strings.TrimSpace(s.doc.Find("body").Text()))), nil
}

func (s *staticSession) Title(context.Context) (string, error) {
	if s.doc == nil {
		return "", ErrNoDocument
	}
	return strings.TrimSpace(s.doc.Find("title").First().Text()), nil
}

func (s *staticSession) Close() error {
	s.closed = true
	s.doc = nil
	return nil
}

type staticElement struct {
	sel *goquery.Selection
}

// Text joins the element's text nodes with newlines, like a rendered
// block layout would, so adjacent blocks never run together.
func (e staticElement) Text() (string, bool) {
	var parts []string
	for _, n := range e.sel.Nodes {
		textNodes(n, &parts)
	}
	return strings.Join(parts, "\n"), true
}

func textNodes(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if t := strings.Join(strings.Fields(n.Data), " "); t != "" {
			*parts = append(*parts, t)
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript", "template":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textNodes(c, parts)
	}
}

var slugPattern = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FileFetcher serves saved pages from a directory. A URL maps to an explicit
// file name or to "<host_path>.html". A missing fixture is a configuration
// error, so navigation does not retry it.
type FileFetcher struct {
	Dir   string
	Files map[string]string
}

func (f FileFetcher) Fetch(_ context.Context, url string) (io.Reader, error) {
	name, ok := f.Files[url]
	if !ok {
		name = FixtureName(url)
	}
	data, err := os.ReadFile(filepath.Join(f.Dir, name))
	if err != nil {
		return nil, perrors.NewConfiguration("no fixture for "+url, err)
	}
	return strings.NewReader(string(data)), nil
}

// FixtureName derives the fixture file name for url,
// e.g. https://www.pokerstars.com/poker/tournaments/ -> www_pokerstars_com_poker_tournaments.html
func FixtureName(url string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(url, "https://"), "http://")
	slug := strings.Trim(slugPattern.ReplaceAllString(trimmed, "_"), "_")
	return slug + ".html"
}

// NewFixtureProvider serves pages from dir and tags results as mock
func NewFixtureProvider(dir string) *StaticProvider {
	return NewStaticProvider(FileFetcher{Dir: dir}, poker.SourceMock)
}
