// Package browser is the page provider boundary: it renders a URL and
// answers read-only queries about the resulting document. The navigator and
// strategies only ever see these interfaces.
package browser

import (
	"context"
	"errors"
	"time"
)

// WaitUntil selects the load signal Goto waits for
type WaitUntil string

const (
	WaitDOMContentLoaded WaitUntil = "domcontentloaded"
	WaitLoad             WaitUntil = "load"
)

// ErrNoDocument is returned by queries on a session that has not loaded a page
var ErrNoDocument = errors.New("browser: no document loaded")

// Element is one node matched by a selector
type Element interface {
	// Text returns the rendered text; ok is false when it cannot be read.
	Text() (string, bool)
}

// Session is a single rendering context (one tab). Not safe for concurrent use.
type Session interface {
	Goto(ctx context.Context, url string, wait WaitUntil, timeout time.Duration) error
	// QueryOne returns the first match; ok is false when nothing matches.
	QueryOne(ctx context.Context, selector string) (Element, bool, error)
	QueryAll(ctx context.Context, selector string) ([]Element, error)
	RawMarkup(ctx context.Context) (string, error)
	ScriptTexts(ctx context.Context) ([]string, error)
	BodyTextLength(ctx context.Context) (int, error)
	Title(ctx context.Context) (string, error)
	Close() error
}

// PageProvider opens sessions. Source is the ScraperResult source tag for
// results produced through it.
type PageProvider interface {
	OpenSession(ctx context.Context) (Session, error)
	Source() string
	Close() error
}
