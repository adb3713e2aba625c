package strategy

import (
	"context"
	"errors"
	"time"

	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
)

var runClock = time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC)

// mockPage is a canned Page
type mockPage struct {
	selectors map[string][]string
	failing   map[string]bool
	markup    string
	scripts   []string
	panicOn   string
	queried   []string
}

func (m *mockPage) QueryAllText(_ context.Context, selector string) ([]string, error) {
	m.queried = append(m.queried, selector)
	if selector == m.panicOn {
		panic("renderer crashed")
	}
	if m.failing[selector] {
		return nil, errors.New("invalid selector")
	}
	return m.selectors[selector], nil
}

func (m *mockPage) RawMarkup(context.Context) (string, error) {
	if m.panicOn == "markup" {
		panic("renderer crashed")
	}
	if m.markup == "" {
		return "", errors.New("no markup")
	}
	return m.markup, nil
}

func (m *mockPage) ScriptContents(context.Context) ([]string, error) {
	if m.scripts == nil {
		return nil, errors.New("no scripts")
	}
	return m.scripts, nil
}

func testOptions(provider poker.Provider) parser.Options {
	return parser.Options{Provider: provider, Bounds: parser.DefaultBounds(), Now: runClock}
}
