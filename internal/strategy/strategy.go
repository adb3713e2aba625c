// Package strategy holds the independent extraction strategies run against
// a rendered page. A strategy never fails its caller: element-level faults
// drop the element, a faulting selector or script drops only its own
// matches.
package strategy

import (
	"context"
	"fmt"

	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/logger"
	perrors "sjsage522/pokerscraper/pkg/errors"
)

// Page is what strategies may ask of the navigator
type Page interface {
	QueryAllText(ctx context.Context, selector string) ([]string, error)
	RawMarkup(ctx context.Context) (string, error)
	ScriptContents(ctx context.Context) ([]string, error)
}

// Strategy extracts games from a page
type Strategy interface {
	Name() string
	Extract(ctx context.Context, page Page) []poker.PokerGame
}

// guard runs extract and converts a panic into a logged strategy fault
func guard(name string, provider poker.Provider, extract func() []poker.PokerGame) (games []poker.PokerGame) {
	defer func() {
		if r := recover(); r != nil {
			fault(name, provider, perrors.NewStrategy(string(provider), name+" panicked", fmt.Errorf("%v", r)))
			games = nil
		}
	}()
	return extract()
}

// parseOne runs a single element parse. A panic drops that element only.
func parseOne(name string, provider poker.Provider, parse func() (poker.PokerGame, bool)) (game poker.PokerGame, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			err := perrors.NewParsing(string(provider), name+" element panicked", fmt.Errorf("%v", r))
			logger.ForComponent("strategy").Debug().
				Str("strategy", name).
				Str("provider", string(provider)).
				Err(err).
				Msg("element skipped")
			game, ok = poker.PokerGame{}, false
		}
	}()
	return parse()
}

// fault logs a whole-strategy failure at debug level
func fault(name string, provider poker.Provider, err error) {
	logger.ForComponent("strategy").Debug().
		Str("strategy", name).
		Str("provider", string(provider)).
		Err(err).
		Msg("strategy fault, no results")
}
