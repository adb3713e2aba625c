package strategy

import (
	"context"

	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/logger"
)

// Kind selects which entity parser a selector group feeds
type Kind int

const (
	KindAny Kind = iota
	KindTournament
	KindCash
)

// SelectorGroup is an ordered list of selectors for one kind of listing
type SelectorGroup struct {
	Kind      Kind
	Selectors []string
	// Keywords gate element texts through parser.LooksLikeListing; nil
	// disables the gate.
	Keywords []string
}

// Structural parses the text of elements matched by CSS selectors
type Structural struct {
	groups []SelectorGroup
	opts   parser.Options
}

func NewStructural(opts parser.Options, groups ...SelectorGroup) *Structural {
	return &Structural{groups: groups, opts: opts}
}

func (s *Structural) Name() string {
	return "structural"
}

func (s *Structural) Extract(ctx context.Context, page Page) []poker.PokerGame {
	return guard(s.Name(), s.opts.Provider, func() []poker.PokerGame {
		return s.extract(ctx, page)
	})
}

func (s *Structural) extract(ctx context.Context, page Page) []poker.PokerGame {
	log := logger.ForComponent("strategy.structural").WithField("provider", string(s.opts.Provider))
	var games []poker.PokerGame

	for _, group := range s.groups {
		for _, selector := range group.Selectors {
			if ctx.Err() != nil {
				return games
			}
			games = append(games, guard(s.Name(), s.opts.Provider, func() []poker.PokerGame {
				return s.fromSelector(ctx, page, group, selector, log)
			})...)
		}
	}
	return games
}

func (s *Structural) fromSelector(ctx context.Context, page Page, group SelectorGroup, selector string, log *logger.Logger) []poker.PokerGame {
	texts, err := page.QueryAllText(ctx, selector)
	if err != nil {
		log.Debug().Err(err).Str("selector", selector).Msg("selector skipped")
		return nil
	}

	var games []poker.PokerGame
	for _, text := range texts {
		if group.Keywords != nil && !parser.LooksLikeListing(text, group.Keywords) {
			continue
		}
		game, ok := parseOne(s.Name(), s.opts.Provider, func() (poker.PokerGame, bool) {
			return s.parse(group.Kind, text)
		})
		if ok {
			games = append(games, game)
		}
	}
	return games
}

func (s *Structural) parse(kind Kind, text string) (poker.PokerGame, bool) {
	switch kind {
	case KindTournament:
		return parser.ParseTournamentText(text, s.opts)
	case KindCash:
		return parser.ParseCashText(text, s.opts)
	default:
		return parser.ParseFragment(text, s.opts)
	}
}
