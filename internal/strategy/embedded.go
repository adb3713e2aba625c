package strategy

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/titanous/json5"

	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
	"sjsage522/pokerscraper/logger"
	perrors "sjsage522/pokerscraper/pkg/errors"
)

// DefaultMaxDepth bounds the recursive search for game objects
const DefaultMaxDepth = 10

// DefaultListKeys are the object keys holding listing arrays
var DefaultListKeys = []string{"tournaments", "schedule", "events", "games", "cashGames", "tables"}

// Anchor locates a data literal inside script text. The literal is the
// first object or array starting at or after the end of the match.
type Anchor struct {
	Name    string
	Pattern *regexp.Regexp
}

// NewAnchor compiles an anchor pattern
func NewAnchor(name, pattern string) Anchor {
	return Anchor{Name: name, Pattern: regexp.MustCompile(pattern)}
}

// EmbeddedConfig configures the embedded-data strategy
type EmbeddedConfig struct {
	Anchors []Anchor
	// Recursive walks the whole decoded value for game-shaped objects
	// instead of only the top-level list keys.
	Recursive bool
	MaxDepth  int
	ListKeys  []string
	// JSONLD also reads schema.org Event blocks
	JSONLD bool
}

// Embedded decodes JavaScript data literals (JSON5) found in page scripts
type Embedded struct {
	cfg  EmbeddedConfig
	opts parser.Options
}

func NewEmbedded(opts parser.Options, cfg EmbeddedConfig) *Embedded {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.ListKeys == nil {
		cfg.ListKeys = DefaultListKeys
	}
	return &Embedded{cfg: cfg, opts: opts}
}

func (e *Embedded) Name() string {
	return "embedded"
}

func (e *Embedded) Extract(ctx context.Context, page Page) []poker.PokerGame {
	return guard(e.Name(), e.opts.Provider, func() []poker.PokerGame {
		scripts, err := page.ScriptContents(ctx)
		if err != nil {
			fault(e.Name(), e.opts.Provider, err)
			return nil
		}
		return e.ExtractScripts(scripts)
	})
}

// ExtractScripts scans script texts in order
func (e *Embedded) ExtractScripts(scripts []string) []poker.PokerGame {
	log := logger.ForComponent("strategy.embedded").WithField("provider", string(e.opts.Provider))
	var games []poker.PokerGame

	for i, script := range scripts {
		if strings.TrimSpace(script) == "" {
			continue
		}
		games = append(games, guard(e.Name(), e.opts.Provider, func() []poker.PokerGame {
			return e.fromScript(i, script, log)
		})...)
	}
	return games
}

func (e *Embedded) fromScript(i int, script string, log *logger.Logger) []poker.PokerGame {
	if e.cfg.JSONLD && isJSONLD(script) {
		var data interface{}
		if err := json5.Unmarshal([]byte(script), &data); err == nil {
			return e.fromJSONLD(data)
		}
	}

	for _, anchor := range e.cfg.Anchors {
		loc := anchor.Pattern.FindStringIndex(script)
		if loc == nil {
			continue
		}
		literal, ok := LiteralAfter(script, loc[1])
		if !ok {
			continue
		}

		var data interface{}
		if err := json5.Unmarshal([]byte(literal), &data); err != nil {
			err = perrors.NewParsing(string(e.opts.Provider), "undecodable payload after "+anchor.Name, err)
			log.Debug().Err(err).Int("script", i).Msg("payload skipped")
			continue
		}
		return e.collect(data)
	}
	return nil
}

func (e *Embedded) parseItem(obj map[string]interface{}) (poker.PokerGame, bool) {
	return parseOne(e.Name(), e.opts.Provider, func() (poker.PokerGame, bool) {
		return parser.ParseJSONGame(obj, e.opts)
	})
}

func (e *Embedded) collect(data interface{}) []poker.PokerGame {
	if e.cfg.Recursive {
		return e.search(data, 0)
	}

	var games []poker.PokerGame
	switch v := data.(type) {
	case []interface{}:
		games = append(games, e.items(v)...)
	case map[string]interface{}:
		for _, key := range e.cfg.ListKeys {
			if list, ok := v[key].([]interface{}); ok {
				games = append(games, e.items(list)...)
			}
		}
	}
	return games
}

func (e *Embedded) items(list []interface{}) []poker.PokerGame {
	var games []poker.PokerGame
	for _, item := range list {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if game, ok := e.parseItem(obj); ok {
			games = append(games, game)
		}
	}
	return games
}

func (e *Embedded) search(data interface{}, depth int) []poker.PokerGame {
	if depth > e.cfg.MaxDepth {
		return nil
	}

	var games []poker.PokerGame
	switch v := data.(type) {
	case []interface{}:
		for _, item := range v {
			games = append(games, e.search(item, depth+1)...)
		}
	case map[string]interface{}:
		if looksLikeGame(v) {
			if game, ok := e.parseItem(v); ok {
				return append(games, game)
			}
		}
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			games = append(games, e.search(v[key], depth+1)...)
		}
	}
	return games
}

var gameMarkers = []string{"buyIn", "buyin", "buy_in", "entryFee", "stakes", "blinds", "tournament", "gameType", "smallBlind", "small_blind"}

func looksLikeGame(obj map[string]interface{}) bool {
	for _, key := range gameMarkers {
		if v, ok := obj[key]; ok && v != nil {
			return true
		}
	}
	return false
}

func isJSONLD(script string) bool {
	trimmed := strings.TrimSpace(script)
	return (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) &&
		strings.Contains(trimmed, "@context")
}

// fromJSONLD maps schema.org events; the ticket price is the buy-in
func (e *Embedded) fromJSONLD(data interface{}) []poker.PokerGame {
	var nodes []interface{}
	switch v := data.(type) {
	case []interface{}:
		nodes = v
	case map[string]interface{}:
		if graph, ok := v["@graph"].([]interface{}); ok {
			nodes = graph
		} else {
			nodes = []interface{}{v}
		}
	}

	var games []poker.PokerGame
	for _, node := range nodes {
		obj, ok := node.(map[string]interface{})
		if !ok {
			continue
		}
		if kind, _ := obj["@type"].(string); !strings.HasSuffix(kind, "Event") {
			continue
		}
		item := map[string]interface{}{
			"name":      obj["name"],
			"startDate": obj["startDate"],
		}
		if offers, ok := obj["offers"].(map[string]interface{}); ok {
			item["buyIn"] = offers["price"]
		}
		if game, ok := e.parseItem(item); ok && game.GameType == poker.GameTypeTournament {
			games = append(games, game)
		}
	}
	return games
}
