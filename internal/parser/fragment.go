package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"sjsage522/pokerscraper/internal/poker"
)

// Options carry the per-provider context a fragment is parsed under
type Options struct {
	Provider poker.Provider
	Bounds   Bounds
	// Now anchors times of day; every fragment of one run shares it.
	Now      time.Time
	ClubID   string
	ClubName string
	KeepRaw  bool
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// DefaultKeywords mark a text fragment as a probable listing
var DefaultKeywords = []string{"$", "buy-in", "buyin", "gtd", "guaranteed", "tournament", "nlhe", "plo"}

var (
	buyInAfterPattern  = regexp.MustCompile(`(?i)\$\s*(\d[\d,]*(?:\.\d{1,2})?)([KkMm])?(?:\s*\+\s*\$?\s*\d+(?:\.\d{1,2})?)?\s*(?:buy-?in|entry)`)
	buyInBeforePattern = regexp.MustCompile(`(?i)(?:buy-?in|entry)[:\s]*\$\s*(\d[\d,]*(?:\.\d{1,2})?)([KkMm])?`)
	dollarPattern      = regexp.MustCompile(`\$\s*(\d[\d,]*(?:\.\d{1,2})?)([KkMm])?\b`)
	guaranteeTail      = regexp.MustCompile(`(?i)^\s*(?:GTD|guaranteed|guarantee)`)

	playersPattern = regexp.MustCompile(`(?i)\b(\d{1,5})\s*(?:players|seated|entries|entrants|registered)\b`)
	tablesPattern  = regexp.MustCompile(`(?i)\b(\d{1,4})\s*tables?\b`)
)

// LooksLikeListing reports whether text contains any listing keyword
func LooksLikeListing(text string, keywords []string) bool {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// FindBuyIn locates the buy-in of a tournament fragment in whole units.
// An amount labelled buy-in/entry wins; otherwise the first dollar amount
// that is neither a guarantee nor half of a stakes pair.
func FindBuyIn(text string) (float64, bool) {
	for _, pattern := range []*regexp.Regexp{buyInAfterPattern, buyInBeforePattern} {
		if m := pattern.FindStringSubmatch(text); m != nil {
			if v, ok := ParseAmount(m[1] + m[2]); ok {
				return v, true
			}
		}
	}

	for _, idx := range dollarPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := idx[0], idx[1]
		if start > 0 && text[start-1] == '/' {
			continue
		}
		rest := strings.TrimLeft(text[end:], " ")
		if strings.HasPrefix(rest, "/") || guaranteeTail.MatchString(text[end:]) {
			continue
		}
		suffix := ""
		if idx[4] >= 0 {
			suffix = text[idx[4]:idx[5]]
		}
		if v, ok := ParseAmount(text[idx[2]:idx[3]] + suffix); ok {
			return v, true
		}
	}
	return 0, false
}

// ParseTournamentText builds a tournament from a free-text fragment
func ParseTournamentText(text string, o Options) (poker.PokerGame, bool) {
	units, ok := FindBuyIn(text)
	if !ok {
		return poker.PokerGame{}, false
	}
	bounds := o.Bounds
	if bounds == (Bounds{}) {
		bounds = DefaultBounds()
	}
	if !bounds.BuyInOK(units) {
		return poker.PokerGame{}, false
	}

	buyIn := MinorUnits(units)
	var guaranteed *int64
	if gtd, ok := ParseGuarantee(text); ok {
		guaranteed = &gtd
	}
	start, _ := ParseTime(text, o.now())

	info, err := poker.NewTournamentInfo(buyIn, start, guaranteed, ExtractName(text, buyIn))
	if err != nil {
		return poker.PokerGame{}, false
	}

	game := poker.NewTournamentGame(o.Provider, DetectVariant(text), info)
	game.PlayerCount = firstInt(playersPattern, text)
	game.ClubID, game.ClubName = o.ClubID, o.ClubName
	return game, true
}

// ParseCashText builds a cash game from a free-text fragment
func ParseCashText(text string, o Options) (poker.PokerGame, bool) {
	bounds := o.Bounds
	if bounds == (Bounds{}) {
		bounds = DefaultBounds()
	}
	stakes, ok := ParseStakes(text, bounds)
	if !ok {
		return poker.PokerGame{}, false
	}

	game := poker.NewCashGame(o.Provider, DetectVariant(text), stakes)
	game.PlayerCount = firstInt(playersPattern, text)
	if tables := firstInt(tablesPattern, text); tables > 0 {
		game.TableCount = &tables
	}
	game.ClubID, game.ClubName = o.ClubID, o.ClubName
	return game, true
}

// ParseFragment tries a tournament first, then a cash game
func ParseFragment(text string, o Options) (poker.PokerGame, bool) {
	if game, ok := ParseTournamentText(text, o); ok {
		return game, true
	}
	return ParseCashText(text, o)
}

func firstInt(pattern *regexp.Regexp, text string) int {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
