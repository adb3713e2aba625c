package strategy

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"sjsage522/pokerscraper/internal/parser"
	"sjsage522/pokerscraper/internal/poker"
)

// maxGuaranteeGap is how far after a buy-in a guarantee may appear and
// still belong to it
const maxGuaranteeGap = 160

const stakesContext = `(?:NLH?E?|PLO[56]?|PL|FL|LHE|hold'?em|omaha|blinds?|stakes?)`

var (
	hiddenBlocks = regexp.MustCompile(`(?is)<(?:script|style|noscript|template)\b.*?</(?:script|style|noscript|template)>`)
	anyTag       = regexp.MustCompile(`(?s)<[^>]*>`)
	spaceRun     = regexp.MustCompile(`[ \t\r\f\v\x{00a0}]+`)
	nodeSpace    = regexp.MustCompile(`[\s\x{00a0}]+`)

	buyInKeyword = regexp.MustCompile(`(?i)\$\s*(\d[\d,]*(?:\.\d{1,2})?)([Kk])?(?:\s*\+\s*\$?\s*\d+(?:\.\d{1,2})?)?\s*(?:buy-?in|entry)\b`)
	buyInNamed   = regexp.MustCompile(`(?i)\bbuy-?in\s*:?\s*\$\s*(\d[\d,]*(?:\.\d{1,2})?)([Kk])?`)
	guaranteeAmt = regexp.MustCompile(`(?i)\$?\s*(\d[\d,]*(?:\.\d+)?)([KkMm])?\s*(?:GTD|guaranteed|guarantee)\b`)
	stakesBefore = regexp.MustCompile(`(?i)\b` + stakesContext + `[ \t]*:?[ \t]*(\$?\d+(?:\.\d+)?\s*/\s*\$?\d+(?:\.\d+)?)`)
	stakesAfter  = regexp.MustCompile(`(?i)(\$?\d+(?:\.\d+)?\s*/\s*\$?\d+(?:\.\d+)?)[ \t]*` + stakesContext + `\b`)
)

// Regex scans the page's visible text for buy-ins, guarantees and stakes
// pairs. Stakes need a game marker next to them so dates and scores are
// not read as blinds.
type Regex struct {
	opts        parser.Options
	tournaments bool
	cash        bool
}

func NewRegex(opts parser.Options, tournaments, cash bool) *Regex {
	if opts.Bounds == (parser.Bounds{}) {
		opts.Bounds = parser.DefaultBounds()
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	return &Regex{opts: opts, tournaments: tournaments, cash: cash}
}

func (r *Regex) Name() string {
	return "regex"
}

func (r *Regex) Extract(ctx context.Context, page Page) []poker.PokerGame {
	return guard(r.Name(), r.opts.Provider, func() []poker.PokerGame {
		markup, err := page.RawMarkup(ctx)
		if err != nil {
			fault(r.Name(), r.opts.Provider, err)
			return nil
		}
		return r.ExtractText(VisibleText(markup))
	})
}

// ExtractText runs the pattern set over already tag-stripped text
func (r *Regex) ExtractText(text string) []poker.PokerGame {
	var games []poker.PokerGame
	if r.tournaments {
		games = append(games, r.tournamentsIn(text)...)
	}
	if r.cash {
		games = append(games, r.cashIn(text)...)
	}
	return games
}

type span struct {
	start, end int
	units      float64
	guarantee  *int64
}

func (r *Regex) tournamentsIn(text string) []poker.PokerGame {
	var found []span
	for _, pattern := range []*regexp.Regexp{buyInKeyword, buyInNamed} {
		for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
			amount := text[m[2]:m[3]]
			if m[4] >= 0 {
				amount += text[m[4]:m[5]]
			}
			units, ok := parser.ParseAmount(amount)
			if !ok || !r.opts.Bounds.BuyInOK(units) {
				continue
			}
			found = append(found, span{start: m[0], end: m[1], units: units})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].start < found[j].start })

	// overlapping matches describe the same buy-in
	buyIns := found[:0]
	for _, s := range found {
		if n := len(buyIns); n > 0 && s.start < buyIns[n-1].end {
			continue
		}
		buyIns = append(buyIns, s)
	}

	for _, m := range guaranteeAmt.FindAllStringSubmatchIndex(text, -1) {
		amount := text[m[2]:m[3]]
		if m[4] >= 0 {
			amount += text[m[4]:m[5]]
		}
		units, ok := parser.ParseAmount(amount)
		if !ok || units <= 0 {
			continue
		}
		owner := -1
		for i := range buyIns {
			if buyIns[i].end <= m[0] {
				owner = i
			}
		}
		if owner < 0 || m[0]-buyIns[owner].end > maxGuaranteeGap || buyIns[owner].guarantee != nil {
			continue
		}
		minor := parser.MinorUnits(units)
		buyIns[owner].guarantee = &minor
	}

	games := make([]poker.PokerGame, 0, len(buyIns))
	for _, s := range buyIns {
		game, ok := parseOne(r.Name(), r.opts.Provider, func() (poker.PokerGame, bool) {
			return r.tournament(text, s)
		})
		if ok {
			games = append(games, game)
		}
	}
	return games
}

func (r *Regex) tournament(text string, s span) (poker.PokerGame, bool) {
	window := lineAround(text, s.start, s.end)
	buyIn := parser.MinorUnits(s.units)
	start, _ := parser.ParseTime(window, r.opts.Now)

	info, err := poker.NewTournamentInfo(buyIn, start, s.guarantee, parser.ExtractName(window, buyIn))
	if err != nil {
		return poker.PokerGame{}, false
	}
	game := poker.NewTournamentGame(r.opts.Provider, parser.DetectVariant(window), info)
	game.ClubID, game.ClubName = r.opts.ClubID, r.opts.ClubName
	return game, true
}

func (r *Regex) cashIn(text string) []poker.PokerGame {
	seen := make(map[int]bool)
	var games []poker.PokerGame

	for _, pattern := range []*regexp.Regexp{stakesBefore, stakesAfter} {
		for _, m := range pattern.FindAllStringSubmatchIndex(text, -1) {
			pairStart, pairEnd := m[2], m[3]
			if seen[pairStart] || slashChained(text, pairStart, pairEnd) {
				continue
			}
			game, ok := parseOne(r.Name(), r.opts.Provider, func() (poker.PokerGame, bool) {
				stakes, ok := parser.ParseStakes(text[pairStart:pairEnd], r.opts.Bounds)
				if !ok {
					return poker.PokerGame{}, false
				}
				game := poker.NewCashGame(r.opts.Provider, parser.DetectVariant(lineAround(text, m[0], m[1])), stakes)
				game.ClubID, game.ClubName = r.opts.ClubID, r.opts.ClubName
				return game, true
			})
			if !ok {
				continue
			}
			seen[pairStart] = true
			games = append(games, game)
		}
	}
	return games
}

func slashChained(text string, start, end int) bool {
	if start > 0 {
		if c := text[start-1]; c == '/' || (c >= '0' && c <= '9') {
			return true
		}
	}
	if end < len(text) {
		if c := text[end]; c == '/' || (c >= '0' && c <= '9') {
			return true
		}
	}
	return false
}

func lineAround(text string, start, end int) string {
	lineStart := strings.LastIndexByte(text[:start], '\n') + 1
	lineEnd := len(text)
	if i := strings.IndexByte(text[end:], '\n'); i >= 0 {
		lineEnd = end + i
	}
	return strings.ReplaceAll(text[lineStart:lineEnd], "\n", " ")
}

// VisibleText returns the page text with one line per text node, scripts
// and styles removed.
func VisibleText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return stripTags(markup)
	}
	doc.Find("script, style, noscript, template").Remove()

	var lines []string
	for _, n := range doc.Nodes {
		collectText(n, &lines)
	}
	return strings.Join(lines, "\n")
}

func collectText(n *html.Node, lines *[]string) {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(nodeSpace.ReplaceAllString(n.Data, " ")); t != "" {
			*lines = append(*lines, t)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, lines)
	}
}

func stripTags(markup string) string {
	text := anyTag.ReplaceAllString(hiddenBlocks.ReplaceAllString(markup, " "), "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(spaceRun.ReplaceAllString(line, " ")); t != "" {
			lines = append(lines, t)
		}
	}
	return strings.Join(lines, "\n")
}
