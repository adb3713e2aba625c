package poker

import (
	"encoding/json"
	"time"
)

// ScraperResult is the outcome of one provider run. The scraper that
// creates it owns it until Finalize; after that it is read-only.
type ScraperResult struct {
	Success     bool         `json:"success"`
	Provider    Provider     `json:"provider"`
	Timestamp   time.Time    `json:"timestamp"`
	Source      string       `json:"source"`
	Games       []PokerGame  `json:"games"`
	CashGames   []CashGame   `json:"cash_games"`
	Tournaments []Tournament `json:"tournaments"`
	Errors      []string     `json:"errors"`
	Warnings    []string     `json:"warnings"`
	RawHTML     string       `json:"raw_html,omitempty"`
	PageTitle   string       `json:"page_title,omitempty"`

	GameCount       int   `json:"game_count"`
	CashGameCount   int   `json:"cash_game_count"`
	TournamentCount int   `json:"tournament_count"`
	DurationMillis  int64 `json:"duration_ms"`

	started   time.Time
	finalized bool
}

// NewScraperResult creates an empty, unfinalized result
func NewScraperResult(provider Provider, source string, timestamp time.Time) *ScraperResult {
	if source == "" {
		source = SourceWeb
	}
	return &ScraperResult{
		Provider:    provider,
		Timestamp:   timestamp,
		Source:      source,
		Games:       []PokerGame{},
		CashGames:   []CashGame{},
		Tournaments: []Tournament{},
		Errors:      []string{},
		Warnings:    []string{},
		started:     time.Now(),
	}
}

func (r *ScraperResult) mustBeOpen() {
	if r.finalized {
		panic("poker: ScraperResult mutated after Finalize")
	}
}

// AddGame appends a game and its typed projection
func (r *ScraperResult) AddGame(g PokerGame) {
	r.mustBeOpen()
	r.Games = append(r.Games, g)
	if c, ok := g.CashGame(); ok {
		r.CashGames = append(r.CashGames, c)
	}
	if t, ok := g.TournamentListing(); ok {
		r.Tournaments = append(r.Tournaments, t)
	}
}

// AddError records a reason the run is unreliable
func (r *ScraperResult) AddError(msg string) {
	r.mustBeOpen()
	r.Errors = append(r.Errors, msg)
}

// AddWarning records that a fallback path was used
func (r *ScraperResult) AddWarning(msg string) {
	r.mustBeOpen()
	r.Warnings = append(r.Warnings, msg)
}

// SetRawHTML keeps the rendered markup for debugging
func (r *ScraperResult) SetRawHTML(markup string) {
	r.mustBeOpen()
	r.RawHTML = markup
}

// SetPageTitle records the rendered document title
func (r *ScraperResult) SetPageTitle(title string) {
	r.mustBeOpen()
	r.PageTitle = title
}

// Finalize sets the success flag and computes counts. It may be called
// exactly once.
func (r *ScraperResult) Finalize(success bool) {
	r.mustBeOpen()
	r.Success = success
	r.GameCount = len(r.Games)
	r.CashGameCount = len(r.CashGames)
	r.TournamentCount = len(r.Tournaments)
	// Timestamp may come from an injected clock; duration is wall time
	if !r.started.IsZero() {
		r.DurationMillis = time.Since(r.started).Milliseconds()
	}
	r.finalized = true
}

// Finalized reports whether Finalize has been called
func (r *ScraperResult) Finalized() bool {
	return r.finalized
}

// MarshalJSON emits empty lists instead of null and ISO-8601 timestamps
func (r *ScraperResult) MarshalJSON() ([]byte, error) {
	type alias ScraperResult
	out := alias(*r)
	if out.Games == nil {
		out.Games = []PokerGame{}
	}
	if out.CashGames == nil {
		out.CashGames = []CashGame{}
	}
	if out.Tournaments == nil {
		out.Tournaments = []Tournament{}
	}
	if out.Errors == nil {
		out.Errors = []string{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return json.Marshal(out)
}
