// Package poker holds the entity model shared by every scraper: stakes,
// tournament info, the unified PokerGame record, its typed projections, and
// the per-run ScraperResult.
package poker

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Provider identifies an external poker site
type Provider string

const (
	ProviderPokerStars Provider = "POKERSTARS"
	ProviderGGPoker    Provider = "GG_POKER"
	ProviderPoker888   Provider = "POKER_888"
	ProviderPartyPoker Provider = "PARTY_POKER"
	ProviderWPTGlobal  Provider = "WPT_GLOBAL"
	ProviderWSOPOnline Provider = "WSOP_ONLINE"
	ProviderClubGG     Provider = "CLUB_GG"
	ProviderOther      Provider = "OTHER"
)

var knownProviders = []Provider{
	ProviderPokerStars, ProviderGGPoker, ProviderPoker888, ProviderPartyPoker,
	ProviderWPTGlobal, ProviderWSOPOnline, ProviderClubGG, ProviderOther,
}

// ParseProvider resolves a provider name case-insensitively; "gg-poker",
// "gg poker" and "GG_POKER" are equivalent.
func ParseProvider(name string) (Provider, error) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	for _, p := range knownProviders {
		if string(p) == normalized {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown provider %q", name)
}

// GameType distinguishes ring games from tournaments
type GameType string

const (
	GameTypeCash       GameType = "CASH"
	GameTypeTournament GameType = "TOURNAMENT"
)

// Variant is the poker game variant
type Variant string

const (
	VariantNLHE  Variant = "NLHE"
	VariantPLO   Variant = "PLO"
	VariantPLO5  Variant = "PLO5"
	VariantMixed Variant = "MIXED"
	VariantOther Variant = "OTHER"
)

// Source values for ScraperResult.Source
const (
	SourceWeb  = "web"
	SourceAPI  = "api"
	SourceMock = "mock"
)

var (
	ErrInvalidStakes     = errors.New("invalid stakes")
	ErrInvalidTournament = errors.New("invalid tournament")
	ErrInvalidGame       = errors.New("invalid game")
)

// Stakes are cash game blinds in minor currency units
type Stakes struct {
	SmallBlind int64  `json:"small_blind"`
	BigBlind   int64  `json:"big_blind"`
	Ante       *int64 `json:"ante,omitempty"`
}

// NewStakes validates 0 < small blind < big blind and a non-negative ante
func NewStakes(smallBlind, bigBlind int64, ante *int64) (Stakes, error) {
	if smallBlind <= 0 || bigBlind <= 0 {
		return Stakes{}, fmt.Errorf("%w: blinds must be positive, got %d/%d", ErrInvalidStakes, smallBlind, bigBlind)
	}
	if smallBlind >= bigBlind {
		return Stakes{}, fmt.Errorf("%w: small blind %d must be below big blind %d", ErrInvalidStakes, smallBlind, bigBlind)
	}
	if ante != nil && *ante < 0 {
		return Stakes{}, fmt.Errorf("%w: negative ante %d", ErrInvalidStakes, *ante)
	}
	return Stakes{SmallBlind: smallBlind, BigBlind: bigBlind, Ante: ante}, nil
}

// TournamentInfo describes a scheduled tournament. Money is in minor units.
type TournamentInfo struct {
	BuyIn           int64     `json:"buy_in"`
	StartTime       time.Time `json:"start_time"`
	GuaranteedPrize *int64    `json:"guaranteed_prize,omitempty"`
	MaxPlayers      *int      `json:"max_players,omitempty"`
	Name            string    `json:"name,omitempty"`
	TournamentID    string    `json:"tournament_id,omitempty"`
}

// NewTournamentInfo validates a positive buy-in and a non-negative guarantee
func NewTournamentInfo(buyIn int64, startTime time.Time, guaranteed *int64, name string) (TournamentInfo, error) {
	if buyIn <= 0 {
		return TournamentInfo{}, fmt.Errorf("%w: buy-in must be positive, got %d", ErrInvalidTournament, buyIn)
	}
	if guaranteed != nil && *guaranteed < 0 {
		return TournamentInfo{}, fmt.Errorf("%w: negative guarantee %d", ErrInvalidTournament, *guaranteed)
	}
	return TournamentInfo{
		BuyIn:           buyIn,
		StartTime:       startTime,
		GuaranteedPrize: guaranteed,
		Name:            name,
	}, nil
}

// PokerGame is the unified record across providers. Exactly one of Stakes
// (CASH) or Tournament (TOURNAMENT) is set.
type PokerGame struct {
	Provider   Provider        `json:"provider"`
	GameType   GameType        `json:"game_type"`
	Variant    Variant         `json:"variant"`
	Stakes     *Stakes         `json:"stakes,omitempty"`
	Tournament *TournamentInfo `json:"tournament,omitempty"`

	PlayerCount int  `json:"player_count"`
	IsRunning   bool `json:"is_running"`
	TableCount  *int `json:"table_count,omitempty"`

	ClubID   string                 `json:"club_id,omitempty"`
	ClubName string                 `json:"club_name,omitempty"`
	RawData  map[string]interface{} `json:"raw_data,omitempty"`
}

// NewCashGame builds a CASH game; running by default like a listed table
func NewCashGame(provider Provider, variant Variant, stakes Stakes) PokerGame {
	s := stakes
	return PokerGame{
		Provider:  provider,
		GameType:  GameTypeCash,
		Variant:   defaultVariant(variant),
		Stakes:    &s,
		IsRunning: true,
	}
}

// NewTournamentGame builds a TOURNAMENT game
func NewTournamentGame(provider Provider, variant Variant, info TournamentInfo) PokerGame {
	t := info
	return PokerGame{
		Provider:   provider,
		GameType:   GameTypeTournament,
		Variant:    defaultVariant(variant),
		Tournament: &t,
	}
}

// Validate re-checks the game type invariant and the nested value invariants
func (g PokerGame) Validate() error {
	switch g.GameType {
	case GameTypeCash:
		if g.Stakes == nil || g.Tournament != nil {
			return fmt.Errorf("%w: CASH requires stakes and no tournament", ErrInvalidGame)
		}
		_, err := NewStakes(g.Stakes.SmallBlind, g.Stakes.BigBlind, g.Stakes.Ante)
		return err
	case GameTypeTournament:
		if g.Tournament == nil || g.Stakes != nil {
			return fmt.Errorf("%w: TOURNAMENT requires tournament info and no stakes", ErrInvalidGame)
		}
		_, err := NewTournamentInfo(g.Tournament.BuyIn, g.Tournament.StartTime, g.Tournament.GuaranteedPrize, g.Tournament.Name)
		return err
	default:
		return fmt.Errorf("%w: unknown game type %q", ErrInvalidGame, g.GameType)
	}
}

// CashGame is the typed cash projection of a PokerGame
type CashGame struct {
	Provider    Provider `json:"provider"`
	Variant     Variant  `json:"variant"`
	Stakes      Stakes   `json:"stakes"`
	PlayerCount int      `json:"player_count"`
	TableCount  int      `json:"table_count"`
	IsRunning   bool     `json:"is_running"`
	ClubID      string   `json:"club_id,omitempty"`
	ClubName    string   `json:"club_name,omitempty"`
}

// Tournament is the typed tournament projection of a PokerGame
type Tournament struct {
	Provider        Provider  `json:"provider"`
	Variant         Variant   `json:"variant"`
	TournamentID    string    `json:"tournament_id,omitempty"`
	Name            string    `json:"name"`
	BuyIn           int64     `json:"buy_in"`
	StartTime       time.Time `json:"start_time"`
	GuaranteedPrize *int64    `json:"guaranteed_prize,omitempty"`
	CurrentEntries  int       `json:"current_entries"`
	MaxEntries      *int      `json:"max_entries,omitempty"`
	IsRunning       bool      `json:"is_running"`
	LateRegOpen     bool      `json:"late_reg_open"`
}

// CashGame projects a CASH game; ok is false for tournaments
func (g PokerGame) CashGame() (CashGame, bool) {
	if g.GameType != GameTypeCash || g.Stakes == nil {
		return CashGame{}, false
	}
	tables := 1
	if g.TableCount != nil && *g.TableCount > 0 {
		tables = *g.TableCount
	}
	return CashGame{
		Provider:    g.Provider,
		Variant:     g.Variant,
		Stakes:      *g.Stakes,
		PlayerCount: g.PlayerCount,
		TableCount:  tables,
		IsRunning:   g.IsRunning,
		ClubID:      g.ClubID,
		ClubName:    g.ClubName,
	}, true
}

// TournamentListing projects a TOURNAMENT game; ok is false for cash games
func (g PokerGame) TournamentListing() (Tournament, bool) {
	if g.GameType != GameTypeTournament || g.Tournament == nil {
		return Tournament{}, false
	}
	t := g.Tournament
	return Tournament{
		Provider:        g.Provider,
		Variant:         g.Variant,
		TournamentID:    t.TournamentID,
		Name:            t.Name,
		BuyIn:           t.BuyIn,
		StartTime:       t.StartTime,
		GuaranteedPrize: t.GuaranteedPrize,
		CurrentEntries:  g.PlayerCount,
		MaxEntries:      t.MaxPlayers,
		IsRunning:       g.IsRunning,
	}, true
}

func defaultVariant(v Variant) Variant {
	if v == "" {
		return VariantNLHE
	}
	return v
}
