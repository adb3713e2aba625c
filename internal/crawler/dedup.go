package crawler

import (
	"fmt"
	"time"

	"sjsage522/pokerscraper/internal/poker"
)

// DedupKey identifies a listing: tournaments by name, buy-in and start
// time; cash games by provider, variant and blinds.
func DedupKey(g poker.PokerGame) string {
	switch {
	case g.GameType == poker.GameTypeTournament && g.Tournament != nil:
		t := g.Tournament
		return fmt.Sprintf("T|%s|%d|%s", t.Name, t.BuyIn, t.StartTime.UTC().Format(time.RFC3339Nano))
	case g.GameType == poker.GameTypeCash && g.Stakes != nil:
		return fmt.Sprintf("C|%s|%s|%d|%d", g.Provider, g.Variant, g.Stakes.SmallBlind, g.Stakes.BigBlind)
	default:
		return fmt.Sprintf("?|%s|%s|%s", g.Provider, g.GameType, g.Variant)
	}
}

// Dedup keeps the first occurrence of each key, in encounter order
func Dedup(games []poker.PokerGame) []poker.PokerGame {
	seen := make(map[string]struct{}, len(games))
	unique := make([]poker.PokerGame, 0, len(games))
	for _, g := range games {
		key := DedupKey(g)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, g)
	}
	return unique
}
