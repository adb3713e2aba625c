package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"sjsage522/pokerscraper/internal/poker"
)

// Payload key aliases, checked in order
var (
	buyInKeys     = []string{"buyIn", "buyin", "buy_in", "entryFee", "entry_fee", "buyInAmount"}
	nameKeys      = []string{"name", "title", "tournamentName", "tournament_name"}
	startKeys     = []string{"startTime", "start_time", "startDate", "start_date", "start"}
	guaranteeKeys = []string{"guarantee", "guaranteed", "gtd", "prizePool", "prize_pool", "guaranteedPrize"}
	idKeys        = []string{"id", "tournamentId", "tournament_id", "gameId", "game_id"}
	variantKeys   = []string{"variant", "gameType", "game_type", "game"}
	playerKeys    = []string{"players", "entries", "currentEntries", "registered", "seated", "playerCount"}
	maxPlayerKeys = []string{"maxPlayers", "max_players", "maxEntries", "max_entries"}
	runningKeys   = []string{"running", "active", "live", "isRunning", "is_running"}
	tableKeys     = []string{"tables", "tableCount", "table_count"}
	sbKeys        = []string{"smallBlind", "small_blind", "sb"}
	bbKeys        = []string{"bigBlind", "big_blind", "bb"}
	stakesKeys    = []string{"stakes", "blinds", "limit"}
	tournamentHit = []string{"tournament", "isTournament"}
)

// IsTournamentItem reports whether a payload object describes a tournament
func IsTournamentItem(item map[string]interface{}) bool {
	if _, ok := lookup(item, buyInKeys); ok {
		return true
	}
	if _, ok := lookup(item, startKeys); ok {
		return true
	}
	_, ok := lookup(item, tournamentHit)
	return ok
}

// ParseJSONGame builds a game from one decoded payload object
func ParseJSONGame(item map[string]interface{}, o Options) (poker.PokerGame, bool) {
	if IsTournamentItem(item) {
		return ParseJSONTournament(item, o)
	}
	return ParseJSONCash(item, o)
}

// ParseJSONTournament reads a tournament object
func ParseJSONTournament(item map[string]interface{}, o Options) (poker.PokerGame, bool) {
	raw, ok := lookup(item, buyInKeys)
	if !ok {
		return poker.PokerGame{}, false
	}
	units, ok := amountValue(raw)
	bounds := o.Bounds
	if bounds == (Bounds{}) {
		bounds = DefaultBounds()
	}
	if !ok || !bounds.BuyInOK(units) {
		return poker.PokerGame{}, false
	}
	buyIn := MinorUnits(units)

	var guaranteed *int64
	if v, ok := lookup(item, guaranteeKeys); ok {
		if gtd, ok := amountValue(v); ok && gtd > 0 {
			minor := MinorUnits(gtd)
			guaranteed = &minor
		}
	}

	start := o.now()
	if v, ok := lookup(item, startKeys); ok {
		start = timeValue(v, start)
	}

	name := stringValue(item, nameKeys)
	if name == "" {
		name = FallbackName(buyIn)
	}

	info, err := poker.NewTournamentInfo(buyIn, start, guaranteed, TruncateName(name))
	if err != nil {
		return poker.PokerGame{}, false
	}
	info.TournamentID = stringValue(item, idKeys)
	if v, ok := lookup(item, maxPlayerKeys); ok {
		if n, ok := intValue(v); ok && n > 0 {
			info.MaxPlayers = &n
		}
	}

	variant := ParseVariantName(stringValue(item, variantKeys))
	if _, ok := lookup(item, variantKeys); !ok {
		variant = DetectVariant(name)
	}

	game := poker.NewTournamentGame(o.Provider, variant, info)
	fillCommon(&game, item, o)
	return game, true
}

// ParseJSONCash reads a cash table object, from numeric blinds or a
// "sb/bb" stakes string.
func ParseJSONCash(item map[string]interface{}, o Options) (poker.PokerGame, bool) {
	bounds := o.Bounds
	if bounds == (Bounds{}) {
		bounds = DefaultBounds()
	}

	var stakes poker.Stakes
	sbRaw, hasSB := lookup(item, sbKeys)
	bbRaw, hasBB := lookup(item, bbKeys)
	switch {
	case hasSB && hasBB:
		sb, ok1 := amountValue(sbRaw)
		bb, ok2 := amountValue(bbRaw)
		if !ok1 || !ok2 || !bounds.StakesOK(sb, bb) {
			return poker.PokerGame{}, false
		}
		s, err := poker.NewStakes(MinorUnits(sb), MinorUnits(bb), nil)
		if err != nil {
			return poker.PokerGame{}, false
		}
		stakes = s
	default:
		text := stringValue(item, stakesKeys)
		if text == "" {
			return poker.PokerGame{}, false
		}
		s, ok := ParseStakes(text, bounds)
		if !ok {
			return poker.PokerGame{}, false
		}
		stakes = s
	}

	variant := poker.VariantNLHE
	if v := stringValue(item, variantKeys); v != "" {
		variant = ParseVariantName(v)
	} else if n := stringValue(item, nameKeys); n != "" {
		variant = DetectVariant(n)
	}

	game := poker.NewCashGame(o.Provider, variant, stakes)
	if v, ok := lookup(item, tableKeys); ok {
		if n, ok := intValue(v); ok && n > 0 {
			game.TableCount = &n
		}
	}
	fillCommon(&game, item, o)
	return game, true
}

func fillCommon(game *poker.PokerGame, item map[string]interface{}, o Options) {
	if v, ok := lookup(item, playerKeys); ok {
		if n, ok := intValue(v); ok && n >= 0 {
			game.PlayerCount = n
		}
	}
	if v, ok := lookup(item, runningKeys); ok {
		game.IsRunning = truthy(v)
	}
	game.ClubID, game.ClubName = o.ClubID, o.ClubName
	if o.KeepRaw {
		game.RawData = item
	}
}

func lookup(item map[string]interface{}, keys []string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := item[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func stringValue(item map[string]interface{}, keys []string) string {
	v, ok := lookup(item, keys)
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int, int64, bool:
		return fmt.Sprint(t)
	}
	return ""
}

func amountValue(v interface{}) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, t >= 0 && t <= maxAmount
	case int:
		return float64(t), t >= 0 && float64(t) <= maxAmount
	case int64:
		return float64(t), t >= 0 && float64(t) <= maxAmount
	case string:
		return ParseAmount(t)
	case map[string]interface{}:
		// {"amount": 55, "currency": "USD"}
		if inner, ok := lookup(t, []string{"amount", "value"}); ok {
			return amountValue(inner)
		}
	}
	return 0, false
}

func intValue(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case int64:
		return int(t), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		return n, err == nil
	}
	return 0, false
}

func timeValue(v interface{}, now time.Time) time.Time {
	switch t := v.(type) {
	case float64:
		if t > 0 {
			return FromEpoch(t)
		}
	case int64:
		if t > 0 {
			return FromEpoch(float64(t))
		}
	case string:
		if parsed, ok := ParseTimestamp(t, now); ok {
			return parsed
		}
	}
	return now
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "1", "running", "live", "active":
			return true
		}
	}
	return false
}
