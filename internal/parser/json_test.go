package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pokerscraper/internal/poker"
)

func TestParseJSONTournament(t *testing.T) {
	item := map[string]interface{}{
		"name":       "Sunday Million",
		"buyIn":      109.0,
		"guarantee":  "$10M",
		"startTime":  "2026-10-18T20:00:00Z",
		"id":         123.0,
		"maxPlayers": 5000.0,
		"entries":    812.0,
	}

	game, ok := ParseJSONGame(item, ggOptions())
	require.True(t, ok)
	require.NoError(t, game.Validate())

	info := game.Tournament
	assert.Equal(t, int64(10900), info.BuyIn)
	require.NotNil(t, info.GuaranteedPrize)
	assert.Equal(t, int64(1_000_000_000), *info.GuaranteedPrize)
	assert.True(t, info.StartTime.Equal(time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC)))
	assert.Equal(t, "123", info.TournamentID)
	assert.Equal(t, "Sunday Million", info.Name)
	require.NotNil(t, info.MaxPlayers)
	assert.Equal(t, 5000, *info.MaxPlayers)
	assert.Equal(t, 812, game.PlayerCount)
	assert.Nil(t, game.RawData)
}

func TestParseJSONTournamentEpochAndFallbackName(t *testing.T) {
	opts := ggOptions()
	opts.KeepRaw = true
	item := map[string]interface{}{
		"buy_in":     map[string]interface{}{"amount": 22.0, "currency": "USD"},
		"start_time": 1760817600000.0,
		"gameType":   "PLO",
	}

	game, ok := ParseJSONGame(item, opts)
	require.True(t, ok)
	assert.Equal(t, int64(2200), game.Tournament.BuyIn)
	assert.Equal(t, int64(1760817600), game.Tournament.StartTime.Unix())
	assert.Equal(t, "$22 Tournament", game.Tournament.Name)
	assert.Equal(t, poker.VariantPLO, game.Variant)
	assert.Equal(t, item, game.RawData)
}

func TestParseJSONTournamentRejectsBadBuyIn(t *testing.T) {
	_, ok := ParseJSONGame(map[string]interface{}{"buyIn": "free"}, ggOptions())
	assert.False(t, ok)

	_, ok = ParseJSONGame(map[string]interface{}{"buyIn": 0.0}, ggOptions())
	assert.False(t, ok)
}

func TestParseJSONTournamentIgnoresOversizedGuarantee(t *testing.T) {
	game, ok := ParseJSONGame(map[string]interface{}{"buyIn": 55.0, "guarantee": 1e30}, ggOptions())
	require.True(t, ok)
	assert.Nil(t, game.Tournament.GuaranteedPrize)
}

func TestParseJSONCash(t *testing.T) {
	item := map[string]interface{}{
		"smallBlind": 0.5,
		"bigBlind":   1.0,
		"players":    5.0,
		"tables":     2.0,
		"gameType":   "PLO",
	}

	game, ok := ParseJSONGame(item, ggOptions())
	require.True(t, ok)
	require.NoError(t, game.Validate())
	assert.Equal(t, poker.GameTypeCash, game.GameType)
	assert.Equal(t, int64(50), game.Stakes.SmallBlind)
	assert.Equal(t, int64(100), game.Stakes.BigBlind)
	assert.Equal(t, poker.VariantPLO, game.Variant)
	assert.Equal(t, 5, game.PlayerCount)
	require.NotNil(t, game.TableCount)
	assert.Equal(t, 2, *game.TableCount)
	assert.True(t, game.IsRunning)
}

func TestParseJSONCashFromStakesString(t *testing.T) {
	game, ok := ParseJSONGame(map[string]interface{}{"stakes": "$1/$2", "active": false}, ggOptions())
	require.True(t, ok)
	assert.Equal(t, int64(100), game.Stakes.SmallBlind)
	assert.False(t, game.IsRunning)

	_, ok = ParseJSONGame(map[string]interface{}{"foo": 1.0}, ggOptions())
	assert.False(t, ok)

	_, ok = ParseJSONGame(map[string]interface{}{"sb": 2.0, "bb": 1.0}, ggOptions())
	assert.False(t, ok)
}
