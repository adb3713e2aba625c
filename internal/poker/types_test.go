package poker

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStakes(t *testing.T) {
	s, err := NewStakes(100, 200, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(100), s.SmallBlind)
	assert.Equal(t, int64(200), s.BigBlind)

	for _, tc := range [][2]int64{{200, 200}, {300, 200}, {0, 200}, {-1, 2}, {1, 0}} {
		_, err := NewStakes(tc[0], tc[1], nil)
		assert.True(t, errors.Is(err, ErrInvalidStakes), "%d/%d should be rejected", tc[0], tc[1])
	}

	negative := int64(-5)
	_, err = NewStakes(100, 200, &negative)
	assert.ErrorIs(t, err, ErrInvalidStakes)
}

func TestNewTournamentInfo(t *testing.T) {
	start := time.Date(2026, 10, 17, 20, 0, 0, 0, time.UTC)
	info, err := NewTournamentInfo(5500, start, nil, "Sunday Million")
	require.NoError(t, err)
	assert.Equal(t, "Sunday Million", info.Name)

	_, err = NewTournamentInfo(0, start, nil, "")
	assert.ErrorIs(t, err, ErrInvalidTournament)

	negative := int64(-1)
	_, err = NewTournamentInfo(100, start, &negative, "")
	assert.ErrorIs(t, err, ErrInvalidTournament)
}

func TestGameInvariant(t *testing.T) {
	stakes, _ := NewStakes(100, 200, nil)
	cash := NewCashGame(ProviderClubGG, "", stakes)
	assert.Equal(t, VariantNLHE, cash.Variant)
	assert.NoError(t, cash.Validate())

	info, _ := NewTournamentInfo(5500, time.Now(), nil, "$55 Tournament")
	tourney := NewTournamentGame(ProviderGGPoker, VariantPLO, info)
	assert.NoError(t, tourney.Validate())

	both := cash
	both.Tournament = &info
	assert.ErrorIs(t, both.Validate(), ErrInvalidGame)

	neither := tourney
	neither.Tournament = nil
	assert.ErrorIs(t, neither.Validate(), ErrInvalidGame)
}

func TestProjections(t *testing.T) {
	stakes, _ := NewStakes(50, 100, nil)
	cash := NewCashGame(ProviderClubGG, VariantPLO, stakes)
	cash.ClubID = "clubgg_main"

	c, ok := cash.CashGame()
	require.True(t, ok)
	assert.Equal(t, 1, c.TableCount)
	assert.Equal(t, "clubgg_main", c.ClubID)
	_, ok = cash.TournamentListing()
	assert.False(t, ok)

	info, _ := NewTournamentInfo(1100, time.Now(), nil, "Daily Hyper")
	info.TournamentID = "T-42"
	tourney := NewTournamentGame(ProviderPokerStars, VariantNLHE, info)
	listing, ok := tourney.TournamentListing()
	require.True(t, ok)
	assert.Equal(t, "T-42", listing.TournamentID)
	assert.Equal(t, int64(1100), listing.BuyIn)
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("gg-poker")
	require.NoError(t, err)
	assert.Equal(t, ProviderGGPoker, p)

	p, err = ParseProvider(" club gg ")
	require.NoError(t, err)
	assert.Equal(t, ProviderClubGG, p)

	_, err = ParseProvider("pokerbros")
	assert.Error(t, err)
}

func TestScraperResultLifecycle(t *testing.T) {
	r := NewScraperResult(ProviderGGPoker, "", time.Now())
	assert.Equal(t, SourceWeb, r.Source)

	stakes, _ := NewStakes(100, 200, nil)
	r.AddGame(NewCashGame(ProviderGGPoker, VariantNLHE, stakes))
	info, _ := NewTournamentInfo(5500, time.Now(), nil, "$55 Tournament")
	r.AddGame(NewTournamentGame(ProviderGGPoker, VariantNLHE, info))
	r.AddWarning("structural extraction found no listings")
	r.Finalize(true)

	assert.True(t, r.Finalized())
	assert.True(t, r.Success)
	assert.Equal(t, 2, r.GameCount)
	assert.Equal(t, 1, r.CashGameCount)
	assert.Equal(t, 1, r.TournamentCount)

	assert.Panics(t, func() { r.AddError("late") })
	assert.Panics(t, func() { r.Finalize(false) })
}

func TestScraperResultDurationIgnoresInjectedClock(t *testing.T) {
	r := NewScraperResult(ProviderClubGG, SourceMock, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))
	r.Finalize(true)

	assert.GreaterOrEqual(t, r.DurationMillis, int64(0))
	assert.Less(t, r.DurationMillis, int64(time.Minute/time.Millisecond))
}

func TestScraperResultJSON(t *testing.T) {
	r := NewScraperResult(ProviderPokerStars, SourceMock, time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))
	r.AddError("navigation failed")
	r.Finalize(false)

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"provider", "success", "timestamp", "source", "games", "cash_games", "tournaments", "errors", "warnings"} {
		assert.Contains(t, decoded, key)
	}
	assert.NotContains(t, decoded, "raw_html")
	assert.Equal(t, "2026-10-17T12:00:00Z", decoded["timestamp"])
	assert.Equal(t, []interface{}{}, decoded["games"])
	assert.Equal(t, false, decoded["success"])
}
