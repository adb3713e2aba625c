package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pokerscraper/internal/poker"
)

func ggOptions() Options {
	return Options{Provider: poker.ProviderGGPoker, Bounds: DefaultBounds(), Now: testNow}
}

func TestParseTournamentText(t *testing.T) {
	game, ok := ParseTournamentText("Daily Special $55 buy-in $5K GTD 8:00 PM", ggOptions())
	require.True(t, ok)
	require.NoError(t, game.Validate())

	assert.Equal(t, poker.GameTypeTournament, game.GameType)
	assert.Equal(t, poker.ProviderGGPoker, game.Provider)
	assert.Equal(t, poker.VariantNLHE, game.Variant)
	assert.Equal(t, int64(5500), game.Tournament.BuyIn)
	require.NotNil(t, game.Tournament.GuaranteedPrize)
	assert.Equal(t, int64(500_000), *game.Tournament.GuaranteedPrize)
	assert.Equal(t, "Daily Special", game.Tournament.Name)
	assert.Equal(t, 20, game.Tournament.StartTime.Hour())
}

func TestParseTournamentTextDefaultsStartToNow(t *testing.T) {
	game, ok := ParseTournamentText("$11 buy-in PLO", ggOptions())
	require.True(t, ok)
	assert.True(t, game.Tournament.StartTime.Equal(testNow))
	assert.Equal(t, poker.VariantPLO, game.Variant)
	assert.Equal(t, "$11 Tournament", game.Tournament.Name)
}

func TestParseTournamentTextDropsOversizedGuarantee(t *testing.T) {
	game, ok := ParseTournamentText("Sunday Million $109 buy-in $99999999999999999 GTD", ggOptions())
	require.True(t, ok)
	assert.Equal(t, int64(10900), game.Tournament.BuyIn)
	assert.Nil(t, game.Tournament.GuaranteedPrize)
}

func TestParseTournamentTextRejectsOutOfBounds(t *testing.T) {
	_, ok := ParseTournamentText("$500,000 buy-in", ggOptions())
	assert.False(t, ok)

	_, ok = ParseFragment("$500,000 buy-in", ggOptions())
	assert.False(t, ok)
}

func TestParseCashText(t *testing.T) {
	game, ok := ParseFragment("NL Hold'em $1/$2 6 players 3 tables", ggOptions())
	require.True(t, ok)
	require.NoError(t, game.Validate())

	assert.Equal(t, poker.GameTypeCash, game.GameType)
	assert.Equal(t, int64(100), game.Stakes.SmallBlind)
	assert.Equal(t, int64(200), game.Stakes.BigBlind)
	assert.Equal(t, 6, game.PlayerCount)
	require.NotNil(t, game.TableCount)
	assert.Equal(t, 3, *game.TableCount)
	assert.True(t, game.IsRunning)
}

func TestParseFragmentCarriesClub(t *testing.T) {
	opts := ggOptions()
	opts.Provider = poker.ProviderClubGG
	opts.ClubID, opts.ClubName = "clubgg_main", "ClubGG"

	game, ok := ParseFragment("PLO5 $0.50/$1", opts)
	require.True(t, ok)
	assert.Equal(t, poker.VariantPLO5, game.Variant)
	assert.Equal(t, "clubgg_main", game.ClubID)
	assert.Equal(t, "ClubGG", game.ClubName)
}

func TestFindBuyIn(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"$55 buy-in", 55, true},
		{"Buy-in: $2.20", 2.2, true},
		{"$10K GTD then $22", 22, true},
		{"$1/$2 NL", 0, false},
		{"no money", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := FindBuyIn(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, got, 0.001)
		})
	}
}

func TestLooksLikeListing(t *testing.T) {
	assert.True(t, LooksLikeListing("Daily $5", nil))
	assert.True(t, LooksLikeListing("Satellite to WCOOP", []string{"sat"}))
	assert.False(t, LooksLikeListing("Weekend schedule", nil))
}
