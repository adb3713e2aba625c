package crawler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sjsage522/pokerscraper/internal/poker"
)

func tournament(t *testing.T, name string, buyIn int64, start time.Time) poker.PokerGame {
	t.Helper()
	info, err := poker.NewTournamentInfo(buyIn, start, nil, name)
	require.NoError(t, err)
	return poker.NewTournamentGame(poker.ProviderGGPoker, poker.VariantNLHE, info)
}

func cash(t *testing.T, provider poker.Provider, variant poker.Variant, sb, bb int64) poker.PokerGame {
	t.Helper()
	stakes, err := poker.NewStakes(sb, bb, nil)
	require.NoError(t, err)
	return poker.NewCashGame(provider, variant, stakes)
}

func TestDedupFirstOccurrenceWins(t *testing.T) {
	first := tournament(t, "Daily Special", 5500, runClock)
	first.PlayerCount = 10
	dup := tournament(t, "Daily Special", 5500, runClock)
	dup.PlayerCount = 99

	games := []poker.PokerGame{
		first,
		cash(t, poker.ProviderClubGG, poker.VariantNLHE, 100, 200),
		dup,
		tournament(t, "Daily Special", 5500, runClock.Add(time.Hour)),
		cash(t, poker.ProviderClubGG, poker.VariantNLHE, 100, 200),
		cash(t, poker.ProviderClubGG, poker.VariantPLO, 100, 200),
		tournament(t, "Daily Special", 1100, runClock),
	}

	unique := Dedup(games)
	require.Len(t, unique, 5)
	assert.Equal(t, 10, unique[0].PlayerCount)
	assert.Equal(t, poker.GameTypeCash, unique[1].GameType)
	assert.True(t, unique[2].Tournament.StartTime.Equal(runClock.Add(time.Hour)))
	assert.Equal(t, poker.VariantPLO, unique[3].Variant)
	assert.Equal(t, int64(1100), unique[4].Tournament.BuyIn)
}

func TestDedupIsStable(t *testing.T) {
	games := []poker.PokerGame{
		tournament(t, "B", 100, runClock),
		tournament(t, "A", 100, runClock),
		tournament(t, "B", 100, runClock),
		tournament(t, "C", 100, runClock),
	}

	once := Dedup(games)
	twice := Dedup(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, "B", once[0].Tournament.Name)
	assert.Equal(t, "A", once[1].Tournament.Name)
	assert.Equal(t, "C", once[2].Tournament.Name)
}

func TestDedupKeyIgnoresZone(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	a := tournament(t, "X", 100, runClock)
	b := tournament(t, "X", 100, runClock.In(est))
	assert.Equal(t, DedupKey(a), DedupKey(b))
}

func TestDedupCashKeyIncludesProvider(t *testing.T) {
	a := cash(t, poker.ProviderClubGG, poker.VariantNLHE, 100, 200)
	b := cash(t, poker.ProviderGGPoker, poker.VariantNLHE, 100, 200)
	assert.NotEqual(t, DedupKey(a), DedupKey(b))
	assert.Len(t, Dedup([]poker.PokerGame{a, b}), 2)
}

func TestDedupEmpty(t *testing.T) {
	assert.Empty(t, Dedup(nil))
}
