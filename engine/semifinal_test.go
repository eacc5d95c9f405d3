package engine

import (
	"testing"

	"github.com/fastfour/schleifchen-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankingOf(names ...string) []models.RankingEntry {
	entries := make([]models.RankingEntry, len(names))
	for i, n := range names {
		entries[i] = models.RankingEntry{Name: n}
	}
	return entries
}

func TestSeedSemifinalsRequiresEight(t *testing.T) {
	for n := 0; n < 8; n++ {
		names := make([]string, n)
		for i := range names {
			names[i] = string(rune('A' + i))
		}
		pairings, err := SeedSemifinals(rankingOf(names...))
		assert.ErrorIs(t, err, ErrInsufficientPlayersForSemifinal)
		assert.Nil(t, pairings)
	}
}

func TestSeedSemifinalsCrossSeeding(t *testing.T) {
	pairings, err := SeedSemifinals(rankingOf("r1", "r2", "r3", "r4", "r5", "r6", "r7", "r8"))
	require.NoError(t, err)

	// 1-indexed pattern: 1+5 vs 4+8 and 2+6 vs 3+7.
	assert.Equal(t, models.Team{"r1", "r5"}, pairings.First.TeamA)
	assert.Equal(t, models.Team{"r4", "r8"}, pairings.First.TeamB)
	assert.Equal(t, models.Team{"r2", "r6"}, pairings.Second.TeamA)
	assert.Equal(t, models.Team{"r3", "r7"}, pairings.Second.TeamB)
}

func TestSeedSemifinalsPartitionsTopEight(t *testing.T) {
	ranking := rankingOf("a", "b", "c", "d", "e", "f", "g", "h", "i", "j")
	pairings, err := SeedSemifinals(ranking)
	require.NoError(t, err)

	var all []string
	all = append(all, pairings.First.Players()...)
	all = append(all, pairings.Second.Players()...)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, all)
}

func TestSeedSemifinalsDeterministic(t *testing.T) {
	ranking := rankingOf("a", "b", "c", "d", "e", "f", "g", "h")
	first, err := SeedSemifinals(ranking)
	require.NoError(t, err)
	second, err := SeedSemifinals(ranking)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
