package engine

import (
	"testing"

	"github.com/fastfour/schleifchen-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPlayer(t *testing.T) {
	state := models.NewTournamentState()

	require.NoError(t, AddPlayer(state, "Anna"))
	require.NoError(t, AddPlayer(state, "  Ben  "))
	assert.Equal(t, []string{"Anna", "Ben"}, state.Players)

	err := AddPlayer(state, "Anna")
	assert.ErrorIs(t, err, ErrDuplicateName)
	assert.Len(t, state.Players, 2)

	assert.ErrorIs(t, AddPlayer(state, ""), ErrEmptyName)
	assert.ErrorIs(t, AddPlayer(state, "   "), ErrEmptyName)
	assert.Len(t, state.Players, 2)
}

func TestAddPlayerBackfillsCommittedRounds(t *testing.T) {
	state := models.NewTournamentState()
	require.NoError(t, AddPlayer(state, "Anna"))
	state.Round = 3
	state.Records["Anna"] = []models.RoundRecord{
		{Played: true, Points: 1, Differential: 2},
		models.NotPlayed(),
		{Played: true, Points: 0, Differential: -1},
	}

	require.NoError(t, AddPlayer(state, "Late"))
	require.Len(t, state.Records["Late"], 3)
	for _, rec := range state.Records["Late"] {
		assert.False(t, rec.Played)
	}
}

func TestRemovePlayer(t *testing.T) {
	state := models.NewTournamentState()
	require.NoError(t, AddPlayer(state, "Anna"))
	require.NoError(t, AddPlayer(state, "Ben"))
	state.Records["Anna"] = []models.RoundRecord{{Played: true, Points: 1, Differential: 3}}
	state.Records["Ben"] = []models.RoundRecord{{Played: true, Points: 0, Differential: -3}}
	state.Round = 1

	require.NoError(t, RemovePlayer(state, "Anna"))
	assert.Equal(t, []string{"Ben"}, state.Players)
	assert.NotContains(t, state.Records, "Anna")

	// Removing one player must not touch anyone else's history.
	assert.Equal(t, 1, state.GamesPlayed("Ben"))

	assert.ErrorIs(t, RemovePlayer(state, "Anna"), ErrUnknownPlayer)
	assert.ErrorIs(t, RemovePlayer(state, "Nobody"), ErrUnknownPlayer)
}

func TestBulkLoadRoster(t *testing.T) {
	state := models.NewTournamentState()
	require.NoError(t, AddPlayer(state, "Old"))
	state.Round = 2
	state.Records["Old"] = []models.RoundRecord{models.NotPlayed(), models.NotPlayed()}
	state.History.RecordMatch(models.Match{
		TeamA: models.Team{"Old", "X"},
		TeamB: models.Team{"Y", "Z"},
	})

	names := BulkLoadRoster(state, "Anna\n\n  Ben \nAnna\nCarla\n")
	assert.Equal(t, []string{"Anna", "Ben", "Carla"}, names)
	assert.Equal(t, names, state.Players)

	// A bulk load is destructive: roster, records, round counter, history
	// and draft all reset.
	assert.Equal(t, 0, state.Round)
	assert.Nil(t, state.Draft)
	assert.Empty(t, state.History.Matchups)
	assert.NotContains(t, state.Records, "Old")
	for _, name := range names {
		assert.Empty(t, state.Records[name])
	}
}
