package engine

import (
	"context"
	"testing"

	"github.com/fastfour/schleifchen-system/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftState(t *testing.T, matches []models.Match, byes []string, extra ...string) *models.TournamentState {
	t.Helper()
	state := models.NewTournamentState()
	for _, m := range matches {
		for _, p := range m.Players() {
			require.NoError(t, AddPlayer(state, p))
		}
	}
	for _, p := range byes {
		require.NoError(t, AddPlayer(state, p))
	}
	for _, p := range extra {
		require.NoError(t, AddPlayer(state, p))
	}
	state.Draft = &models.RoundDraft{Round: state.Round, Matches: matches, Byes: byes}
	return state
}

func TestCommitRoundDecidedMatch(t *testing.T) {
	state := draftState(t, []models.Match{
		{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
	}, nil)

	require.NoError(t, CommitRound(state, map[int]string{0: "4:2"}))

	assert.Equal(t, 1, state.Round)
	assert.Nil(t, state.Draft)
	for _, p := range []string{"A", "B"} {
		require.Len(t, state.Records[p], 1)
		assert.Equal(t, models.RoundRecord{Played: true, Points: 1, Differential: 2}, state.Records[p][0])
	}
	for _, p := range []string{"C", "D"} {
		require.Len(t, state.Records[p], 1)
		assert.Equal(t, models.RoundRecord{Played: true, Points: 0, Differential: -2}, state.Records[p][0])
	}
}

func TestCommitRoundLowerFirstScore(t *testing.T) {
	state := draftState(t, []models.Match{
		{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
	}, nil)

	require.NoError(t, CommitRound(state, map[int]string{0: "1:4"}))

	assert.Equal(t, 0, state.Records["A"][0].Points)
	assert.Equal(t, -3, state.Records["A"][0].Differential)
	assert.Equal(t, 1, state.Records["C"][0].Points)
	assert.Equal(t, 3, state.Records["C"][0].Differential)
}

func TestCommitRoundBlankScoreMarksNotPlayed(t *testing.T) {
	state := draftState(t, []models.Match{
		{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
		{TeamA: models.Team{"E", "F"}, TeamB: models.Team{"G", "H"}},
	}, nil)

	require.NoError(t, CommitRound(state, map[int]string{1: "6:3"}))

	for _, p := range []string{"A", "B", "C", "D"} {
		require.Len(t, state.Records[p], 1)
		assert.False(t, state.Records[p][0].Played)
		// Unplayed rounds do not count as games, so these players stay
		// prioritized for the next draw.
		assert.Equal(t, 0, state.GamesPlayed(p))
	}
	for _, p := range []string{"E", "F", "G", "H"} {
		assert.Equal(t, 1, state.GamesPlayed(p))
	}

	// Only the played matchup enters the pair history.
	assert.True(t, state.History.WasRepeat(models.Team{"E", "F"}, models.Team{"G", "H"}))
	assert.False(t, state.History.WasRepeat(models.Team{"A", "B"}, models.Team{"C", "D"}))
}

func TestCommitRoundByesAndLatecomersGetSentinel(t *testing.T) {
	state := draftState(t, []models.Match{
		{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
	}, []string{"Bye1", "Bye2"})
	// Registered after the draw: not in any match, still gets a record.
	require.NoError(t, AddPlayer(state, "Late"))

	require.NoError(t, CommitRound(state, map[int]string{0: "4:0"}))

	for _, p := range []string{"Bye1", "Bye2", "Late"} {
		require.Len(t, state.Records[p], 1, "player %s", p)
		assert.False(t, state.Records[p][0].Played)
	}
	// Every registered player gained exactly one record.
	for _, p := range state.Players {
		assert.Len(t, state.Records[p], 1)
	}
}

func TestCommitRoundInvalidScoreAbortsAtomically(t *testing.T) {
	for _, invalid := range []string{"abc", "4:2:1", "4-2", ":", "4:", "x:2"} {
		state := draftState(t, []models.Match{
			{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
			{TeamA: models.Team{"E", "F"}, TeamB: models.Team{"G", "H"}},
		}, nil)

		err := CommitRound(state, map[int]string{0: "6:4", 1: invalid})
		assert.ErrorIs(t, err, ErrInvalidScoreFormat, "score %q", invalid)

		// Nothing committed: no records, round counter unchanged, draft
		// still pending, history untouched.
		assert.Equal(t, 0, state.Round)
		assert.NotNil(t, state.Draft)
		for _, p := range state.Players {
			assert.Empty(t, state.Records[p])
		}
		assert.Empty(t, state.History.Matchups)
		assert.Empty(t, state.Log)
	}
}

func TestCommitRoundRejectsDraws(t *testing.T) {
	state := draftState(t, []models.Match{
		{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
	}, nil)

	err := CommitRound(state, map[int]string{0: "3:3"})
	assert.ErrorIs(t, err, ErrInvalidScoreFormat)
	assert.Equal(t, 0, state.Round)
}

func TestCommitRoundWithoutDraft(t *testing.T) {
	state := stateWithPlayers(t, "A", "B", "C", "D")
	assert.ErrorIs(t, CommitRound(state, nil), ErrNoActiveDraft)
}

func TestCommitRoundPointsConservation(t *testing.T) {
	state := draftState(t, []models.Match{
		{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
		{TeamA: models.Team{"E", "F"}, TeamB: models.Team{"G", "H"}},
		{TeamA: models.Team{"I", "J"}, TeamB: models.Team{"K", "L"}},
	}, nil)

	// Two decided matches, one blank.
	require.NoError(t, CommitRound(state, map[int]string{0: "4:2", 2: "0:5"}))

	totalPoints := 0
	for _, p := range state.Players {
		totalPoints += state.TotalPoints(p)
	}
	assert.Equal(t, 2*2, totalPoints, "two points per decided match")
}

func TestCommitRoundWritesLog(t *testing.T) {
	state := draftState(t, []models.Match{
		{TeamA: models.Team{"A", "B"}, TeamB: models.Team{"C", "D"}},
		{TeamA: models.Team{"E", "F"}, TeamB: models.Team{"G", "H"}},
	}, nil)

	require.NoError(t, CommitRound(state, map[int]string{0: "4:2"}))

	require.Len(t, state.Log, 1)
	entry := state.Log[0]
	assert.Equal(t, 1, entry.Round)
	require.Len(t, entry.Lines, 2)
	assert.Equal(t, "A & B vs C & D: 4:2", entry.Lines[0])
	assert.Equal(t, "E & F vs G & H: not played", entry.Lines[1])
}

func TestParticipationRoundTrip(t *testing.T) {
	// Over a sequence of committed rounds, total games played equals four
	// participations per decided match.
	state := stateWithPlayers(t, "A", "B", "C", "D", "E", "F", "G", "H")
	gen := seededGenerator(3)

	decided := 0
	for round := 0; round < 5; round++ {
		draft, err := gen.DrawRound(context.Background(), DrawParams{State: state})
		require.NoError(t, err)
		state.Draft = draft

		scores := make(map[int]string)
		for i := range draft.Matches {
			scores[i] = "4:1"
			decided++
		}
		require.NoError(t, CommitRound(state, scores))
	}

	totalGames := 0
	for _, p := range state.Players {
		totalGames += state.GamesPlayed(p)
	}
	assert.Equal(t, 4*decided, totalGames)
}
