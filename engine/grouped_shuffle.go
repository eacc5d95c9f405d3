package engine

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/fastfour/schleifchen-system/models"
)

// GroupedShuffleGenerator implements the Schleifchen draw: players are
// grouped by games played so that whoever sat out converges back toward an
// equal game count, shuffled uniformly within each group, and then consumed
// greedily four at a time. The tail of fewer than four players becomes the
// bye list. Pair history never reorders or rejects a pairing; it only sets
// the Repeat flag on matches for highlighting.
type GroupedShuffleGenerator struct {
	rng *rand.Rand
}

// NewGroupedShuffleGenerator returns a generator backed by the given
// random source. Passing nil seeds one from the clock; tests inject a
// fixed seed to make draws reproducible.
func NewGroupedShuffleGenerator(rng *rand.Rand) RoundDrawGenerator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &GroupedShuffleGenerator{rng: rng}
}

func (g *GroupedShuffleGenerator) GetName() string {
	return "GroupedShuffle"
}

func (g *GroupedShuffleGenerator) DrawRound(ctx context.Context, params DrawParams) (*models.RoundDraft, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state := params.State
	if len(state.Players) < 4 {
		return nil, ErrInsufficientPlayers
	}

	grouped := make(map[int][]string)
	for _, p := range state.Players {
		played := state.GamesPlayed(p)
		grouped[played] = append(grouped[played], p)
	}

	var counts []int
	for c := range grouped {
		counts = append(counts, c)
	}
	sort.Ints(counts)

	sequence := make([]string, 0, len(state.Players))
	for _, c := range counts {
		group := grouped[c]
		g.rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		sequence = append(sequence, group...)
	}

	draft := &models.RoundDraft{Round: state.Round}
	for len(sequence) >= 4 {
		match := models.Match{
			TeamA: models.Team{sequence[0], sequence[1]},
			TeamB: models.Team{sequence[2], sequence[3]},
		}
		match.Repeat = state.History.WasRepeat(match.TeamA, match.TeamB)
		draft.Matches = append(draft.Matches, match)
		sequence = sequence[4:]
	}
	draft.Byes = sequence

	return draft, nil
}
