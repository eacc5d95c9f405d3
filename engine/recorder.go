package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fastfour/schleifchen-system/models"
)

// CommitRound validates the submitted scores against the current draft and
// appends exactly one round record for every registered player. The commit
// is all-or-nothing: any invalid score aborts it and leaves the state
// untouched.
//
// Scores are keyed by match index within the draft. A missing or blank
// score marks all four participants NotPlayed for the round, so they stay
// prioritized in the next draw. Equal scores are rejected: the format has
// no draws.
func CommitRound(state *models.TournamentState, scores map[int]string) error {
	draft := state.Draft
	if draft == nil {
		return ErrNoActiveDraft
	}

	pending := make(map[string]models.RoundRecord)
	var played []models.Match
	var lines []string

	for i, match := range draft.Matches {
		label := fmt.Sprintf("%s & %s vs %s & %s",
			match.TeamA[0], match.TeamA[1], match.TeamB[0], match.TeamB[1])

		raw := strings.TrimSpace(scores[i])
		if raw == "" {
			for _, p := range match.Players() {
				pending[p] = models.NotPlayed()
			}
			lines = append(lines, label+": not played")
			continue
		}

		scoreA, scoreB, err := parseScore(raw)
		if err != nil {
			return fmt.Errorf("match %d (%s): %w", i+1, label, err)
		}

		winner, loser := match.TeamA, match.TeamB
		if scoreB > scoreA {
			winner, loser = match.TeamB, match.TeamA
		}
		diff := scoreA - scoreB
		if diff < 0 {
			diff = -diff
		}
		for _, p := range winner {
			pending[p] = models.RoundRecord{Played: true, Points: 1, Differential: diff}
		}
		for _, p := range loser {
			pending[p] = models.RoundRecord{Played: true, Points: 0, Differential: -diff}
		}
		played = append(played, match)
		lines = append(lines, fmt.Sprintf("%s: %d:%d", label, scoreA, scoreB))
	}

	// Validation passed for every match; apply atomically. Byes and players
	// registered after the draw fall through to the NotPlayed default.
	for _, p := range state.Players {
		if rec, ok := pending[p]; ok {
			state.Records[p] = append(state.Records[p], rec)
		} else {
			state.Records[p] = append(state.Records[p], models.NotPlayed())
		}
	}
	for _, match := range played {
		state.History.RecordMatch(match)
	}
	state.Log = append(state.Log, models.RoundLogEntry{Round: state.Round + 1, Lines: lines})
	state.Round++
	state.Draft = nil
	return nil
}

func parseScore(raw string) (int, int, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScoreFormat, raw)
	}
	scoreA, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
	scoreB, errB := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errA != nil || errB != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidScoreFormat, raw)
	}
	if scoreA == scoreB {
		return 0, 0, fmt.Errorf("%w: %q (draws are not allowed)", ErrInvalidScoreFormat, raw)
	}
	return scoreA, scoreB, nil
}
