package engine

import (
	"fmt"
	"strings"

	"github.com/fastfour/schleifchen-system/models"
)

// AddPlayer registers a new player. The new player's records are backfilled
// with NotPlayed for every already-committed round so that every registered
// player always carries exactly one record per round. Adding a duplicate is
// reported but changes nothing.
func AddPlayer(state *models.TournamentState, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if state.HasPlayer(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}

	state.Players = append(state.Players, name)
	records := make([]models.RoundRecord, state.Round)
	for i := range records {
		records[i] = models.NotPlayed()
	}
	state.Records[name] = records
	return nil
}

// RemovePlayer deletes the player and all of their history. Round indices
// of the remaining players are unaffected.
func RemovePlayer(state *models.TournamentState, name string) error {
	if !state.HasPlayer(name) {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, name)
	}

	players := state.Players[:0]
	for _, p := range state.Players {
		if p != name {
			players = append(players, p)
		}
	}
	state.Players = players
	delete(state.Records, name)
	return nil
}

// BulkLoadRoster replaces the entire roster from newline-separated names
// and clears all history. Blank lines are dropped and duplicates collapse
// to their first occurrence. Returns the loaded names.
func BulkLoadRoster(state *models.TournamentState, text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, line := range strings.Split(text, "\n") {
		name := strings.TrimSpace(line)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	state.Players = names
	state.Records = make(map[string][]models.RoundRecord, len(names))
	for _, name := range names {
		state.Records[name] = []models.RoundRecord{}
	}
	state.Round = 0
	state.Draft = nil
	state.History = models.NewPairHistory()
	state.Log = nil
	return names
}
