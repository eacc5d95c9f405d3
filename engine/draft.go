package engine

import (
	"fmt"

	"github.com/fastfour/schleifchen-system/models"
)

const maxByes = 3

// ReplaceDraft swaps the current draft for a manually edited one after
// validating it: every slot must name a registered player, no player may
// appear twice across matches and byes, and at most three players can sit
// out. The edited draft keeps the upcoming round number.
func ReplaceDraft(state *models.TournamentState, matches []models.Match, byes []string) error {
	if state.Draft == nil {
		return ErrNoActiveDraft
	}
	if len(byes) > maxByes {
		return fmt.Errorf("%w: at most %d byes allowed, got %d", ErrInvalidDraft, maxByes, len(byes))
	}

	assigned := make(map[string]bool)
	assign := func(name string) error {
		if !state.HasPlayer(name) {
			return fmt.Errorf("%w: %s is not registered", ErrInvalidDraft, name)
		}
		if assigned[name] {
			return fmt.Errorf("%w: %s assigned more than once", ErrInvalidDraft, name)
		}
		assigned[name] = true
		return nil
	}
	for _, m := range matches {
		for _, p := range m.Players() {
			if err := assign(p); err != nil {
				return err
			}
		}
	}
	for _, p := range byes {
		if err := assign(p); err != nil {
			return err
		}
	}

	edited := &models.RoundDraft{Round: state.Draft.Round, Byes: byes}
	for _, m := range matches {
		m.Repeat = state.History.WasRepeat(m.TeamA, m.TeamB)
		edited.Matches = append(edited.Matches, m)
	}
	state.Draft = edited
	return nil
}
