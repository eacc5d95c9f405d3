package engine

import (
	"context"

	"github.com/fastfour/schleifchen-system/models"
)

type DrawParams struct {
	State *models.TournamentState
}

// RoundDrawGenerator produces the pairing proposal for the next round.
// Implementations must not mutate the tournament state beyond replacing
// the uncommitted draft.
type RoundDrawGenerator interface {
	DrawRound(ctx context.Context, params DrawParams) (*models.RoundDraft, error)

	GetName() string
}
