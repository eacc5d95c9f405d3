package engine

import "errors"

// Engine errors are all recoverable and user-facing: a failed operation
// aborts without mutating state and is surfaced by the presentation layer.
var (
	ErrEmptyName     = errors.New("player name must not be empty")
	ErrDuplicateName = errors.New("player name is already registered")
	ErrUnknownPlayer = errors.New("player is not registered")

	ErrInsufficientPlayers             = errors.New("at least 4 players are required to draw a round")
	ErrInsufficientPlayersForSemifinal = errors.New("at least 8 ranked players are required for the semifinals")

	ErrNoActiveDraft      = errors.New("no round has been drawn yet")
	ErrInvalidDraft       = errors.New("invalid draft")
	ErrInvalidScoreFormat = errors.New("invalid score format")
)
