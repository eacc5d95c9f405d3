package services

import "errors"

// Service-level errors, mapped to HTTP statuses in the handler layer.
// Engine rule violations carry their own sentinel values in the engine
// package.
var (
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrTournamentNameConflict = errors.New("tournament name is already in use")
	ErrTournamentNotFound     = errors.New("tournament not found")

	ErrUnknownTableKind  = errors.New("unknown ranking table kind")
	ErrExportUnavailable = errors.New("standings export is not configured")

	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserEmailConflict  = errors.New("email address is already in use")
	ErrValidationFailed   = errors.New("validation failed")
)
