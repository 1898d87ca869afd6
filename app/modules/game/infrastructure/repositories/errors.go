package gamedb

import "errors"

// Sentinel errors for the repository layer. The service decides what they
// mean for the caller.
var (
	// ErrNotFound indicates the requested game does not exist.
	ErrNotFound = errors.New("game not found")

	// ErrNoRowsAffected indicates a guarded UPDATE matched nothing, e.g. a
	// status transition whose expected current status no longer holds.
	ErrNoRowsAffected = errors.New("no rows affected")

	// ErrDuplicateCode indicates the generated join code is already taken.
	ErrDuplicateCode = errors.New("game code already exists")

	// ErrDuplicatePlayer indicates the player is already on the roster.
	ErrDuplicatePlayer = errors.New("player already in game")
)
