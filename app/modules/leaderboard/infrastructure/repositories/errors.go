package leaderboarddb

import "errors"

var (
	// ErrDuplicateResults indicates results already exist for the game.
	ErrDuplicateResults = errors.New("game results already exist")
)
