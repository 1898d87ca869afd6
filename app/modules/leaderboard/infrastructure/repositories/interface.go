package leaderboarddb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists finalized game results. Every method accepts an
// optional bun.IDB so callers can run it inside their transaction.
type Repository interface {
	// InsertGameResults writes all rows in one statement. It returns
	// ErrDuplicateResults if any row for the game already exists.
	InsertGameResults(ctx context.Context, db bun.IDB, rows []GameResult) error
	// GetGameResults returns rows ordered by position then presentation order.
	GetGameResults(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]GameResult, error)
	HasGameResults(ctx context.Context, db bun.IDB, gameID uuid.UUID) (bool, error)
}
