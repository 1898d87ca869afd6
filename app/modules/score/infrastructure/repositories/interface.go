package scoredb

import (
	"context"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for score entry persistence.
type Repository interface {
	// InitializeScorecards inserts a NULL entry for every player and hole.
	// Existing entries are left untouched.
	InitializeScorecards(ctx context.Context, db bun.IDB, gameID uuid.UUID, players []sharedtypes.PlayerID, parTable sharedtypes.ParTable) error

	// UpsertScoreEntry creates or replaces the entry keyed by (game, player, hole).
	UpsertScoreEntry(ctx context.Context, db bun.IDB, entry *ScoreEntry) error

	// GetScoreEntry retrieves a single entry.
	GetScoreEntry(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID sharedtypes.PlayerID, hole int) (*ScoreEntry, error)

	// GetScoreEntries returns a game's entries sorted by player then hole,
	// optionally restricted to one player.
	GetScoreEntries(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]ScoreEntry, error)
}
