package scoreservice

import (
	"context"

	scoredomain "github.com/Black-And-White-Club/scorecard/app/modules/score/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service handles per-hole score entry and scorecard reads.
type Service interface {
	UpsertScoreEntry(ctx context.Context, req UpsertScoreRequest) (*sharedtypes.ScoreEntry, error)
	GetScoreEntries(ctx context.Context, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]sharedtypes.ScoreEntry, error)
	GetPlayerScorecard(ctx context.Context, gameID uuid.UUID, playerID sharedtypes.PlayerID) (*PlayerScorecard, error)
}

// GameLookup is the view of the game module the score service needs.
type GameLookup interface {
	// GetGame returns the game. Inside a transaction it holds a shared lock
	// on the game row so a concurrent finalize waits for the write.
	GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error)
	GetRoster(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error)
}

// Config holds score entry limits.
type Config struct {
	// MaxStrokes is the highest stroke count accepted on a hole.
	MaxStrokes int
}

// DefaultMaxStrokes applies when Config.MaxStrokes is unset.
const DefaultMaxStrokes = 15

// UpsertScoreRequest sets or clears one player's strokes on one hole.
type UpsertScoreRequest struct {
	GameID   uuid.UUID
	PlayerID sharedtypes.PlayerID
	Hole     int
	// Strokes nil clears the hole.
	Strokes *int
}

// PlayerScorecard is a player's entries with the derived totals.
type PlayerScorecard struct {
	Player          sharedtypes.RosterEntry     `json:"player"`
	Entries         []sharedtypes.ScoreEntry    `json:"entries"`
	Aggregate       scoredomain.PlayerAggregate `json:"aggregate"`
	ToPar           int                         `json:"to_par"`
	Classifications []scoredomain.ScoreType     `json:"classifications"`
	FrontNinePar    int                         `json:"front_nine_par_reference"`
}
