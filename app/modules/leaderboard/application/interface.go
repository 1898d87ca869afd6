package leaderboardservice

import (
	"context"
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service ranks players while a game is running and freezes the standings
// when the host finalizes it.
type Service interface {
	ComputeLiveLeaderboard(ctx context.Context, gameID uuid.UUID) (*LiveLeaderboard, error)
	// FinalizeGame writes the results and completes the game in one
	// transaction. Only the host may call it, and only once.
	FinalizeGame(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*GameResults, error)
	// GetGameResults returns the stored results of a completed game.
	GetGameResults(ctx context.Context, gameID uuid.UUID) (*GameResults, error)
	ExportResultsXLSX(ctx context.Context, gameID uuid.UUID) ([]byte, error)
	RenderScoreProgressChart(ctx context.Context, gameID uuid.UUID) ([]byte, error)
}

// GameStore is the slice of the game module the leaderboard needs.
type GameStore interface {
	GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error)
	// LockGame reads the game under an exclusive row lock held until db commits.
	LockGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error)
	GetRoster(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error)
	// CompleteGame moves the game from in-progress to completed, or returns
	// ErrGameNotInProgress.
	CompleteGame(ctx context.Context, db bun.IDB, gameID uuid.UUID, at time.Time) error
}

// ScoreReader reads a game's score entries.
type ScoreReader interface {
	GetScoreEntries(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.ScoreEntry, error)
}

// LiveLeaderboard is the current ranking of a game.
type LiveLeaderboard struct {
	GameID     uuid.UUID                          `json:"game_id"`
	Status     sharedtypes.GameStatus             `json:"status"`
	Rows       []leaderboarddomain.LeaderboardRow `json:"rows"`
	ComputedAt time.Time                          `json:"computed_at"`
}

// GameResults are the immutable standings of a completed game.
type GameResults struct {
	GameID      uuid.UUID                      `json:"game_id"`
	Results     []leaderboarddomain.GameResult `json:"results"`
	Winners     []leaderboarddomain.GameResult `json:"winners"`
	CompletedAt time.Time                      `json:"completed_at"`
}
