package gamedb

import (
	"context"
	"time"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for game and roster persistence.
type Repository interface {
	// CreateGame inserts a new game. Returns ErrDuplicateCode on a code collision.
	CreateGame(ctx context.Context, db bun.IDB, game *Game) error

	// GetGame retrieves a game by id.
	GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Game, error)

	// GetGameForUpdate retrieves a game and locks its row until the transaction ends.
	GetGameForUpdate(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Game, error)

	// GetGameForShare retrieves a game and takes a shared row lock, blocking
	// a concurrent GetGameForUpdate until the transaction ends.
	GetGameForShare(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Game, error)

	// GetGameByCode retrieves a game by its join code.
	GetGameByCode(ctx context.Context, db bun.IDB, code string) (*Game, error)

	// UpdateGameStatus moves a game from one status to another. Returns
	// ErrNoRowsAffected when the game is not currently in from.
	UpdateGameStatus(ctx context.Context, db bun.IDB, gameID uuid.UUID, from, to sharedtypes.GameStatus, at time.Time) error

	// AddPlayer adds a player to the roster. Returns ErrDuplicatePlayer if already present.
	AddPlayer(ctx context.Context, db bun.IDB, player *GamePlayer) error

	// GetPlayers returns the roster in join order.
	GetPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]GamePlayer, error)

	// CountPlayers returns the roster size.
	CountPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) (int, error)

	// ListGamesForPlayer returns the games a player has joined, newest first.
	ListGamesForPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, limit int) ([]Game, error)
}
