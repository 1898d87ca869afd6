package adapters

import (
	"context"
	"errors"
	"time"

	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
	leaderboardservice "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/application"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GameStoreAdapter adapts the game repository to the leaderboard's GameStore port.
type GameStoreAdapter struct {
	games gamedb.Repository
}

func NewGameStoreAdapter(games gamedb.Repository) *GameStoreAdapter {
	return &GameStoreAdapter{games: games}
}

func (a *GameStoreAdapter) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error) {
	game, err := a.games.GetGame(ctx, db, gameID)
	if err != nil {
		return nil, mapGameError(err)
	}
	return game.Info(), nil
}

func (a *GameStoreAdapter) LockGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error) {
	game, err := a.games.GetGameForUpdate(ctx, db, gameID)
	if err != nil {
		return nil, mapGameError(err)
	}
	return game.Info(), nil
}

func (a *GameStoreAdapter) GetRoster(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error) {
	players, err := a.games.GetPlayers(ctx, db, gameID)
	if err != nil {
		return nil, err
	}
	out := make([]sharedtypes.RosterEntry, len(players))
	for i, p := range players {
		out[i] = p.RosterEntry()
	}
	return out, nil
}

// CompleteGame performs the guarded in-progress to completed transition.
func (a *GameStoreAdapter) CompleteGame(ctx context.Context, db bun.IDB, gameID uuid.UUID, at time.Time) error {
	err := a.games.UpdateGameStatus(ctx, db, gameID, sharedtypes.GameStatusInProgress, sharedtypes.GameStatusCompleted, at)
	if errors.Is(err, gamedb.ErrNoRowsAffected) {
		return leaderboardservice.ErrGameNotInProgress
	}
	return err
}

func mapGameError(err error) error {
	if errors.Is(err, gamedb.ErrNotFound) {
		return leaderboardservice.ErrGameNotFound
	}
	return err
}

var _ leaderboardservice.GameStore = (*GameStoreAdapter)(nil)
