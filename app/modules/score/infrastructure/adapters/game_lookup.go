package adapters

import (
	"context"
	"errors"

	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GameLookupAdapter adapts the game repository to the score service's GameLookup port.
type GameLookupAdapter struct {
	games gamedb.Repository
}

func NewGameLookupAdapter(games gamedb.Repository) *GameLookupAdapter {
	return &GameLookupAdapter{games: games}
}

// GetGame reads the game under a shared row lock when db is a transaction.
func (a *GameLookupAdapter) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error) {
	var (
		game *gamedb.Game
		err  error
	)
	if db == nil {
		game, err = a.games.GetGame(ctx, nil, gameID)
	} else {
		game, err = a.games.GetGameForShare(ctx, db, gameID)
	}
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return nil, scoreservice.ErrGameNotFound
		}
		return nil, err
	}
	return game.Info(), nil
}

func (a *GameLookupAdapter) GetRoster(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error) {
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

var _ scoreservice.GameLookup = (*GameLookupAdapter)(nil)
