package gamehandlers

import (
	"context"

	gameservice "github.com/Black-And-White-Club/scorecard/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/scorecard/app/modules/game/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	CreateGameFunc      func(ctx context.Context, spec gamedomain.NewGameSpec) (*gameservice.GameDetails, error)
	JoinGameFunc        func(ctx context.Context, req gameservice.JoinRequest) (*gameservice.GameDetails, error)
	StartGameFunc       func(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*gameservice.GameDetails, error)
	GetGameFunc         func(ctx context.Context, gameID uuid.UUID) (*gameservice.GameDetails, error)
	GetGameByCodeFunc   func(ctx context.Context, code string) (*gameservice.GameDetails, error)
	ListPlayerGamesFunc func(ctx context.Context, playerID sharedtypes.PlayerID) ([]sharedtypes.GameInfo, error)
}

func (f *FakeService) CreateGame(ctx context.Context, spec gamedomain.NewGameSpec) (*gameservice.GameDetails, error) {
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, spec)
	}
	return &gameservice.GameDetails{}, nil
}

func (f *FakeService) JoinGame(ctx context.Context, req gameservice.JoinRequest) (*gameservice.GameDetails, error) {
	if f.JoinGameFunc != nil {
		return f.JoinGameFunc(ctx, req)
	}
	return &gameservice.GameDetails{}, nil
}

func (f *FakeService) StartGame(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*gameservice.GameDetails, error) {
	if f.StartGameFunc != nil {
		return f.StartGameFunc(ctx, gameID, callerID)
	}
	return &gameservice.GameDetails{}, nil
}

func (f *FakeService) GetGame(ctx context.Context, gameID uuid.UUID) (*gameservice.GameDetails, error) {
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, gameID)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) GetGameByCode(ctx context.Context, code string) (*gameservice.GameDetails, error) {
	if f.GetGameByCodeFunc != nil {
		return f.GetGameByCodeFunc(ctx, code)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) GetRoster(ctx context.Context, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error) {
	return nil, nil
}

func (f *FakeService) GetParTable(ctx context.Context, gameID uuid.UUID) (sharedtypes.ParTable, error) {
	return nil, nil
}

func (f *FakeService) ListPlayerGames(ctx context.Context, playerID sharedtypes.PlayerID) ([]sharedtypes.GameInfo, error) {
	if f.ListPlayerGamesFunc != nil {
		return f.ListPlayerGamesFunc(ctx, playerID)
	}
	return []sharedtypes.GameInfo{}, nil
}

func (f *FakeService) AuthorizeHost(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) error {
	return nil
}

var _ gameservice.Service = (*FakeService)(nil)
