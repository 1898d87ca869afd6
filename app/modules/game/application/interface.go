package gameservice

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/scorecard/app/modules/game/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is the game lobby: creating, joining and starting games, and
// reading their configuration and roster.
type Service interface {
	CreateGame(ctx context.Context, spec gamedomain.NewGameSpec) (*GameDetails, error)
	JoinGame(ctx context.Context, req JoinRequest) (*GameDetails, error)
	StartGame(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*GameDetails, error)
	GetGame(ctx context.Context, gameID uuid.UUID) (*GameDetails, error)
	GetGameByCode(ctx context.Context, code string) (*GameDetails, error)
	GetRoster(ctx context.Context, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error)
	GetParTable(ctx context.Context, gameID uuid.UUID) (sharedtypes.ParTable, error)
	ListPlayerGames(ctx context.Context, playerID sharedtypes.PlayerID) ([]sharedtypes.GameInfo, error)
	// AuthorizeHost returns ErrNotHost unless callerID hosts the game.
	AuthorizeHost(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) error
}

// ScorecardInitializer creates the empty per-hole entries for every player
// when a game starts. Implemented by the score repository.
type ScorecardInitializer interface {
	InitializeScorecards(ctx context.Context, db bun.IDB, gameID uuid.UUID, players []sharedtypes.PlayerID, parTable sharedtypes.ParTable) error
}

// JoinRequest is a player asking to join by code.
type JoinRequest struct {
	Code     string
	PlayerID sharedtypes.PlayerID
	Name     string
	Handicap int
}

// GameDetails is a game with its roster.
type GameDetails struct {
	Game   sharedtypes.GameInfo      `json:"game"`
	Roster []sharedtypes.RosterEntry `json:"roster"`
}
