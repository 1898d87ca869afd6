package scorehandlers

import (
	"context"

	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	UpsertScoreEntryFunc   func(ctx context.Context, req scoreservice.UpsertScoreRequest) (*sharedtypes.ScoreEntry, error)
	GetScoreEntriesFunc    func(ctx context.Context, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]sharedtypes.ScoreEntry, error)
	GetPlayerScorecardFunc func(ctx context.Context, gameID uuid.UUID, playerID sharedtypes.PlayerID) (*scoreservice.PlayerScorecard, error)
}

func (f *FakeService) UpsertScoreEntry(ctx context.Context, req scoreservice.UpsertScoreRequest) (*sharedtypes.ScoreEntry, error) {
	if f.UpsertScoreEntryFunc != nil {
		return f.UpsertScoreEntryFunc(ctx, req)
	}
	return &sharedtypes.ScoreEntry{GameID: req.GameID, PlayerID: req.PlayerID, Hole: req.Hole, Strokes: req.Strokes}, nil
}

func (f *FakeService) GetScoreEntries(ctx context.Context, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]sharedtypes.ScoreEntry, error) {
	if f.GetScoreEntriesFunc != nil {
		return f.GetScoreEntriesFunc(ctx, gameID, playerID)
	}
	return []sharedtypes.ScoreEntry{}, nil
}

func (f *FakeService) GetPlayerScorecard(ctx context.Context, gameID uuid.UUID, playerID sharedtypes.PlayerID) (*scoreservice.PlayerScorecard, error) {
	if f.GetPlayerScorecardFunc != nil {
		return f.GetPlayerScorecardFunc(ctx, gameID, playerID)
	}
	return nil, scoreservice.ErrPlayerNotInGame
}

var _ scoreservice.Service = (*FakeService)(nil)
