package leaderboardhandlers

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/application"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
)

type FakeService struct {
	ComputeLiveLeaderboardFunc   func(ctx context.Context, gameID uuid.UUID) (*leaderboardservice.LiveLeaderboard, error)
	FinalizeGameFunc             func(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*leaderboardservice.GameResults, error)
	GetGameResultsFunc           func(ctx context.Context, gameID uuid.UUID) (*leaderboardservice.GameResults, error)
	ExportResultsXLSXFunc        func(ctx context.Context, gameID uuid.UUID) ([]byte, error)
	RenderScoreProgressChartFunc func(ctx context.Context, gameID uuid.UUID) ([]byte, error)
}

func (f *FakeService) ComputeLiveLeaderboard(ctx context.Context, gameID uuid.UUID) (*leaderboardservice.LiveLeaderboard, error) {
	if f.ComputeLiveLeaderboardFunc != nil {
		return f.ComputeLiveLeaderboardFunc(ctx, gameID)
	}
	return &leaderboardservice.LiveLeaderboard{GameID: gameID}, nil
}

func (f *FakeService) FinalizeGame(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*leaderboardservice.GameResults, error) {
	if f.FinalizeGameFunc != nil {
		return f.FinalizeGameFunc(ctx, gameID, callerID)
	}
	return &leaderboardservice.GameResults{GameID: gameID}, nil
}

func (f *FakeService) GetGameResults(ctx context.Context, gameID uuid.UUID) (*leaderboardservice.GameResults, error) {
	if f.GetGameResultsFunc != nil {
		return f.GetGameResultsFunc(ctx, gameID)
	}
	return &leaderboardservice.GameResults{GameID: gameID}, nil
}

func (f *FakeService) ExportResultsXLSX(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	if f.ExportResultsXLSXFunc != nil {
		return f.ExportResultsXLSXFunc(ctx, gameID)
	}
	return []byte("xlsx"), nil
}

func (f *FakeService) RenderScoreProgressChart(ctx context.Context, gameID uuid.UUID) ([]byte, error) {
	if f.RenderScoreProgressChartFunc != nil {
		return f.RenderScoreProgressChartFunc(ctx, gameID)
	}
	return []byte("png"), nil
}

var _ leaderboardservice.Service = (*FakeService)(nil)
