package adapters

import (
	"context"

	leaderboardservice "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/application"
	scoredb "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ScoreReaderAdapter exposes the score repository as the leaderboard's ScoreReader.
type ScoreReaderAdapter struct {
	scores scoredb.Repository
}

func NewScoreReaderAdapter(scores scoredb.Repository) *ScoreReaderAdapter {
	return &ScoreReaderAdapter{scores: scores}
}

func (a *ScoreReaderAdapter) GetScoreEntries(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.ScoreEntry, error) {
	rows, err := a.scores.GetScoreEntries(ctx, db, gameID, nil)
	if err != nil {
		return nil, err
	}
	return scoredb.ToSharedEntries(rows), nil
}

var _ leaderboardservice.ScoreReader = (*ScoreReaderAdapter)(nil)
