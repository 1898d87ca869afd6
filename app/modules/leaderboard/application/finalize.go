package leaderboardservice

import (
	"context"
	"errors"

	leaderboarddomain "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/domain"
	leaderboarddb "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	"github.com/Black-And-White-Club/scorecard/app/shared/events"
	"github.com/Black-And-White-Club/scorecard/app/shared/operation"
	"github.com/Black-And-White-Club/scorecard/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FinalizeGame computes and stores the final standings, then completes the
// game. The game row stays locked for the whole transaction, so concurrent
// finalize calls and score upserts serialize behind it. Nothing is written
// unless every step succeeds.
func (s *LeaderboardService) FinalizeGame(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*GameResults, error) {
	result, err := operation.Run(s.telemetry(), ctx, "FinalizeGame", gameID.String(), func(ctx context.Context) (results.OperationResult[*GameResults, error], error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*GameResults, error], error) {
			return s.finalizeGameLogic(ctx, db, gameID, callerID)
		})
	})
	res, err := operation.Unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.GameFinalizedV1, finalizedPayload(res))
	return res, nil
}

func (s *LeaderboardService) finalizeGameLogic(ctx context.Context, db bun.IDB, gameID uuid.UUID, callerID sharedtypes.PlayerID) (results.OperationResult[*GameResults, error], error) {
	game, err := s.games.LockGame(ctx, db, gameID)
	if err != nil {
		return failureOrError[*GameResults](err)
	}
	if game.HostID != callerID {
		return results.FailureResult[*GameResults, error](ErrNotHost), nil
	}

	switch game.Status {
	case sharedtypes.GameStatusInProgress:
	case sharedtypes.GameStatusCompleted:
		return results.FailureResult[*GameResults, error](ErrGameAlreadyFinalized), nil
	default:
		return results.FailureResult[*GameResults, error](&apperrors.InvalidStateError{
			Operation: "FinalizeGame",
			Status:    string(game.Status),
			Expected:  string(sharedtypes.GameStatusInProgress),
		}), nil
	}

	exists, err := s.repo.HasGameResults(ctx, db, gameID)
	if err != nil {
		return results.OperationResult[*GameResults, error]{}, err
	}
	if exists {
		return results.FailureResult[*GameResults, error](ErrGameAlreadyFinalized), nil
	}

	snap, err := s.snapshotOf(ctx, db, game)
	if err != nil {
		return results.OperationResult[*GameResults, error]{}, err
	}

	completedAt := s.now()
	built := leaderboarddomain.BuildResults(gameID, snap.roster, snap.aggregates, completedAt)

	// Errors from here on must abort the transaction.
	if err := s.repo.InsertGameResults(ctx, db, leaderboarddb.FromDomain(built)); err != nil {
		if errors.Is(err, leaderboarddb.ErrDuplicateResults) {
			return results.OperationResult[*GameResults, error]{}, ErrGameAlreadyFinalized
		}
		return results.OperationResult[*GameResults, error]{}, err
	}
	if err := s.games.CompleteGame(ctx, db, gameID, completedAt); err != nil {
		return results.OperationResult[*GameResults, error]{}, err
	}

	return results.SuccessResult[*GameResults, error](&GameResults{
		GameID:      gameID,
		Results:     built,
		Winners:     leaderboarddomain.Winners(built),
		CompletedAt: completedAt,
	}), nil
}

func finalizedPayload(res *GameResults) events.GameFinalizedPayloadV1 {
	out := make([]events.GameResultV1, len(res.Results))
	for i, r := range res.Results {
		out[i] = events.GameResultV1{
			PlayerID:     r.PlayerID,
			TotalStrokes: r.TotalStrokes,
			TotalPar:     r.TotalPar,
			NetScore:     r.NetScore,
			Handicap:     r.Handicap,
			Position:     r.Position,
			IsWinner:     r.IsWinner,
		}
	}
	return events.GameFinalizedPayloadV1{
		GameID:      res.GameID,
		Results:     out,
		CompletedAt: res.CompletedAt,
	}
}
