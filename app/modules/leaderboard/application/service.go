package leaderboardservice

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scorecard/app/eventbus"
	leaderboarddomain "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/domain"
	leaderboarddb "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/repositories"
	scoredomain "github.com/Black-And-White-Club/scorecard/app/modules/score/domain"
	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/Black-And-White-Club/scorecard/app/shared/operation"
	"github.com/Black-And-White-Club/scorecard/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	repo      leaderboarddb.Repository
	games     GameStore
	scores    ScoreReader
	publisher message.Publisher
	logger    *slog.Logger
	metrics   observability.OperationMetrics
	tracer    trace.Tracer
	db        *bun.DB
	palette   ChartPalette
	now       func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService. publisher may be nil.
func NewLeaderboardService(
	repo leaderboarddb.Repository,
	games GameStore,
	scores ScoreReader,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardService{
		repo:      repo,
		games:     games,
		scores:    scores,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		tracer:    tracer,
		db:        db,
		palette:   DefaultChartPalette,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *LeaderboardService) telemetry() operation.Telemetry {
	return operation.Telemetry{Service: "LeaderboardService", Logger: s.logger, Metrics: s.metrics, Tracer: s.tracer}
}

// ComputeLiveLeaderboard ranks the players who have scored so far. Missing
// entries never fail the computation.
func (s *LeaderboardService) ComputeLiveLeaderboard(ctx context.Context, gameID uuid.UUID) (*LiveLeaderboard, error) {
	result, err := operation.Run(s.telemetry(), ctx, "ComputeLiveLeaderboard", gameID.String(), func(ctx context.Context) (results.OperationResult[*LiveLeaderboard, error], error) {
		snap, err := s.loadSnapshot(ctx, nil, gameID)
		if err != nil {
			return failureOrError[*LiveLeaderboard](err)
		}
		return results.SuccessResult[*LiveLeaderboard, error](&LiveLeaderboard{
			GameID:     gameID,
			Status:     snap.game.Status,
			Rows:       leaderboarddomain.LiveLeaderboard(snap.roster, snap.aggregates),
			ComputedAt: s.now(),
		}), nil
	})
	return operation.Unwrap(result, err)
}

// GetGameResults returns the stored standings. The game must be completed.
func (s *LeaderboardService) GetGameResults(ctx context.Context, gameID uuid.UUID) (*GameResults, error) {
	result, err := operation.Run(s.telemetry(), ctx, "GetGameResults", gameID.String(), func(ctx context.Context) (results.OperationResult[*GameResults, error], error) {
		game, err := s.games.GetGame(ctx, nil, gameID)
		if err != nil {
			return failureOrError[*GameResults](err)
		}
		return s.storedResults(ctx, game, "GetGameResults")
	})
	return operation.Unwrap(result, err)
}

func (s *LeaderboardService) storedResults(ctx context.Context, game *sharedtypes.GameInfo, op string) (results.OperationResult[*GameResults, error], error) {
	if game.Status != sharedtypes.GameStatusCompleted {
		return results.FailureResult[*GameResults, error](&apperrors.InvalidStateError{
			Operation: op,
			Status:    string(game.Status),
			Expected:  string(sharedtypes.GameStatusCompleted),
		}), nil
	}

	rows, err := s.repo.GetGameResults(ctx, nil, game.ID)
	if err != nil {
		return results.OperationResult[*GameResults, error]{}, err
	}
	out := leaderboarddb.ToDomain(rows)
	res := &GameResults{
		GameID:  game.ID,
		Results: out,
		Winners: leaderboarddomain.Winners(out),
	}
	if game.CompletedAt != nil {
		res.CompletedAt = *game.CompletedAt
	}
	return results.SuccessResult[*GameResults, error](res), nil
}

// snapshot is everything derived views need from one read of a game.
type snapshot struct {
	game       *sharedtypes.GameInfo
	roster     []sharedtypes.RosterEntry
	entries    []sharedtypes.ScoreEntry
	aggregates map[sharedtypes.PlayerID]scoredomain.PlayerAggregate
}

func (s *LeaderboardService) loadSnapshot(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*snapshot, error) {
	game, err := s.games.GetGame(ctx, db, gameID)
	if err != nil {
		return nil, err
	}
	return s.snapshotOf(ctx, db, game)
}

func (s *LeaderboardService) snapshotOf(ctx context.Context, db bun.IDB, game *sharedtypes.GameInfo) (*snapshot, error) {
	roster, err := s.games.GetRoster(ctx, db, game.ID)
	if err != nil {
		return nil, err
	}
	entries, err := s.scores.GetScoreEntries(ctx, db, game.ID)
	if err != nil {
		return nil, err
	}
	return &snapshot{
		game:       game,
		roster:     roster,
		entries:    entries,
		aggregates: scoredomain.AggregateAll(roster, entries, game.ParTable),
	}, nil
}

func (s *LeaderboardService) publish(ctx context.Context, topic string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := eventbus.PublishEvent(ctx, s.publisher, topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			attr.ExtractCorrelationID(ctx),
			attr.Topic(topic),
			attr.Error(err),
		)
	}
}

// failureOrError turns a not-found lookup into a domain failure and passes
// anything else through as an infrastructure error.
func failureOrError[S any](err error) (results.OperationResult[S, error], error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		return results.FailureResult[S, error](err), nil
	}
	return results.OperationResult[S, error]{}, err
}
