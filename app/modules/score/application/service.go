package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/scorecard/app/eventbus"
	scoredomain "github.com/Black-And-White-Club/scorecard/app/modules/score/domain"
	scoredb "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/events"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/Black-And-White-Club/scorecard/app/shared/operation"
	"github.com/Black-And-White-Club/scorecard/app/shared/results"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// ScoreService implements the Service interface.
type ScoreService struct {
	repo       scoredb.Repository
	games      GameLookup
	publisher  message.Publisher
	logger     *slog.Logger
	metrics    observability.OperationMetrics
	tracer     trace.Tracer
	db         *bun.DB
	maxStrokes int
	now        func() time.Time
}

// NewScoreService creates a new ScoreService. publisher may be nil.
func NewScoreService(
	repo scoredb.Repository,
	games GameLookup,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	cfg Config,
) *ScoreService {
	if logger == nil {
		logger = slog.Default()
	}
	maxStrokes := cfg.MaxStrokes
	if maxStrokes <= 0 {
		maxStrokes = DefaultMaxStrokes
	}
	return &ScoreService{
		repo:       repo,
		games:      games,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		db:         db,
		maxStrokes: maxStrokes,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *ScoreService) telemetry() operation.Telemetry {
	return operation.Telemetry{Service: "ScoreService", Logger: s.logger, Metrics: s.metrics, Tracer: s.tracer}
}

// UpsertScoreEntry records a player's strokes on a hole of an in-progress game.
func (s *ScoreService) UpsertScoreEntry(ctx context.Context, req UpsertScoreRequest) (*sharedtypes.ScoreEntry, error) {
	result, err := operation.Run(s.telemetry(), ctx, "UpsertScoreEntry", req.GameID.String(), func(ctx context.Context) (results.OperationResult[*sharedtypes.ScoreEntry, error], error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*sharedtypes.ScoreEntry, error], error) {
			return s.upsertScoreEntryLogic(ctx, db, req)
		})
	})
	entry, err := operation.Unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ScoreEntryUpdatedV1, events.ScoreEntryUpdatedPayloadV1{
		GameID:   entry.GameID,
		PlayerID: entry.PlayerID,
		Hole:     entry.Hole,
		Strokes:  entry.Strokes,
		Par:      entry.Par,
	})
	return entry, nil
}

func (s *ScoreService) upsertScoreEntryLogic(ctx context.Context, db bun.IDB, req UpsertScoreRequest) (results.OperationResult[*sharedtypes.ScoreEntry, error], error) {
	if req.PlayerID == "" {
		return results.FailureResult[*sharedtypes.ScoreEntry, error](&apperrors.ValidationError{Field: "player_id", Reason: "required"}), nil
	}
	if req.Strokes != nil && (*req.Strokes < 1 || *req.Strokes > s.maxStrokes) {
		return results.FailureResult[*sharedtypes.ScoreEntry, error](&apperrors.ValidationError{
			Field:  "strokes",
			Reason: fmt.Sprintf("must be between 1 and %d", s.maxStrokes),
		}), nil
	}

	game, err := s.games.GetGame(ctx, db, req.GameID)
	if err != nil {
		return failureOrError[*sharedtypes.ScoreEntry](err)
	}

	par, ok := game.ParTable.Par(req.Hole)
	if !ok {
		return results.FailureResult[*sharedtypes.ScoreEntry, error](&apperrors.ValidationError{
			Field:  "hole",
			Reason: fmt.Sprintf("must be between 1 and %d", len(game.ParTable)),
		}), nil
	}
	if game.Status != sharedtypes.GameStatusInProgress {
		return results.FailureResult[*sharedtypes.ScoreEntry, error](&apperrors.InvalidStateError{
			Operation: "UpsertScoreEntry",
			Status:    string(game.Status),
			Expected:  string(sharedtypes.GameStatusInProgress),
		}), nil
	}

	roster, err := s.games.GetRoster(ctx, db, req.GameID)
	if err != nil {
		return results.OperationResult[*sharedtypes.ScoreEntry, error]{}, err
	}
	if _, found := findPlayer(roster, req.PlayerID); !found {
		return results.FailureResult[*sharedtypes.ScoreEntry, error](ErrPlayerNotInGame), nil
	}

	row := &scoredb.ScoreEntry{
		GameID:    req.GameID,
		PlayerID:  req.PlayerID,
		Hole:      req.Hole,
		Strokes:   req.Strokes,
		Par:       par,
		UpdatedAt: s.now(),
	}
	if err := s.repo.UpsertScoreEntry(ctx, db, row); err != nil {
		return results.OperationResult[*sharedtypes.ScoreEntry, error]{}, err
	}

	entry := row.ToShared()
	return results.SuccessResult[*sharedtypes.ScoreEntry, error](&entry), nil
}

// GetScoreEntries returns a game's entries sorted by player then hole.
func (s *ScoreService) GetScoreEntries(ctx context.Context, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]sharedtypes.ScoreEntry, error) {
	result, err := operation.Run(s.telemetry(), ctx, "GetScoreEntries", gameID.String(), func(ctx context.Context) (results.OperationResult[[]sharedtypes.ScoreEntry, error], error) {
		if _, err := s.games.GetGame(ctx, nil, gameID); err != nil {
			return failureOrError[[]sharedtypes.ScoreEntry](err)
		}
		rows, err := s.repo.GetScoreEntries(ctx, nil, gameID, playerID)
		if err != nil {
			return results.OperationResult[[]sharedtypes.ScoreEntry, error]{}, err
		}
		return results.SuccessResult[[]sharedtypes.ScoreEntry, error](scoredb.ToSharedEntries(rows)), nil
	})
	return operation.Unwrap(result, err)
}

// GetPlayerScorecard returns one player's entries, totals and per-hole classification.
func (s *ScoreService) GetPlayerScorecard(ctx context.Context, gameID uuid.UUID, playerID sharedtypes.PlayerID) (*PlayerScorecard, error) {
	result, err := operation.Run(s.telemetry(), ctx, "GetPlayerScorecard", gameID.String(), func(ctx context.Context) (results.OperationResult[*PlayerScorecard, error], error) {
		game, err := s.games.GetGame(ctx, nil, gameID)
		if err != nil {
			return failureOrError[*PlayerScorecard](err)
		}
		roster, err := s.games.GetRoster(ctx, nil, gameID)
		if err != nil {
			return results.OperationResult[*PlayerScorecard, error]{}, err
		}
		player, found := findPlayer(roster, playerID)
		if !found {
			return results.FailureResult[*PlayerScorecard, error](ErrPlayerNotInGame), nil
		}

		rows, err := s.repo.GetScoreEntries(ctx, nil, gameID, &playerID)
		if err != nil {
			return results.OperationResult[*PlayerScorecard, error]{}, err
		}
		entries := scoredb.ToSharedEntries(rows)
		agg := scoredomain.Aggregate(playerID, entries, game.ParTable)

		return results.SuccessResult[*PlayerScorecard, error](&PlayerScorecard{
			Player:          player,
			Entries:         entries,
			Aggregate:       agg,
			ToPar:           agg.ToPar(),
			Classifications: scoredomain.ClassifyHoles(agg),
			FrontNinePar:    scoredomain.FrontNineParReference,
		}), nil
	})
	return operation.Unwrap(result, err)
}

func (s *ScoreService) publish(ctx context.Context, topic string, payload any) {
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

func findPlayer(roster []sharedtypes.RosterEntry, id sharedtypes.PlayerID) (sharedtypes.RosterEntry, bool) {
	for _, p := range roster {
		if p.PlayerID == id {
			return p, true
		}
	}
	return sharedtypes.RosterEntry{}, false
}
