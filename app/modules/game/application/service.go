package gameservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Black-And-White-Club/scorecard/app/eventbus"
	gamedomain "github.com/Black-And-White-Club/scorecard/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
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

const (
	maxCodeAttempts = 5
	historyLimit    = 50
)

// GameService implements the Service interface.
type GameService struct {
	repo         gamedb.Repository
	scorecards   ScorecardInitializer
	publisher    message.Publisher
	logger       *slog.Logger
	metrics      observability.OperationMetrics
	tracer       trace.Tracer
	db           *bun.DB
	now          func() time.Time
	generateCode func() (string, error)
}

// NewGameService creates a new GameService. publisher may be nil.
func NewGameService(
	repo gamedb.Repository,
	scorecards ScorecardInitializer,
	publisher message.Publisher,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *GameService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GameService{
		repo:         repo,
		scorecards:   scorecards,
		publisher:    publisher,
		logger:       logger,
		metrics:      metrics,
		tracer:       tracer,
		db:           db,
		now:          func() time.Time { return time.Now().UTC() },
		generateCode: gamedomain.GenerateCode,
	}
}

func (s *GameService) telemetry() operation.Telemetry {
	return operation.Telemetry{Service: "GameService", Logger: s.logger, Metrics: s.metrics, Tracer: s.tracer}
}

// CreateGame creates a game in waiting status with the host as first player.
func (s *GameService) CreateGame(ctx context.Context, spec gamedomain.NewGameSpec) (*GameDetails, error) {
	result, err := operation.Run(s.telemetry(), ctx, "CreateGame", string(spec.HostID), func(ctx context.Context) (results.OperationResult[*GameDetails, error], error) {
		normalized, err := spec.Normalize()
		if err != nil {
			return results.FailureResult[*GameDetails, error](err), nil
		}

		for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
			code, err := s.generateCode()
			if err != nil {
				return results.OperationResult[*GameDetails, error]{}, err
			}

			res, err := operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*GameDetails, error], error) {
				return s.createGameLogic(ctx, db, normalized, code)
			})
			if errors.Is(err, gamedb.ErrDuplicateCode) {
				s.logger.WarnContext(ctx, "Game code collision, retrying",
					attr.String("code", code),
					attr.Int("attempt", attempt),
				)
				continue
			}
			return res, err
		}
		return results.OperationResult[*GameDetails, error]{}, fmt.Errorf("failed to allocate a unique game code after %d attempts", maxCodeAttempts)
	})
	return operation.Unwrap(result, err)
}

func (s *GameService) createGameLogic(ctx context.Context, db bun.IDB, spec gamedomain.NewGameSpec, code string) (results.OperationResult[*GameDetails, error], error) {
	now := s.now()
	game := &gamedb.Game{
		ID:         uuid.New(),
		Code:       code,
		HostID:     spec.HostID,
		CourseName: spec.CourseName,
		HoleCount:  spec.HoleCount,
		Pars:       spec.Pars,
		MaxPlayers: spec.MaxPlayers,
		Status:     sharedtypes.GameStatusWaiting,
		CreatedAt:  now,
	}
	if err := s.repo.CreateGame(ctx, db, game); err != nil {
		return results.OperationResult[*GameDetails, error]{}, err
	}

	host := &gamedb.GamePlayer{
		GameID:   game.ID,
		PlayerID: spec.HostID,
		Name:     spec.HostName,
		Handicap: spec.Handicap,
		JoinedAt: now,
	}
	if err := s.repo.AddPlayer(ctx, db, host); err != nil {
		return results.OperationResult[*GameDetails, error]{}, fmt.Errorf("failed to add host: %w", err)
	}

	return results.SuccessResult[*GameDetails, error](&GameDetails{
		Game:   *game.Info(),
		Roster: []sharedtypes.RosterEntry{host.RosterEntry()},
	}), nil
}

// JoinGame adds a player to a waiting game found by code.
func (s *GameService) JoinGame(ctx context.Context, req JoinRequest) (*GameDetails, error) {
	result, err := operation.Run(s.telemetry(), ctx, "JoinGame", req.Code, func(ctx context.Context) (results.OperationResult[*GameDetails, error], error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*GameDetails, error], error) {
			return s.joinGameLogic(ctx, db, req)
		})
	})
	return operation.Unwrap(result, err)
}

func (s *GameService) joinGameLogic(ctx context.Context, db bun.IDB, req JoinRequest) (results.OperationResult[*GameDetails, error], error) {
	if req.PlayerID == "" {
		return results.FailureResult[*GameDetails, error](&apperrors.ValidationError{Field: "player_id", Reason: "required"}), nil
	}
	if req.Handicap < 0 {
		return results.FailureResult[*GameDetails, error](&apperrors.ValidationError{Field: "handicap", Reason: "must not be negative"}), nil
	}
	code := strings.ToUpper(strings.TrimSpace(req.Code))

	found, err := s.repo.GetGameByCode(ctx, db, code)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return results.FailureResult[*GameDetails, error](ErrGameNotFound), nil
		}
		return results.OperationResult[*GameDetails, error]{}, err
	}

	// Lock the game so concurrent joins see a consistent roster size.
	game, err := s.repo.GetGameForUpdate(ctx, db, found.ID)
	if err != nil {
		return results.OperationResult[*GameDetails, error]{}, err
	}
	if game.Status != sharedtypes.GameStatusWaiting {
		return results.FailureResult[*GameDetails, error](&apperrors.InvalidStateError{
			Operation: "JoinGame",
			Status:    string(game.Status),
			Expected:  string(sharedtypes.GameStatusWaiting),
		}), nil
	}

	players, err := s.repo.GetPlayers(ctx, db, game.ID)
	if err != nil {
		return results.OperationResult[*GameDetails, error]{}, err
	}
	for _, p := range players {
		if p.PlayerID == req.PlayerID {
			return results.FailureResult[*GameDetails, error](ErrAlreadyJoined), nil
		}
	}
	if len(players) >= game.MaxPlayers {
		return results.FailureResult[*GameDetails, error](ErrGameFull), nil
	}

	name := req.Name
	if name == "" {
		name = string(req.PlayerID)
	}
	player := gamedb.GamePlayer{
		GameID:   game.ID,
		PlayerID: req.PlayerID,
		Name:     name,
		Handicap: req.Handicap,
		JoinedAt: s.now(),
	}
	if err := s.repo.AddPlayer(ctx, db, &player); err != nil {
		if errors.Is(err, gamedb.ErrDuplicatePlayer) {
			return results.FailureResult[*GameDetails, error](ErrAlreadyJoined), nil
		}
		return results.OperationResult[*GameDetails, error]{}, err
	}

	return results.SuccessResult[*GameDetails, error](details(game, append(players, player))), nil
}

// StartGame moves a waiting game to in-progress and creates every player's
// empty scorecard in the same transaction.
func (s *GameService) StartGame(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) (*GameDetails, error) {
	result, err := operation.Run(s.telemetry(), ctx, "StartGame", gameID.String(), func(ctx context.Context) (results.OperationResult[*GameDetails, error], error) {
		return operation.RunInTx(ctx, s.db, func(ctx context.Context, db bun.IDB) (results.OperationResult[*GameDetails, error], error) {
			return s.startGameLogic(ctx, db, gameID, callerID)
		})
	})
	started, err := operation.Unwrap(result, err)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.GameStartedV1, events.GameStartedPayloadV1{
		GameID:    started.Game.ID,
		Code:      started.Game.Code,
		Players:   playerIDs(started.Roster),
		HoleCount: started.Game.HoleCount,
		StartedAt: derefTime(started.Game.StartedAt),
	})
	return started, nil
}

func (s *GameService) startGameLogic(ctx context.Context, db bun.IDB, gameID uuid.UUID, callerID sharedtypes.PlayerID) (results.OperationResult[*GameDetails, error], error) {
	game, err := s.repo.GetGameForUpdate(ctx, db, gameID)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return results.FailureResult[*GameDetails, error](ErrGameNotFound), nil
		}
		return results.OperationResult[*GameDetails, error]{}, err
	}
	if game.HostID != callerID {
		return results.FailureResult[*GameDetails, error](ErrNotHost), nil
	}
	if !gamedomain.CanTransition(game.Status, sharedtypes.GameStatusInProgress) {
		return results.FailureResult[*GameDetails, error](&apperrors.InvalidStateError{
			Operation: "StartGame",
			Status:    string(game.Status),
			Expected:  string(sharedtypes.GameStatusWaiting),
		}), nil
	}

	players, err := s.repo.GetPlayers(ctx, db, gameID)
	if err != nil {
		return results.OperationResult[*GameDetails, error]{}, err
	}
	if len(players) < gamedomain.MinPlayersToStart {
		return results.FailureResult[*GameDetails, error](ErrNotEnoughPlayers), nil
	}

	now := s.now()
	if err := s.repo.UpdateGameStatus(ctx, db, gameID, sharedtypes.GameStatusWaiting, sharedtypes.GameStatusInProgress, now); err != nil {
		return results.OperationResult[*GameDetails, error]{}, fmt.Errorf("failed to start game: %w", err)
	}

	if s.scorecards != nil {
		ids := make([]sharedtypes.PlayerID, len(players))
		for i, p := range players {
			ids[i] = p.PlayerID
		}
		if err := s.scorecards.InitializeScorecards(ctx, db, gameID, ids, game.ParTable()); err != nil {
			return results.OperationResult[*GameDetails, error]{}, fmt.Errorf("failed to initialize scorecards: %w", err)
		}
	}

	game.Status = sharedtypes.GameStatusInProgress
	game.StartedAt = &now
	return results.SuccessResult[*GameDetails, error](details(game, players)), nil
}

// GetGame returns a game with its roster.
func (s *GameService) GetGame(ctx context.Context, gameID uuid.UUID) (*GameDetails, error) {
	result, err := operation.Run(s.telemetry(), ctx, "GetGame", gameID.String(), func(ctx context.Context) (results.OperationResult[*GameDetails, error], error) {
		game, err := s.repo.GetGame(ctx, nil, gameID)
		if err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return results.FailureResult[*GameDetails, error](ErrGameNotFound), nil
			}
			return results.OperationResult[*GameDetails, error]{}, err
		}
		players, err := s.repo.GetPlayers(ctx, nil, gameID)
		if err != nil {
			return results.OperationResult[*GameDetails, error]{}, err
		}
		return results.SuccessResult[*GameDetails, error](details(game, players)), nil
	})
	return operation.Unwrap(result, err)
}

// GetGameByCode returns a game found by its join code.
func (s *GameService) GetGameByCode(ctx context.Context, code string) (*GameDetails, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	result, err := operation.Run(s.telemetry(), ctx, "GetGameByCode", code, func(ctx context.Context) (results.OperationResult[*GameDetails, error], error) {
		if !gamedomain.ValidCode(code) {
			return results.FailureResult[*GameDetails, error](&apperrors.ValidationError{Field: "code", Reason: "not a game code"}), nil
		}
		game, err := s.repo.GetGameByCode(ctx, nil, code)
		if err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return results.FailureResult[*GameDetails, error](ErrGameNotFound), nil
			}
			return results.OperationResult[*GameDetails, error]{}, err
		}
		players, err := s.repo.GetPlayers(ctx, nil, game.ID)
		if err != nil {
			return results.OperationResult[*GameDetails, error]{}, err
		}
		return results.SuccessResult[*GameDetails, error](details(game, players)), nil
	})
	return operation.Unwrap(result, err)
}

// GetRoster returns the players of a game in join order.
func (s *GameService) GetRoster(ctx context.Context, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error) {
	result, err := operation.Run(s.telemetry(), ctx, "GetRoster", gameID.String(), func(ctx context.Context) (results.OperationResult[[]sharedtypes.RosterEntry, error], error) {
		if _, err := s.repo.GetGame(ctx, nil, gameID); err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return results.FailureResult[[]sharedtypes.RosterEntry, error](ErrGameNotFound), nil
			}
			return results.OperationResult[[]sharedtypes.RosterEntry, error]{}, err
		}
		players, err := s.repo.GetPlayers(ctx, nil, gameID)
		if err != nil {
			return results.OperationResult[[]sharedtypes.RosterEntry, error]{}, err
		}
		return results.SuccessResult[[]sharedtypes.RosterEntry, error](roster(players)), nil
	})
	return operation.Unwrap(result, err)
}

// GetParTable returns the hole table of a game.
func (s *GameService) GetParTable(ctx context.Context, gameID uuid.UUID) (sharedtypes.ParTable, error) {
	result, err := operation.Run(s.telemetry(), ctx, "GetParTable", gameID.String(), func(ctx context.Context) (results.OperationResult[sharedtypes.ParTable, error], error) {
		game, err := s.repo.GetGame(ctx, nil, gameID)
		if err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return results.FailureResult[sharedtypes.ParTable, error](ErrGameNotFound), nil
			}
			return results.OperationResult[sharedtypes.ParTable, error]{}, err
		}
		return results.SuccessResult[sharedtypes.ParTable, error](game.ParTable()), nil
	})
	return operation.Unwrap(result, err)
}

// ListPlayerGames returns the games a player has joined, newest first.
func (s *GameService) ListPlayerGames(ctx context.Context, playerID sharedtypes.PlayerID) ([]sharedtypes.GameInfo, error) {
	result, err := operation.Run(s.telemetry(), ctx, "ListPlayerGames", string(playerID), func(ctx context.Context) (results.OperationResult[[]sharedtypes.GameInfo, error], error) {
		games, err := s.repo.ListGamesForPlayer(ctx, nil, playerID, historyLimit)
		if err != nil {
			return results.OperationResult[[]sharedtypes.GameInfo, error]{}, err
		}
		out := make([]sharedtypes.GameInfo, len(games))
		for i := range games {
			out[i] = *games[i].Info()
		}
		return results.SuccessResult[[]sharedtypes.GameInfo, error](out), nil
	})
	return operation.Unwrap(result, err)
}

// AuthorizeHost checks that callerID hosts the game.
func (s *GameService) AuthorizeHost(ctx context.Context, gameID uuid.UUID, callerID sharedtypes.PlayerID) error {
	game, err := s.repo.GetGame(ctx, nil, gameID)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("AuthorizeHost: %w", err)
	}
	if game.HostID != callerID {
		s.logger.WarnContext(ctx, "Host-only action refused",
			attr.GameID(gameID),
			attr.PlayerID(callerID),
		)
		return ErrNotHost
	}
	return nil
}

func (s *GameService) publish(ctx context.Context, topic string, payload any) {
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

func details(game *gamedb.Game, players []gamedb.GamePlayer) *GameDetails {
	return &GameDetails{Game: *game.Info(), Roster: roster(players)}
}

func roster(players []gamedb.GamePlayer) []sharedtypes.RosterEntry {
	out := make([]sharedtypes.RosterEntry, len(players))
	for i, p := range players {
		out[i] = p.RosterEntry()
	}
	return out
}

func playerIDs(entries []sharedtypes.RosterEntry) []sharedtypes.PlayerID {
	out := make([]sharedtypes.PlayerID, len(entries))
	for i, e := range entries {
		out[i] = e.PlayerID
	}
	return out
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
