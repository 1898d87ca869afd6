package game

import (
	"context"

	gameservice "github.com/Black-And-White-Club/scorecard/app/modules/game/application"
	gamehandlers "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/handlers"
	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the game lobby module.
type Module struct {
	GameService   gameservice.Service
	Repository    gamedb.Repository
	Handlers      gamehandlers.Handlers
	observability observability.Observability
}

// NewGameModule creates and initializes a new game module. When httpRouter is
// non-nil the lobby routes are registered on it.
func NewGameModule(
	ctx context.Context,
	obs observability.Observability,
	publisher message.Publisher,
	scorecards gameservice.ScorecardInitializer,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "game.NewGameModule initializing")

	repo := gamedb.NewRepository(db)
	service := gameservice.NewGameService(repo, scorecards, publisher, logger, obs.Registry.GameMetrics, tracer, db)
	handlers := gamehandlers.NewGameHandlers(service, logger, tracer)

	if httpRouter != nil {
		RegisterRoutes(httpRouter, handlers)
	}

	return &Module{
		GameService:   service,
		Repository:    repo,
		Handlers:      handlers,
		observability: obs,
	}, nil
}

// RegisterRoutes mounts the lobby endpoints on an already authenticated router.
func RegisterRoutes(r chi.Router, h gamehandlers.Handlers) {
	r.Post("/games", h.HandleCreateGame)
	r.Get("/games/code/{code}", h.HandleGetGameByCode)
	r.Post("/games/code/{code}/join", h.HandleJoinGame)
	r.Get("/games/{gameID}", h.HandleGetGame)
	r.Post("/games/{gameID}/start", h.HandleStartGame)
	r.Get("/players/me/games", h.HandleListMyGames)
}

// Close shuts down the game module.
func (m *Module) Close() error {
	m.observability.Provider.Logger.Info("Game module stopped")
	return nil
}
