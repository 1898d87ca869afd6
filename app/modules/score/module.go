package score

import (
	"context"

	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	"github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/adapters"
	scorehandlers "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/handlers"
	scoredb "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the score module.
type Module struct {
	ScoreService  scoreservice.Service
	Handlers      scorehandlers.Handlers
	observability observability.Observability
}

// NewScoreModule creates a new instance of the score module. repo is shared
// with the game module, which initializes scorecards through it when a game starts.
func NewScoreModule(
	ctx context.Context,
	obs observability.Observability,
	publisher message.Publisher,
	repo scoredb.Repository,
	games gamedb.Repository,
	httpRouter chi.Router,
	db *bun.DB,
	cfg scoreservice.Config,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "score.NewScoreModule initializing")

	service := scoreservice.NewScoreService(
		repo,
		adapters.NewGameLookupAdapter(games),
		publisher,
		logger,
		obs.Registry.ScoreMetrics,
		tracer,
		db,
		cfg,
	)
	handlers := scorehandlers.NewScoreHandlers(service, logger, tracer)

	if httpRouter != nil {
		RegisterRoutes(httpRouter, handlers)
	}

	return &Module{
		ScoreService:  service,
		Handlers:      handlers,
		observability: obs,
	}, nil
}

// RegisterRoutes mounts the score endpoints on an already authenticated router.
func RegisterRoutes(r chi.Router, h scorehandlers.Handlers) {
	r.Put("/games/{gameID}/scores/{hole}", h.HandleUpsertScore)
	r.Get("/games/{gameID}/scores", h.HandleGetScores)
	r.Get("/games/{gameID}/scorecards/{playerID}", h.HandleGetScorecard)
}

// Close shuts down the score module.
func (m *Module) Close() error {
	m.observability.Provider.Logger.Info("Score module stopped")
	return nil
}
