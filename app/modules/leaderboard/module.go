package leaderboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/Black-And-White-Club/scorecard/app/eventbus"
	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
	leaderboardservice "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/adapters"
	leaderboardhandlers "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/handlers"
	leaderboarddb "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/router"
	scoredb "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the leaderboard module.
type Module struct {
	EventBus           eventbus.EventBus
	LeaderboardService leaderboardservice.Service
	Handlers           leaderboardhandlers.Handlers
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewLeaderboardModule creates a new instance of the Leaderboard module. When
// router is non-nil the event handlers are registered on it; when httpRouter
// is non-nil the HTTP routes are.
func NewLeaderboardModule(
	ctx context.Context,
	obs observability.Observability,
	eventBus eventbus.EventBus,
	games gamedb.Repository,
	scores scoredb.Repository,
	router *message.Router,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	var publisher message.Publisher
	if eventBus != nil {
		publisher = eventBus
	}

	service := leaderboardservice.NewLeaderboardService(
		leaderboarddb.NewRepository(db),
		adapters.NewGameStoreAdapter(games),
		adapters.NewScoreReaderAdapter(scores),
		publisher,
		logger,
		obs.Registry.LeaderboardMetrics,
		tracer,
		db,
	)
	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer)

	module := &Module{
		EventBus:           eventBus,
		LeaderboardService: service,
		Handlers:           handlers,
		observability:      obs,
	}

	if router != nil && eventBus != nil {
		lbRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, eventBus, obs.Registry.Prometheus)
		if err := lbRouter.Configure(ctx, handlers); err != nil {
			return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
		}
		module.LeaderboardRouter = lbRouter
	}

	if httpRouter != nil {
		RegisterRoutes(httpRouter, handlers)
	}

	return module, nil
}

// RegisterRoutes mounts the leaderboard endpoints on an already authenticated router.
func RegisterRoutes(r chi.Router, h leaderboardhandlers.Handlers) {
	r.Get("/games/{gameID}/leaderboard", h.HandleGetLeaderboard)
	r.Post("/games/{gameID}/finalize", h.HandleFinalizeGame)
	r.Get("/games/{gameID}/results", h.HandleGetResults)
	r.Get("/games/{gameID}/results.xlsx", h.HandleExportResults)
	r.Get("/games/{gameID}/chart.png", h.HandleScoreChart)
}

// Run keeps the module alive until ctx is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the leaderboard module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Leaderboard module stopped")
	return nil
}
