package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/Black-And-White-Club/scorecard/app/eventbus"
	"github.com/Black-And-White-Club/scorecard/app/modules/auth"
	"github.com/Black-And-White-Club/scorecard/app/modules/game"
	"github.com/Black-And-White-Club/scorecard/app/modules/leaderboard"
	"github.com/Black-And-White-Club/scorecard/app/modules/score"
	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/Black-And-White-Club/scorecard/config"
	"github.com/Black-And-White-Club/scorecard/db/bundb"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// App holds the scorecard service's dependencies and modules.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Router        *message.Router
	Server        *http.Server

	AuthModule        *auth.Module
	GameModule        *game.Module
	ScoreModule       *score.Module
	LeaderboardModule *leaderboard.Module
}

// NewApp connects to the database and event bus and wires every module.
func NewApp(ctx context.Context, cfg *config.Config, version string) (*App, error) {
	obs, err := observability.Init(observability.Config{
		ServiceName: "scorecard",
		Environment: cfg.Observability.Environment,
		Version:     version,
		LogLevel:    cfg.Observability.LogLevel,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Provider.Logger

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, Observability: obs, DB: db}
	if err := app.initialize(ctx); err != nil {
		if closeErr := app.Close(); closeErr != nil {
			logger.ErrorContext(ctx, "Cleanup after failed startup", attr.Error(closeErr))
		}
		return nil, err
	}
	return app, nil
}

func (app *App) initialize(ctx context.Context) error {
	cfg := app.Config
	logger := app.Observability.Provider.Logger

	if cfg.NATS.URL == "" {
		logger.WarnContext(ctx, "NATS_URL not set; using the in-process event bus")
		app.EventBus = eventbus.NewInMemoryEventBus(logger)
	} else {
		bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return fmt.Errorf("failed to create event bus: %w", err)
		}
		app.EventBus = bus
	}

	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: 10 * time.Second}, watermill.NewSlogLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create message router: %w", err)
	}
	app.Router = router

	authModule, err := auth.NewAuthModule(ctx, app.Observability, auth.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RatePerSecond:  cfg.HTTP.RatePerSecond,
		RateBurst:      cfg.HTTP.RateBurst,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	app.AuthModule = authModule

	api := chi.NewRouter()
	api.Use(authModule.Middlewares()...)

	// The score repository is shared: the game module writes the empty
	// scorecards at start, the score module owns every other access.
	scoreRepo := scoredb.NewRepository(app.DB)

	gameModule, err := game.NewGameModule(ctx, app.Observability, app.EventBus, scoreRepo, api, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize game module: %w", err)
	}
	app.GameModule = gameModule

	scoreModule, err := score.NewScoreModule(ctx, app.Observability, app.EventBus, scoreRepo, gameModule.Repository, api, app.DB,
		scoreservice.Config{MaxStrokes: cfg.Score.MaxStrokes})
	if err != nil {
		return fmt.Errorf("failed to initialize score module: %w", err)
	}
	app.ScoreModule = scoreModule

	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, app.Observability, app.EventBus,
		gameModule.Repository, scoreRepo, router, api, app.DB)
	if err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	app.LeaderboardModule = leaderboardModule

	app.Server = &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           NewHTTPHandler(app.Observability, app.DB, api),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.InfoContext(ctx, "All modules initialized")
	return nil
}

// Run serves HTTP and consumes events until ctx is canceled or a component
// fails, then shuts everything down.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	var wg sync.WaitGroup

	wg.Add(1)
	go app.LeaderboardModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("message router: %w", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.InfoContext(ctx, "HTTP server listening", attr.String("addr", app.Server.Addr))
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown requested")
	case runErr = <-errCh:
		logger.Error("Component failed; shutting down", attr.Error(runErr))
	}

	shutdownCtx, stop := context.WithTimeout(context.WithoutCancel(ctx), app.Config.HTTP.ShutdownTimeout)
	defer stop()
	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	cancel()
	wg.Wait()

	return errors.Join(runErr, app.Close())
}

// Close releases every resource the app holds. It is safe to call on a
// partially initialized app.
func (app *App) Close() error {
	var errs []error
	if app.LeaderboardModule != nil {
		errs = append(errs, app.LeaderboardModule.Close())
	}
	if app.ScoreModule != nil {
		errs = append(errs, app.ScoreModule.Close())
	}
	if app.GameModule != nil {
		errs = append(errs, app.GameModule.Close())
	}
	if app.AuthModule != nil {
		errs = append(errs, app.AuthModule.Close())
	}
	if app.Router != nil {
		errs = append(errs, app.Router.Close())
	}
	if app.EventBus != nil {
		errs = append(errs, app.EventBus.Close())
	}
	if app.DB != nil {
		errs = append(errs, app.DB.Close())
	}
	return errors.Join(errs...)
}
