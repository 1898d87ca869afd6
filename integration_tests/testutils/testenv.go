package testutils

import (
	"context"
	"fmt"

	"github.com/Black-And-White-Club/scorecard/app/eventbus"
	"github.com/Black-And-White-Club/scorecard/app/modules/game"
	"github.com/Black-And-White-Club/scorecard/app/modules/leaderboard"
	"github.com/Black-And-White-Club/scorecard/app/modules/score"
	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	scoredb "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/Black-And-White-Club/scorecard/db/bundb"
	"github.com/Black-And-White-Club/scorecard/integration_tests/containers"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds a migrated Postgres database and the modules wired
// against it.
type TestEnvironment struct {
	PgContainer   *postgres.PostgresContainer
	DB            *bun.DB
	EventBus      eventbus.EventBus
	Observability observability.Observability

	Game        *game.Module
	Score       *score.Module
	Leaderboard *leaderboard.Module
}

// NewTestEnvironment starts Postgres, applies every migration and wires the
// game, score and leaderboard modules without HTTP or event routing.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	pgContainer, connStr, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}

	// Same driver as production so driver-specific error mapping is exercised.
	db, err := bundb.Open(ctx, connStr)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	// Enough connections for the concurrency tests to contend on row locks.
	db.SetMaxOpenConns(16)

	env := &TestEnvironment{
		PgContainer:   pgContainer,
		DB:            db,
		Observability: observability.NewNoop(),
	}
	env.EventBus = eventbus.NewInMemoryEventBus(env.Observability.Provider.Logger)

	if err := bundb.Migrate(ctx, env.DB, env.Observability.Provider.Logger); err != nil {
		env.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := env.wireModules(ctx); err != nil {
		env.Terminate(ctx)
		return nil, err
	}
	return env, nil
}

func (env *TestEnvironment) wireModules(ctx context.Context) error {
	scoreRepo := scoredb.NewRepository(env.DB)

	gameModule, err := game.NewGameModule(ctx, env.Observability, env.EventBus, scoreRepo, nil, env.DB)
	if err != nil {
		return fmt.Errorf("failed to create game module: %w", err)
	}
	scoreModule, err := score.NewScoreModule(ctx, env.Observability, env.EventBus, scoreRepo, gameModule.Repository, nil, env.DB, scoreservice.Config{})
	if err != nil {
		return fmt.Errorf("failed to create score module: %w", err)
	}
	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, env.Observability, env.EventBus, gameModule.Repository, scoreRepo, nil, nil, env.DB)
	if err != nil {
		return fmt.Errorf("failed to create leaderboard module: %w", err)
	}

	env.Game = gameModule
	env.Score = scoreModule
	env.Leaderboard = leaderboardModule
	return nil
}

// Reset empties every table between tests.
func (env *TestEnvironment) Reset(ctx context.Context) error {
	_, err := env.DB.ExecContext(ctx, "TRUNCATE game_results, score_entries, game_players, games CASCADE")
	return err
}

// Terminate closes connections and stops the container.
func (env *TestEnvironment) Terminate(ctx context.Context) {
	if env.EventBus != nil {
		_ = env.EventBus.Close()
	}
	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.PgContainer != nil {
		_ = env.PgContainer.Terminate(ctx)
	}
}
