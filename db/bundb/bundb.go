package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	gamemigrations "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories/migrations"
	leaderboardmigrations "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/repositories/migrations"
	scoremigrations "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations names one module's migration set.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules returns every module's migrations in dependency order: score
// entries and game results reference games.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{Name: "game", Migrations: gamemigrations.Migrations},
		{Name: "score", Migrations: scoremigrations.Migrations},
		{Name: "leaderboard", Migrations: leaderboardmigrations.Migrations},
	}
}

// Open connects to Postgres and verifies the connection.
func Open(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}

// Migrate creates the migration tables if needed and applies every pending
// module migration in order.
func Migrate(ctx context.Context, db *bun.DB, logger *slog.Logger) error {
	modules := Modules()
	if err := migrate.NewMigrator(db, modules[0].Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	for _, mod := range modules {
		group, err := migrate.NewMigrator(db, mod.Migrations).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No migrations to run", attr.String("module", mod.Name))
			continue
		}
		logger.InfoContext(ctx, "Applied migrations",
			attr.String("module", mod.Name),
			attr.String("group", group.String()),
		)
	}
	return nil
}
