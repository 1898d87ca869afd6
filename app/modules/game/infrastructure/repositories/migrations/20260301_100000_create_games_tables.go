package gamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating games and game_players tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS games (
					id UUID PRIMARY KEY,
					code VARCHAR(6) NOT NULL UNIQUE,
					host_id TEXT NOT NULL,
					course_name TEXT NOT NULL DEFAULT '',
					hole_count INTEGER NOT NULL CHECK (hole_count IN (9, 18)),
					pars JSONB NOT NULL,
					max_players INTEGER NOT NULL DEFAULT 4,
					status TEXT NOT NULL DEFAULT 'waiting'
						CHECK (status IN ('waiting', 'in-progress', 'completed')),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					started_at TIMESTAMPTZ,
					completed_at TIMESTAMPTZ
				);
				CREATE INDEX IF NOT EXISTS idx_games_host_id ON games(host_id);
			`); err != nil {
				return fmt.Errorf("failed to create games table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_players (
					game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
					player_id TEXT NOT NULL,
					name TEXT NOT NULL,
					handicap INTEGER NOT NULL DEFAULT 0,
					joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (game_id, player_id)
				);
				CREATE INDEX IF NOT EXISTS idx_game_players_player_id ON game_players(player_id);
			`); err != nil {
				return fmt.Errorf("failed to create game_players table: %w", err)
			}

			fmt.Println("Games tables created.")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping games and game_players tables...")
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS game_players;
			DROP TABLE IF EXISTS games;
		`)
		return err
	})
}
