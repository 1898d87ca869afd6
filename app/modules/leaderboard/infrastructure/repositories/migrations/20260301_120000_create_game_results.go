package leaderboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating game_results table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS game_results (
					game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
					player_id TEXT NOT NULL,
					name TEXT NOT NULL,
					total_strokes INTEGER NOT NULL,
					total_par INTEGER NOT NULL,
					net_score INTEGER NOT NULL,
					handicap INTEGER NOT NULL,
					holes_played INTEGER NOT NULL,
					position INTEGER NOT NULL CHECK (position >= 1),
					is_winner BOOLEAN NOT NULL,
					ordinal INTEGER NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (game_id, player_id)
				);
			`); err != nil {
				return fmt.Errorf("failed to create game_results table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_game_results_position
					ON game_results (game_id, position, ordinal);
			`); err != nil {
				return fmt.Errorf("failed to create game_results index: %w", err)
			}

			fmt.Println("Game results table created.")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping game_results table...")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS game_results;`)
		return err
	})
}
