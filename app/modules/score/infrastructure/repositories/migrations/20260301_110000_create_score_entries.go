package scoremigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating score_entries table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS score_entries (
					game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
					player_id TEXT NOT NULL,
					hole INTEGER NOT NULL CHECK (hole BETWEEN 1 AND 18),
					strokes INTEGER,
					par INTEGER NOT NULL,
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					PRIMARY KEY (game_id, player_id, hole)
				);
			`); err != nil {
				return fmt.Errorf("failed to create score_entries table: %w", err)
			}

			fmt.Println("Score entries table created.")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping score_entries table...")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS score_entries;`)
		return err
	})
}
