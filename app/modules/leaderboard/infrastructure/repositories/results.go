package leaderboarddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new leaderboard repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

// InsertGameResults inserts the full result set for a game.
func (r *Impl) InsertGameResults(ctx context.Context, db bun.IDB, rows []GameResult) error {
	if len(rows) == 0 {
		return nil
	}
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(&rows).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateResults
		}
		return fmt.Errorf("failed to insert results for game %s: %w", rows[0].GameID, err)
	}
	return nil
}

// GetGameResults returns the stored results for a game.
func (r *Impl) GetGameResults(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]GameResult, error) {
	db = r.resolveDB(db)
	var rows []GameResult
	err := db.NewSelect().
		Model(&rows).
		Where("gr.game_id = ?", gameID).
		Order("gr.position ASC", "gr.ordinal ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get results for game %s: %w", gameID, err)
	}
	return rows, nil
}

// HasGameResults reports whether any result row exists for the game.
func (r *Impl) HasGameResults(ctx context.Context, db bun.IDB, gameID uuid.UUID) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*GameResult)(nil)).
		Where("gr.game_id = ?", gameID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check results for game %s: %w", gameID, err)
	}
	return exists, nil
}
