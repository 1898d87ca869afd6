package scoredb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new score repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// InitializeScorecards pre-populates NULL placeholders for every player and hole.
func (r *Impl) InitializeScorecards(ctx context.Context, db bun.IDB, gameID uuid.UUID, players []sharedtypes.PlayerID, parTable sharedtypes.ParTable) error {
	db = r.resolveDB(db)
	if len(players) == 0 || len(parTable) == 0 {
		return nil
	}

	rows := make([]ScoreEntry, 0, len(players)*len(parTable))
	for _, p := range players {
		for _, h := range parTable {
			rows = append(rows, ScoreEntry{
				GameID:   gameID,
				PlayerID: p,
				Hole:     h.Number,
				Par:      h.Par,
			})
		}
	}

	_, err := db.NewInsert().
		Model(&rows).
		On("CONFLICT (game_id, player_id, hole) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize scorecards for game %s: %w", gameID, err)
	}
	return nil
}

// UpsertScoreEntry writes an entry, replacing strokes, par and updated_at on conflict.
func (r *Impl) UpsertScoreEntry(ctx context.Context, db bun.IDB, entry *ScoreEntry) error {
	db = r.resolveDB(db)
	_, err := db.NewInsert().
		Model(entry).
		On("CONFLICT (game_id, player_id, hole) DO UPDATE").
		Set("strokes = EXCLUDED.strokes").
		Set("par = EXCLUDED.par").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert score entry for player %s hole %d: %w", entry.PlayerID, entry.Hole, err)
	}
	return nil
}

// GetScoreEntry retrieves a single entry.
func (r *Impl) GetScoreEntry(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID sharedtypes.PlayerID, hole int) (*ScoreEntry, error) {
	db = r.resolveDB(db)
	entry := new(ScoreEntry)
	err := db.NewSelect().
		Model(entry).
		Where("se.game_id = ?", gameID).
		Where("se.player_id = ?", playerID).
		Where("se.hole = ?", hole).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get score entry: %w", err)
	}
	return entry, nil
}

// GetScoreEntries returns a game's entries ordered by player then hole.
func (r *Impl) GetScoreEntries(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]ScoreEntry, error) {
	db = r.resolveDB(db)
	var entries []ScoreEntry
	q := db.NewSelect().
		Model(&entries).
		Where("se.game_id = ?", gameID)
	if playerID != nil {
		q = q.Where("se.player_id = ?", *playerID)
	}
	if err := q.Order("se.player_id ASC", "se.hole ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to get score entries for game %s: %w", gameID, err)
	}
	return entries, nil
}
