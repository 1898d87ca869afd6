package gamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
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

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

// CreateGame inserts a new game.
func (r *Impl) CreateGame(ctx context.Context, db bun.IDB, game *Game) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(game).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to create game: %w", err)
	}
	return nil
}

// GetGame retrieves a game by id.
func (r *Impl) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("g.id = ?", gameID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game: %w", err)
	}
	return game, nil
}

// GetGameForUpdate retrieves a game with a row lock. Only meaningful inside a transaction.
func (r *Impl) GetGameForUpdate(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("g.id = ?", gameID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock game: %w", err)
	}
	return game, nil
}

// GetGameForShare retrieves a game with a shared row lock. Only meaningful inside a transaction.
func (r *Impl) GetGameForShare(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("g.id = ?", gameID).
		For("SHARE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to share-lock game: %w", err)
	}
	return game, nil
}

// GetGameByCode retrieves a game by its join code.
func (r *Impl) GetGameByCode(ctx context.Context, db bun.IDB, code string) (*Game, error) {
	db = r.resolveDB(db)
	game := new(Game)
	err := db.NewSelect().
		Model(game).
		Where("g.code = ?", code).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get game by code: %w", err)
	}
	return game, nil
}

// UpdateGameStatus performs a compare-and-set on the game status.
func (r *Impl) UpdateGameStatus(ctx context.Context, db bun.IDB, gameID uuid.UUID, from, to sharedtypes.GameStatus, at time.Time) error {
	db = r.resolveDB(db)
	q := db.NewUpdate().
		Model((*Game)(nil)).
		Set("status = ?", to).
		Where("id = ?", gameID).
		Where("status = ?", from)

	switch to {
	case sharedtypes.GameStatusInProgress:
		q = q.Set("started_at = ?", at)
	case sharedtypes.GameStatusCompleted:
		q = q.Set("completed_at = ?", at)
	}

	result, err := q.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update game status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// AddPlayer adds a player to the roster.
func (r *Impl) AddPlayer(ctx context.Context, db bun.IDB, player *GamePlayer) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(player).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePlayer
		}
		return fmt.Errorf("failed to add player: %w", err)
	}
	return nil
}

// GetPlayers returns the roster in join order.
func (r *Impl) GetPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]GamePlayer, error) {
	db = r.resolveDB(db)
	var players []GamePlayer
	err := db.NewSelect().
		Model(&players).
		Where("gp.game_id = ?", gameID).
		Order("gp.joined_at ASC", "gp.player_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	return players, nil
}

// CountPlayers returns the roster size.
func (r *Impl) CountPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) (int, error) {
	db = r.resolveDB(db)
	n, err := db.NewSelect().
		Model((*GamePlayer)(nil)).
		Where("gp.game_id = ?", gameID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return n, nil
}

// ListGamesForPlayer returns the games a player has joined, newest first.
func (r *Impl) ListGamesForPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, limit int) ([]Game, error) {
	db = r.resolveDB(db)
	var games []Game
	q := db.NewSelect().
		Model(&games).
		Join("JOIN game_players AS gp ON gp.game_id = g.id").
		Where("gp.player_id = ?", playerID).
		Order("g.created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list games for player: %w", err)
	}
	return games, nil
}
