package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// fakeGames overrides the repository methods the adapter calls.
type fakeGames struct {
	gamedb.Repository

	game      *gamedb.Game
	players   []gamedb.GamePlayer
	err       error
	shared    bool
	plainRead bool
}

func (f *fakeGames) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error) {
	f.plainRead = true
	return f.lookup()
}

func (f *fakeGames) GetGameForShare(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error) {
	f.shared = true
	return f.lookup()
}

func (f *fakeGames) GetPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]gamedb.GamePlayer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.players, nil
}

func (f *fakeGames) lookup() (*gamedb.Game, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.game == nil {
		return nil, gamedb.ErrNotFound
	}
	return f.game, nil
}

// txStub stands in for a transaction handle; the fake never touches it.
type txStub struct{ bun.IDB }

func TestGameLookupAdapter_GetGame(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()
	game := &gamedb.Game{
		ID:         gameID,
		Code:       "ABC123",
		HostID:     "host",
		HoleCount:  2,
		Pars:       []int{4, 3},
		MaxPlayers: 4,
		Status:     sharedtypes.GameStatusInProgress,
	}

	t.Run("nil db reads without lock", func(t *testing.T) {
		games := &fakeGames{game: game}
		info, err := NewGameLookupAdapter(games).GetGame(ctx, nil, gameID)
		require.NoError(t, err)
		assert.True(t, games.plainRead)
		assert.False(t, games.shared)
		assert.Equal(t, gameID, info.ID)
		assert.Equal(t, sharedtypes.NewParTable([]int{4, 3}), info.ParTable)
	})

	t.Run("transaction reads under share lock", func(t *testing.T) {
		games := &fakeGames{game: game}
		info, err := NewGameLookupAdapter(games).GetGame(ctx, txStub{}, gameID)
		require.NoError(t, err)
		assert.True(t, games.shared)
		assert.False(t, games.plainRead)
		assert.Equal(t, sharedtypes.GameStatusInProgress, info.Status)
	})

	t.Run("not found maps to service error", func(t *testing.T) {
		_, err := NewGameLookupAdapter(&fakeGames{}).GetGame(ctx, nil, gameID)
		assert.ErrorIs(t, err, scoreservice.ErrGameNotFound)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewGameLookupAdapter(&fakeGames{err: boom}).GetGame(ctx, txStub{}, gameID)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, scoreservice.ErrGameNotFound)
	})
}

func TestGameLookupAdapter_GetRoster(t *testing.T) {
	ctx := context.Background()
	gameID := uuid.New()
	joined := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	games := &fakeGames{players: []gamedb.GamePlayer{
		{GameID: gameID, PlayerID: "alice", Name: "Alice", Handicap: 2, JoinedAt: joined},
		{GameID: gameID, PlayerID: "bob", Name: "Bob", JoinedAt: joined.Add(time.Minute)},
	}}

	roster, err := NewGameLookupAdapter(games).GetRoster(ctx, nil, gameID)
	require.NoError(t, err)
	assert.Equal(t, []sharedtypes.RosterEntry{
		{PlayerID: "alice", Name: "Alice", Handicap: 2, JoinedAt: joined},
		{PlayerID: "bob", Name: "Bob", JoinedAt: joined.Add(time.Minute)},
	}, roster)

	_, err = NewGameLookupAdapter(&fakeGames{err: errors.New("db down")}).GetRoster(ctx, nil, gameID)
	assert.Error(t, err)
}
