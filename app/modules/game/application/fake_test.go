package gameservice

import (
	"context"
	"sync"
	"time"

	gamedb "github.com/Black-And-White-Club/scorecard/app/modules/game/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Game Repo
// ------------------------

type FakeGameRepo struct {
	trace []string

	CreateGameFunc         func(ctx context.Context, db bun.IDB, game *gamedb.Game) error
	GetGameFunc            func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error)
	GetGameForUpdateFunc   func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error)
	GetGameForShareFunc    func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error)
	GetGameByCodeFunc      func(ctx context.Context, db bun.IDB, code string) (*gamedb.Game, error)
	UpdateGameStatusFunc   func(ctx context.Context, db bun.IDB, gameID uuid.UUID, from, to sharedtypes.GameStatus, at time.Time) error
	AddPlayerFunc          func(ctx context.Context, db bun.IDB, player *gamedb.GamePlayer) error
	GetPlayersFunc         func(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]gamedb.GamePlayer, error)
	CountPlayersFunc       func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (int, error)
	ListGamesForPlayerFunc func(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, limit int) ([]gamedb.Game, error)
}

func NewFakeGameRepo() *FakeGameRepo {
	return &FakeGameRepo{trace: []string{}}
}

func (f *FakeGameRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameRepo) CreateGame(ctx context.Context, db bun.IDB, game *gamedb.Game) error {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, db, game)
	}
	return nil
}

func (f *FakeGameRepo) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, gameID)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) GetGameForUpdate(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error) {
	f.record("GetGameForUpdate")
	if f.GetGameForUpdateFunc != nil {
		return f.GetGameForUpdateFunc(ctx, db, gameID)
	}
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, gameID)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) GetGameForShare(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*gamedb.Game, error) {
	f.record("GetGameForShare")
	if f.GetGameForShareFunc != nil {
		return f.GetGameForShareFunc(ctx, db, gameID)
	}
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, gameID)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) GetGameByCode(ctx context.Context, db bun.IDB, code string) (*gamedb.Game, error) {
	f.record("GetGameByCode")
	if f.GetGameByCodeFunc != nil {
		return f.GetGameByCodeFunc(ctx, db, code)
	}
	return nil, gamedb.ErrNotFound
}

func (f *FakeGameRepo) UpdateGameStatus(ctx context.Context, db bun.IDB, gameID uuid.UUID, from, to sharedtypes.GameStatus, at time.Time) error {
	f.record("UpdateGameStatus")
	if f.UpdateGameStatusFunc != nil {
		return f.UpdateGameStatusFunc(ctx, db, gameID, from, to, at)
	}
	return nil
}

func (f *FakeGameRepo) AddPlayer(ctx context.Context, db bun.IDB, player *gamedb.GamePlayer) error {
	f.record("AddPlayer")
	if f.AddPlayerFunc != nil {
		return f.AddPlayerFunc(ctx, db, player)
	}
	return nil
}

func (f *FakeGameRepo) GetPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]gamedb.GamePlayer, error) {
	f.record("GetPlayers")
	if f.GetPlayersFunc != nil {
		return f.GetPlayersFunc(ctx, db, gameID)
	}
	return nil, nil
}

func (f *FakeGameRepo) CountPlayers(ctx context.Context, db bun.IDB, gameID uuid.UUID) (int, error) {
	f.record("CountPlayers")
	if f.CountPlayersFunc != nil {
		return f.CountPlayersFunc(ctx, db, gameID)
	}
	return 0, nil
}

func (f *FakeGameRepo) ListGamesForPlayer(ctx context.Context, db bun.IDB, playerID sharedtypes.PlayerID, limit int) ([]gamedb.Game, error) {
	f.record("ListGamesForPlayer")
	if f.ListGamesForPlayerFunc != nil {
		return f.ListGamesForPlayerFunc(ctx, db, playerID, limit)
	}
	return nil, nil
}

var _ gamedb.Repository = (*FakeGameRepo)(nil)

// ------------------------
// Fake Scorecard Initializer
// ------------------------

type FakeScorecards struct {
	calls   int
	players []sharedtypes.PlayerID
	table   sharedtypes.ParTable

	InitializeScorecardsFunc func(ctx context.Context, db bun.IDB, gameID uuid.UUID, players []sharedtypes.PlayerID, parTable sharedtypes.ParTable) error
}

func (f *FakeScorecards) InitializeScorecards(ctx context.Context, db bun.IDB, gameID uuid.UUID, players []sharedtypes.PlayerID, parTable sharedtypes.ParTable) error {
	f.calls++
	f.players = players
	f.table = parTable
	if f.InitializeScorecardsFunc != nil {
		return f.InitializeScorecardsFunc(ctx, db, gameID, players, parTable)
	}
	return nil
}

var _ ScorecardInitializer = (*FakeScorecards)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
	err       error
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{published: map[string][]*message.Message{}}
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published[topic] = append(p.published[topic], messages...)
	return nil
}

func (p *FakePublisher) Close() error { return nil }

func (p *FakePublisher) Messages(topic string) []*message.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.published[topic]
}

var _ message.Publisher = (*FakePublisher)(nil)
