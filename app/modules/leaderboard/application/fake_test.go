package leaderboardservice

import (
	"context"
	"sync"
	"time"

	leaderboarddb "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Leaderboard Repository
// ------------------------

type FakeRepository struct {
	trace    []string
	Inserted []leaderboarddb.GameResult

	InsertGameResultsFunc func(ctx context.Context, db bun.IDB, rows []leaderboarddb.GameResult) error
	GetGameResultsFunc    func(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]leaderboarddb.GameResult, error)
	HasGameResultsFunc    func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (bool, error)
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) InsertGameResults(ctx context.Context, db bun.IDB, rows []leaderboarddb.GameResult) error {
	f.record("InsertGameResults")
	if f.InsertGameResultsFunc != nil {
		return f.InsertGameResultsFunc(ctx, db, rows)
	}
	f.Inserted = append(f.Inserted, rows...)
	return nil
}

func (f *FakeRepository) GetGameResults(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]leaderboarddb.GameResult, error) {
	f.record("GetGameResults")
	if f.GetGameResultsFunc != nil {
		return f.GetGameResultsFunc(ctx, db, gameID)
	}
	return f.Inserted, nil
}

func (f *FakeRepository) HasGameResults(ctx context.Context, db bun.IDB, gameID uuid.UUID) (bool, error) {
	f.record("HasGameResults")
	if f.HasGameResultsFunc != nil {
		return f.HasGameResultsFunc(ctx, db, gameID)
	}
	return len(f.Inserted) > 0, nil
}

var _ leaderboarddb.Repository = (*FakeRepository)(nil)

// ------------------------
// Fake Game Store
// ------------------------

type FakeGameStore struct {
	trace []string

	Game   *sharedtypes.GameInfo
	Roster []sharedtypes.RosterEntry

	GetGameFunc      func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error)
	LockGameFunc     func(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error)
	GetRosterFunc    func(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error)
	CompleteGameFunc func(ctx context.Context, db bun.IDB, gameID uuid.UUID, at time.Time) error
}

func (f *FakeGameStore) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGameStore) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameStore) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, db, gameID)
	}
	if f.Game == nil {
		return nil, ErrGameNotFound
	}
	g := *f.Game
	return &g, nil
}

func (f *FakeGameStore) LockGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error) {
	f.record("LockGame")
	if f.LockGameFunc != nil {
		return f.LockGameFunc(ctx, db, gameID)
	}
	if f.Game == nil {
		return nil, ErrGameNotFound
	}
	g := *f.Game
	return &g, nil
}

func (f *FakeGameStore) GetRoster(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error) {
	f.record("GetRoster")
	if f.GetRosterFunc != nil {
		return f.GetRosterFunc(ctx, db, gameID)
	}
	return f.Roster, nil
}

// CompleteGame applies the transition to Game so later reads observe it.
func (f *FakeGameStore) CompleteGame(ctx context.Context, db bun.IDB, gameID uuid.UUID, at time.Time) error {
	f.record("CompleteGame")
	if f.CompleteGameFunc != nil {
		return f.CompleteGameFunc(ctx, db, gameID, at)
	}
	if f.Game == nil || f.Game.Status != sharedtypes.GameStatusInProgress {
		return ErrGameNotInProgress
	}
	f.Game.Status = sharedtypes.GameStatusCompleted
	f.Game.CompletedAt = &at
	return nil
}

var _ GameStore = (*FakeGameStore)(nil)

// ------------------------
// Fake Score Reader
// ------------------------

type FakeScoreReader struct {
	Entries []sharedtypes.ScoreEntry
	Err     error
}

func (f *FakeScoreReader) GetScoreEntries(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.ScoreEntry, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Entries, nil
}

var _ ScoreReader = (*FakeScoreReader)(nil)

// ------------------------
// Fake Publisher
// ------------------------

type FakePublisher struct {
	mu        sync.Mutex
	published map[string][]*message.Message
}

func NewFakePublisher() *FakePublisher {
	return &FakePublisher{published: map[string][]*message.Message{}}
}

func (p *FakePublisher) Publish(topic string, messages ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
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
