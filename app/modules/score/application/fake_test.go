package scoreservice

import (
	"context"
	"sync"

	scoredb "github.com/Black-And-White-Club/scorecard/app/modules/score/infrastructure/repositories"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Score Repo
// ------------------------

// FakeScoreRepository provides a programmable stub for the scoredb.Repository interface.
type FakeScoreRepository struct {
	trace []string

	InitializeScorecardsFunc func(ctx context.Context, db bun.IDB, gameID uuid.UUID, players []sharedtypes.PlayerID, parTable sharedtypes.ParTable) error
	UpsertScoreEntryFunc     func(ctx context.Context, db bun.IDB, entry *scoredb.ScoreEntry) error
	GetScoreEntryFunc        func(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID sharedtypes.PlayerID, hole int) (*scoredb.ScoreEntry, error)
	GetScoreEntriesFunc      func(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]scoredb.ScoreEntry, error)

	LastUpsert *scoredb.ScoreEntry
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeScoreRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeScoreRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepository) InitializeScorecards(ctx context.Context, db bun.IDB, gameID uuid.UUID, players []sharedtypes.PlayerID, parTable sharedtypes.ParTable) error {
	f.record("InitializeScorecards")
	if f.InitializeScorecardsFunc != nil {
		return f.InitializeScorecardsFunc(ctx, db, gameID, players, parTable)
	}
	return nil
}

func (f *FakeScoreRepository) UpsertScoreEntry(ctx context.Context, db bun.IDB, entry *scoredb.ScoreEntry) error {
	f.record("UpsertScoreEntry")
	f.LastUpsert = entry
	if f.UpsertScoreEntryFunc != nil {
		return f.UpsertScoreEntryFunc(ctx, db, entry)
	}
	return nil
}

func (f *FakeScoreRepository) GetScoreEntry(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID sharedtypes.PlayerID, hole int) (*scoredb.ScoreEntry, error) {
	f.record("GetScoreEntry")
	if f.GetScoreEntryFunc != nil {
		return f.GetScoreEntryFunc(ctx, db, gameID, playerID, hole)
	}
	return nil, scoredb.ErrNotFound
}

func (f *FakeScoreRepository) GetScoreEntries(ctx context.Context, db bun.IDB, gameID uuid.UUID, playerID *sharedtypes.PlayerID) ([]scoredb.ScoreEntry, error) {
	f.record("GetScoreEntries")
	if f.GetScoreEntriesFunc != nil {
		return f.GetScoreEntriesFunc(ctx, db, gameID, playerID)
	}
	return []scoredb.ScoreEntry{}, nil
}

var _ scoredb.Repository = (*FakeScoreRepository)(nil)

// ------------------------
// Fake Game Lookup
// ------------------------

type FakeGameLookup struct {
	Game   *sharedtypes.GameInfo
	Roster []sharedtypes.RosterEntry
	Err    error
}

func (f *FakeGameLookup) GetGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) (*sharedtypes.GameInfo, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.Game == nil || f.Game.ID != gameID {
		return nil, ErrGameNotFound
	}
	g := *f.Game
	return &g, nil
}

func (f *FakeGameLookup) GetRoster(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]sharedtypes.RosterEntry, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Roster, nil
}

var _ GameLookup = (*FakeGameLookup)(nil)

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
