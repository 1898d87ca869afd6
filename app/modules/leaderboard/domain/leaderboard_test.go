package leaderboarddomain

import (
	"fmt"
	"testing"
	"time"

	scoredomain "github.com/Black-And-White-Club/scorecard/app/modules/score/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

var (
	testGameID = uuid.MustParse("0b6c3c58-7c43-4c8a-9d43-5f1e3f0f1b2a")
	testTime   = time.Date(2026, 5, 2, 15, 4, 5, 0, time.UTC)
)

func agg(id sharedtypes.PlayerID, total, holes, playedPar int) scoredomain.PlayerAggregate {
	return scoredomain.PlayerAggregate{PlayerID: id, Total: total, Front9Total: total, HolesPlayed: holes, PlayedPar: playedPar}
}

func TestLiveLeaderboard(t *testing.T) {
	tests := []struct {
		name       string
		players    []sharedtypes.RosterEntry
		aggregates map[sharedtypes.PlayerID]scoredomain.PlayerAggregate
		want       []LeaderboardRow
	}{
		{
			name:       "handicap ten shooting 85",
			players:    []sharedtypes.RosterEntry{{PlayerID: "p1", Name: "Ann", Handicap: 10}},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{"p1": agg("p1", 85, 18, 72)},
			want: []LeaderboardRow{
				{PlayerID: "p1", Name: "Ann", Handicap: 10, TotalStrokes: 85, NetScore: 75, HolesPlayed: 18, Rank: 1},
			},
		},
		{
			name: "front nine only is ranked",
			players: []sharedtypes.RosterEntry{
				{PlayerID: "p1", Name: "Ann", Handicap: 4},
				{PlayerID: "p2", Name: "Bob", Handicap: 0},
			},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{
				"p1": agg("p1", 40, 9, 36),
				"p2": agg("p2", 80, 18, 72),
			},
			want: []LeaderboardRow{
				{PlayerID: "p1", Name: "Ann", Handicap: 4, TotalStrokes: 40, NetScore: 36, HolesPlayed: 9, Rank: 1},
				{PlayerID: "p2", Name: "Bob", Handicap: 0, TotalStrokes: 80, NetScore: 80, HolesPlayed: 18, Rank: 2},
			},
		},
		{
			name: "player with no scores is unranked",
			players: []sharedtypes.RosterEntry{
				{PlayerID: "p1", Name: "Ann", Handicap: 30},
				{PlayerID: "p2", Name: "Bob", Handicap: 2},
			},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{
				"p1": agg("p1", 0, 0, 0),
				"p2": agg("p2", 12, 3, 11),
			},
			want: []LeaderboardRow{
				{PlayerID: "p2", Name: "Bob", Handicap: 2, TotalStrokes: 12, NetScore: 10, HolesPlayed: 3, Rank: 1},
			},
		},
		{
			name: "ties keep roster order with sequential ranks",
			players: []sharedtypes.RosterEntry{
				{PlayerID: "p1", Name: "Ann", Handicap: 0},
				{PlayerID: "p2", Name: "Bob", Handicap: 0},
				{PlayerID: "p3", Name: "Cy", Handicap: 0},
			},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{
				"p1": agg("p1", 20, 5, 20),
				"p2": agg("p2", 18, 5, 20),
				"p3": agg("p3", 20, 5, 20),
			},
			want: []LeaderboardRow{
				{PlayerID: "p2", Name: "Bob", TotalStrokes: 18, NetScore: 18, HolesPlayed: 5, Rank: 1},
				{PlayerID: "p1", Name: "Ann", TotalStrokes: 20, NetScore: 20, HolesPlayed: 5, Rank: 2},
				{PlayerID: "p3", Name: "Cy", TotalStrokes: 20, NetScore: 20, HolesPlayed: 5, Rank: 3},
			},
		},
		{
			name:    "no players",
			players: nil,
			want:    []LeaderboardRow{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LiveLeaderboard(tt.players, tt.aggregates)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("LiveLeaderboard mismatch (-want +got):\n%s", diff)
			}
			again := LiveLeaderboard(tt.players, tt.aggregates)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("LiveLeaderboard is not deterministic:\n%s", diff)
			}
		})
	}
}

func TestBuildResults(t *testing.T) {
	tests := []struct {
		name       string
		players    []sharedtypes.RosterEntry
		aggregates map[sharedtypes.PlayerID]scoredomain.PlayerAggregate
		verify     func(t *testing.T, got []GameResult)
	}{
		{
			name: "tie for first shares position one and skips two",
			players: []sharedtypes.RosterEntry{
				{PlayerID: "p1", Handicap: 10},
				{PlayerID: "p2", Handicap: 5},
				{PlayerID: "p3", Handicap: 0},
			},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{
				"p1": agg("p1", 80, 18, 72),
				"p2": agg("p2", 75, 18, 72),
				"p3": agg("p3", 72, 18, 72),
			},
			verify: func(t *testing.T, got []GameResult) {
				want := map[sharedtypes.PlayerID]struct {
					net, pos int
					win      bool
				}{
					"p1": {70, 1, true},
					"p2": {70, 1, true},
					"p3": {72, 3, false},
				}
				for _, r := range got {
					w := want[r.PlayerID]
					if r.NetScore != w.net || r.Position != w.pos || r.IsWinner != w.win {
						t.Errorf("%s: got net %d pos %d win %v, want %+v", r.PlayerID, r.NetScore, r.Position, r.IsWinner, w)
					}
				}
			},
		},
		{
			name: "player with no scores still gets a row",
			players: []sharedtypes.RosterEntry{
				{PlayerID: "p1", Handicap: 0},
				{PlayerID: "p2", Handicap: 3},
			},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{
				"p1": agg("p1", 70, 18, 72),
			},
			verify: func(t *testing.T, got []GameResult) {
				if len(got) != 2 {
					t.Fatalf("expected 2 results, got %d", len(got))
				}
				want := GameResult{
					GameID:    testGameID,
					PlayerID:  "p2",
					NetScore:  -3,
					Handicap:  3,
					Position:  1,
					IsWinner:  true,
					CreatedAt: testTime,
				}
				if diff := cmp.Diff(want, got[0]); diff != "" {
					t.Errorf("zero-played row mismatch (-want +got):\n%s", diff)
				}
				if got[1].PlayerID != "p1" || got[1].Position != 2 || got[1].TotalPar != 72 {
					t.Errorf("unexpected second row %+v", got[1])
				}
			},
		},
		{
			name: "negative net scores rank first",
			players: []sharedtypes.RosterEntry{
				{PlayerID: "p1", Handicap: 0},
				{PlayerID: "p2", Handicap: 40},
			},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{
				"p1": agg("p1", 30, 9, 36),
				"p2": agg("p2", 35, 9, 36),
			},
			verify: func(t *testing.T, got []GameResult) {
				if got[0].PlayerID != "p2" || got[0].NetScore != -5 {
					t.Errorf("expected p2 at -5 first, got %+v", got[0])
				}
			},
		},
		{
			name: "four way sequence 1 1 3 4",
			players: []sharedtypes.RosterEntry{
				{PlayerID: "a"}, {PlayerID: "b"}, {PlayerID: "c"}, {PlayerID: "d"},
			},
			aggregates: map[sharedtypes.PlayerID]scoredomain.PlayerAggregate{
				"a": agg("a", 70, 18, 72),
				"b": agg("b", 70, 18, 72),
				"c": agg("c", 71, 18, 72),
				"d": agg("d", 75, 18, 72),
			},
			verify: func(t *testing.T, got []GameResult) {
				var positions []int
				for _, r := range got {
					positions = append(positions, r.Position)
				}
				if diff := cmp.Diff([]int{1, 1, 3, 4}, positions); diff != "" {
					t.Errorf("positions mismatch (-want +got):\n%s", diff)
				}
				if len(Winners(got)) != 2 {
					t.Errorf("expected 2 winners, got %d", len(Winners(got)))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildResults(testGameID, tt.players, tt.aggregates, testTime)
			tt.verify(t, got)
		})
	}
}

func TestBuildResults_Properties(t *testing.T) {
	faker := gofakeit.New(7)

	for i := 0; i < 300; i++ {
		n := faker.IntRange(1, 8)
		players := make([]sharedtypes.RosterEntry, n)
		aggregates := make(map[sharedtypes.PlayerID]scoredomain.PlayerAggregate, n)
		for j := range players {
			id := sharedtypes.PlayerID(fmt.Sprintf("p%d", j))
			players[j] = sharedtypes.RosterEntry{PlayerID: id, Handicap: faker.IntRange(0, 12)}
			if faker.IntRange(0, 4) > 0 {
				aggregates[id] = agg(id, faker.IntRange(60, 66), 18, 72)
			}
		}

		got := BuildResults(testGameID, players, aggregates, testTime)
		if len(got) != n {
			t.Fatalf("expected %d results, got %d", n, len(got))
		}

		winners := 0
		for a := range got {
			if got[a].IsWinner != (got[a].Position == 1) {
				t.Fatalf("winner flag disagrees with position: %+v", got[a])
			}
			if got[a].IsWinner {
				winners++
			}
			for b := range got {
				if got[a].NetScore < got[b].NetScore && got[a].Position > got[b].Position {
					t.Fatalf("monotonicity violated: %+v vs %+v", got[a], got[b])
				}
				if got[a].NetScore == got[b].NetScore && got[a].Position != got[b].Position {
					t.Fatalf("tied net scores with different positions: %+v vs %+v", got[a], got[b])
				}
			}
			// competition ranking: position is one more than the count strictly ahead
			ahead := 0
			for b := range got {
				if got[b].NetScore < got[a].NetScore {
					ahead++
				}
			}
			if got[a].Position != ahead+1 {
				t.Fatalf("expected position %d, got %d", ahead+1, got[a].Position)
			}
		}
		if winners < 1 {
			t.Fatal("expected at least one winner")
		}

		again := BuildResults(testGameID, players, aggregates, testTime)
		if diff := cmp.Diff(got, again); diff != "" {
			t.Fatalf("BuildResults is not deterministic:\n%s", diff)
		}
	}
}
