package testutils

import (
	"context"
	"fmt"
	"testing"

	gameservice "github.com/Black-And-White-Club/scorecard/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/scorecard/app/modules/game/domain"
	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
)

// Player is a roster member created by StartedGame.
type Player struct {
	ID       sharedtypes.PlayerID
	Name     string
	Handicap int
}

// StartedGame creates a game hosted by the first of players, joins the rest
// and starts it.
func (env *TestEnvironment) StartedGame(ctx context.Context, t *testing.T, holes int, players ...Player) *gameservice.GameDetails {
	t.Helper()
	if len(players) < 2 {
		t.Fatalf("StartedGame needs at least two players, got %d", len(players))
	}

	host := players[0]
	created, err := env.Game.GameService.CreateGame(ctx, gamedomain.NewGameSpec{
		HostID:     host.ID,
		HostName:   host.Name,
		Handicap:   host.Handicap,
		CourseName: "Integration Park",
		HoleCount:  holes,
		MaxPlayers: len(players),
	})
	if err != nil {
		t.Fatalf("CreateGame: %v", err)
	}

	for _, p := range players[1:] {
		if _, err := env.Game.GameService.JoinGame(ctx, gameservice.JoinRequest{
			Code:     created.Game.Code,
			PlayerID: p.ID,
			Name:     p.Name,
			Handicap: p.Handicap,
		}); err != nil {
			t.Fatalf("JoinGame(%s): %v", p.ID, err)
		}
	}

	started, err := env.Game.GameService.StartGame(ctx, created.Game.ID, host.ID)
	if err != nil {
		t.Fatalf("StartGame: %v", err)
	}
	return started
}

// EnterScores records strokes[i] on hole i+1 for player.
func (env *TestEnvironment) EnterScores(ctx context.Context, t *testing.T, gameID uuid.UUID, player sharedtypes.PlayerID, strokes ...int) {
	t.Helper()
	for i, s := range strokes {
		if _, err := env.Score.ScoreService.UpsertScoreEntry(ctx, scoreservice.UpsertScoreRequest{
			GameID:   gameID,
			PlayerID: player,
			Hole:     i + 1,
			Strokes:  sharedtypes.IntPtr(s),
		}); err != nil {
			t.Fatalf("UpsertScoreEntry(%s, hole %d): %v", player, i+1, err)
		}
	}
}

// RandomPlayers returns n players with distinct ids and handicaps in 0..5.
func RandomPlayers(faker *gofakeit.Faker, n int) []Player {
	players := make([]Player, n)
	for i := range players {
		players[i] = Player{
			ID:       sharedtypes.PlayerID(fmt.Sprintf("player-%d-%s", i, faker.UUID())),
			Name:     faker.FirstName(),
			Handicap: faker.IntRange(0, 5),
		}
	}
	return players
}
