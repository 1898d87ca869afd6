package gamedb

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Game is a row in the games table.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID          uuid.UUID              `bun:"id,pk,type:uuid"`
	Code        string                 `bun:"code,notnull,unique"`
	HostID      sharedtypes.PlayerID   `bun:"host_id,notnull"`
	CourseName  string                 `bun:"course_name,notnull"`
	HoleCount   int                    `bun:"hole_count,notnull"`
	Pars        []int                  `bun:"pars,type:jsonb,notnull"`
	MaxPlayers  int                    `bun:"max_players,notnull"`
	Status      sharedtypes.GameStatus `bun:"status,notnull"`
	CreatedAt   time.Time              `bun:"created_at,notnull,default:current_timestamp"`
	StartedAt   *time.Time             `bun:"started_at"`
	CompletedAt *time.Time             `bun:"completed_at"`
}

// ParTable returns the game's hole table.
func (g *Game) ParTable() sharedtypes.ParTable {
	return sharedtypes.NewParTable(g.Pars)
}

// Info converts the row to its read model.
func (g *Game) Info() *sharedtypes.GameInfo {
	return &sharedtypes.GameInfo{
		ID:          g.ID,
		Code:        g.Code,
		HostID:      g.HostID,
		CourseName:  g.CourseName,
		HoleCount:   g.HoleCount,
		MaxPlayers:  g.MaxPlayers,
		Status:      g.Status,
		ParTable:    g.ParTable(),
		CreatedAt:   g.CreatedAt,
		StartedAt:   g.StartedAt,
		CompletedAt: g.CompletedAt,
	}
}

// GamePlayer is a row in the game_players table.
type GamePlayer struct {
	bun.BaseModel `bun:"table:game_players,alias:gp"`

	GameID   uuid.UUID            `bun:"game_id,pk,type:uuid"`
	PlayerID sharedtypes.PlayerID `bun:"player_id,pk"`
	Name     string               `bun:"name,notnull"`
	Handicap int                  `bun:"handicap,notnull"`
	JoinedAt time.Time            `bun:"joined_at,notnull,default:current_timestamp"`
}

// RosterEntry converts the row to the shared roster type.
func (p GamePlayer) RosterEntry() sharedtypes.RosterEntry {
	return sharedtypes.RosterEntry{
		PlayerID: p.PlayerID,
		Name:     p.Name,
		Handicap: p.Handicap,
		JoinedAt: p.JoinedAt,
	}
}
