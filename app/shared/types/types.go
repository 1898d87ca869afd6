package sharedtypes

import (
	"time"

	"github.com/google/uuid"
)

// PlayerID is the opaque identifier issued by the identity provider.
type PlayerID string

func (p PlayerID) String() string { return string(p) }

// GameStatus is the lifecycle state of a game.
type GameStatus string

const (
	GameStatusWaiting    GameStatus = "waiting"
	GameStatusInProgress GameStatus = "in-progress"
	GameStatusCompleted  GameStatus = "completed"
)

func (s GameStatus) String() string { return string(s) }

// Hole is a single hole of the configured round.
type Hole struct {
	Number int `json:"number"`
	Par    int `json:"par"`
}

// ParTable is the ordered hole list for a game, holes 1..N.
type ParTable []Hole

// TotalPar sums par over every hole.
func (p ParTable) TotalPar() int {
	total := 0
	for _, h := range p {
		total += h.Par
	}
	return total
}

// Par returns the par for a hole number, or false when the hole is outside the table.
func (p ParTable) Par(hole int) (int, bool) {
	if hole < 1 || hole > len(p) {
		return 0, false
	}
	return p[hole-1].Par, true
}

// NewParTable builds a table from a per-hole par list.
func NewParTable(pars []int) ParTable {
	table := make(ParTable, len(pars))
	for i, par := range pars {
		table[i] = Hole{Number: i + 1, Par: par}
	}
	return table
}

// ScoreEntry is one player's strokes on one hole. Strokes is nil until played.
type ScoreEntry struct {
	GameID    uuid.UUID `json:"game_id"`
	PlayerID  PlayerID  `json:"player_id"`
	Hole      int       `json:"hole"`
	Strokes   *int      `json:"strokes"`
	Par       int       `json:"par"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Played reports whether strokes have been entered.
func (e ScoreEntry) Played() bool { return e.Strokes != nil }

// RosterEntry is a player in a game's roster.
type RosterEntry struct {
	PlayerID PlayerID  `json:"player_id"`
	Name     string    `json:"name"`
	Handicap int       `json:"handicap"`
	JoinedAt time.Time `json:"joined_at"`
}

// GameInfo is the read model for a game.
type GameInfo struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	HostID      PlayerID   `json:"host_id"`
	CourseName  string     `json:"course_name"`
	HoleCount   int        `json:"hole_count"`
	MaxPlayers  int        `json:"max_players"`
	Status      GameStatus `json:"status"`
	ParTable    ParTable   `json:"par_table"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }
