package leaderboarddb

import (
	"time"

	leaderboarddomain "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// GameResult is one player's final standing, written once when the game is finalized.
type GameResult struct {
	bun.BaseModel `bun:"table:game_results,alias:gr"`

	GameID       uuid.UUID            `bun:"game_id,pk,type:uuid"`
	PlayerID     sharedtypes.PlayerID `bun:"player_id,pk"`
	Name         string               `bun:"name,notnull"`
	TotalStrokes int                  `bun:"total_strokes,notnull"`
	TotalPar     int                  `bun:"total_par,notnull"`
	NetScore     int                  `bun:"net_score,notnull"`
	Handicap     int                  `bun:"handicap,notnull"`
	HolesPlayed  int                  `bun:"holes_played,notnull"`
	Position     int                  `bun:"position,notnull"`
	IsWinner     bool                 `bun:"is_winner,notnull"`
	// Ordinal keeps the presentation order among tied positions.
	Ordinal   int       `bun:"ordinal,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// FromDomain converts ordered domain results into rows, recording their order.
func FromDomain(results []leaderboarddomain.GameResult) []GameResult {
	rows := make([]GameResult, len(results))
	for i, r := range results {
		rows[i] = GameResult{
			GameID:       r.GameID,
			PlayerID:     r.PlayerID,
			Name:         r.Name,
			TotalStrokes: r.TotalStrokes,
			TotalPar:     r.TotalPar,
			NetScore:     r.NetScore,
			Handicap:     r.Handicap,
			HolesPlayed:  r.HolesPlayed,
			Position:     r.Position,
			IsWinner:     r.IsWinner,
			Ordinal:      i,
			CreatedAt:    r.CreatedAt,
		}
	}
	return rows
}

// ToDomain converts rows back into domain results.
func ToDomain(rows []GameResult) []leaderboarddomain.GameResult {
	out := make([]leaderboarddomain.GameResult, len(rows))
	for i, r := range rows {
		out[i] = leaderboarddomain.GameResult{
			GameID:       r.GameID,
			PlayerID:     r.PlayerID,
			Name:         r.Name,
			TotalStrokes: r.TotalStrokes,
			TotalPar:     r.TotalPar,
			NetScore:     r.NetScore,
			Handicap:     r.Handicap,
			HolesPlayed:  r.HolesPlayed,
			Position:     r.Position,
			IsWinner:     r.IsWinner,
			CreatedAt:    r.CreatedAt,
		}
	}
	return out
}
