package leaderboarddomain

import (
	"cmp"
	"slices"
	"time"

	scoredomain "github.com/Black-And-White-Club/scorecard/app/modules/score/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
)

// LeaderboardRow is one ranked player in the live leaderboard.
type LeaderboardRow struct {
	PlayerID     sharedtypes.PlayerID `json:"player_id"`
	Name         string               `json:"name"`
	Handicap     int                  `json:"handicap"`
	TotalStrokes int                  `json:"total_strokes"`
	NetScore     int                  `json:"net_score"`
	HolesPlayed  int                  `json:"holes_played"`
	Rank         int                  `json:"rank"`
}

// GameResult is the immutable per-player outcome of a completed game.
type GameResult struct {
	GameID       uuid.UUID            `json:"game_id"`
	PlayerID     sharedtypes.PlayerID `json:"player_id"`
	Name         string               `json:"name"`
	TotalStrokes int                  `json:"total_strokes"`
	TotalPar     int                  `json:"total_par"`
	NetScore     int                  `json:"net_score"`
	Handicap     int                  `json:"handicap"`
	HolesPlayed  int                  `json:"holes_played"`
	Position     int                  `json:"position"`
	IsWinner     bool                 `json:"is_winner"`
	CreatedAt    time.Time            `json:"created_at"`
}

// LiveLeaderboard ranks the players that have entered at least one score.
//
// Players whose total is zero are unranked and left out. The rest are sorted
// by net score ascending; ties keep roster order and ranks are positions in
// that order.
func LiveLeaderboard(players []sharedtypes.RosterEntry, aggregates map[sharedtypes.PlayerID]scoredomain.PlayerAggregate) []LeaderboardRow {
	rows := make([]LeaderboardRow, 0, len(players))
	for _, p := range players {
		agg := aggregates[p.PlayerID]
		if agg.Total == 0 {
			continue
		}
		rows = append(rows, LeaderboardRow{
			PlayerID:     p.PlayerID,
			Name:         p.Name,
			Handicap:     p.Handicap,
			TotalStrokes: agg.Total,
			NetScore:     agg.Total - p.Handicap,
			HolesPlayed:  agg.HolesPlayed,
		})
	}

	slices.SortStableFunc(rows, func(a, b LeaderboardRow) int {
		return cmp.Compare(a.NetScore, b.NetScore)
	})

	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows
}

// BuildResults produces one result per roster player, including players who
// never scored, and assigns positions over the whole set at once.
//
// Rows are sorted by net score ascending with roster order breaking ties for
// presentation. Positions use competition ranking: tied net scores share a
// position and the next distinct score takes its index in the sorted list
// (1, 1, 3). Every row at position 1 is a winner.
func BuildResults(gameID uuid.UUID, players []sharedtypes.RosterEntry, aggregates map[sharedtypes.PlayerID]scoredomain.PlayerAggregate, createdAt time.Time) []GameResult {
	out := make([]GameResult, 0, len(players))
	for _, p := range players {
		agg := aggregates[p.PlayerID]
		out = append(out, GameResult{
			GameID:       gameID,
			PlayerID:     p.PlayerID,
			Name:         p.Name,
			TotalStrokes: agg.Total,
			TotalPar:     agg.PlayedPar,
			NetScore:     agg.Total - p.Handicap,
			Handicap:     p.Handicap,
			HolesPlayed:  agg.HolesPlayed,
			CreatedAt:    createdAt,
		})
	}

	slices.SortStableFunc(out, func(a, b GameResult) int {
		return cmp.Compare(a.NetScore, b.NetScore)
	})

	for i := range out {
		if i > 0 && out[i].NetScore == out[i-1].NetScore {
			out[i].Position = out[i-1].Position
		} else {
			out[i].Position = i + 1
		}
		out[i].IsWinner = out[i].Position == 1
	}
	return out
}

// Winners returns the rows marked as winners.
func Winners(results []GameResult) []GameResult {
	var out []GameResult
	for _, r := range results {
		if r.IsWinner {
			out = append(out, r)
		}
	}
	return out
}
