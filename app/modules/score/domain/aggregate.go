package scoredomain

import (
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
)

const (
	// FrontNineHoles is the number of holes counted toward the front nine.
	FrontNineHoles = 9
	// FrontNineParReference is the fixed par shown beside a full front-nine total.
	FrontNineParReference = 36
)

// PlayerAggregate is the display-ready summary of one player's scorecard.
// It is derived from entries and never stored.
type PlayerAggregate struct {
	PlayerID    sharedtypes.PlayerID `json:"player_id"`
	Front9Total int                  `json:"front9_total"`
	Back9Total  int                  `json:"back9_total"`
	Total       int                  `json:"total"`
	HolesPlayed int                  `json:"holes_played"`
	// PlayedPar is the par summed over played holes only.
	PlayedPar int `json:"played_par"`
	Front9Par int `json:"front9_par"`
	Back9Par  int `json:"back9_par"`
	// PerHoleDiff[i] is strokes minus par for hole i+1, nil while unplayed.
	PerHoleDiff []*int `json:"per_hole_diff"`
}

// ToPar is the played strokes relative to the par of the played holes.
func (a PlayerAggregate) ToPar() int {
	return a.Total - a.PlayedPar
}

// Aggregate folds one player's entries over the par table. Entries for holes
// outside the table are ignored; missing holes count as unplayed. Values are
// taken as stored, without range checks.
func Aggregate(playerID sharedtypes.PlayerID, entries []sharedtypes.ScoreEntry, parTable sharedtypes.ParTable) PlayerAggregate {
	agg := PlayerAggregate{
		PlayerID:    playerID,
		PerHoleDiff: make([]*int, len(parTable)),
	}

	byHole := make(map[int]sharedtypes.ScoreEntry, len(entries))
	for _, e := range entries {
		if e.PlayerID != "" && e.PlayerID != playerID {
			continue
		}
		byHole[e.Hole] = e
	}

	for i, hole := range parTable {
		e, ok := byHole[hole.Number]
		if !ok || e.Strokes == nil {
			continue
		}
		strokes := *e.Strokes
		par := e.Par
		if par == 0 {
			par = hole.Par
		}

		agg.HolesPlayed++
		agg.PlayedPar += par
		diff := strokes - par
		agg.PerHoleDiff[i] = &diff

		if hole.Number <= FrontNineHoles {
			agg.Front9Total += strokes
			agg.Front9Par += par
		} else {
			agg.Back9Total += strokes
			agg.Back9Par += par
		}
	}

	agg.Total = agg.Front9Total + agg.Back9Total
	return agg
}

// AggregateAll groups entries by player and aggregates each roster player.
// Every player in roster gets an aggregate, played or not.
func AggregateAll(roster []sharedtypes.RosterEntry, entries []sharedtypes.ScoreEntry, parTable sharedtypes.ParTable) map[sharedtypes.PlayerID]PlayerAggregate {
	grouped := make(map[sharedtypes.PlayerID][]sharedtypes.ScoreEntry, len(roster))
	for _, e := range entries {
		grouped[e.PlayerID] = append(grouped[e.PlayerID], e)
	}

	out := make(map[sharedtypes.PlayerID]PlayerAggregate, len(roster))
	for _, p := range roster {
		out[p.PlayerID] = Aggregate(p.PlayerID, grouped[p.PlayerID], parTable)
	}
	return out
}
