package scoredb

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ScoreEntry is one player's strokes on one hole. Strokes is NULL until played.
type ScoreEntry struct {
	bun.BaseModel `bun:"table:score_entries,alias:se"`

	GameID    uuid.UUID            `bun:"game_id,pk,type:uuid"`
	PlayerID  sharedtypes.PlayerID `bun:"player_id,pk"`
	Hole      int                  `bun:"hole,pk"`
	Strokes   *int                 `bun:"strokes"`
	Par       int                  `bun:"par,notnull"`
	UpdatedAt time.Time            `bun:"updated_at,notnull,default:current_timestamp"`
}

// ToShared converts the row to the shared score entry type.
func (e ScoreEntry) ToShared() sharedtypes.ScoreEntry {
	return sharedtypes.ScoreEntry{
		GameID:    e.GameID,
		PlayerID:  e.PlayerID,
		Hole:      e.Hole,
		Strokes:   e.Strokes,
		Par:       e.Par,
		UpdatedAt: e.UpdatedAt,
	}
}

// ToSharedEntries converts a slice of rows.
func ToSharedEntries(rows []ScoreEntry) []sharedtypes.ScoreEntry {
	out := make([]sharedtypes.ScoreEntry, len(rows))
	for i, r := range rows {
		out[i] = r.ToShared()
	}
	return out
}
