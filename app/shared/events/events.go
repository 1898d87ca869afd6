// Package events defines the topics and payloads exchanged over the event bus.
package events

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/google/uuid"
)

const (
	// GameStartedV1 is published when a game moves to in-progress.
	GameStartedV1 = "game.started.v1"
	// ScoreEntryUpdatedV1 is published after every score upsert.
	ScoreEntryUpdatedV1 = "score.entry.updated.v1"
	// LeaderboardUpdatedV1 carries a freshly computed live leaderboard.
	LeaderboardUpdatedV1 = "leaderboard.updated.v1"
	// GameFinalizedV1 carries the immutable results of a completed game.
	GameFinalizedV1 = "game.finalized.v1"
)

type GameStartedPayloadV1 struct {
	GameID    uuid.UUID              `json:"game_id"`
	Code      string                 `json:"code"`
	Players   []sharedtypes.PlayerID `json:"players"`
	HoleCount int                    `json:"hole_count"`
	StartedAt time.Time              `json:"started_at"`
}

type ScoreEntryUpdatedPayloadV1 struct {
	GameID   uuid.UUID            `json:"game_id"`
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Hole     int                  `json:"hole"`
	Strokes  *int                 `json:"strokes"`
	Par      int                  `json:"par"`
}

type LeaderboardRowV1 struct {
	PlayerID     sharedtypes.PlayerID `json:"player_id"`
	Name         string               `json:"name"`
	TotalStrokes int                  `json:"total_strokes"`
	NetScore     int                  `json:"net_score"`
	HolesPlayed  int                  `json:"holes_played"`
	Rank         int                  `json:"rank"`
}

type LeaderboardUpdatedPayloadV1 struct {
	GameID     uuid.UUID          `json:"game_id"`
	Rows       []LeaderboardRowV1 `json:"rows"`
	ComputedAt time.Time          `json:"computed_at"`
}

type GameResultV1 struct {
	PlayerID     sharedtypes.PlayerID `json:"player_id"`
	TotalStrokes int                  `json:"total_strokes"`
	TotalPar     int                  `json:"total_par"`
	NetScore     int                  `json:"net_score"`
	Handicap     int                  `json:"handicap"`
	Position     int                  `json:"position"`
	IsWinner     bool                 `json:"is_winner"`
}

type GameFinalizedPayloadV1 struct {
	GameID      uuid.UUID      `json:"game_id"`
	Results     []GameResultV1 `json:"results"`
	CompletedAt time.Time      `json:"completed_at"`
}
