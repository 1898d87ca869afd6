package leaderboardhandlers

import (
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Handlers serves the leaderboard over HTTP and reacts to score events.
type Handlers interface {
	HandleGetLeaderboard(w http.ResponseWriter, r *http.Request)
	HandleFinalizeGame(w http.ResponseWriter, r *http.Request)
	HandleGetResults(w http.ResponseWriter, r *http.Request)
	HandleExportResults(w http.ResponseWriter, r *http.Request)
	HandleScoreChart(w http.ResponseWriter, r *http.Request)

	HandleScoreEntryUpdated(msg *message.Message) ([]*message.Message, error)
	HandleGameStarted(msg *message.Message) ([]*message.Message, error)
}
