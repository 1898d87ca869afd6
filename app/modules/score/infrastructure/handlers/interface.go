package scorehandlers

import "net/http"

// Handlers is the HTTP surface of score entry.
type Handlers interface {
	HandleUpsertScore(w http.ResponseWriter, r *http.Request)
	HandleGetScores(w http.ResponseWriter, r *http.Request)
	HandleGetScorecard(w http.ResponseWriter, r *http.Request)
}
