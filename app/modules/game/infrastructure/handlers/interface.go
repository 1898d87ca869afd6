package gamehandlers

import "net/http"

// Handlers is the HTTP surface of the game lobby.
type Handlers interface {
	HandleCreateGame(w http.ResponseWriter, r *http.Request)
	HandleGetGameByCode(w http.ResponseWriter, r *http.Request)
	HandleJoinGame(w http.ResponseWriter, r *http.Request)
	HandleGetGame(w http.ResponseWriter, r *http.Request)
	HandleStartGame(w http.ResponseWriter, r *http.Request)
	HandleListMyGames(w http.ResponseWriter, r *http.Request)
}
