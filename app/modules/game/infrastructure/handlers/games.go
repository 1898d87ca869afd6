package gamehandlers

import (
	"net/http"

	gameservice "github.com/Black-And-White-Club/scorecard/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/scorecard/app/modules/game/domain"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
)

// CreateGameRequest is the body of POST /games.
type CreateGameRequest struct {
	Name       string `json:"name"`
	Handicap   int    `json:"handicap"`
	CourseName string `json:"course_name"`
	HoleCount  int    `json:"hole_count"`
	MaxPlayers int    `json:"max_players"`
	Pars       []int  `json:"pars,omitempty"`
}

// JoinGameRequest is the body of POST /games/code/{code}/join.
type JoinGameRequest struct {
	Name     string `json:"name"`
	Handicap int    `json:"handicap"`
}

func (h *GameHandlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleCreateGame")
	defer span.End()
	r = r.WithContext(ctx)

	playerID, ok := httpapi.RequirePlayer(w, r)
	if !ok {
		return
	}

	var req CreateGameRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	created, err := h.service.CreateGame(ctx, gamedomain.NewGameSpec{
		HostID:     playerID,
		HostName:   req.Name,
		Handicap:   req.Handicap,
		CourseName: req.CourseName,
		HoleCount:  req.HoleCount,
		MaxPlayers: req.MaxPlayers,
		Pars:       req.Pars,
	})
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "Game created",
		attr.GameID(created.Game.ID),
		attr.PlayerID(playerID),
		attr.String("code", created.Game.Code),
	)
	httpapi.WriteJSON(w, http.StatusCreated, created)
}

func (h *GameHandlers) HandleGetGameByCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleGetGameByCode")
	defer span.End()
	r = r.WithContext(ctx)

	game, err := h.service.GetGameByCode(ctx, chi.URLParam(r, "code"))
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, game)
}

func (h *GameHandlers) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleJoinGame")
	defer span.End()
	r = r.WithContext(ctx)

	playerID, ok := httpapi.RequirePlayer(w, r)
	if !ok {
		return
	}

	var req JoinGameRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	joined, err := h.service.JoinGame(ctx, gameservice.JoinRequest{
		Code:     chi.URLParam(r, "code"),
		PlayerID: playerID,
		Name:     req.Name,
		Handicap: req.Handicap,
	})
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, joined)
}

func (h *GameHandlers) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleGetGame")
	defer span.End()
	r = r.WithContext(ctx)

	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	game, err := h.service.GetGame(ctx, gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, game)
}

func (h *GameHandlers) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleStartGame")
	defer span.End()
	r = r.WithContext(ctx)

	playerID, ok := httpapi.RequirePlayer(w, r)
	if !ok {
		return
	}
	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	started, err := h.service.StartGame(ctx, gameID, playerID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, started)
}

func (h *GameHandlers) HandleListMyGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers.HandleListMyGames")
	defer span.End()
	r = r.WithContext(ctx)

	playerID, ok := httpapi.RequirePlayer(w, r)
	if !ok {
		return
	}

	games, err := h.service.ListPlayerGames(ctx, playerID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, games)
}
