package leaderboardhandlers

import (
	"fmt"
	"net/http"

	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/httpapi"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandleGetLeaderboard returns the live ranking.
func (h *LeaderboardHandlers) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleGetLeaderboard")
	defer span.End()
	r = r.WithContext(ctx)

	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	board, err := h.leaderboardService.ComputeLiveLeaderboard(ctx, gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, board)
}

// HandleFinalizeGame completes the game on behalf of its host.
func (h *LeaderboardHandlers) HandleFinalizeGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleFinalizeGame")
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

	res, err := h.leaderboardService.FinalizeGame(ctx, gameID, playerID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "Game finalized",
		attr.GameID(gameID),
		attr.PlayerID(playerID),
		attr.Int("winners", len(res.Winners)),
	)
	httpapi.WriteJSON(w, http.StatusOK, res)
}

// HandleGetResults returns the stored results of a completed game.
func (h *LeaderboardHandlers) HandleGetResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleGetResults")
	defer span.End()
	r = r.WithContext(ctx)

	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	res, err := h.leaderboardService.GetGameResults(ctx, gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, res)
}

// HandleExportResults downloads the results workbook.
func (h *LeaderboardHandlers) HandleExportResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleExportResults")
	defer span.End()
	r = r.WithContext(ctx)

	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	data, err := h.leaderboardService.ExportResultsXLSX(ctx, gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="results-%s.xlsx"`, gameID))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// HandleScoreChart returns the score progression chart as PNG.
func (h *LeaderboardHandlers) HandleScoreChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "LeaderboardHandlers.HandleScoreChart")
	defer span.End()
	r = r.WithContext(ctx)

	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	png, err := h.leaderboardService.RenderScoreProgressChart(ctx, gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
