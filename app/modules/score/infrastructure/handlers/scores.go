package scorehandlers

import (
	"fmt"
	"net/http"
	"strconv"

	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/httpapi"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/go-chi/chi/v5"
)

// UpsertScoreRequest is the body of PUT /games/{gameID}/scores/{hole}.
// A null or absent strokes clears the hole.
type UpsertScoreRequest struct {
	Strokes *int `json:"strokes"`
}

// HandleUpsertScore records the caller's own strokes on a hole.
func (h *ScoreHandlers) HandleUpsertScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleUpsertScore")
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
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil {
		httpapi.WriteError(w, r, h.logger, &apperrors.ValidationError{
			Field:  "hole",
			Reason: fmt.Sprintf("%q is not a number", chi.URLParam(r, "hole")),
		})
		return
	}

	var req UpsertScoreRequest
	if err := httpapi.DecodeJSON(r, &req); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	entry, err := h.scoreService.UpsertScoreEntry(ctx, scoreservice.UpsertScoreRequest{
		GameID:   gameID,
		PlayerID: playerID,
		Hole:     hole,
		Strokes:  req.Strokes,
	})
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	h.logger.DebugContext(ctx, "Score entry recorded",
		attr.GameID(gameID),
		attr.PlayerID(playerID),
		attr.Int("hole", hole),
	)
	httpapi.WriteJSON(w, http.StatusOK, entry)
}

// HandleGetScores lists a game's entries, optionally for one player (?player=).
func (h *ScoreHandlers) HandleGetScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleGetScores")
	defer span.End()
	r = r.WithContext(ctx)

	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	var filter *sharedtypes.PlayerID
	if p := r.URL.Query().Get("player"); p != "" {
		id := sharedtypes.PlayerID(p)
		filter = &id
	}

	entries, err := h.scoreService.GetScoreEntries(ctx, gameID, filter)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, entries)
}

// HandleGetScorecard returns one player's scorecard with totals.
func (h *ScoreHandlers) HandleGetScorecard(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "ScoreHandlers.HandleGetScorecard")
	defer span.End()
	r = r.WithContext(ctx)

	gameID, err := httpapi.GameIDParam(r)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	card, err := h.scoreService.GetPlayerScorecard(ctx, gameID, sharedtypes.PlayerID(chi.URLParam(r, "playerID")))
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, card)
}
