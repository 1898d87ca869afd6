// Package httpapi holds the helpers every module's HTTP handlers share:
// JSON responses, error mapping and the authenticated player on the context.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type playerIDKey struct{}

// ContextWithPlayerID stores the authenticated player on ctx.
func ContextWithPlayerID(ctx context.Context, id sharedtypes.PlayerID) context.Context {
	return context.WithValue(ctx, playerIDKey{}, id)
}

// PlayerIDFromContext returns the authenticated player, if any.
func PlayerIDFromContext(ctx context.Context) (sharedtypes.PlayerID, bool) {
	id, ok := ctx.Value(playerIDKey{}).(sharedtypes.PlayerID)
	return id, ok && id != ""
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// StatusFor maps an error kind to an HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrAlreadyFinalized),
		errors.Is(err, apperrors.ErrInvalidState),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// WriteError maps err to a status and writes it. Internal errors are logged
// and their detail withheld from the client.
func WriteError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := StatusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		msg = http.StatusText(status)
	}
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

// DecodeJSON decodes the request body into v, rejecting unknown fields.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &apperrors.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

// GameIDParam parses the {gameID} URL parameter.
func GameIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "gameID")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &apperrors.ValidationError{Field: "gameID", Reason: fmt.Sprintf("%q is not a uuid", raw)}
	}
	return id, nil
}

// RequirePlayer returns the authenticated player or writes 401.
func RequirePlayer(w http.ResponseWriter, r *http.Request) (sharedtypes.PlayerID, bool) {
	id, ok := PlayerIDFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: apperrors.ErrUnauthorized.Error()})
		return "", false
	}
	return id, true
}
