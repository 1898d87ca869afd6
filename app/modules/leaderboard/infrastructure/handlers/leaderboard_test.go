package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	leaderboardservice "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	"github.com/Black-And-White-Club/scorecard/app/shared/httpapi"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestHandlers(svc leaderboardservice.Service) Handlers {
	return NewLeaderboardHandlers(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), noop.NewTracerProvider().Tracer("test"))
}

func newTestRouter(svc leaderboardservice.Service) chi.Router {
	h := newTestHandlers(svc)
	r := chi.NewRouter()
	r.Get("/games/{gameID}/leaderboard", h.HandleGetLeaderboard)
	r.Post("/games/{gameID}/finalize", h.HandleFinalizeGame)
	r.Get("/games/{gameID}/results", h.HandleGetResults)
	r.Get("/games/{gameID}/results.xlsx", h.HandleExportResults)
	r.Get("/games/{gameID}/chart.png", h.HandleScoreChart)
	return r
}

func authed(req *http.Request, id sharedtypes.PlayerID) *http.Request {
	return req.WithContext(httpapi.ContextWithPlayerID(req.Context(), id))
}

func TestLeaderboardHandlers_HandleGetLeaderboard(t *testing.T) {
	gameID := uuid.New()
	svc := &FakeService{
		ComputeLiveLeaderboardFunc: func(ctx context.Context, id uuid.UUID) (*leaderboardservice.LiveLeaderboard, error) {
			return &leaderboardservice.LiveLeaderboard{
				GameID: id,
				Status: sharedtypes.GameStatusInProgress,
				Rows:   []leaderboarddomain.LeaderboardRow{{PlayerID: "bo", Name: "Bo", TotalStrokes: 8, NetScore: 3, HolesPlayed: 2, Rank: 1}},
			}, nil
		},
	}

	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/"+gameID.String()+"/leaderboard", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got leaderboardservice.LiveLeaderboard
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, gameID, got.GameID)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, 1, got.Rows[0].Rank)
}

func TestLeaderboardHandlers_HandleGetLeaderboard_BadGameID(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestRouter(&FakeService{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/not-a-uuid/leaderboard", nil))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestLeaderboardHandlers_HandleFinalizeGame(t *testing.T) {
	gameID := uuid.New()

	tests := []struct {
		name       string
		player     sharedtypes.PlayerID
		serviceErr error
		wantStatus int
	}{
		{name: "host finalizes", player: "ann", wantStatus: http.StatusOK},
		{name: "unauthenticated", wantStatus: http.StatusUnauthorized},
		{name: "not host", player: "bo", serviceErr: leaderboardservice.ErrNotHost, wantStatus: http.StatusForbidden},
		{name: "already finalized", player: "ann", serviceErr: leaderboardservice.ErrGameAlreadyFinalized, wantStatus: http.StatusConflict},
		{name: "waiting game", player: "ann", serviceErr: &apperrors.InvalidStateError{Operation: "FinalizeGame", Status: "waiting", Expected: "in-progress"}, wantStatus: http.StatusConflict},
		{name: "unknown game", player: "ann", serviceErr: leaderboardservice.ErrGameNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCaller sharedtypes.PlayerID
			svc := &FakeService{
				FinalizeGameFunc: func(ctx context.Context, id uuid.UUID, callerID sharedtypes.PlayerID) (*leaderboardservice.GameResults, error) {
					gotCaller = callerID
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &leaderboardservice.GameResults{GameID: id}, nil
				},
			}

			req := httptest.NewRequest(http.MethodPost, "/games/"+gameID.String()+"/finalize", nil)
			if tt.player != "" {
				req = authed(req, tt.player)
			}
			rr := httptest.NewRecorder()
			newTestRouter(svc).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.player, gotCaller)
		})
	}
}

func TestLeaderboardHandlers_HandleGetResults(t *testing.T) {
	gameID := uuid.New()
	svc := &FakeService{
		GetGameResultsFunc: func(ctx context.Context, id uuid.UUID) (*leaderboardservice.GameResults, error) {
			return nil, &apperrors.InvalidStateError{Operation: "GetGameResults", Status: "in-progress", Expected: "completed"}
		},
	}

	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/"+gameID.String()+"/results", nil))
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestLeaderboardHandlers_Downloads(t *testing.T) {
	gameID := uuid.New()
	svc := &FakeService{}

	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/"+gameID.String()+"/results.xlsx", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, xlsxContentType, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), gameID.String())
	assert.Equal(t, "xlsx", rr.Body.String())

	rr = httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/games/"+gameID.String()+"/chart.png", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "png", rr.Body.String())
}
