package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Black-And-White-Club/scorecard/app/modules/auth"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func newTestHandler(t *testing.T, db Pinger) http.Handler {
	t.Helper()
	obs := observability.NewNoop()
	authModule, err := auth.NewAuthModule(context.Background(), obs, auth.Config{Secret: "test-secret-at-least-32-chars-long!!"})
	require.NoError(t, err)

	api := chi.NewRouter()
	api.Use(authModule.Middlewares()...)
	api.Get("/games/{gameID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "scorecard_test_total", Help: "test"})
	obs.Registry.Prometheus.MustRegister(counter)
	counter.Inc()

	return NewHTTPHandler(obs, db, api)
}

func TestHTTPHandler_Healthz(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantStatus int
	}{
		{name: "database reachable", wantStatus: http.StatusOK},
		{name: "database down", pingErr: errors.New("connection refused"), wantStatus: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, fakePinger{err: tt.pingErr})
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHTTPHandler_MetricsAreUnauthenticated(t *testing.T) {
	h := newTestHandler(t, fakePinger{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scorecard_test_total 1")
}

func TestHTTPHandler_APIRequiresBearerToken(t *testing.T) {
	h := newTestHandler(t, fakePinger{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/games/abc", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
