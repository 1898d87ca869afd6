package auth

import (
	"context"
	"errors"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/scorecard/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/scorecard/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/scorecard/app/shared/observability"
	"golang.org/x/time/rate"
)

// Config configures request authentication and throttling for the API.
type Config struct {
	Secret         string
	Issuer         string
	AllowedOrigins []string
	RatePerSecond  float64
	RateBurst      int
}

// Module represents the auth module. It owns no routes of its own; it guards
// the routes the other modules mount.
type Module struct {
	Provider      authjwt.Provider
	Limiter       *authhandlers.IPRateLimiter
	config        Config
	observability observability.Observability
}

// NewAuthModule creates the auth module.
func NewAuthModule(ctx context.Context, obs observability.Observability, cfg Config) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "auth.NewAuthModule initializing")

	if cfg.Secret == "" {
		return nil, errors.New("auth: JWT secret is required")
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 10
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = 20
	}

	return &Module{
		Provider:      authjwt.NewProvider(cfg.Secret, cfg.Issuer),
		Limiter:       authhandlers.NewIPRateLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		config:        cfg,
		observability: obs,
	}, nil
}

// Middlewares returns the API middleware chain in the order it must run:
// rate limiting, CORS, then bearer authentication.
func (m *Module) Middlewares() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		authhandlers.RateLimitMiddleware(m.Limiter),
		authhandlers.CORSMiddleware(m.config.AllowedOrigins),
		authhandlers.AuthMiddleware(m.Provider, m.observability.Provider.Logger),
	}
}

// Close shuts down the auth module.
func (m *Module) Close() error {
	m.observability.Provider.Logger.Info("Auth module stopped")
	return nil
}
