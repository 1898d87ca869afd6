package leaderboardrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	leaderboardhandlers "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/handlers"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/events"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// LeaderboardRouter subscribes the leaderboard handlers to game and score events.
type LeaderboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     message.Subscriber
	publisher      message.Publisher
	metricsBuilder *metrics.PrometheusMetricsBuilder
	metricsEnabled bool
}

// NewLeaderboardRouter creates a new instance of the router. Router metrics
// are registered on prometheusRegistry unless it is nil or APP_ENV=test.
func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber message.Subscriber,
	publisher message.Publisher,
	prometheusRegistry *prometheus.Registry,
) *LeaderboardRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}

	return &LeaderboardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		metricsBuilder: metricsBuilder,
		metricsEnabled: metricsBuilder != nil,
	}
}

// Configure sets up the middlewares and registers the leaderboard handlers.
func (r *LeaderboardRouter) Configure(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	if r.metricsEnabled {
		r.logger.Info("Adding Prometheus router metrics middleware for Leaderboard")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	} else {
		r.logger.Info("Skipping Prometheus router metrics middleware - either in test environment or metrics not configured")
	}

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     2 * time.Second,
			Multiplier:      2,
			Logger:          watermill.NewSlogLogger(r.logger),
		}.Middleware,
	)

	if err := r.RegisterHandlers(ctx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes each handler to its input topic. Produced
// messages are published on the topic they carry in metadata.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	r.logger.InfoContext(ctx, "Registering Leaderboard Event Handlers")

	eventsToHandlers := map[string]message.HandlerFunc{
		events.ScoreEntryUpdatedV1: handlers.HandleScoreEntryUpdated,
		events.GameStartedV1:       handlers.HandleGameStarted,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := "leaderboard." + topic
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			r.publishing(ctx, handlerName, handlerFunc),
		)
	}
	return nil
}

func (r *LeaderboardRouter) publishing(ctx context.Context, handlerName string, handlerFunc message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		messages, err := handlerFunc(msg)
		if err != nil {
			r.logger.ErrorContext(ctx, "Error processing message",
				attr.String("handler", handlerName),
				attr.String("message_id", msg.UUID),
				attr.Error(err),
			)
			return nil, err
		}
		for _, m := range messages {
			topic := m.Metadata.Get("topic")
			if topic == "" {
				r.logger.Error("Message has no topic, dropping",
					attr.String("handler", handlerName),
					attr.String("msg_uuid", m.UUID),
					attr.CorrelationIDFromMsg(m),
				)
				continue
			}
			if err := r.publisher.Publish(topic, m); err != nil {
				return nil, fmt.Errorf("failed to publish to %s: %w", topic, err)
			}
		}
		return nil, nil
	}
}

// Close stops the router.
func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
