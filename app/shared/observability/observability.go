package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config configures logging, tracing and metrics.
type Config struct {
	ServiceName string
	Environment string
	Version     string
	LogLevel    string
	// Output defaults to stdout.
	Output io.Writer
}

// Provider holds process-wide providers.
type Provider struct {
	Logger *slog.Logger
}

// Registry holds the per-module instruments.
type Registry struct {
	Tracer             trace.Tracer
	Prometheus         *prometheus.Registry
	GameMetrics        OperationMetrics
	ScoreMetrics       OperationMetrics
	LeaderboardMetrics OperationMetrics
}

// Observability bundles everything a module needs to log, trace and count.
type Observability struct {
	Provider *Provider
	Registry *Registry
}

// Init builds the logger, tracer and Prometheus registry.
func Init(cfg Config) (Observability, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	logger := NewLogger(out, cfg.Environment, cfg.LogLevel).With(
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.Version),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	modules := map[string]*OperationMetrics{}
	registry := &Registry{
		Tracer:     otel.Tracer(cfg.ServiceName),
		Prometheus: reg,
	}
	modules["game"] = &registry.GameMetrics
	modules["score"] = &registry.ScoreMetrics
	modules["leaderboard"] = &registry.LeaderboardMetrics
	for name, slot := range modules {
		m, err := NewPrometheusMetrics(reg, name)
		if err != nil {
			return Observability{}, fmt.Errorf("failed to register %s metrics: %w", name, err)
		}
		*slot = m
	}

	return Observability{
		Provider: &Provider{Logger: logger},
		Registry: registry,
	}, nil
}

// NewNoop returns an Observability that discards logs, spans and metrics.
func NewNoop() Observability {
	return Observability{
		Provider: &Provider{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		Registry: &Registry{
			Tracer:             noop.NewTracerProvider().Tracer("test"),
			Prometheus:         prometheus.NewRegistry(),
			GameMetrics:        NoOpMetrics{},
			ScoreMetrics:       NoOpMetrics{},
			LeaderboardMetrics: NoOpMetrics{},
		},
	}
}

// NewLogger returns a JSON logger in production and a text logger elsewhere.
func NewLogger(out io.Writer, environment, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if environment == "production" || environment == "prod" {
		return slog.New(slog.NewJSONHandler(out, opts))
	}
	return slog.New(slog.NewTextHandler(out, opts))
}

func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
