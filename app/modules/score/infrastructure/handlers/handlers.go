package scorehandlers

import (
	"log/slog"

	scoreservice "github.com/Black-And-White-Club/scorecard/app/modules/score/application"
	"go.opentelemetry.io/otel/trace"
)

// ScoreHandlers handles score entry requests.
type ScoreHandlers struct {
	scoreService scoreservice.Service
	logger       *slog.Logger
	tracer       trace.Tracer
}

// NewScoreHandlers creates a new ScoreHandlers.
func NewScoreHandlers(
	scoreService scoreservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &ScoreHandlers{
		scoreService: scoreService,
		logger:       logger,
		tracer:       tracer,
	}
}
