package eventbus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/nats-io/nats.go/jetstream"
)

// StreamName is the JetStream stream holding every scorecard topic.
const StreamName = "scorecard"

// StreamSubjects are the subject filters bound to StreamName.
var StreamSubjects = []string{"game.>", "score.>", "leaderboard.>"}

// InitializeStreams creates the scorecard stream if it does not exist.
func InitializeStreams(ctx context.Context, js jetstream.JetStream, logger *slog.Logger) error {
	cfg := jetstream.StreamConfig{
		Name:     StreamName,
		Subjects: StreamSubjects,
	}

	_, err := js.Stream(ctx, cfg.Name)
	if errors.Is(err, jetstream.ErrStreamNotFound) {
		if _, err := js.CreateStream(ctx, cfg); err != nil {
			logger.Error("Failed to create JetStream stream", attr.String("stream", cfg.Name), attr.Error(err))
			return fmt.Errorf("failed to create stream %s: %w", cfg.Name, err)
		}
		logger.Info("Created JetStream stream", attr.String("stream", cfg.Name))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check stream: %w", err)
	}
	return nil
}
