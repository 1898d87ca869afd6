package leaderboardhandlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/scorecard/app/eventbus"
	leaderboardservice "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	"github.com/Black-And-White-Club/scorecard/app/shared/attr"
	"github.com/Black-And-White-Club/scorecard/app/shared/events"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"
)

// HandleScoreEntryUpdated recomputes the live leaderboard after a score
// change and emits it on leaderboard.updated.v1.
func (h *LeaderboardHandlers) HandleScoreEntryUpdated(msg *message.Message) ([]*message.Message, error) {
	var payload events.ScoreEntryUpdatedPayloadV1
	return h.recompute(msg, "HandleScoreEntryUpdated", &payload, func() uuid.UUID { return payload.GameID })
}

// HandleGameStarted emits the initial, empty leaderboard of a new game.
func (h *LeaderboardHandlers) HandleGameStarted(msg *message.Message) ([]*message.Message, error) {
	var payload events.GameStartedPayloadV1
	return h.recompute(msg, "HandleGameStarted", &payload, func() uuid.UUID { return payload.GameID })
}

func (h *LeaderboardHandlers) recompute(msg *message.Message, handlerName string, payload any, gameIDOf func() uuid.UUID) ([]*message.Message, error) {
	ctx := attr.ContextWithCorrelationID(msg.Context(), middleware.MessageCorrelationID(msg))
	ctx, span := h.tracer.Start(ctx, "LeaderboardHandlers."+handlerName)
	defer span.End()

	if err := json.Unmarshal(msg.Payload, payload); err != nil {
		// Redelivery cannot fix a malformed payload.
		h.logger.ErrorContext(ctx, "Dropping malformed message",
			attr.CorrelationIDFromMsg(msg),
			attr.String("handler", handlerName),
			attr.Error(err),
		)
		return nil, nil
	}
	gameID := gameIDOf()

	h.logger.InfoContext(ctx, "Recomputing live leaderboard",
		attr.CorrelationIDFromMsg(msg),
		attr.String("handler", handlerName),
		attr.GameID(gameID),
	)

	board, err := h.leaderboardService.ComputeLiveLeaderboard(ctx, gameID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			h.logger.WarnContext(ctx, "Game no longer exists, skipping leaderboard update",
				attr.CorrelationIDFromMsg(msg),
				attr.GameID(gameID),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to compute leaderboard for game %s: %w", gameID, err)
	}

	out, err := leaderboardMessage(ctx, board)
	if err != nil {
		return nil, err
	}
	return []*message.Message{out}, nil
}

func leaderboardMessage(ctx context.Context, board *leaderboardservice.LiveLeaderboard) (*message.Message, error) {
	rows := make([]events.LeaderboardRowV1, len(board.Rows))
	for i, r := range board.Rows {
		rows[i] = events.LeaderboardRowV1{
			PlayerID:     r.PlayerID,
			Name:         r.Name,
			TotalStrokes: r.TotalStrokes,
			NetScore:     r.NetScore,
			HolesPlayed:  r.HolesPlayed,
			Rank:         r.Rank,
		}
	}
	msg, err := eventbus.NewMessage(ctx, events.LeaderboardUpdatedPayloadV1{
		GameID:     board.GameID,
		Rows:       rows,
		ComputedAt: board.ComputedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create leaderboard message: %w", err)
	}
	msg.Metadata.Set("topic", events.LeaderboardUpdatedV1)
	return msg, nil
}
