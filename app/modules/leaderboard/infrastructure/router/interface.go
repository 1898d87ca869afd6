package leaderboardrouter

import (
	"context"

	leaderboardhandlers "github.com/Black-And-White-Club/scorecard/app/modules/leaderboard/infrastructure/handlers"
)

// Router wires leaderboard event handlers into a watermill router.
type Router interface {
	Configure(ctx context.Context, handlers leaderboardhandlers.Handlers) error
	Close() error
}
