package leaderboardservice

import (
	"fmt"

	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
)

// Domain errors for the leaderboard service.
var (
	ErrGameNotFound         = fmt.Errorf("game %w", apperrors.ErrNotFound)
	ErrNotHost              = fmt.Errorf("only the host may finalize the game: %w", apperrors.ErrForbidden)
	ErrGameAlreadyFinalized = fmt.Errorf("finalize: %w", apperrors.ErrAlreadyFinalized)
	// ErrGameNotInProgress is returned by a GameStore whose guarded
	// in-progress to completed transition matched no row.
	ErrGameNotInProgress = fmt.Errorf("game not in progress: %w", apperrors.ErrInvalidState)
)
