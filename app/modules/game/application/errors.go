package gameservice

import (
	"fmt"

	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
)

// Domain errors for the game service. Each wraps an apperrors kind so the
// HTTP layer can map it.
var (
	ErrGameNotFound     = fmt.Errorf("game %w", apperrors.ErrNotFound)
	ErrGameFull         = fmt.Errorf("%w: game is full", apperrors.ErrConflict)
	ErrAlreadyJoined    = fmt.Errorf("%w: player already joined", apperrors.ErrConflict)
	ErrNotEnoughPlayers = fmt.Errorf("%w: at least 2 players are needed to start", apperrors.ErrInvalidState)
	ErrNotHost          = fmt.Errorf("%w: only the host can do this", apperrors.ErrForbidden)
	ErrNotInGame        = fmt.Errorf("player %w in game", apperrors.ErrNotFound)
)
