package scoreservice

import (
	"fmt"

	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
)

// Domain errors for the score service.
var (
	ErrGameNotFound    = fmt.Errorf("game %w", apperrors.ErrNotFound)
	ErrPlayerNotInGame = fmt.Errorf("player %w in game", apperrors.ErrNotFound)
)
