package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/scorecard/app/modules/auth/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
)

// Provider defines the interface for bearer token operations.
type Provider interface {
	// GenerateToken signs a token whose subject is playerID. The identity
	// provider normally issues tokens; this exists for local development and tests.
	GenerateToken(playerID sharedtypes.PlayerID, ttl time.Duration) (string, error)

	// ValidateToken validates a token and returns its claims if valid.
	ValidateToken(tokenString string) (*authdomain.Claims, error)
}
