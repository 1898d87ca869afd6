package authdomain

import (
	"time"

	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
)

// Claims is the verified identity carried by a bearer token. The player id is
// opaque and issued by the external identity provider.
type Claims struct {
	PlayerID  sharedtypes.PlayerID
	Issuer    string
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired reports whether the claims had expired at now. Claims without an
// expiry never expire.
func (c *Claims) IsExpired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(c.ExpiresAt)
}
