package authjwt

import (
	"errors"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/scorecard/app/modules/auth/domain"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-at-least-32-chars-long!!"

func TestProvider_GenerateAndValidateToken(t *testing.T) {
	p := NewProvider(testSecret, "")
	player := sharedtypes.PlayerID("player-123")

	tests := []struct {
		name        string
		token       func(t *testing.T) string
		validator   Provider
		expectedErr error
		verify      func(t *testing.T, validated *authdomain.Claims)
	}{
		{
			name: "success",
			token: func(t *testing.T) string {
				return mustToken(t, p, player, time.Hour)
			},
			validator: p,
			verify: func(t *testing.T, validated *authdomain.Claims) {
				if validated.PlayerID != player {
					t.Errorf("expected player %s, got %s", player, validated.PlayerID)
				}
				if validated.ExpiresAt.Sub(validated.IssuedAt) != time.Hour {
					t.Errorf("expected a one hour lifetime, got %v", validated.ExpiresAt.Sub(validated.IssuedAt))
				}
			},
		},
		{
			name: "expired token",
			token: func(t *testing.T) string {
				return mustToken(t, p, player, -time.Hour)
			},
			validator:   p,
			expectedErr: ErrExpiredToken,
		},
		{
			name: "invalid signature",
			token: func(t *testing.T) string {
				return mustToken(t, NewProvider("wrong-secret", ""), player, time.Hour)
			},
			validator:   p,
			expectedErr: ErrInvalidSignature,
		},
		{
			name:        "malformed token",
			token:       func(*testing.T) string { return "not.a.jwt" },
			validator:   p,
			expectedErr: ErrInvalidToken,
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				return mustToken(t, p, "", time.Hour)
			},
			validator:   p,
			expectedErr: ErrMissingSubject,
		},
		{
			name: "issuer mismatch",
			token: func(t *testing.T) string {
				return mustToken(t, NewProvider(testSecret, "someone-else"), player, time.Hour)
			},
			validator:   NewProvider(testSecret, "identity.example"),
			expectedErr: ErrInvalidToken,
		},
		{
			name: "issuer match",
			token: func(t *testing.T) string {
				return mustToken(t, NewProvider(testSecret, "identity.example"), player, time.Hour)
			},
			validator: NewProvider(testSecret, "identity.example"),
			verify: func(t *testing.T, validated *authdomain.Claims) {
				if validated.Issuer != "identity.example" {
					t.Errorf("expected issuer identity.example, got %q", validated.Issuer)
				}
			},
		},
		{
			name: "unexpected signing method",
			token: func(t *testing.T) string {
				tok := jwt.NewWithClaims(jwt.SigningMethodHS384, jwt.RegisteredClaims{
					Subject:   string(player),
					ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				})
				s, err := tok.SignedString([]byte(testSecret))
				if err != nil {
					t.Fatalf("failed to sign token: %v", err)
				}
				return s
			},
			validator:   p,
			expectedErr: ErrInvalidSignature,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validatedClaims, err := tt.validator.ValidateToken(tt.token(t))

			if tt.expectedErr != nil {
				if !errors.Is(err, tt.expectedErr) {
					t.Errorf("expected error %v, got %v", tt.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.verify != nil {
				tt.verify(t, validatedClaims)
			}
		})
	}
}

func mustToken(t *testing.T, p Provider, player sharedtypes.PlayerID, ttl time.Duration) string {
	t.Helper()
	token, err := p.GenerateToken(player, ttl)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token
}
