package gamedomain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"

	"github.com/Black-And-White-Club/scorecard/app/shared/apperrors"
	sharedtypes "github.com/Black-And-White-Club/scorecard/app/shared/types"
)

const (
	// CodeLength is the length of a game join code.
	CodeLength = 6
	// CodeAlphabet omits characters that are easily confused (I, O, 0, 1).
	CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	DefaultMaxPlayers = 4
	MaxPlayersLimit   = 8
	MinPlayersToStart = 2
	DefaultHoleCount  = 18
	MaxParPerHole     = 6
	MinParPerHole     = 3
)

// StandardPars is the par layout used when a game does not specify its own.
var StandardPars = []int{4, 4, 3, 5, 4, 4, 3, 4, 5, 4, 3, 4, 5, 4, 4, 3, 5, 4}

// GenerateCode returns a random join code drawn from CodeAlphabet.
func GenerateCode() (string, error) {
	buf := make([]byte, CodeLength)
	alphabetLen := big.NewInt(int64(len(CodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate game code: %w", err)
		}
		buf[i] = CodeAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// ValidCode reports whether code could have been produced by GenerateCode.
func ValidCode(code string) bool {
	if len(code) != CodeLength {
		return false
	}
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(CodeAlphabet, code[i]) < 0 {
			return false
		}
	}
	return true
}

// NewGameSpec is the validated shape of a game about to be created.
type NewGameSpec struct {
	HostID     sharedtypes.PlayerID
	HostName   string
	Handicap   int
	CourseName string
	HoleCount  int
	MaxPlayers int
	Pars       []int
}

// Normalize fills defaults and validates the spec.
func (s NewGameSpec) Normalize() (NewGameSpec, error) {
	if s.HostID == "" {
		return s, &apperrors.ValidationError{Field: "host_id", Reason: "required"}
	}
	if s.HoleCount == 0 {
		if len(s.Pars) > 0 {
			s.HoleCount = len(s.Pars)
		} else {
			s.HoleCount = DefaultHoleCount
		}
	}
	if s.HoleCount != 9 && s.HoleCount != 18 {
		return s, &apperrors.ValidationError{Field: "hole_count", Reason: "must be 9 or 18"}
	}
	if s.MaxPlayers == 0 {
		s.MaxPlayers = DefaultMaxPlayers
	}
	if s.MaxPlayers < MinPlayersToStart || s.MaxPlayers > MaxPlayersLimit {
		return s, &apperrors.ValidationError{
			Field:  "max_players",
			Reason: fmt.Sprintf("must be between %d and %d", MinPlayersToStart, MaxPlayersLimit),
		}
	}
	if len(s.Pars) == 0 {
		s.Pars = append([]int(nil), StandardPars[:s.HoleCount]...)
	}
	if len(s.Pars) != s.HoleCount {
		return s, &apperrors.ValidationError{
			Field:  "pars",
			Reason: fmt.Sprintf("expected %d values, got %d", s.HoleCount, len(s.Pars)),
		}
	}
	for i, p := range s.Pars {
		if p < MinParPerHole || p > MaxParPerHole {
			return s, &apperrors.ValidationError{
				Field:  "pars",
				Reason: fmt.Sprintf("hole %d par %d outside %d..%d", i+1, p, MinParPerHole, MaxParPerHole),
			}
		}
	}
	if s.HostName == "" {
		s.HostName = string(s.HostID)
	}
	if s.Handicap < 0 {
		return s, &apperrors.ValidationError{Field: "handicap", Reason: "must not be negative"}
	}
	return s, nil
}

// CanTransition reports whether a game may move from one status to another.
// The lifecycle is waiting, in-progress, completed, with no way back.
func CanTransition(from, to sharedtypes.GameStatus) bool {
	switch from {
	case sharedtypes.GameStatusWaiting:
		return to == sharedtypes.GameStatusInProgress
	case sharedtypes.GameStatusInProgress:
		return to == sharedtypes.GameStatusCompleted
	default:
		return false
	}
}
