package scoreboarddomain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinNameLen = 2
	MaxNameLen = 20

	MinScore = 100    // ms; anything shorter is not a real run
	MaxScore = 600000 // ms; ten minutes caps a run

	MinDappies = 0
	MaxDappies = 200

	// A dappy cannot be collected faster than once every 3 simulated seconds,
	// so past the free allowance the score must cover the haul.
	DappyMillis        = 3000
	DappyFreeAllowance = 10
)

// ValidationError reports which field failed and why. It is always
// recoverable and never reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Normalize trims surrounding whitespace from the player name.
func (s Submission) Normalize() Submission {
	s.Name = strings.TrimSpace(s.Name)
	return s
}

// Validate checks a normalized submission. Checks run in fixed order
// (name, score, dappies, ratio) and the first failure wins.
func Validate(s Submission) error {
	// Length bounds are in characters, not bytes; multibyte names count
	// per rune.
	if n := utf8.RuneCountInString(s.Name); n < MinNameLen || n > MaxNameLen {
		return &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must be %d-%d characters, got %d", MinNameLen, MaxNameLen, n),
		}
	}
	if s.Score < MinScore || s.Score > MaxScore {
		return &ValidationError{
			Field:  "score",
			Reason: fmt.Sprintf("must be within [%d, %d] ms, got %d", MinScore, MaxScore, s.Score),
		}
	}
	if s.Dappies < MinDappies || s.Dappies > MaxDappies {
		return &ValidationError{
			Field:  "dappies",
			Reason: fmt.Sprintf("must be within [%d, %d], got %d", MinDappies, MaxDappies, s.Dappies),
		}
	}
	if s.Dappies > DappyFreeAllowance && s.Score < int64(s.Dappies)*DappyMillis {
		return &ValidationError{
			Field:  "dappies",
			Reason: fmt.Sprintf("%d dappies need a score of at least %d ms, got %d", s.Dappies, int64(s.Dappies)*DappyMillis, s.Score),
		}
	}
	return nil
}
