package detect

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrStagnation is matched by every *StagnationError.
	ErrStagnation = errors.New("refinement stalled")
	// ErrRoundLimit is returned when a run exceeds its configured round bound.
	ErrRoundLimit = errors.New("round limit exceeded")
)

// ConfigError reports a parameter that cannot produce a valid run. It is
// returned before any distance is evaluated.
type ConfigError struct {
	Field  string
	Value  int
	Size   int
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Size > 0 {
		return fmt.Sprintf("%s: %s=%d %s (size=%d)", ErrInvalidConfig, e.Field, e.Value, e.Reason, e.Size)
	}
	return fmt.Sprintf("%s: %s=%d %s", ErrInvalidConfig, e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// StagnationError reports a refinement loop that stopped verifying new items.
type StagnationError struct {
	Round    int
	Rounds   int
	Verified int
}

func (e *StagnationError) Error() string {
	return fmt.Sprintf("%s: no item verified in %d rounds (round=%d, verified=%d)", ErrStagnation, e.Rounds, e.Round, e.Verified)
}

func (e *StagnationError) Is(target error) bool { return target == ErrStagnation }
