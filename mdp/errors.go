package mdp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidModel matches every *ConfigError through errors.Is.
	ErrInvalidModel = errors.New("invalid model")

	ErrInvalidDiscount    = errors.New("discount factor out of range")
	ErrInvalidEpsilon     = errors.New("epsilon must be positive")
	ErrNoActions          = errors.New("state has no actions")
	ErrUnknownState       = errors.New("unknown state")
	ErrInvalidProbability = errors.New("invalid transition probability")

	ErrNotConverged = errors.New("value iteration did not converge")
	ErrMissingValue = errors.New("value function has no entry for state")
)

// ConfigError reports a model or solver configuration that makes value
// iteration undefined. It is returned before any sweep runs.
type ConfigError struct {
	Kind error
	Msg  string
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidModel, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidModel, e.Kind, e.Msg)
}

func (e *ConfigError) Unwrap() error { return e.Kind }

func (e *ConfigError) Is(target error) bool { return target == ErrInvalidModel }

func configErrorf(kind error, format string, args ...any) error {
	return &ConfigError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
