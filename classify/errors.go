package classify

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownAction indicates a ruleset value that is neither RETRY nor THROW.
	ErrUnknownAction = errors.New("verdict: unknown action")
	// ErrUnknownKind indicates a ruleset key naming a kind the registry cannot resolve.
	ErrUnknownKind = errors.New("verdict: unknown kind")
	// ErrBadPattern indicates a ruleset key with a malformed message pattern.
	ErrBadPattern = errors.New("verdict: invalid message pattern")
	// ErrDuplicateRule indicates two ruleset entries with identical target,
	// code and pattern. Such configurations are ambiguous and rejected.
	ErrDuplicateRule = errors.New("verdict: duplicate rule")
)

// ConfigError reports the ruleset entry a Classifier could not be built from.
type ConfigError struct {
	Key   string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("verdict: invalid rule %q = %q: %v", e.Key, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
