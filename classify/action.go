// Package classify decides whether the operation that produced an error
// should be retried, driven by a declarative ruleset.
//
// A Classifier is built once from a key/value ruleset. Keys take the form:
//
//	kindName          = ACTION
//	kindName;regexp   = ACTION
//	sqlState.40001        = ACTION
//	sqlState.40001;regexp = ACTION
//
// where ACTION is RETRY or THROW. Kind names resolve against a
// hierarchy.Registry; a rule for a kind also covers every kind beneath it,
// and a more specific rule always wins over a broader one. When a regexp is
// given it is matched against the error message. Causal (inner) errors are
// consulted before the errors that wrap them.
package classify

import (
	"fmt"
	"strings"
)

// Action is the outcome of matching one rule against one error.
type Action int

const (
	// Ignore means the rule does not apply to the error. It is never a
	// configured outcome; evaluation falls through to the next rule.
	Ignore Action = iota
	// Retry means the operation that produced the error should be retried.
	Retry
	// Throw means the error is permanent and must be surfaced.
	Throw
)

func (a Action) String() string {
	switch a {
	case Ignore:
		return "IGNORE"
	case Retry:
		return "RETRY"
	case Throw:
		return "THROW"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ParseAction parses a configured action token. Only RETRY and THROW are
// valid configuration values; IGNORE is internal and rejected here.
func ParseAction(s string) (Action, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RETRY":
		return Retry, nil
	case "THROW":
		return Throw, nil
	default:
		return Ignore, fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}
