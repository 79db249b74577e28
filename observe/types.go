// Package observe reports classification decisions to logging and metrics
// backends. The classifier core itself never logs; wrap it in a Classifier
// from this package to see what it decides.
package observe

import (
	"time"

	"github.com/verdictlab/verdict/classify"
)

// Decision is the structured record of a single ShouldRetry call.
type Decision struct {
	// Err is the error the caller asked about (the outermost wrapper).
	Err error

	// Matched is false when no rule applied anywhere in the cause chain.
	Matched bool
	// Rule is the configuration form of the winning rule, empty when
	// nothing matched.
	Rule string
	// Action is the winning rule's action, Ignore when nothing matched.
	Action classify.Action
	// Depth is the matched chain element's distance from the root cause.
	Depth int

	// Retry is the final verdict handed to the caller.
	Retry bool

	Elapsed time.Duration
}

// Observer receives one callback per classification.
//
// Callbacks run synchronously on the classifying goroutine and may be invoked
// concurrently; implementations must be cheap and thread-safe.
type Observer interface {
	OnDecision(d Decision)
}

// NoopObserver implements Observer and discards everything.
type NoopObserver struct{}

func (NoopObserver) OnDecision(Decision) {}

// MultiObserver fans a decision out to multiple observers.
type MultiObserver struct {
	Observers []Observer
}

func (m MultiObserver) OnDecision(d Decision) {
	for _, o := range m.Observers {
		if o != nil {
			o.OnDecision(d)
		}
	}
}
