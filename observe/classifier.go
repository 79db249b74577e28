package observe

import (
	"time"

	"github.com/verdictlab/verdict/classify"
)

// Classifier wraps a classify.Classifier and reports every decision to an
// Observer. It is safe for concurrent use when the observer is.
type Classifier struct {
	inner    *classify.Classifier
	observer Observer
	nowFn    func() time.Time
}

// NewClassifier wraps c. A nil observer is replaced with NoopObserver.
func NewClassifier(c *classify.Classifier, o Observer) *Classifier {
	if o == nil {
		o = NoopObserver{}
	}
	return &Classifier{inner: c, observer: o, nowFn: time.Now}
}

// Unwrap returns the wrapped classifier.
func (c *Classifier) Unwrap() *classify.Classifier { return c.inner }

// ShouldRetry classifies err, emits a Decision, and returns the verdict.
func (c *Classifier) ShouldRetry(err error) bool {
	start := c.nowFn()
	ex := c.inner.Explain(err)
	d := Decision{
		Err:     err,
		Matched: ex.Matched,
		Action:  ex.Action,
		Depth:   ex.Depth,
		Retry:   ex.Retry(),
		Elapsed: c.nowFn().Sub(start),
	}
	if ex.Matched {
		d.Rule = ex.Rule.String()
	}
	c.observer.OnDecision(d)
	return d.Retry
}
