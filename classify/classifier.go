package classify

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/verdictlab/verdict/hierarchy"
)

// sqlStatePrefix marks ruleset keys that match on a SQLSTATE code instead of
// a kind name. The remainder of the key segment is the code itself.
const sqlStatePrefix = "sqlState."

// Classifier evaluates errors against an immutable, precedence-sorted ruleset.
// It is safe for concurrent use; build one per ruleset and share it.
type Classifier struct {
	registry *hierarchy.Registry
	rules    []Rule

	// byKind memoizes the applicable-rule subsequence per kind. Entries are
	// written once and never change, since rules is fixed at construction.
	mu     sync.RWMutex
	byKind map[*hierarchy.Kind][]Rule
}

// New builds a Classifier from a ruleset mapping keys of the form
// "kindName[;pattern]" or "sqlState.CODE[;pattern]" to "RETRY" or "THROW".
// Construction fails on the first invalid entry; no partial classifier is
// ever returned.
func New(reg *hierarchy.Registry, ruleset map[string]string) (*Classifier, error) {
	if reg == nil {
		return nil, errors.New("verdict: nil registry")
	}

	rules := make([]Rule, 0, len(ruleset))
	seen := make(map[string]string, len(ruleset))
	for key, value := range ruleset {
		r, err := parseRule(reg, key, value)
		if err != nil {
			return nil, err
		}

		id := ruleIdentity(r)
		if prev, ok := seen[id]; ok {
			return nil, &ConfigError{Key: key, Value: value,
				Err: fmt.Errorf("%w: conflicts with %q", ErrDuplicateRule, prev)}
		}
		seen[id] = key
		rules = append(rules, r)
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return compareRules(rules[i], rules[j]) < 0
	})

	return &Classifier{
		registry: reg,
		rules:    rules,
		byKind:   make(map[*hierarchy.Kind][]Rule),
	}, nil
}

func parseRule(reg *hierarchy.Registry, key, value string) (Rule, error) {
	action, err := ParseAction(value)
	if err != nil {
		return Rule{}, &ConfigError{Key: key, Value: value, Err: err}
	}

	name := key
	patternText := ""
	if idx := strings.Index(key, ";"); idx != -1 {
		name = key[:idx]
		patternText = key[idx+1:]
	}

	var pattern *regexp.Regexp
	if patternText != "" {
		pattern, err = regexp.Compile(patternText)
		if err != nil {
			return Rule{}, &ConfigError{Key: key, Value: value,
				Err: fmt.Errorf("%w: %v", ErrBadPattern, err)}
		}
	}

	r := Rule{action: action, pattern: pattern}
	if strings.HasPrefix(name, sqlStatePrefix) {
		r.code = name[len(sqlStatePrefix):]
		if r.code == "" {
			return Rule{}, &ConfigError{Key: key, Value: value,
				Err: fmt.Errorf("%w: empty sqlState code", ErrUnknownKind)}
		}
		r.target = reg.SQL()
	} else {
		target, ok := reg.Resolve(name)
		if !ok {
			return Rule{}, &ConfigError{Key: key, Value: value,
				Err: fmt.Errorf("%w: %q", ErrUnknownKind, name)}
		}
		r.target = target
	}
	return r, nil
}

// ruleIdentity keys duplicate detection on everything but the action.
func ruleIdentity(r Rule) string {
	return r.target.Name() + "\x00" + r.code + "\x00" + patternSource(r)
}

// Rules returns a copy of the ruleset in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// ShouldRetry reports whether the operation that produced err should be
// retried. The error's cause chain is examined innermost-first, each element
// against the rules applicable to its kind in precedence order; the first
// rule to yield a non-Ignore action decides. Errors nothing matches are not
// retried. It never fails and performs no I/O.
func (c *Classifier) ShouldRetry(err error) bool {
	return c.Explain(err).Retry()
}

// Explanation describes how a classification was decided. When Matched is
// false no rule applied anywhere in the chain and the zero value is returned.
type Explanation struct {
	Matched bool
	Rule    Rule
	Action  Action
	// Cause is the chain element the rule matched.
	Cause error
	// Depth is Cause's position in the chain, innermost-first: the root
	// cause is depth 0.
	Depth int
}

// Retry reports the final verdict: true only for a matched Retry action.
func (e Explanation) Retry() bool {
	return e.Matched && e.Action == Retry
}

// Explain classifies err and reports which rule, if any, decided the outcome.
func (c *Classifier) Explain(err error) Explanation {
	var chain []error
	for e := err; e != nil; e = errors.Unwrap(e) {
		chain = append(chain, e)
	}

	// Causal (detail) errors before the errors that wrap them.
	for i := len(chain) - 1; i >= 0; i-- {
		e := chain[i]
		kind := c.registry.KindOf(e)
		msg := e.Error()
		for _, r := range c.rulesFor(kind) {
			if action := r.Decide(kind, e, msg); action != Ignore {
				return Explanation{
					Matched: true,
					Rule:    r,
					Action:  action,
					Cause:   e,
					Depth:   len(chain) - 1 - i,
				}
			}
		}
	}
	return Explanation{}
}

// rulesFor returns the memoized, order-preserving subsequence of rules whose
// target covers kind. Concurrent first requests for the same kind may both
// compute the list; the computation is pure, so whichever entry lands is
// correct and the insert is double-checked to keep it stable.
func (c *Classifier) rulesFor(kind *hierarchy.Kind) []Rule {
	c.mu.RLock()
	rs, ok := c.byKind[kind]
	c.mu.RUnlock()
	if ok {
		return rs
	}

	var filtered []Rule
	for _, r := range c.rules {
		if r.AppliesTo(kind) {
			filtered = append(filtered, r)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.byKind[kind]; ok {
		return cached
	}
	c.byKind[kind] = filtered
	return filtered
}
