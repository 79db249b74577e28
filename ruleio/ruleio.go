// Package ruleio loads classification rulesets from external sources.
//
// The classifier core consumes a plain key/value mapping; this package owns
// getting that mapping out of files, in-memory configuration, or a shared
// Redis hash. Sources are consulted once, at classifier construction; there
// is no hot reload. Swap in a freshly built classifier to change policy.
package ruleio

import (
	"context"
	"errors"

	"github.com/verdictlab/verdict/classify"
	"github.com/verdictlab/verdict/hierarchy"
)

var (
	// ErrSourceUnavailable indicates the source could not be reached or read.
	ErrSourceUnavailable = errors.New("verdict: ruleset source unavailable")
	// ErrRulesetNotFound indicates the source holds no ruleset at the
	// requested location.
	ErrRulesetNotFound = errors.New("verdict: ruleset not found")
)

// Source supplies a raw ruleset mapping.
type Source interface {
	// Load returns the ruleset. It must return ErrRulesetNotFound when the
	// source is reachable but holds nothing at the configured location.
	Load(ctx context.Context) (map[string]string, error)
}

// Static is an in-process Source backed by a map.
type Static map[string]string

func (s Static) Load(context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}

// Build loads a ruleset from src and constructs a classifier from it.
func Build(ctx context.Context, reg *hierarchy.Registry, src Source) (*classify.Classifier, error) {
	ruleset, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	return classify.New(reg, ruleset)
}
