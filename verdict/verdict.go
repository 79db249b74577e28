// Package verdict is the construction front door for the classifier core.
package verdict

import (
	"context"

	"github.com/verdictlab/verdict/classify"
	"github.com/verdictlab/verdict/hierarchy"
	"github.com/verdictlab/verdict/ruleio"
)

// Aliases for the core types, so most callers only import this package.
type (
	Classifier  = classify.Classifier
	Rule        = classify.Rule
	Action      = classify.Action
	Explanation = classify.Explanation
	Registry    = hierarchy.Registry
	Kind        = hierarchy.Kind
)

const (
	Retry = classify.Retry
	Throw = classify.Throw
)

// NewRegistry returns a kind registry seeded with the builtin kinds.
func NewRegistry() *Registry { return hierarchy.NewRegistry() }

// New builds a classifier from an in-memory ruleset.
func New(reg *Registry, ruleset map[string]string) (*Classifier, error) {
	return classify.New(reg, ruleset)
}

// FromFile builds a classifier from a properties or YAML ruleset file.
func FromFile(ctx context.Context, reg *Registry, path string) (*Classifier, error) {
	return ruleio.Build(ctx, reg, ruleio.File{Path: path})
}

// FromSource builds a classifier from any ruleset source.
func FromSource(ctx context.Context, reg *Registry, src ruleio.Source) (*Classifier, error) {
	return ruleio.Build(ctx, reg, src)
}

// classifiers backs Register, Lookup, and ShouldRetry.
var classifiers = classify.NewRegistry()

// Register adds c to the package-level classifier table under name, for
// applications that keep separate rulesets per concern (e.g. "db", "queue").
func Register(name string, c *Classifier) { classifiers.Register(name, c) }

// Lookup returns the classifier registered under name.
func Lookup(name string) (*Classifier, bool) { return classifiers.Get(name) }

// ShouldRetry classifies err with the named classifier. An unregistered
// name never retries.
func ShouldRetry(name string, err error) bool {
	c, ok := classifiers.Get(name)
	return ok && c.ShouldRetry(err)
}
