// Package hierarchy models error types as a declared tree of named kinds.
//
// Classification rules target kinds rather than Go types: a rule for a kind
// applies to errors of that kind and of every kind beneath it. The tree is
// declared once at startup through a Registry; there is no reflection-based
// subtyping involved in matching.
package hierarchy

// Kind is a node in a declared error-type hierarchy. Kinds are created through
// Registry.Define and are immutable afterwards; identity is pointer identity.
type Kind struct {
	name   string
	parent *Kind
}

// Name returns the fully-qualified name the kind was defined under.
func (k *Kind) Name() string {
	if k == nil {
		return ""
	}
	return k.name
}

// Parent returns the kind's parent, or nil for the root.
func (k *Kind) Parent() *Kind {
	if k == nil {
		return nil
	}
	return k.parent
}

// Is reports whether k is ancestor itself or a descendant of it.
func (k *Kind) Is(ancestor *Kind) bool {
	if ancestor == nil {
		return false
	}
	for n := k; n != nil; n = n.parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

func (k *Kind) String() string { return k.Name() }

// Kinder is implemented by errors that declare their own kind. It takes
// priority over any reflect-type binding during classification.
type Kinder interface {
	Kind() *Kind
}

// SQLStater is the "carries a SQLSTATE error code" capability. pgconn.PgError
// satisfies it directly; other drivers can be adapted.
type SQLStater interface {
	SQLState() string
}
