package hierarchy

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// Reserved names of the kinds every registry is seeded with.
const (
	RootKindName = "error"
	SQLKindName  = "sql"
)

// ErrKindExists is returned by Define for a name that is already taken.
var ErrKindExists = errors.New("verdict: kind already defined")

// Registry is a thread-safe table of kinds plus bindings from Go error types
// to kinds. It is intended to be populated at startup and read afterwards,
// but all operations are safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	kinds    map[string]*Kind
	bindings map[reflect.Type]*Kind

	root *Kind
	sql  *Kind
}

// NewRegistry returns a registry seeded with the builtin kinds: the root kind
// "error", which every error belongs to, and "sql", its child, which covers
// any error exposing a SQLSTATE code.
func NewRegistry() *Registry {
	root := &Kind{name: RootKindName}
	sql := &Kind{name: SQLKindName, parent: root}
	return &Registry{
		kinds:    map[string]*Kind{RootKindName: root, SQLKindName: sql},
		bindings: make(map[reflect.Type]*Kind),
		root:     root,
		sql:      sql,
	}
}

// Root returns the builtin root kind.
func (r *Registry) Root() *Kind { return r.root }

// SQL returns the builtin kind for errors that carry a SQLSTATE code.
func (r *Registry) SQL() *Kind { return r.sql }

// Define adds a kind under parent. A nil parent places the kind directly
// under the root. Names must be unique within the registry.
func (r *Registry) Define(name string, parent *Kind) (*Kind, error) {
	if name == "" {
		return nil, fmt.Errorf("verdict: kind name must not be empty")
	}
	if parent == nil {
		parent = r.root
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.kinds[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrKindExists, name)
	}
	k := &Kind{name: name, parent: parent}
	r.kinds[name] = k
	return k, nil
}

// MustDefine is Define, panicking on error. Meant for startup wiring.
func (r *Registry) MustDefine(name string, parent *Kind) *Kind {
	k, err := r.Define(name, parent)
	if err != nil {
		panic(err)
	}
	return k
}

// Resolve looks up a kind by name.
func (r *Registry) Resolve(name string) (*Kind, bool) {
	r.mu.RLock()
	k, ok := r.kinds[name]
	r.mu.RUnlock()
	return k, ok
}

// Bind associates a concrete Go error type with a kind, so that errors which
// do not implement Kinder still classify as something more precise than the
// root. Later bindings for the same type replace earlier ones.
func (r *Registry) Bind(t reflect.Type, k *Kind) {
	if t == nil || k == nil {
		return
	}
	r.mu.Lock()
	r.bindings[t] = k
	r.mu.Unlock()
}

// BindFor binds the reflect type of E to k.
func BindFor[E error](r *Registry, k *Kind) {
	var zero E
	r.Bind(reflect.TypeOf(zero), k)
}

// KindOf resolves the kind of err. Resolution order: the Kinder interface,
// a reflect-type binding, the sql builtin for errors exposing a SQLSTATE
// code, and finally the root kind. A nil error has no kind.
func (r *Registry) KindOf(err error) *Kind {
	if err == nil {
		return nil
	}
	if kd, ok := err.(Kinder); ok {
		if k := kd.Kind(); k != nil {
			return k
		}
	}

	r.mu.RLock()
	k, ok := r.bindings[reflect.TypeOf(err)]
	r.mu.RUnlock()
	if ok {
		return k
	}

	if _, ok := err.(SQLStater); ok {
		return r.sql
	}
	return r.root
}
