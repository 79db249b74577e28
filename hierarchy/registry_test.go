package hierarchy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type kindedErr struct{ kind *Kind }

func (e *kindedErr) Error() string { return "kinded" }
func (e *kindedErr) Kind() *Kind   { return e.kind }

type codedErr struct{}

func (e *codedErr) Error() string    { return "coded" }
func (e *codedErr) SQLState() string { return "40001" }

type plainErr struct{}

func (e *plainErr) Error() string { return "plain" }

func TestRegistry_Builtins(t *testing.T) {
	reg := NewRegistry()

	root, ok := reg.Resolve(RootKindName)
	require.True(t, ok)
	assert.Same(t, reg.Root(), root)

	sql, ok := reg.Resolve(SQLKindName)
	require.True(t, ok)
	assert.Same(t, reg.SQL(), sql)
	assert.Same(t, root, sql.Parent())
}

func TestRegistry_Define(t *testing.T) {
	reg := NewRegistry()

	net, err := reg.Define("net", nil)
	require.NoError(t, err)
	assert.Same(t, reg.Root(), net.Parent())
	assert.Equal(t, "net", net.Name())

	timeout, err := reg.Define("net.timeout", net)
	require.NoError(t, err)
	assert.Same(t, net, timeout.Parent())

	_, err = reg.Define("net", nil)
	assert.ErrorIs(t, err, ErrKindExists)

	_, err = reg.Define("", nil)
	assert.Error(t, err)

	got, ok := reg.Resolve("net.timeout")
	require.True(t, ok)
	assert.Same(t, timeout, got)

	_, ok = reg.Resolve("bogus")
	assert.False(t, ok)
}

func TestKind_Is(t *testing.T) {
	reg := NewRegistry()
	a := reg.MustDefine("a", nil)
	b := reg.MustDefine("b", a)
	c := reg.MustDefine("c", b)
	other := reg.MustDefine("other", nil)

	assert.True(t, a.Is(a))
	assert.True(t, c.Is(a))
	assert.True(t, c.Is(b))
	assert.True(t, c.Is(reg.Root()))
	assert.False(t, a.Is(c))
	assert.False(t, c.Is(other))
	assert.False(t, c.Is(nil))

	var nilKind *Kind
	assert.False(t, nilKind.Is(a))
	assert.Equal(t, "", nilKind.Name())
}

func TestRegistry_KindOf(t *testing.T) {
	reg := NewRegistry()
	custom := reg.MustDefine("custom", nil)
	bound := reg.MustDefine("bound", nil)
	BindFor[*plainErr](reg, bound)

	// Kinder interface wins over everything.
	assert.Same(t, custom, reg.KindOf(&kindedErr{kind: custom}))

	// Reflect-type bindings come next.
	assert.Same(t, bound, reg.KindOf(&plainErr{}))

	// SQLSTATE capability maps to the sql builtin.
	assert.Same(t, reg.SQL(), reg.KindOf(&codedErr{}))

	// Everything else is at least an error.
	assert.Same(t, reg.Root(), reg.KindOf(errors.New("anything")))

	assert.Nil(t, reg.KindOf(nil))
}

func TestRegistry_KindOf_NilKinderFallsThrough(t *testing.T) {
	reg := NewRegistry()
	assert.Same(t, reg.Root(), reg.KindOf(&kindedErr{kind: nil}))
}
