package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdictlab/verdict/hierarchy"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	c, err := New(hierarchy.NewRegistry(), nil)
	require.NoError(t, err)

	reg := NewRegistry()
	reg.Register("  db  ", c)

	got, ok := reg.Get("db")
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, []string{"db"}, reg.Names())
}

func TestRegistry_IgnoresInvalidInput(t *testing.T) {
	var nilReg *Registry
	nilReg.Register("name", &Classifier{})
	_, ok := nilReg.Get("name")
	assert.False(t, ok)
	assert.Nil(t, nilReg.Names())

	reg := NewRegistry()
	reg.Register("   ", &Classifier{})
	reg.Register("name", nil)

	_, ok = reg.Get("   ")
	assert.False(t, ok)
	_, ok = reg.Get("name")
	assert.False(t, ok)
	assert.Empty(t, reg.Names())
}
