package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(lexeme string) Token {
	return NewToken(Identifiers, lexeme, nil, 1)
}

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", "global")

	val, err := env.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "global", val)
}

func TestEnvironmentGetUndefinedIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)

	_, err := env.Get(tok("missing"))
	require.Error(t, err)

	rerr, ok := err.(*RuntimeError)
	require.True(t, ok)
	assert.Equal(t, UndefinedVariable, rerr.Kind)
}

// Child scopes shadow identical names in the parent without mutating it
// (spec §4.1: "define... unconditional insert into the local map").
func TestEnvironmentShadowing(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("a", "outer")

	child := NewEnvironment(parent)
	child.Define("a", "inner")

	childVal, err := child.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "inner", childVal)

	parentVal, err := parent.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "outer", parentVal)
}

// Assignment never creates a new binding; it mutates the innermost
// existing one, walking outward (spec §4.1).
func TestEnvironmentAssignWalksChain(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("a", "outer")

	child := NewEnvironment(parent)

	require.NoError(t, child.Assign(tok("a"), "mutated"))

	val, err := parent.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "mutated", val)
}

func TestEnvironmentAssignUndefinedFails(t *testing.T) {
	env := NewEnvironment(nil)
	err := env.Assign(tok("missing"), "x")
	require.Error(t, err)
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("a", "global")

	middle := NewEnvironment(global)
	inner := NewEnvironment(middle)

	assert.Equal(t, "global", inner.GetAt(2, "a"))

	inner.AssignAt(2, tok("a"), "rewritten")
	val, err := global.Get(tok("a"))
	require.NoError(t, err)
	assert.Equal(t, "rewritten", val)
}
