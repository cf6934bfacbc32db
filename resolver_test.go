package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolveSource scans, parses, and resolves source, returning the static
// errors collected during resolution. Parse errors (if any) are reported
// through the runtime but not returned here.
func resolveSource(t *testing.T, source string) []*StaticError {
	t.Helper()

	var out bytes.Buffer
	runtime := NewRuntime(WithOutput(&out))

	scanner := NewScanner(bytes.NewBufferString(source), runtime)
	tokens := scanner.ScanTokens()
	require.False(t, runtime.HadError(), "scan error: %s", out.String())

	parser := NewParser(tokens, runtime)
	statements := parser.Parse()
	require.False(t, runtime.HadError(), "parse error: %s", out.String())

	interpreter := NewInterpreter(runtime)
	resolver := NewResolver(interpreter, runtime)
	return resolver.Resolve(statements)
}

// S6 from spec.md §8: a variable referring to itself in its own
// initializer is a static error.
func TestResolverSelfReferentialInitializer(t *testing.T) {
	errs := resolveSource(t, `{ var a = a; }`)

	require.Len(t, errs, 1)
	assert.Equal(t, SelfReferentialInit, errs[0].Kind)
}

func TestResolverAlreadyDeclaredInSameScope(t *testing.T) {
	errs := resolveSource(t, `{ var a = 1; var a = 2; }`)

	require.Len(t, errs, 1)
	assert.Equal(t, AlreadyDeclared, errs[0].Kind)
}

func TestResolverShadowingAcrossScopesIsFine(t *testing.T) {
	errs := resolveSource(t, `var a = 1; { var a = 2; }`)
	assert.Empty(t, errs)
}

func TestResolverReturnAtTopLevel(t *testing.T) {
	errs := resolveSource(t, `return 1;`)

	require.Len(t, errs, 1)
	assert.Equal(t, ReturnAtTopLevel, errs[0].Kind)
}

func TestResolverReturnInsideFunctionIsFine(t *testing.T) {
	errs := resolveSource(t, `fun f() { return 1; }`)
	assert.Empty(t, errs)
}
