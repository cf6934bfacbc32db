package lox

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runProgram runs a whole script through the full scan -> parse -> resolve
// -> interpret pipeline and returns everything written to stdout.
func runProgram(t *testing.T, source string) (string, *Runtime) {
	t.Helper()

	var out bytes.Buffer
	runtime := NewRuntime(WithOutput(&out))
	runtime.run(source)
	return out.String(), runtime
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// S1 — closures capture live bindings (spec.md §8).
func TestClosuresCaptureLiveBindings(t *testing.T) {
	out, rt := runProgram(t, `
var a = "global";
{
  fun showA() { print a; }
  showA();
  var a = "local";
  showA();
}
`)

	require.False(t, rt.HadError())
	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"global", "global"}, lines(out))
}

// S2 — for-desugaring & iteration (spec.md §8).
func TestForDesugaringAndIteration(t *testing.T) {
	out, rt := runProgram(t, `
var sum = 0;
for (var i = 0; i < 5; i = i + 1) { sum = sum + i; }
print sum;
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"10"}, lines(out))
}

// S3 — class and instance fields (spec.md §8).
func TestClassAndInstanceFields(t *testing.T) {
	out, rt := runProgram(t, `
class Pair {}
var p = Pair();
p.x = 1; p.y = 2;
print p.x + p.y;
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"3"}, lines(out))
}

// S4 — short-circuit with observable side-effect absence (spec.md §8,
// invariant 4).
func TestShortCircuitEvaluation(t *testing.T) {
	out, rt := runProgram(t, `
fun bang() { print "evaluated"; return true; }
print true or bang();
print false and bang();
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"true", "false"}, lines(out))
}

// S5 — non-local return through nested blocks (spec.md §8).
func TestNonLocalReturnThroughNestedBlocks(t *testing.T) {
	out, rt := runProgram(t, `
fun f() {
  { { return 42; } }
  return 0;
}
print f();
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"42"}, lines(out))
}

// S6 — self-referential initializer is a static error; evaluation never
// runs (spec.md §8).
func TestSelfReferentialInitializerBlocksEvaluation(t *testing.T) {
	out, rt := runProgram(t, `{ var a = a; }`)

	assert.True(t, rt.HadError())
	assert.Empty(t, out)
}

// Invariant 2: a closure keeps using its captured environment after the
// block that created it has exited, and sees the binding's current value
// (here mutated by the closure itself) on every later call.
func TestClosureKeepsCapturedEnvironmentAcrossCalls(t *testing.T) {
	out, rt := runProgram(t, `
var counter;
{
  var count = 0;
  fun increment() { count = count + 1; return count; }
  counter = increment;
}
print counter();
print counter();
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"1", "2"}, lines(out))
}

// Invariant 5: equality is reflexive except for NaN.
func TestEqualityReflexiveExceptNaN(t *testing.T) {
	out, rt := runProgram(t, `
print 1 == 1;
print "a" == "a";
print nil == nil;
print 1 == "1";
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"true", "true", "true", "false"}, lines(out))
}

// Invariant 6: type strictness — mismatched operands raise TypeError.
func TestArithmeticTypeMismatchIsTypeError(t *testing.T) {
	out, rt := runProgram(t, `print 1 - "a";`)

	assert.True(t, rt.HadRuntimeError())
	assert.Contains(t, out, "TypeError")
}

func TestDivisionByZero(t *testing.T) {
	out, rt := runProgram(t, `print 1 / 0;`)

	assert.True(t, rt.HadRuntimeError())
	assert.Contains(t, out, "DivisionByZero")
}

func TestUndefinedPropertyAccess(t *testing.T) {
	out, rt := runProgram(t, `
class Pair {}
var p = Pair();
print p.x;
`)

	assert.True(t, rt.HadRuntimeError())
	assert.Contains(t, out, "UndefinedProperty")
}

func TestCallArityMismatch(t *testing.T) {
	out, rt := runProgram(t, `
fun add(a, b) { return a + b; }
add(1);
`)

	assert.True(t, rt.HadRuntimeError())
	assert.Contains(t, out, "ArityError")
}

func TestNativeClockIsCallable(t *testing.T) {
	out, rt := runProgram(t, `print clock() > 0;`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"true"}, lines(out))
}

func TestNativeCiTestAdd(t *testing.T) {
	out, rt := runProgram(t, `
print _ci_test_add(1, 2);
print _ci_test_add("a", "b");
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"3", "ab"}, lines(out))
}

// Numbers print without a trailing ".0" when integral.
func TestNumberStringification(t *testing.T) {
	out, rt := runProgram(t, `
print 1.0;
print 1.5;
`)

	require.False(t, rt.HadRuntimeError())
	assert.Equal(t, []string{"1", "1.5"}, lines(out))
}
