package lox

import "time"

// clockFn is the mandated monotonic clock native: arity 0, returns a
// Number of fractional seconds since an arbitrary epoch (spec §4.3.5).
type clockFn struct{}

// clockEpoch is the epoch clock() counts from; time.Since uses Go's
// monotonic clock reading, so wall-clock changes do not affect it.
var clockEpoch = time.Now()

func (c clockFn) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	return time.Since(clockEpoch).Seconds(), nil
}

func (c clockFn) Arity() int {
	return 0
}

func (c clockFn) String() string {
	return "<native fn>"
}

// ciTestAddFn is the mandated testing-adder native: arity 2, Number+Number
// or String+String, anything else is a TypeError (spec §4.3.5). It has no
// purpose beyond giving the test harness a native callable to exercise.
type ciTestAddFn struct{}

func (c ciTestAddFn) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	a, b := arguments[0], arguments[1]

	if af, ok := a.(float64); ok {
		if bf, ok := b.(float64); ok {
			return af + bf, nil
		}
	}

	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as + bs, nil
		}
	}

	return nil, NewRuntimeError(TypeErr, Token{}, "_ci_test_add requires two numbers or two strings.")
}

func (c ciTestAddFn) Arity() int {
	return 2
}

func (c ciTestAddFn) String() string {
	return "<native fn>"
}

func defineNatives(globals *Environment) {
	globals.Define("clock", clockFn{})
	globals.Define("_ci_test_add", ciTestAddFn{})
}
