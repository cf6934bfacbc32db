package lox

import "fmt"

// Callable is the contract shared by native functions, user functions, and
// classes (spec §4.4): anything that admits arity and call.
type Callable interface {
	// Call evaluates the callable against already-evaluated arguments.
	Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error)

	// Arity is the number of arguments the callable expects.
	Arity() int

	// String is the stable representation used by PrintStmt rendering
	// (spec §4.3.1): "<fn NAME>" for functions, the bare name for classes.
	String() string
}

// checkArity is the helper the interpreter's call path (VisitCallExpr) runs
// before invoking any Callable, enforcing spec §4.3.2's arity rule.
func checkArity(callee Callable, paren Token, arguments []interface{}) error {
	if len(arguments) != callee.Arity() {
		return NewRuntimeError(ArityErr, paren, fmt.Sprintf(
			"Expected %d arguments but got %d.", callee.Arity(), len(arguments)))
	}
	return nil
}
