package lox

// Function is a user-defined lox function: a declaration plus the
// environment reference that was live at definition time (its closure).
// Invocations always run against that captured environment, not against
// whatever environment happens to be current at the call site (spec §4.3.4).
type Function struct {
	declaration *FunctionStmt
	closure     *Environment
}

func NewFunction(declaration *FunctionStmt, closure *Environment) *Function {
	return &Function{declaration: declaration, closure: closure}
}

// Call creates a fresh environment parented by the closure, binds
// parameters to arguments in order, executes the body, and absorbs a
// ReturnSignal raised anywhere within it. Any other error propagates.
func (f *Function) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, arguments[i])
	}

	err := interpreter.executeBlock(f.declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*ReturnSignal); ok {
			return ret.Value, nil
		}
		return nil, err
	}

	return nil, nil
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

func (f *Function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}
