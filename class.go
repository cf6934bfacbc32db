package lox

// Class is a lox class value. Per the Non-goals (no inheritance, no bound
// `this` methods), methods are parsed into the declaration but never
// consulted by Get/Call — see interpreter.go's VisitClassStmt and §9 of the
// spec for the open question this intentionally leaves unresolved.
type Class struct {
	Name    string
	methods map[string]*FunctionStmt
}

func NewClass(name string, methods map[string]*FunctionStmt) *Class {
	return &Class{Name: name, methods: methods}
}

func (c *Class) String() string {
	return c.Name
}

// Call constructs a fresh instance with an empty field map. Arity is always
// 0: this specification has no user-defined constructor.
func (c *Class) Call(interpreter *Interpreter, arguments []interface{}) (interface{}, error) {
	return NewInstance(c), nil
}

func (c *Class) Arity() int {
	return 0
}
