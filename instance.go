package lox

// Instance is a mutable, reference-shared lox class instance: field writes
// through any alias are visible through every other reference to the same
// instance (spec §3.2).
type Instance struct {
	class  *Class
	fields map[string]interface{}
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]interface{})}
}

func (i *Instance) String() string {
	return i.class.Name + " instance"
}

func (i *Instance) Get(name Token) (interface{}, error) {
	if val, ok := i.fields[name.Lexeme]; ok {
		return val, nil
	}

	return nil, NewRuntimeError(UndefinedProperty, name, "Undefined property '"+name.Lexeme+"'.")
}

func (i *Instance) Set(name Token, value interface{}) {
	i.fields[name.Lexeme] = value
}
