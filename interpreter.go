package lox

import (
	"fmt"
	"strconv"

	"github.com/andrz/loxi/internal/tools"
)

// Interpreter is the tree-walking evaluator (spec §4.3). It holds the two
// pieces of state the whole evaluation shares: the current environment
// pointer and the resolution map produced by the Resolver.
type Interpreter struct {
	runtime     *Runtime
	globals     *Environment
	environment *Environment
	locals      map[NodeID]int
}

func NewInterpreter(runtime *Runtime) *Interpreter {
	globals := NewEnvironment(nil)
	defineNatives(globals)

	return &Interpreter{
		runtime:     runtime,
		globals:     globals,
		environment: globals,
		locals:      make(map[NodeID]int),
	}
}

// resolve records, for the node identified by id, the scope depth computed
// by the Resolver (spec §3.4).
func (i *Interpreter) resolve(id NodeID, depth int) {
	i.locals[id] = depth
}

// Locals exposes the resolver's NodeID -> depth map, used by `loxi resolve`
// to dump resolution results alongside the AST.
func (i *Interpreter) Locals() map[NodeID]int {
	return i.locals
}

func (i *Interpreter) Interpret(statements []Stmt) {
	for _, stmt := range statements {
		err := i.execute(stmt)
		if err != nil {
			i.runtime.runtimeError(err)
			return
		}
	}
}

func (i *Interpreter) execute(stmt Stmt) error {
	return stmt.Accept(i)
}

func (i *Interpreter) VisitBlockStmt(stmt *Block) error {
	return i.executeBlock(stmt.Statements, NewEnvironment(i.environment))
}

// executeBlock always restores the previous environment pointer before
// returning, on every exit path including an error or ReturnSignal unwind
// (spec invariant 3, §5).
func (i *Interpreter) executeBlock(statements []Stmt, env *Environment) error {
	previousEnv := i.environment
	defer func() { i.environment = previousEnv }()

	i.environment = env
	for _, stmt := range statements {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

// VisitVarStmt interprets a variable declaration. If the variable has an
// initializer, it is evaluated first; otherwise the binding defaults to Nil,
// which allows uninitialized variables like other dynamically typed
// languages.
func (i *Interpreter) VisitVarStmt(stmt *VarStmt) error {
	var val interface{}
	var err error
	if stmt.Initializer != nil {
		val, err = i.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
	}

	i.environment.Define(stmt.Name.Lexeme, val)
	return nil
}

func (i *Interpreter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return i.lookUpVariable(expr.Name, expr.ID)
}

func (i *Interpreter) lookUpVariable(name Token, id NodeID) (interface{}, error) {
	if depth, ok := i.locals[id]; ok {
		return i.environment.GetAt(depth, name.Lexeme), nil
	}

	return i.globals.Get(name)
}

// VisitAssignExpr evaluates the right hand side to get the value, then
// stores it in the named variable using the resolver's recorded depth, or
// in globals if unresolved. Assignment is itself an expression, so the
// assigned value is the result.
func (i *Interpreter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	val, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	if depth, ok := i.locals[expr.ID]; ok {
		i.environment.AssignAt(depth, expr.Name, val)
	} else if err := i.globals.Assign(expr.Name, val); err != nil {
		return nil, err
	}

	return val, nil
}

// VisitExpressionExpr interprets an expression statement. Statements do not
// produce a value the surrounding code can observe, so the result is
// discarded.
func (i *Interpreter) VisitExpressionExpr(expr *Expression) error {
	_, err := i.evaluate(expr.Expression)
	return err
}

func (i *Interpreter) VisitIfStmt(stmt *IfStmt) error {
	condition, err := i.evaluate(stmt.Condition)
	if err != nil {
		return err
	}

	if i.isTruthy(condition) {
		return i.execute(stmt.ThenBranch)
	} else if stmt.ElseBranch != nil {
		return i.execute(stmt.ElseBranch)
	}

	return nil
}

func (i *Interpreter) VisitWhileStmt(stmt *WhileStmt) error {
	for {
		condition, err := i.evaluate(stmt.Condition)
		if err != nil {
			return err
		}

		if !i.isTruthy(condition) {
			return nil
		}

		if err := i.execute(stmt.Body); err != nil {
			return err
		}
	}
}

// VisitFunctionStmt builds a closure capturing the current environment and
// binds it under the function's name (spec §4.3.1).
func (i *Interpreter) VisitFunctionStmt(stmt *FunctionStmt) error {
	function := NewFunction(stmt, i.environment)
	i.environment.Define(stmt.Name.Lexeme, function)
	return nil
}

func (i *Interpreter) VisitReturnStmt(stmt *ReturnStmt) error {
	var value interface{}
	if stmt.Value != nil {
		v, err := i.evaluate(stmt.Value)
		if err != nil {
			return err
		}
		value = v
	}

	return &ReturnSignal{Value: value}
}

// VisitClassStmt defines the class name to Nil first (so the class's own
// methods could in principle refer to the class by name, mirroring the
// two-step function binding), then constructs and assigns the class value.
// Methods are recorded but never consulted by Get (spec §9, open question).
func (i *Interpreter) VisitClassStmt(stmt *ClassStmt) error {
	i.environment.Define(stmt.Name.Lexeme, nil)

	methods := make(map[string]*FunctionStmt, len(stmt.Methods))
	for _, method := range stmt.Methods {
		methods[method.Name.Lexeme] = method
	}

	class := NewClass(stmt.Name.Lexeme, methods)
	return i.environment.Assign(stmt.Name, class)
}

func (i *Interpreter) VisitPrintExpr(expr *Print) error {
	val, err := i.evaluate(expr.Expression)
	if err != nil {
		return err
	}

	fmt.Fprintln(i.runtime.stdout(), i.stringify(val))
	return nil
}

// stringify renders a runtime value the way PrintStmt does, per spec
// §4.3.1: nil -> "nil", booleans -> true/false, numbers -> shortest
// round-trip decimal, strings -> raw contents, callables/classes/instances
// -> their String().
func (i *Interpreter) stringify(val interface{}) string {
	if val == nil {
		return "nil"
	}

	switch v := val.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(val)
	}
}

// formatNumber renders an integral float without a trailing ".0" (stable,
// implementation-defined per spec §4.3.1) and everything else via the
// shortest round-trip decimal representation.
func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (i *Interpreter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Greater:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) > right.(float64), nil
	case GreaterEqual:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) >= right.(float64), nil
	case Less:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) < right.(float64), nil
	case LessEqual:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) <= right.(float64), nil
	case BangEqual:
		return !i.isEqual(left, right), nil
	case EqualEqual:
		return i.isEqual(left, right), nil
	case Minus:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) - right.(float64), nil
	case Plus:
		return i.evaluatePlus(expr.Operator, left, right)
	case Slash:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		if right.(float64) == 0 {
			return nil, NewRuntimeError(DivisionByZero, expr.Operator, "Division by zero.")
		}
		return left.(float64) / right.(float64), nil
	case Star:
		if err := i.checkNumberOperands(expr.Operator, left, right); err != nil {
			return nil, err
		}
		return left.(float64) * right.(float64), nil
	}

	// unreachable
	return nil, nil
}

// evaluatePlus implements spec §4.3.2's `+` rule: Number+Number adds,
// String+String concatenates, and a mixed Number/String pair coerces the
// non-string operand via the PrintStmt rendering rule before concatenating.
// Any other combination is a TypeError.
func (i *Interpreter) evaluatePlus(operator Token, left, right interface{}) (interface{}, error) {
	leftNum, leftIsNum := left.(float64)
	rightNum, rightIsNum := right.(float64)
	leftStr, leftIsStr := left.(string)
	rightStr, rightIsStr := right.(string)

	if leftIsNum && rightIsNum {
		return leftNum + rightNum, nil
	}

	if leftIsStr && rightIsStr {
		return leftStr + rightStr, nil
	}

	if leftIsStr && !rightIsStr {
		return leftStr + i.stringify(right), nil
	}

	if rightIsStr && !leftIsStr {
		return i.stringify(left) + rightStr, nil
	}

	return nil, NewRuntimeError(TypeErr, operator, "Operands must be two numbers or two strings.")
}

func (i *Interpreter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	// Short-circuit: the right operand is evaluated only when the left
	// operand does not already determine the result (spec §4.3.2,
	// invariant 4).
	if expr.Operator.Type == Or {
		if i.isTruthy(left) {
			return left, nil
		}
	} else {
		if !i.isTruthy(left) {
			return left, nil
		}
	}

	return i.evaluate(expr.Right)
}

func (i *Interpreter) VisitCallExpr(expr *Call) (interface{}, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]interface{}, 0, len(expr.Arguments))
	for _, argument := range expr.Arguments {
		val, err := i.evaluate(argument)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, val)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, NewRuntimeError(NotCallable, expr.CloseParen, "Can only call functions and classes.")
	}

	if err := checkArity(callable, expr.CloseParen, arguments); err != nil {
		return nil, err
	}

	return callable.Call(i, arguments)
}

func (i *Interpreter) VisitGetExpr(expr *Get) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	if instance, ok := object.(*Instance); ok {
		return instance.Get(expr.Name)
	}

	return nil, NewRuntimeError(NotAnInstance, expr.Name, "Only instances have properties.")
}

func (i *Interpreter) VisitSetExpr(expr *Set) (interface{}, error) {
	object, err := i.evaluate(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*Instance)
	if !ok {
		return nil, NewRuntimeError(NotAnInstance, expr.Name, "Only instances have fields.")
	}

	value, err := i.evaluate(expr.Value)
	if err != nil {
		return nil, err
	}

	instance.Set(expr.Name, value)
	return value, nil
}

// VisitGroupingExpr evaluates the grouping expressions, the node that we get from
// using parenthesis around an expression. The grouping node has reference to the
// inner expression, so to evaluate it we recursively evaluate the inner subexpression.
func (i *Interpreter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return i.evaluate(expr.Expression)
}

// VisitLiteralExpr converts the literal tree node created during parsing to the
// runtime value. Which simply pulls the literal value back from the Token created
// during scanning.
func (i *Interpreter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	return expr.Value, nil
}

// VisitUnaryExpr evaluates the unary tree node. Unary expression have single subexpression that
// we need to evaluate first.
func (i *Interpreter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Operator.Type {
	case Bang:
		return !i.isTruthy(right), nil
	case Minus:
		if err := i.checkNumberOperand(expr.Operator, right); err != nil {
			return nil, err
		}
		return -right.(float64), nil
	}

	// unreachable.
	return nil, nil
}

// evaluate is a helper method that sends the expression back to the interpreter's visitor
// implementation.
func (i *Interpreter) evaluate(expr Expr) (interface{}, error) {
	return expr.Accept(i)
}

// isTruthy is a helper method that determines the truthfulness of a value. In lox the boolean value
// false and nil is considered falsy and everything else truthy.
func (i *Interpreter) isTruthy(val interface{}) bool {
	if val == nil {
		return false
	}

	if b, ok := val.(bool); ok {
		return b
	}

	return true
}

// isEqual implements spec §4.3.3: different value-kinds are never equal;
// same-kind comparisons follow the host language's native equality, which
// for float64 already gives NaN != NaN.
func (i *Interpreter) isEqual(left, right interface{}) bool {
	if left == nil && right == nil {
		return true
	}
	if left == nil || right == nil {
		return false
	}

	switch l := left.(type) {
	case float64:
		r, ok := right.(float64)
		return ok && l == r
	case string:
		r, ok := right.(string)
		return ok && l == r
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	default:
		return left == right
	}
}

func (i *Interpreter) checkNumberOperand(operator Token, operand interface{}) error {
	if tools.IsFloat64(operand) {
		return nil
	}

	return NewRuntimeError(TypeErr, operator, "Operand must be a number.")
}

func (i *Interpreter) checkNumberOperands(operator Token, left, right interface{}) error {
	if tools.IsFloat64(left) && tools.IsFloat64(right) {
		return nil
	}

	return NewRuntimeError(TypeErr, operator, "Operands must be numbers.")
}
