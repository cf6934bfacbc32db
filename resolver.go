package lox

import (
	"github.com/andrz/loxi/util"
)

// FunctionType tracks whether the resolver is currently inside a function
// body, used only to reject a top-level `return` (spec §4.2).
type FunctionType int

const (
	FunctionTypeNone FunctionType = iota
	FunctionTypeFunction
)

// varState tracks the declare/define/read lifecycle of a name within a
// single block scope (spec §4.2).
type varState struct {
	declared bool
	defined  bool
	read     bool
	token    Token
}

// Resolver performs the single depth-first static pass that annotates every
// Variable/Assign node with its enclosing-scope depth (spec §4.2). It never
// evaluates anything; it only populates the interpreter's resolution map
// and collects static diagnostics.
type Resolver struct {
	interpreter *Interpreter
	scopes      util.Stack[map[string]*varState]

	currentFunction FunctionType

	runtime *Runtime
	errors  []*StaticError
}

func NewResolver(i *Interpreter, runtime *Runtime) *Resolver {
	stack := util.NewStack[map[string]*varState]()
	return &Resolver{interpreter: i, scopes: *stack, runtime: runtime, currentFunction: FunctionTypeNone}
}

// Errors returns every static error collected during the last Resolve call.
func (r *Resolver) Errors() []*StaticError {
	return r.errors
}

func (r *Resolver) Resolve(statements []Stmt) []*StaticError {
	r.errors = nil
	r.resolveStatements(statements)
	return r.errors
}

func (r *Resolver) addError(kind StaticErrorKind, token Token, message string) {
	r.errors = append(r.errors, &StaticError{Kind: kind, Token: token, Message: message})
	r.runtime.tokenError(token, message)
}

func (r *Resolver) resolveStatements(statements []Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(statement Stmt) {
	_ = statement.Accept(r)
}

func (r *Resolver) resolveExpr(expr Expr) {
	_, _ = expr.Accept(r)
}

// beginScope pushes a new resolver scope. Only Block, function bodies, and
// the desugared body of a for-loop push a scope (spec §4.2) — a top-level
// program runs with an empty scope stack.
func (r *Resolver) beginScope() {
	r.scopes.Push(make(map[string]*varState))
}

// endScope pops the current scope, warning for any locally-declared name
// that was never read (spec §4.2).
func (r *Resolver) endScope() {
	scope, err := r.scopes.Peek()
	if err == nil {
		for name, state := range scope {
			if !state.read {
				r.runtime.warn(state.token, "Local variable '"+name+"' is never read.")
			}
		}
	}

	r.scopes.Pop()
}

// declare adds name to the innermost scope, marked not-yet-defined. It is a
// static error to declare a name already present in that same scope —
// shadowing across scopes is fine, shadowing within one scope is not.
func (r *Resolver) declare(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	scope, _ := r.scopes.Peek()
	if _, ok := scope[name.Lexeme]; ok {
		r.addError(AlreadyDeclared, name, "Already a variable with this name in this scope.")
	}

	scope[name.Lexeme] = &varState{declared: true, token: name}
}

func (r *Resolver) define(name Token) {
	if r.scopes.IsEmpty() {
		return
	}

	scope, _ := r.scopes.Peek()
	if state, ok := scope[name.Lexeme]; ok {
		state.defined = true
	}
}

// resolveLocal walks the scope stack from innermost outward. The first
// enclosing scope holding the name determines the resolution depth. If no
// scope holds it, no entry is recorded and the reference is global.
func (r *Resolver) resolveLocal(nodeID NodeID, name Token) {
	for i := r.scopes.Size() - 1; i >= 0; i-- {
		scope, _ := r.scopes.Get(i)
		if state, ok := scope[name.Lexeme]; ok {
			state.read = true
			r.interpreter.resolve(nodeID, r.scopes.Size()-1-i)
			return
		}
	}
}

func (r *Resolver) resolveFunction(function *FunctionStmt, funcType FunctionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = funcType

	r.beginScope()
	for _, param := range function.Params {
		r.declare(param)
		r.define(param)
	}

	r.resolveStatements(function.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

// --- Expr visitor ---

func (r *Resolver) VisitAssignExpr(expr *Assign) (interface{}, error) {
	r.resolveExpr(expr.Value)
	r.resolveLocal(expr.ID, expr.Name)
	return nil, nil
}

func (r *Resolver) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	r.resolveExpr(expr.Left)
	r.resolveExpr(expr.Right)
	return nil, nil
}

func (r *Resolver) VisitCallExpr(expr *Call) (interface{}, error) {
	r.resolveExpr(expr.Callee)
	for _, argument := range expr.Arguments {
		r.resolveExpr(argument)
	}
	return nil, nil
}

func (r *Resolver) VisitGetExpr(expr *Get) (interface{}, error) {
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitSetExpr(expr *Set) (interface{}, error) {
	r.resolveExpr(expr.Value)
	r.resolveExpr(expr.Object)
	return nil, nil
}

func (r *Resolver) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	r.resolveExpr(expr.Expression)
	return nil, nil
}

func (r *Resolver) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	return nil, nil
}

func (r *Resolver) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	r.resolveExpr(expr.Right)
	return nil, nil
}

// VisitVarExpr resolves a variable reference. If the name is declared but
// not yet defined in the innermost scope, the reference is to the
// variable's own initializer — a static error (spec §4.2).
func (r *Resolver) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	if !r.scopes.IsEmpty() {
		scope, err := r.scopes.Peek()
		if err == nil {
			if state, ok := scope[expr.Name.Lexeme]; ok && state.declared && !state.defined {
				r.addError(SelfReferentialInit, expr.Name, "Can't read local variable in its own initializer.")
			}
		}
	}

	r.resolveLocal(expr.ID, expr.Name)
	return nil, nil
}

// --- Stmt visitor ---

func (r *Resolver) VisitBlockStmt(stmt *Block) error {
	r.beginScope()
	r.resolveStatements(stmt.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitClassStmt(stmt *ClassStmt) error {
	r.declare(stmt.Name)
	r.define(stmt.Name)

	for _, method := range stmt.Methods {
		r.resolveFunction(method, FunctionTypeFunction)
	}

	return nil
}

func (r *Resolver) VisitExpressionExpr(expr *Expression) error {
	r.resolveExpr(expr.Expression)
	return nil
}

func (r *Resolver) VisitPrintExpr(expr *Print) error {
	r.resolveExpr(expr.Expression)
	return nil
}

// VisitVarStmt resolves a variable declaration: declare before visiting the
// initializer (so self-reference can be detected), then define.
func (r *Resolver) VisitVarStmt(stmt *VarStmt) error {
	r.declare(stmt.Name)
	if stmt.Initializer != nil {
		r.resolveExpr(stmt.Initializer)
	}
	r.define(stmt.Name)
	return nil
}

func (r *Resolver) VisitIfStmt(stmt *IfStmt) error {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.ThenBranch)
	if stmt.ElseBranch != nil {
		r.resolveStmt(stmt.ElseBranch)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(stmt *WhileStmt) error {
	r.resolveExpr(stmt.Condition)
	r.resolveStmt(stmt.Body)
	return nil
}

// VisitFunctionStmt declares+defines the function name eagerly (before
// resolving the body) so the function can recursively refer to itself.
func (r *Resolver) VisitFunctionStmt(stmt *FunctionStmt) error {
	r.declare(stmt.Name)
	r.define(stmt.Name)

	r.resolveFunction(stmt, FunctionTypeFunction)
	return nil
}

func (r *Resolver) VisitReturnStmt(stmt *ReturnStmt) error {
	if r.currentFunction == FunctionTypeNone {
		r.addError(ReturnAtTopLevel, stmt.Keyword, "Can't return from top-level code.")
	}

	if stmt.Value != nil {
		r.resolveExpr(stmt.Value)
	}

	return nil
}
