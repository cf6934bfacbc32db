package lox

import "github.com/google/uuid"

// NodeID is the stable per-node identity the resolver's depth map is keyed
// on. Using a generated UUID rather than bare pointer identity keeps the
// resolution map usable across snapshot/JSON dumps (cmd/loxi parse --json,
// cmd/loxi resolve) where node pointers don't round-trip.
type NodeID = uuid.UUID

func newNodeID() NodeID {
	return uuid.New()
}

// Expr is the interface for lox expressions.
type Expr interface {
	Accept(visitor Visitor) (interface{}, error)
}

type Visitor interface {
	VisitAssignExpr(expr *Assign) (interface{}, error)
	VisitBinaryExpr(expr *Binary) (interface{}, error)
	VisitCallExpr(expr *Call) (interface{}, error)
	VisitGetExpr(expr *Get) (interface{}, error)
	VisitGroupingExpr(expr *Grouping) (interface{}, error)
	VisitLiteralExpr(expr *Literal) (interface{}, error)
	VisitLogicalExpr(expr *Logical) (interface{}, error)
	VisitSetExpr(expr *Set) (interface{}, error)
	VisitUnaryExpr(expr *Unary) (interface{}, error)
	VisitVarExpr(expr *VarExpr) (interface{}, error)
}

type Assign struct {
	ID    NodeID
	Name  Token
	Value Expr
}

func (a *Assign) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitAssignExpr(a)
}

type Binary struct {
	ID       NodeID
	Left     Expr
	Operator Token
	Right    Expr
}

func (b *Binary) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitBinaryExpr(b)
}

// Call is a function or class invocation: callee(arg, arg, ...). CloseParen
// is kept (rather than the callee's token) so arity/type errors report the
// call site, following the source's choice of anchor token.
type Call struct {
	ID         NodeID
	Callee     Expr
	CloseParen Token
	Arguments  []Expr
}

func (c *Call) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitCallExpr(c)
}

// Get is a property read: object.name.
type Get struct {
	ID     NodeID
	Object Expr
	Name   Token
}

func (g *Get) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitGetExpr(g)
}

type Grouping struct {
	ID         NodeID
	Expression Expr
}

func (g *Grouping) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitGroupingExpr(g)
}

type Literal struct {
	ID    NodeID
	Value interface{}
}

func (l *Literal) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitLiteralExpr(l)
}

// Logical is `and`/`or`, kept distinct from Binary to carry short-circuit
// semantics instead of always evaluating both operands.
type Logical struct {
	ID       NodeID
	Left     Expr
	Operator Token
	Right    Expr
}

func (l *Logical) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitLogicalExpr(l)
}

// Set is a property write: object.name = value.
type Set struct {
	ID     NodeID
	Object Expr
	Name   Token
	Value  Expr
}

func (s *Set) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitSetExpr(s)
}

type Unary struct {
	ID       NodeID
	Operator Token
	Right    Expr
}

func (u *Unary) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitUnaryExpr(u)
}

type VarExpr struct {
	ID   NodeID
	Name Token
}

func (v *VarExpr) Accept(visitor Visitor) (interface{}, error) {
	return visitor.VisitVarExpr(v)
}
