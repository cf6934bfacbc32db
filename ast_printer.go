package lox

import (
	"fmt"
	"strings"
)

// AstPrinter renders an expression or a full statement list as a Lisp-style
// s-expression. It implements both Visitor and StmtVisitor so `loxi parse`
// can dump an entire program, not just one expression.
type AstPrinter struct {
	buf strings.Builder
}

// Print renders a single expression.
func (ap *AstPrinter) Print(expr Expr) string {
	s, _ := expr.Accept(ap)
	return s.(string)
}

// PrintStatements renders a whole program, one s-expression per line.
func (ap *AstPrinter) PrintStatements(statements []Stmt) string {
	ap.buf.Reset()
	for _, stmt := range statements {
		_ = stmt.Accept(ap)
		ap.buf.WriteString("\n")
	}
	return ap.buf.String()
}

func (ap *AstPrinter) VisitAssignExpr(expr *Assign) (interface{}, error) {
	return ap.parenthesize("= "+expr.Name.Lexeme, expr.Value), nil
}

func (ap *AstPrinter) VisitBinaryExpr(expr *Binary) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

func (ap *AstPrinter) VisitCallExpr(expr *Call) (interface{}, error) {
	return ap.parenthesize("call", append([]Expr{expr.Callee}, expr.Arguments...)...), nil
}

func (ap *AstPrinter) VisitGetExpr(expr *Get) (interface{}, error) {
	return ap.parenthesize("get "+expr.Name.Lexeme, expr.Object), nil
}

func (ap *AstPrinter) VisitGroupingExpr(expr *Grouping) (interface{}, error) {
	return ap.parenthesize("group", expr.Expression), nil
}

func (ap *AstPrinter) VisitLiteralExpr(expr *Literal) (interface{}, error) {
	if expr.Value == nil {
		return "nil", nil
	}
	return fmt.Sprintf("%v", expr.Value), nil
}

func (ap *AstPrinter) VisitLogicalExpr(expr *Logical) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Left, expr.Right), nil
}

func (ap *AstPrinter) VisitSetExpr(expr *Set) (interface{}, error) {
	return ap.parenthesize("set "+expr.Name.Lexeme, expr.Object, expr.Value), nil
}

func (ap *AstPrinter) VisitUnaryExpr(expr *Unary) (interface{}, error) {
	return ap.parenthesize(expr.Operator.Lexeme, expr.Right), nil
}

func (ap *AstPrinter) VisitVarExpr(expr *VarExpr) (interface{}, error) {
	return expr.Name.Lexeme, nil
}

func (ap *AstPrinter) parenthesize(name string, exprs ...Expr) string {
	s := strings.Builder{}
	s.WriteString("(" + name)

	for _, expr := range exprs {
		s.WriteString(" ")
		str, _ := expr.Accept(ap)
		s.WriteString(str.(string))
	}

	s.WriteString(")")
	return s.String()
}

// --- StmtVisitor: writes straight into ap.buf since the interface has no
// return value to thread a string through.

func (ap *AstPrinter) VisitBlockStmt(stmt *Block) error {
	ap.buf.WriteString("(block")
	for _, s := range stmt.Statements {
		ap.buf.WriteString(" ")
		_ = s.Accept(ap)
	}
	ap.buf.WriteString(")")
	return nil
}

func (ap *AstPrinter) VisitClassStmt(stmt *ClassStmt) error {
	ap.buf.WriteString("(class " + stmt.Name.Lexeme)
	for _, method := range stmt.Methods {
		ap.buf.WriteString(" ")
		_ = method.Accept(ap)
	}
	ap.buf.WriteString(")")
	return nil
}

func (ap *AstPrinter) VisitExpressionExpr(expr *Expression) error {
	ap.buf.WriteString(ap.parenthesize(";", expr.Expression))
	return nil
}

func (ap *AstPrinter) VisitFunctionStmt(stmt *FunctionStmt) error {
	params := make([]string, len(stmt.Params))
	for i, p := range stmt.Params {
		params[i] = p.Lexeme
	}

	ap.buf.WriteString("(fun " + stmt.Name.Lexeme + "(" + strings.Join(params, " ") + ")")
	for _, s := range stmt.Body {
		ap.buf.WriteString(" ")
		_ = s.Accept(ap)
	}
	ap.buf.WriteString(")")
	return nil
}

func (ap *AstPrinter) VisitIfStmt(stmt *IfStmt) error {
	ap.buf.WriteString("(if " + ap.Print(stmt.Condition) + " ")
	_ = stmt.ThenBranch.Accept(ap)
	if stmt.ElseBranch != nil {
		ap.buf.WriteString(" ")
		_ = stmt.ElseBranch.Accept(ap)
	}
	ap.buf.WriteString(")")
	return nil
}

func (ap *AstPrinter) VisitPrintExpr(expr *Print) error {
	ap.buf.WriteString(ap.parenthesize("print", expr.Expression))
	return nil
}

func (ap *AstPrinter) VisitReturnStmt(stmt *ReturnStmt) error {
	if stmt.Value == nil {
		ap.buf.WriteString("(return)")
		return nil
	}
	ap.buf.WriteString(ap.parenthesize("return", stmt.Value))
	return nil
}

func (ap *AstPrinter) VisitVarStmt(stmt *VarStmt) error {
	if stmt.Initializer == nil {
		ap.buf.WriteString("(var " + stmt.Name.Lexeme + ")")
		return nil
	}
	ap.buf.WriteString(ap.parenthesize("var "+stmt.Name.Lexeme, stmt.Initializer))
	return nil
}

func (ap *AstPrinter) VisitWhileStmt(stmt *WhileStmt) error {
	ap.buf.WriteString("(while " + ap.Print(stmt.Condition) + " ")
	_ = stmt.Body.Accept(ap)
	ap.buf.WriteString(")")
	return nil
}
