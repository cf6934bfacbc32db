package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSource(t *testing.T, source string) ([]Stmt, *Runtime) {
	t.Helper()

	var out bytes.Buffer
	runtime := NewRuntime(WithOutput(&out))
	scanner := NewScanner(bytes.NewBufferString(source), runtime)
	parser := NewParser(scanner.ScanTokens(), runtime)
	return parser.Parse(), runtime
}

func TestParserBinaryPrecedence(t *testing.T) {
	statements, rt := parseSource(t, `print 1 + 2 * 3;`)
	require.False(t, rt.HadError())
	require.Len(t, statements, 1)

	printer := &AstPrinter{}
	printStmt := statements[0].(*Print)
	assert.Equal(t, "(+ 1 (* 2 3))", printer.Print(printStmt.Expression))
}

func TestParserForDesugarsToWhile(t *testing.T) {
	statements, rt := parseSource(t, `for (var i = 0; i < 5; i = i + 1) print i;`)
	require.False(t, rt.HadError())
	require.Len(t, statements, 1)

	block, ok := statements[0].(*Block)
	require.True(t, ok, "for-loop must desugar to a Block")
	require.Len(t, block.Statements, 2)

	_, isVarDecl := block.Statements[0].(*VarStmt)
	assert.True(t, isVarDecl)

	whileStmt, isWhile := block.Statements[1].(*WhileStmt)
	require.True(t, isWhile)

	body, isBlock := whileStmt.Body.(*Block)
	require.True(t, isBlock)
	assert.Len(t, body.Statements, 2) // original body + increment
}

func TestParserForWithoutClausesDefaultsToTrueCondition(t *testing.T) {
	statements, rt := parseSource(t, `for (;;) print 1;`)
	require.False(t, rt.HadError())
	require.Len(t, statements, 1)

	whileStmt, ok := statements[0].(*WhileStmt)
	require.True(t, ok)

	literal, ok := whileStmt.Condition.(*Literal)
	require.True(t, ok)
	assert.Equal(t, true, literal.Value)
}

func TestParserCallChaining(t *testing.T) {
	statements, rt := parseSource(t, `foo()();`)
	require.False(t, rt.HadError())
	require.Len(t, statements, 1)

	exprStmt := statements[0].(*Expression)
	outer, ok := exprStmt.Expression.(*Call)
	require.True(t, ok)

	_, ok = outer.Callee.(*Call)
	assert.True(t, ok)
}

func TestParserGetSetChaining(t *testing.T) {
	statements, rt := parseSource(t, `a.b.c = 1;`)
	require.False(t, rt.HadError())
	require.Len(t, statements, 1)

	exprStmt := statements[0].(*Expression)
	set, ok := exprStmt.Expression.(*Set)
	require.True(t, ok)
	assert.Equal(t, "c", set.Name.Lexeme)

	get, ok := set.Object.(*Get)
	require.True(t, ok)
	assert.Equal(t, "b", get.Name.Lexeme)
}

func TestParserInvalidAssignmentTargetIsError(t *testing.T) {
	_, rt := parseSource(t, `1 + 2 = 3;`)
	assert.True(t, rt.HadError())
}

func TestParserClassDeclaration(t *testing.T) {
	statements, rt := parseSource(t, `class Pair { first() { return 1; } }`)
	require.False(t, rt.HadError())
	require.Len(t, statements, 1)

	class, ok := statements[0].(*ClassStmt)
	require.True(t, ok)
	assert.Equal(t, "Pair", class.Name.Lexeme)
	require.Len(t, class.Methods, 1)
	assert.Equal(t, "first", class.Methods[0].Name.Lexeme)
}

// Parse errors resynchronize at the next statement boundary instead of
// aborting the whole parse (spec.md §6, supplemented from
// original_source/parser.cpp's synchronize()).
func TestParserErrorRecoveryContinuesToNextStatement(t *testing.T) {
	statements, rt := parseSource(t, `var = ; print "after error";`)
	assert.True(t, rt.HadError())

	var sawPrint bool
	for _, s := range statements {
		if _, ok := s.(*Print); ok {
			sawPrint = true
		}
	}
	assert.True(t, sawPrint, "parser should recover and still parse the statement after the error")
}
