package lox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanSource(t *testing.T, source string) ([]Token, *Runtime) {
	t.Helper()

	var out bytes.Buffer
	runtime := NewRuntime(WithOutput(&out))
	scanner := NewScanner(bytes.NewBufferString(source), runtime)
	return scanner.ScanTokens(), runtime
}

func TestScannerSingleCharacterTokens(t *testing.T) {
	tokens, rt := scanSource(t, `(){},.-+;*`)
	require.False(t, rt.HadError())

	types := make([]TokenType, 0, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		types = append(types, tok.Type)
	}

	assert.Equal(t, []TokenType{
		LeftParen, RightParen, LeftBrace, RightBrace,
		Comma, Dot, Minus, Plus, Semicolon, Star,
	}, types)
}

func TestScannerTwoCharacterOperators(t *testing.T) {
	tokens, rt := scanSource(t, `!= == <= >= < > ! =`)
	require.False(t, rt.HadError())

	types := make([]TokenType, 0, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		types = append(types, tok.Type)
	}

	assert.Equal(t, []TokenType{
		BangEqual, EqualEqual, LessEqual, GreaterEqual, Less, Greater, Bang, Equal,
	}, types)
}

func TestScannerStringLiteral(t *testing.T) {
	tokens, rt := scanSource(t, `"hello world"`)
	require.False(t, rt.HadError())
	require.Len(t, tokens, 2)
	assert.Equal(t, String, tokens[0].Type)
	assert.Equal(t, "hello world", tokens[0].Literal)
}

func TestScannerUnterminatedStringIsError(t *testing.T) {
	_, rt := scanSource(t, `"unterminated`)
	assert.True(t, rt.HadError())
}

func TestScannerNumberLiteral(t *testing.T) {
	tokens, rt := scanSource(t, `123.45`)
	require.False(t, rt.HadError())
	require.Len(t, tokens, 2)
	assert.Equal(t, Number, tokens[0].Type)
	assert.Equal(t, 123.45, tokens[0].Literal)
}

func TestScannerKeywordsVsIdentifiers(t *testing.T) {
	tokens, rt := scanSource(t, `var class fun notakeyword`)
	require.False(t, rt.HadError())

	types := make([]TokenType, 0, len(tokens)-1)
	for _, tok := range tokens[:len(tokens)-1] {
		types = append(types, tok.Type)
	}

	assert.Equal(t, []TokenType{Var, Class, Fun, Identifiers}, types)
}

func TestScannerSkipsCommentsAndTracksLines(t *testing.T) {
	tokens, rt := scanSource(t, "var a = 1; // a comment\nvar b = 2;")
	require.False(t, rt.HadError())

	var lineOfB int
	for _, tok := range tokens {
		if tok.Type == Identifiers && tok.Lexeme == "b" {
			lineOfB = tok.Line
		}
	}
	assert.Equal(t, 2, lineOfB)
}
