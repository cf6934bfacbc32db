package lox

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

// TestAstPrinterSnapshots golden-tests the Lisp-style dump `loxi parse`
// produces for a handful of representative programs, mirroring how
// go-dws snapshot-tests its own AST/interpreter fixtures.
func TestAstPrinterSnapshots(t *testing.T) {
	programs := map[string]string{
		"arithmetic":    `print 1 + 2 * 3 - 4 / 2;`,
		"control_flow":  `if (a > 1) { print "big"; } else { print "small"; }`,
		"closures":      `fun outer() { var x = 1; fun inner() { return x + 1; } return inner; }`,
		"class":         `class Pair { first() { return 1; } second() { return 2; } }`,
		"for_desugared": `for (var i = 0; i < 3; i = i + 1) print i;`,
	}

	for name, source := range programs {
		t.Run(name, func(t *testing.T) {
			statements, rt := parseSource(t, source)
			require.False(t, rt.HadError())

			printer := &AstPrinter{}
			snaps.MatchSnapshot(t, printer.PrintStatements(statements))
		})
	}
}

// TestAstJSONSnapshots golden-tests the JSON AST dump used by
// `loxi parse --json`, with string literals redacted so the snapshot
// never pins a fixture's literal string contents.
func TestAstJSONSnapshots(t *testing.T) {
	statements, rt := parseSource(t, `print "a secret literal"; var x = 1 + 2;`)
	require.False(t, rt.HadError())

	doc, err := StatementsToJSON(statements)
	require.NoError(t, err)

	redacted, err := RedactStringLiterals(doc)
	require.NoError(t, err)

	snaps.MatchJSON(t, redacted)
}
