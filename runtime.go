package lox

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Runtime owns the engine state shared across one process invocation: the
// interpreter (so REPL lines keep seeing each other's bindings), the two
// sticky error flags (static and runtime) that decide RunFile's exit code,
// and the streams a caller may redirect.
type Runtime struct {
	config Config

	out    io.Writer
	logger zerolog.Logger

	interpreter *Interpreter

	hadError        bool
	hadRuntimeError bool
}

// RuntimeOption configures a Runtime at construction time.
type RuntimeOption func(*Runtime)

// WithOutput redirects the stream Print statements and the REPL prompt
// write to — tests use this to capture program output instead of stdout.
func WithOutput(w io.Writer) RuntimeOption {
	return func(r *Runtime) { r.out = w }
}

// WithLogger overrides the structured logger used for operational
// diagnostics (verbose/trace CLI output, resolver warnings). The exact
// `[line L] Error...` wire format never goes through this logger.
func WithLogger(logger zerolog.Logger) RuntimeOption {
	return func(r *Runtime) { r.logger = logger }
}

func WithConfig(cfg Config) RuntimeOption {
	return func(r *Runtime) { r.config = cfg }
}

func NewRuntime(opts ...RuntimeOption) *Runtime {
	r := &Runtime{
		config: DefaultConfig(),
		out:    os.Stdout,
		logger: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger(),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.interpreter = NewInterpreter(r)
	return r
}

// stdout is where Print statements write (spec §4.3.1).
func (r *Runtime) stdout() io.Writer {
	return r.out
}

func (r *Runtime) HadError() bool {
	return r.hadError
}

func (r *Runtime) HadRuntimeError() bool {
	return r.hadRuntimeError
}

// RunFile executes a single script and exits the process with status 1 on
// any static (scan/parse/resolve) or runtime error; it returns normally
// otherwise.
func (r *Runtime) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	r.run(string(data))

	if r.hadError || r.hadRuntimeError {
		os.Exit(1)
	}
	return nil
}

// RunPrompt drives the REPL (spec.md §6): one shared interpreter across
// lines, so bindings persist, and a bad line never aborts the session. A
// bare expression with no other effect is auto-printed, matching jlox's
// REPL convenience — file mode never does this.
func (r *Runtime) RunPrompt() {
	if r.config.Banner != "" {
		fmt.Fprintln(r.out, r.config.Banner)
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(r.out, "> ")

		if !in.Scan() {
			return
		}

		line := in.Text()
		if line == "" {
			continue
		}

		r.runLine(line)
		r.hadError = false
		r.hadRuntimeError = false
	}
}

// run executes one whole source blob (file mode): no bare-expression
// auto-print.
func (r *Runtime) run(source string) {
	statements := r.parse(source)
	if r.hadError {
		return
	}

	NewResolver(r.interpreter, r).Resolve(statements)
	if r.hadError {
		return
	}

	r.interpreter.Interpret(statements)
}

// runLine is run's REPL counterpart: a lone expression statement is rewired
// to a Print node before resolution so its value is echoed back, the way
// the reference REPL behaves (spec.md §6, §5 of the expanded spec).
func (r *Runtime) runLine(source string) {
	statements := r.parse(source)
	if r.hadError {
		return
	}

	if len(statements) == 1 {
		if exprStmt, ok := statements[0].(*Expression); ok {
			statements[0] = &Print{ID: exprStmt.ID, Expression: exprStmt.Expression}
		}
	}

	NewResolver(r.interpreter, r).Resolve(statements)
	if r.hadError {
		return
	}

	r.interpreter.Interpret(statements)
}

func (r *Runtime) parse(source string) []Stmt {
	scanner := NewScanner(bytes.NewBufferString(source), r)
	tokens := scanner.ScanTokens()

	parser := NewParser(tokens, r)
	return parser.Parse()
}

// Error reports a scan-time error tied to a source line (spec §7).
func (r *Runtime) Error(line int, message string) {
	r.report(line, "", message)
}

// tokenError reports a parse/resolve-time static error tied to a token.
func (r *Runtime) tokenError(token Token, message string) {
	if token.Type == Eof {
		r.report(token.Line, " at end", message)
	} else {
		r.report(token.Line, " at '"+token.Lexeme+"'", message)
	}
}

// warn reports a non-fatal static diagnostic (the resolver's "declared but
// never read" check). It always goes through the structured logger, never
// the `[line L] Error...` wire format, and only trips hadError when the
// loaded config marks warnings as fatal.
func (r *Runtime) warn(token Token, message string) {
	r.logger.Warn().Int("line", token.Line).Str("lexeme", token.Lexeme).Msg(message)

	if r.config.WarningsFatal {
		r.hadError = true
	}
}

// runtimeError reports an evaluation-time RuntimeError (spec §7) in the
// same wire format as a static error, with the error kind leading the
// message, and sets the runtime-error flag.
func (r *Runtime) runtimeError(err error) {
	if rerr, ok := err.(*RuntimeError); ok {
		fmt.Fprintf(r.out, "[line %d] Error: %s: %s\n", rerr.Token.Line, rerr.Kind, rerr.Message)
	} else {
		fmt.Fprintln(r.out, err.Error())
	}

	r.hadRuntimeError = true
}

func (r *Runtime) report(line int, where string, message string) {
	fmt.Fprintf(r.out, "[line %d] Error%s: %s\n", line, where, message)
	r.hadError = true
}
