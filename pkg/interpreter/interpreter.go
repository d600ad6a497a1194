package interpreter

import (
	"io"
	"log/slog"
	"os"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/parser"
	"calc/interpreter-go/pkg/runtime"
)

// DefaultMaxCallDepth bounds nested function calls unless overridden.
const DefaultMaxCallDepth = 1000

// LineReader supplies one line of external input for `input(...)`.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Function is an entry of the function table.
type Function struct {
	Name    string
	Params  []string
	Body    []ast.Statement
	Closure *runtime.Scope
}

// Interpreter is one evaluation session. It owns the scope stack and the
// function table; both live until the session is discarded.
type Interpreter struct {
	scopes       *runtime.ScopeStack
	functions    map[string]*Function
	out          io.Writer
	warnings     io.Writer
	input        LineReader
	logger       *slog.Logger
	maxCallDepth int
	callDepth    int
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithOutput sets the writer `print` writes to.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) { i.out = w }
}

// WithWarnings sets the writer recoverable conditions are reported on.
func WithWarnings(w io.Writer) Option {
	return func(i *Interpreter) { i.warnings = w }
}

// WithInput sets the source used by `input(...)`.
func WithInput(r LineReader) Option {
	return func(i *Interpreter) { i.input = r }
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithMaxCallDepth limits nested calls. Values below one keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		if depth > 0 {
			i.maxCallDepth = depth
		}
	}
}

// New returns an interpreter with an empty global scope and function table.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		scopes:       runtime.NewScopeStack(),
		functions:    make(map[string]*Function),
		out:          os.Stdout,
		logger:       slog.New(slog.DiscardHandler),
		maxCallDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.warnings == nil {
		i.warnings = i.out
	}
	if i.input == nil {
		i.input = NewReaderInput(os.Stdin, i.out)
	}
	return i
}

// Scopes exposes the session's scope stack.
func (i *Interpreter) Scopes() *runtime.ScopeStack {
	return i.scopes
}

// LookupFunction returns the function table entry for name.
func (i *Interpreter) LookupFunction(name string) (*Function, bool) {
	fn, ok := i.functions[name]
	return fn, ok
}

// Evaluate executes one top-level statement. Expression statements yield
// their value; a nil value means the statement produced no value.
func (i *Interpreter) Evaluate(stmt ast.Statement) (runtime.Value, error) {
	c, err := i.execStatement(stmt)
	if err != nil {
		return nil, err
	}
	if err := c.escaped(stmt); err != nil {
		return nil, err
	}
	return c.value, nil
}

// EvaluateStatements executes statements in order and returns the value of
// the last one. Execution stops at the first error.
func (i *Interpreter) EvaluateStatements(stmts []ast.Statement) (runtime.Value, error) {
	var last runtime.Value
	for _, stmt := range stmts {
		val, err := i.Evaluate(stmt)
		if err != nil {
			return nil, err
		}
		last = val
	}
	return last, nil
}

// EvaluateSource tokenizes, parses and executes src.
func (i *Interpreter) EvaluateSource(src string) (runtime.Value, error) {
	stmts, err := parser.ParseSource(src)
	if err != nil {
		return nil, err
	}
	return i.EvaluateStatements(stmts)
}

//-----------------------------------------------------------------------------
// Completions
//-----------------------------------------------------------------------------

type completionKind int

const (
	completionNormal completionKind = iota
	completionBreak
	completionContinue
	completionReturn
)

// completion is the result of executing a statement. Break, continue, and
// return travel outward as completions until a loop or call consumes them.
type completion struct {
	kind  completionKind
	value runtime.Value
}

func normal(value runtime.Value) completion {
	return completion{kind: completionNormal, value: value}
}

// escaped reports a control transfer that reached a boundary unable to
// consume it.
func (c completion) escaped(stmt ast.Statement) error {
	switch c.kind {
	case completionBreak:
		return diag.ErrorAt(diag.CategorySyntax, stmt.Position(), "'break' outside loop")
	case completionContinue:
		return diag.ErrorAt(diag.CategorySyntax, stmt.Position(), "'continue' outside loop")
	case completionReturn:
		return diag.ErrorAt(diag.CategorySyntax, stmt.Position(), "'return' outside function")
	default:
		return nil
	}
}
