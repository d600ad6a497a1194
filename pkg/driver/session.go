package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/interpreter"
	"calc/interpreter-go/pkg/lexer"
	"calc/interpreter-go/pkg/parser"
	"calc/interpreter-go/pkg/runtime"
)

// SessionOptions wires a Session to its environment. Nil fields fall back
// to the process streams and the default configuration.
type SessionOptions struct {
	Config *Config
	Stdout io.Writer
	Stderr io.Writer
	Input  interpreter.LineReader
	Logger *slog.Logger
}

// Session feeds input units through tokenize, parse and evaluate against one
// interpreter. Errors are reported and do not end the session.
type Session struct {
	ID       string
	config   *Config
	interp   *interpreter.Interpreter
	stdout   io.Writer
	reporter *Reporter
	logger   *slog.Logger
	units    int
	failures int
}

// UnitsFailedError is returned when at least one input unit failed.
type UnitsFailedError struct {
	Failed int
	Total  int
}

func (e *UnitsFailedError) Error() string {
	return fmt.Sprintf("%d of %d input units failed", e.Failed, e.Total)
}

func NewSession(opts SessionOptions) *Session {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	id := uuid.New().String()
	logger = logger.With("session", id)
	reporter := NewReporter(stderr, cfg.Color)

	input := opts.Input
	if input == nil {
		input = interpreter.NewReaderInput(os.Stdin, stdout)
	}
	interp := interpreter.New(
		interpreter.WithOutput(stdout),
		interpreter.WithWarnings(reporter),
		interpreter.WithInput(input),
		interpreter.WithLogger(logger),
		interpreter.WithMaxCallDepth(cfg.MaxCallDepth),
	)
	logger.Debug("session started", "config", cfg.Path)
	return &Session{
		ID:       id,
		config:   cfg,
		interp:   interp,
		stdout:   stdout,
		reporter: reporter,
		logger:   logger,
	}
}

func (s *Session) Interpreter() *interpreter.Interpreter {
	return s.interp
}

func (s *Session) Reporter() *Reporter {
	return s.reporter
}

// Failures is the number of input units that reported an error.
func (s *Session) Failures() int {
	return s.failures
}

// RunUnit evaluates one input unit. It returns the value of the unit's last
// statement when that statement is a bare expression, and the error that
// aborted the unit, if any. The error has already been reported.
func (s *Session) RunUnit(unit Unit) (runtime.Value, error) {
	s.units++
	val, err := s.evaluateUnit(unit)
	if err != nil {
		s.failures++
		category, _ := diag.CategoryOf(err)
		s.logger.Debug("input unit failed", "line", unit.Line, "category", category.String(), "error", err)
		s.reporter.Error(err, unit.Line-1)
		return nil, err
	}
	return val, nil
}

func (s *Session) evaluateUnit(unit Unit) (runtime.Value, error) {
	tokens, err := lexer.Tokenize(unit.Text)
	if err != nil {
		return nil, err
	}
	stmts, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	var last runtime.Value
	for _, stmt := range stmts {
		val, err := s.interp.Evaluate(stmt)
		if err != nil {
			return nil, err
		}
		last = val
	}
	if len(stmts) == 0 || !echoes(stmts[len(stmts)-1]) {
		return nil, nil
	}
	return last, nil
}

// echoes reports whether the REPL shows a statement's value: bare
// expressions yes, assignments and other statements no.
func echoes(stmt ast.Statement) bool {
	switch stmt.(type) {
	case *ast.AssignmentExpression, *ast.IndexAssignment:
		return false
	case ast.Expression:
		return true
	default:
		return false
	}
}

// RunSource splits src into units and evaluates each in turn.
func (s *Session) RunSource(src string) error {
	before := s.failures
	total := 0
	for _, unit := range SplitUnits(src) {
		total++
		s.RunUnit(unit)
	}
	if failed := s.failures - before; failed > 0 {
		return &UnitsFailedError{Failed: failed, Total: total}
	}
	return nil
}

// RunFile evaluates a source file.
func (s *Session) RunFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	s.logger.Debug("running file", "path", path)
	return s.RunSource(string(data))
}

// Close ends the session.
func (s *Session) Close() {
	s.logger.Debug("session finished", "units", s.units, "failures", s.failures)
}
