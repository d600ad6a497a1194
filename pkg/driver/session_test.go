package driver

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"calc/interpreter-go/pkg/interpreter"
)

func newTestSession(input string) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	cfg := DefaultConfig()
	cfg.Color = false
	cfg.Banner = false
	session := NewSession(SessionOptions{
		Config: cfg,
		Stdout: &stdout,
		Stderr: &stderr,
		Input:  interpreter.NewReaderInput(strings.NewReader(input), nil),
	})
	return session, &stdout, &stderr
}

func TestRunSourceContinuesAfterErrors(t *testing.T) {
	session, stdout, stderr := newTestSession("")
	err := session.RunSource(`x = 1
print y
print x + 1
print 10 / 0
print "a" - 1
print x
`)
	var failed *UnitsFailedError
	if !errors.As(err, &failed) || failed.Failed != 2 || failed.Total != 6 {
		t.Fatalf("expected 2 of 6 units to fail, got %v", err)
	}
	if got := stdout.String(); got != "2\n1\n" {
		t.Fatalf("stdout = %q", got)
	}
	wantErrors := strings.Join([]string{
		"Error: name error: variable 'y' is not defined (line 2, column 7)",
		"Error: Division by zero",
		"Error: type error: unsupported operand types for -: String and Number (line 5, column 11)",
	}, "\n") + "\n"
	if got := stderr.String(); got != wantErrors {
		t.Fatalf("stderr = %q, want %q", got, wantErrors)
	}
	if session.Failures() != 2 {
		t.Fatalf("Failures() = %d", session.Failures())
	}
}

func TestRunSourceReportsLexicalAndSyntaxErrors(t *testing.T) {
	session, stdout, stderr := newTestSession("")
	err := session.RunSource("print \"open\nprint 1 +\nprint @\nprint 3")
	if err == nil {
		t.Fatalf("expected failures")
	}
	if got := stdout.String(); got != "3\n" {
		t.Fatalf("stdout = %q", got)
	}
	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected three errors, got %q", stderr.String())
	}
	for i, prefix := range []string{"Error: lexical error:", "Error: syntax error:", "Error: lexical error:"} {
		if !strings.HasPrefix(lines[i], prefix) {
			t.Fatalf("line %d = %q, want prefix %q", i, lines[i], prefix)
		}
	}
}

func TestRunUnitValueForEcho(t *testing.T) {
	session, _, _ := newTestSession("")
	for _, tc := range []struct {
		src  string
		echo bool
	}{
		{"1 + 2", true},
		{"x = 3", false},
		{"l = [1]; l[0] = 2", false},
		{"x; print x", false},
		{"print 1; x * 2", true},
		{"def f() { return 1 }", false},
	} {
		val, err := session.RunUnit(Unit{Text: tc.src, Line: 1})
		if err != nil {
			t.Fatalf("RunUnit(%q): %v", tc.src, err)
		}
		if (val != nil) != tc.echo {
			t.Fatalf("RunUnit(%q) value = %#v, echo want %v", tc.src, val, tc.echo)
		}
	}
}

func TestRunFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.calc")
	if err := os.WriteFile(path, []byte("name = input(\"who? \")\nprint \"hi \" + name\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	session, stdout, _ := newTestSession("ada\n")
	if err := session.RunFile(path); err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if got := stdout.String(); got != "\"hi ada\"\n" {
		t.Fatalf("stdout = %q", got)
	}
	if err := session.RunFile(filepath.Join(dir, "missing.calc")); err == nil {
		t.Fatalf("expected missing file error")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	first, _, _ := newTestSession("")
	second, _, _ := newTestSession("")
	if first.ID == second.ID {
		t.Fatalf("session IDs must differ")
	}
	if err := first.RunSource("x = 1"); err != nil {
		t.Fatalf("RunSource: %v", err)
	}
	if err := second.RunSource("print x"); err == nil {
		t.Fatalf("bindings must not leak between sessions")
	}
}

func TestReporterColorAndPartialWrites(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, false)
	r.Write([]byte("Error: Div"))
	r.Write([]byte("ision by zero\nnext"))
	r.Write([]byte("\n"))
	if got := buf.String(); got != "Error: Division by zero\nnext\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestSessionLogsWithSessionID(t *testing.T) {
	var logs, stdout, stderr bytes.Buffer
	cfg := DefaultConfig()
	cfg.Color = false
	session := NewSession(SessionOptions{
		Config: cfg,
		Stdout: &stdout,
		Stderr: &stderr,
		Input:  interpreter.NewReaderInput(strings.NewReader(""), nil),
		Logger: slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})
	_ = session.RunSource("def f() { return 1 }\nprint f()\nprint missing\n")
	session.Close()

	got := logs.String()
	for _, want := range []string{
		"session=" + session.ID,
		"msg=\"function defined\" session=" + session.ID + " name=f",
		"category=name",
		"msg=\"session finished\"",
		"failures=1",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("logs missing %q:\n%s", want, got)
		}
	}
}
