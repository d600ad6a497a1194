package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("CALC_NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunFileSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "ok.calc", "x = 5; y = 3\nprint(x + y * 2)\nn = input(\"n? \")\nprint n + 1\n")
	code, stdout, stderr := runCLI(t, "41\n", "run", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	if stdout != "11\nn? 42\n" {
		t.Fatalf("stdout = %q", stdout)
	}
}

func TestRunFileReportsFailures(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.calc", "print missing\nprint 1\n")
	code, stdout, stderr := runCLI(t, "", "run", path)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if stdout != "1\n" {
		t.Fatalf("stdout = %q", stdout)
	}
	if stderr != "Error: name error: variable 'missing' is not defined (line 1, column 7)\n" {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunMissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "", "run", filepath.Join(t.TempDir(), "nope.calc"))
	if code != 1 || !strings.HasPrefix(stderr, "calc: read ") {
		t.Fatalf("unexpected result %d %q", code, stderr)
	}
}

func TestRunWithConfigFlag(t *testing.T) {
	dir := t.TempDir()
	cfg := writeSource(t, dir, "calc.toml", "max_call_depth = 10\n")
	path := writeSource(t, dir, "deep.calc", "def down(n) { return down(n + 1) }\ndown(0)\n")
	code, _, stderr := runCLI(t, "", "--config", cfg, "run", path)
	if code != 1 || !strings.Contains(stderr, "recursion error: maximum call depth 10 exceeded") {
		t.Fatalf("unexpected result %d %q", code, stderr)
	}

	bad := writeSource(t, dir, "bad.yml", "max_call_depth: -1\n")
	code, _, stderr = runCLI(t, "", "--config", bad, "run", path)
	if code != 1 || !strings.Contains(stderr, "max_call_depth must be positive") {
		t.Fatalf("unexpected result %d %q", code, stderr)
	}
}

func TestTokensCommand(t *testing.T) {
	path := writeSource(t, t.TempDir(), "t.calc", "x = [1, \"a\"] # done\n")
	code, stdout, stderr := runCLI(t, "", "tokens", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	want := strings.Join([]string{
		"1:1\tIDENTIFIER:x",
		"1:3\tASSIGN",
		"1:5\tLBRACKET",
		"1:6\tNUMBER:1",
		"1:7\tCOMMA",
		"1:9\tSTRING:\"a\"",
		"1:12\tRBRACKET",
	}, "\n") + "\n"
	if stdout != want {
		t.Fatalf("stdout = %q, want %q", stdout, want)
	}
	bad := writeSource(t, t.TempDir(), "bad.calc", "x = @")
	if code, _, stderr := runCLI(t, "", "tokens", bad); code != 1 || !strings.Contains(stderr, "lexical error") {
		t.Fatalf("unexpected result %d %q", code, stderr)
	}
}

func TestASTCommand(t *testing.T) {
	path := writeSource(t, t.TempDir(), "a.calc", "print 1 + 2\n")
	code, stdout, stderr := runCLI(t, "", "ast", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr)
	}
	var stmts []map[string]any
	if err := json.Unmarshal([]byte(stdout), &stmts); err != nil {
		t.Fatalf("decode %q: %v", stdout, err)
	}
	if len(stmts) != 1 || stmts[0]["type"] != "PrintStatement" {
		t.Fatalf("unexpected ast %v", stmts)
	}
	expr, ok := stmts[0]["expression"].(map[string]any)
	if !ok || expr["operator"] != "+" {
		t.Fatalf("unexpected expression %v", stmts[0]["expression"])
	}
}

func TestVersionCommand(t *testing.T) {
	code, stdout, _ := runCLI(t, "", "version")
	if code != 0 || !strings.HasPrefix(stdout, "calc ") {
		t.Fatalf("unexpected result %d %q", code, stdout)
	}
}

func TestUnknownCommand(t *testing.T) {
	code, _, stderr := runCLI(t, "", "frobnicate")
	if code != 1 || !strings.Contains(stderr, "unknown command") {
		t.Fatalf("unexpected result %d %q", code, stderr)
	}
}
