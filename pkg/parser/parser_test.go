package parser_test

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"calc/interpreter-go/pkg/ast"
	"calc/interpreter-go/pkg/diag"
	"calc/interpreter-go/pkg/parser"
)

func mustParse(t *testing.T, src string) []ast.Statement {
	t.Helper()
	stmts, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("ParseSource(%q) returned error: %v", src, err)
	}
	return stmts
}

func mustParseExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	stmts := mustParse(t, src)
	if len(stmts) != 1 {
		t.Fatalf("expected single statement, got %d", len(stmts))
	}
	expr, ok := stmts[0].(ast.Expression)
	if !ok {
		t.Fatalf("expected expression statement, got %T", stmts[0])
	}
	return expr
}

// sameShape compares ASTs through their JSON encoding, which ignores positions.
func sameShape(t *testing.T, got, want any) {
	t.Helper()
	gotJSON, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal got: %v", err)
	}
	wantJSON, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal want: %v", err)
	}
	var gotTree, wantTree any
	_ = json.Unmarshal(gotJSON, &gotTree)
	_ = json.Unmarshal(wantJSON, &wantTree)
	if !reflect.DeepEqual(gotTree, wantTree) {
		t.Fatalf("AST mismatch\n got: %s\nwant: %s", gotJSON, wantJSON)
	}
}

func expectSyntaxError(t *testing.T, src string) *diag.Error {
	t.Helper()
	_, err := parser.ParseSource(src)
	var d *diag.Error
	if !errors.As(err, &d) {
		t.Fatalf("ParseSource(%q): expected diag.Error, got %v", src, err)
	}
	if d.Category != diag.CategorySyntax {
		t.Fatalf("ParseSource(%q): expected syntax error, got %s", src, d)
	}
	return d
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want ast.Expression
	}{
		{"x + y * 2", ast.Bin(ast.OpAdd, ast.ID("x"), ast.Bin(ast.OpMultiply, ast.ID("y"), ast.Num(2)))},
		{"1 - 2 - 3", ast.Bin(ast.OpSubtract, ast.Bin(ast.OpSubtract, ast.Num(1), ast.Num(2)), ast.Num(3))},
		{"8 / 4 % 3", ast.Bin(ast.OpModulo, ast.Bin(ast.OpDivide, ast.Num(8), ast.Num(4)), ast.Num(3))},
		{"2 ** 3 ** 2", ast.Bin(ast.OpPower, ast.Num(2), ast.Bin(ast.OpPower, ast.Num(3), ast.Num(2)))},
		{"-2 ** 2", ast.Bin(ast.OpPower, ast.Neg(ast.Num(2)), ast.Num(2))},
		{"a or b and c", ast.Bin(ast.OpOr, ast.ID("a"), ast.Bin(ast.OpAnd, ast.ID("b"), ast.ID("c")))},
		{"1 + 2 < 4 and true", ast.Bin(ast.OpAnd, ast.Bin(ast.OpLess, ast.Bin(ast.OpAdd, ast.Num(1), ast.Num(2)), ast.Num(4)), ast.Bool(true))},
		{"!a == b", ast.Bin(ast.OpEqual, ast.Not(ast.ID("a")), ast.ID("b"))},
		{"not done", ast.Not(ast.ID("done"))},
		{"+5", ast.Num(5)},
		{"(1 + 2) * 3", ast.Bin(ast.OpMultiply, ast.Bin(ast.OpAdd, ast.Num(1), ast.Num(2)), ast.Num(3))},
		{"x is Number", ast.Bin(ast.OpIs, ast.ID("x"), ast.ID("Number"))},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			sameShape(t, mustParseExpr(t, tc.src), tc.want)
		})
	}
}

func TestParseIndexingAndCalls(t *testing.T) {
	sameShape(t, mustParseExpr(t, `m["k"][0]`), ast.Index(ast.Index(ast.ID("m"), ast.Str("k")), ast.Num(0)))
	sameShape(t, mustParseExpr(t, `f(1, x)[2]`), ast.Index(ast.Call("f", ast.Num(1), ast.ID("x")), ast.Num(2)))
	sameShape(t, mustParseExpr(t, `[1, 2,][1]`), ast.Index(ast.List(ast.Num(1), ast.Num(2)), ast.Num(1)))
	sameShape(t, mustParseExpr(t, `g()`), ast.Call("g"))
}

func TestParseAssignments(t *testing.T) {
	sameShape(t, mustParseExpr(t, "x = 5"), ast.Assign("x", ast.Num(5)))
	sameShape(t, mustParseExpr(t, "a = b = 1"), ast.Assign("a", ast.Assign("b", ast.Num(1))))
	sameShape(t, mustParseExpr(t, `d["b"] = 2`), ast.IndexAssign("d", ast.Str("b"), ast.Num(2)))
}

func TestParseRejectsDeepIndexedAssignment(t *testing.T) {
	expectSyntaxError(t, "m[0][1] = 2")
	expectSyntaxError(t, "f()[0] = 2")
	expectSyntaxError(t, "1 = 2")
}

func TestParseDictLiteral(t *testing.T) {
	got := mustParseExpr(t, `{"a": 1, 2: "two", true: [1]}`)
	want := ast.Dict(
		ast.Entry(ast.StringKey("a"), ast.Num(1)),
		ast.Entry(ast.NumberKey(2), ast.Str("two")),
		ast.Entry(ast.BooleanKey(true), ast.List(ast.Num(1))),
	)
	sameShape(t, got, want)
	sameShape(t, mustParseExpr(t, "{}"), ast.Dict())
}

func TestParseDictLiteralRejectsNonLiteralKey(t *testing.T) {
	d := expectSyntaxError(t, `{x: 1}`)
	if d.Pos.Column != 2 {
		t.Fatalf("expected error at column 2, got %s", d.Pos)
	}
}

func TestParseStatements(t *testing.T) {
	src := `
x = 5; y = 3
print(x + y * 2)
def add(a, b) { return a + b } print(add(2, 3))
i = 0
while (i < 3) { print(i); i = i + 1 }
if (x > 1) { print "big" } else if (x > 0) { print "small" } else { print "none" }
name = input("who? ")
`
	got := mustParse(t, src)
	want := []ast.Statement{
		ast.Assign("x", ast.Num(5)),
		ast.Assign("y", ast.Num(3)),
		ast.Print(ast.Bin(ast.OpAdd, ast.ID("x"), ast.Bin(ast.OpMultiply, ast.ID("y"), ast.Num(2)))),
		ast.Fn("add", []string{"a", "b"}, ast.Ret(ast.Bin(ast.OpAdd, ast.ID("a"), ast.ID("b")))),
		ast.Print(ast.Call("add", ast.Num(2), ast.Num(3))),
		ast.Assign("i", ast.Num(0)),
		ast.While(ast.Bin(ast.OpLess, ast.ID("i"), ast.Num(3)),
			ast.Print(ast.ID("i")),
			ast.Assign("i", ast.Bin(ast.OpAdd, ast.ID("i"), ast.Num(1))),
		),
		ast.If(ast.Bin(ast.OpGreater, ast.ID("x"), ast.Num(1)),
			ast.Block(ast.Print(ast.Str("big"))),
			ast.Block(ast.If(ast.Bin(ast.OpGreater, ast.ID("x"), ast.Num(0)),
				ast.Block(ast.Print(ast.Str("small"))),
				ast.Block(ast.Print(ast.Str("none"))),
			)),
		),
		ast.Assign("name", ast.Input(ast.Str("who? "))),
	}
	sameShape(t, got, want)
}

func TestParseReturnWithoutValue(t *testing.T) {
	got := mustParse(t, "def f() { return }\nfunction g() { while true { break; continue } return; }")
	want := []ast.Statement{
		ast.Fn("f", nil, ast.Ret(nil)),
		ast.Fn("g", nil,
			ast.While(ast.Bool(true), ast.Brk(), ast.Cont()),
			ast.Ret(nil),
		),
	}
	sameShape(t, got, want)
}

func TestParseControlTransferPlacement(t *testing.T) {
	expectSyntaxError(t, "return 1")
	expectSyntaxError(t, "break")
	expectSyntaxError(t, "if true { continue }")
	expectSyntaxError(t, "while true { def f() { break } }")
}

func TestParseErrorsReportToken(t *testing.T) {
	d := expectSyntaxError(t, "x = (1 + 2")
	if d.Message != "expected ')' to close parenthesis, got end of input" {
		t.Fatalf("unexpected message %q", d.Message)
	}
	d = expectSyntaxError(t, "print )")
	if d.Message != "unexpected token ')'" {
		t.Fatalf("unexpected message %q", d.Message)
	}
	expectSyntaxError(t, "def f(a, a) { }")
	expectSyntaxError(t, "if true { print 1")
}

func TestParsePositions(t *testing.T) {
	stmts := mustParse(t, "x = 1\n  print x")
	pos := stmts[1].Position()
	if pos.Line != 2 || pos.Column != 3 {
		t.Fatalf("expected print at 2:3, got %s", pos)
	}
}

func TestParseEmptyInput(t *testing.T) {
	stmts := mustParse(t, "  # only a comment\n;;")
	if len(stmts) != 0 {
		t.Fatalf("expected no statements, got %d", len(stmts))
	}
}
