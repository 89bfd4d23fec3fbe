package parser

import (
	"testing"

	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/source"
)

// testLogger собирает диагностики; fatal задаёт порог остановки.
type testLogger struct {
	items []diag.Diagnostic
	fatal diag.Severity
}

func (l *testLogger) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	l.items = append(l.items, diag.Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
}

func (l *testLogger) IsFatal(sev diag.Severity) bool { return sev >= l.fatal }

func parseString(t *testing.T, src string, fatal diag.Severity) (Result, *testLogger) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lu", []byte(src))
	log := &testLogger{fatal: fatal}
	return ParseFile(fs, id, Options{Logger: log}), log
}

func units(res Result) []string {
	out := make([]string, len(res.Tree.Units))
	for i, u := range res.Tree.Units {
		out[i] = u.String()
	}
	return out
}

func TestParseShapes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "typed assignment and intrinsic call",
			src:  "a: int32 = 3\n$i32print(a)\n",
			want: []string{
				`(assign (typed-variable "a" (named-type "int32")) (integer "3"))`,
				`(call (intrinsic "$i32print") (tuple (variable "a")))`,
			},
		},
		{
			name: "parallel assignment",
			src:  "(a, b) = (1, 2)",
			want: []string{`(assign (tuple (variable "a") (variable "b")) (tuple (integer "1") (integer "2")))`},
		},
		{
			name: "bare comma tuple binds looser than assignment",
			src:  "a, b = 1, 2",
			want: []string{`(tuple (variable "a") (assign (variable "b") (integer "1")) (integer "2"))`},
		},
		{
			name: "right associative assignment",
			src:  "x = y <- true",
			want: []string{`(assign (variable "x") (assign (variable "y") (true "true")))`},
		},
		{
			name: "colon assign",
			src:  "x := 1.5",
			want: []string{`(assign (variable "x") (decimal "1.5"))`},
		},
		{
			name: "block with terminators",
			src:  "{ a = 1; b = 2 }\n",
			want: []string{`(block (assign (variable "a") (integer "1")) (assign (variable "b") (integer "2")))`},
		},
		{
			name: "multi-line block",
			src:  "{\n  a = 1\n\n  b\n}\n",
			want: []string{`(block (assign (variable "a") (integer "1")) (variable "b"))`},
		},
		{
			name: "function type",
			src:  "f: (x: int32, bool) -> int32",
			want: []string{`(typed-variable "f" (function-type (tuple-type (param "x" (named-type "int32")) (named-type "bool")) (named-type "int32")))`},
		},
		{
			name: "default param",
			src:  "g: (n: int8 = 1)",
			want: []string{`(typed-variable "g" (tuple-type (default-param (param "n" (named-type "int8")) (integer "1"))))`},
		},
		{
			name: "function literal",
			src:  "(a) -> { a }",
			want: []string{`(function (tuple (variable "a")) (block (variable "a")))`},
		},
		{
			name: "empty tuple",
			src:  "()",
			want: []string{`(tuple)`},
		},
		{
			name: "return and branch",
			src:  "ret @outer 1\nbr @top\nret\n",
			want: []string{`(return "@outer" (integer "1"))`, `(branch "@top" (blank))`, `(return (blank))`},
		},
		{
			name: "blank lines are dropped",
			src:  "\n;\n a\n\n",
			want: []string{`(variable "a")`},
		},
		{
			name: "newlines inside parens",
			src:  "$i32add(\n  a,\n  b\n)",
			want: []string{`(call (intrinsic "$i32add") (tuple (variable "a") (variable "b")))`},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, log := parseString(t, tc.src, diag.SevError)
			if len(log.items) != 0 || !res.Status.OK() {
				t.Fatalf("unexpected diagnostics: %v", log.items)
			}
			got := units(res)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d units %v, want %d", len(got), got, len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("unit %d:\n got %s\nwant %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestStringLiteralUnescaped(t *testing.T) {
	res, log := parseString(t, `s = "a\tb\"c\\"`, diag.SevError)
	if len(log.items) != 0 {
		t.Fatalf("diagnostics: %v", log.items)
	}
	lit := res.Tree.Units[0].Child(ast.AssignRHS)
	if lit.Kind != ast.StringLit || lit.Text != "a\tb\"c\\" {
		t.Fatalf("literal = %s %q", lit.Kind, lit.Text)
	}
}

func TestSpans(t *testing.T) {
	res, _ := parseString(t, "a: int32 = 3\n", diag.SevError)
	u := res.Tree.Units[0]
	if u.Span.Start != 0 || u.Span.End != 12 {
		t.Fatalf("assign span = %v", u.Span)
	}
	if rhs := u.Child(ast.AssignRHS); rhs.Span.Start != 11 || rhs.Span.End != 12 {
		t.Fatalf("rhs span = %v", rhs.Span)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		code  diag.Code
		units int
	}{
		{"invalid target", "1 = 2\nb = 3\n", diag.SynInvalidTarget, 1},
		{"unclosed paren", "(a, b\n", diag.SynUnclosedParen, 0},
		{"unclosed brace", "{ a = 1\n", diag.SynUnclosedBrace, 0},
		{"missing primary", "a = \nb\n", diag.SynExpectExpression, 1},
		{"missing terminator", "a = 1 2\nb\n", diag.SynUnexpectedToken, 1},
		{"missing type", "a: 3\n", diag.SynExpectType, 0},
		{"bare branch", "br\nx\n", diag.SynExpectLabelOrJump, 1},
		{"param name must be identifier", "f: ((a): int32)\n", diag.SynExpectIdentifier, 0},
		{"function params must be assignable", "1 -> 2\n", diag.SynInvalidTarget, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, log := parseString(t, tc.src, diag.SevNever)
			if res.Status.OK() {
				t.Fatalf("expected FAIL status")
			}
			if len(log.items) != 1 || log.items[0].Code != tc.code {
				t.Fatalf("diagnostics = %v, want one %s", log.items, tc.code.ID())
			}
			if len(res.Tree.Units) != tc.units {
				t.Fatalf("units = %v", units(res))
			}
		})
	}
}

func TestFatalErrorStopsParse(t *testing.T) {
	res, log := parseString(t, "1 = 2\nb = 3\n", diag.SevError)
	if res.Status.OK() || len(log.items) != 1 {
		t.Fatalf("status %s, diagnostics %v", res.Status, log.items)
	}
	if len(res.Tree.Units) != 0 {
		t.Fatalf("fatal error must stop before the second unit: %v", units(res))
	}
}

func TestLexErrorReportedOnce(t *testing.T) {
	res, log := parseString(t, "a = ?\nb = 1\n", diag.SevNever)
	if len(log.items) != 1 || log.items[0].Code != diag.LexUnknownChar {
		t.Fatalf("diagnostics = %v", log.items)
	}
	if res.Status.OK() {
		t.Fatalf("lexical error must fail the parse")
	}
	if got := units(res); len(got) != 1 || got[0] != `(assign (variable "b") (integer "1"))` {
		t.Fatalf("units = %v", got)
	}
}

func TestMaxErrors(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.lu", []byte("1 = 1\n2 = 2\n3 = 3\n"))
	log := &testLogger{fatal: diag.SevNever}
	res := ParseFile(fs, id, Options{Logger: log, MaxErrors: 2})
	if len(log.items) != 2 || res.Errors != 2 {
		t.Fatalf("reported %d, counted %d", len(log.items), res.Errors)
	}
}
