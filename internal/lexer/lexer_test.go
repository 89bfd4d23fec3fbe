package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"lu/internal/diag"
	"lu/internal/lexer"
	"lu/internal/source"
	"lu/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.lu", []byte(input)))
	reporter := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: reporter}), reporter
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\ndiags: %v",
			len(expected), len(tokens), input, tokensToString(tokens), reporter.diagnostics)
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestTypedAssignment(t *testing.T) {
	toks := expectTokens(t, "a: int32 = 3\n",
		token.Ident, token.Colon, token.Ident, token.Assign, token.IntLit, token.Newline)
	if toks[2].Text != "int32" || toks[4].Text != "3" {
		t.Fatalf("unexpected texts: %s", tokensToString(toks))
	}
	if toks[4].Span.Start != 11 || toks[4].Span.End != 12 {
		t.Fatalf("span of literal = %v", toks[4].Span)
	}
}

func TestIntrinsicCallAndComment(t *testing.T) {
	toks := expectTokens(t, "$i32print(a) # prints a\n",
		token.Intrinsic, token.LParen, token.Ident, token.RParen, token.Newline)
	if toks[0].Text != "$i32print" {
		t.Fatalf("intrinsic text = %q", toks[0].Text)
	}
}

func TestOperators(t *testing.T) {
	expectTokens(t, ":= <- -> : = , ; . ( ) { }",
		token.ColonAssign, token.LeftArrow, token.Arrow, token.Colon, token.Assign,
		token.Comma, token.Semicolon, token.Dot, token.LParen, token.RParen, token.LBrace, token.RBrace)
}

func TestLiteralsAndKeywords(t *testing.T) {
	toks := expectTokens(t, `true false ret br @top 12 3.25 4. "x\"y"`,
		token.KwTrue, token.KwFalse, token.KwRet, token.KwBr, token.Label,
		token.IntLit, token.DecimalLit, token.IntLit, token.Dot, token.StringLit)
	if toks[9].Text != `"x\"y"` {
		t.Fatalf("string text = %q", toks[9].Text)
	}
}

func TestCRLFIsWhitespace(t *testing.T) {
	expectTokens(t, "a\r\nb", token.Ident, token.Newline, token.Ident)
}

func TestLexErrors(t *testing.T) {
	cases := []struct {
		input string
		code  diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{"a ? b", diag.LexUnknownChar},
		{"12ab", diag.LexBadNumber},
		{"$ x", diag.LexUnknownChar},
	}
	for _, tc := range cases {
		lx, rep := makeTestLexer(tc.input)
		collectAllTokens(lx)
		if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != tc.code {
			t.Errorf("%q: diagnostics = %v", tc.input, rep.diagnostics)
		}
		if lx.Errors() != 1 {
			t.Errorf("%q: Errors() = %d", tc.input, lx.Errors())
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("x y")
	if p := lx.Peek(); p.Text != "x" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "x" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "y" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("expected EOF, got %v", n.Kind)
	}
}
