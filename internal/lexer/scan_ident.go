package lexer

import (
	"lu/internal/diag"
	"lu/internal/token"
)

// scanIdentOrKeyword scans [A-Za-z_][A-Za-z0-9_]* and maps keywords.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Ident, start)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanSigil scans `$name` or `@name`. Text keeps the sigil.
func (lx *Lexer) scanSigil(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	if !isIdentContinueByte(lx.cursor.Peek()) {
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexUnknownChar, tok.Span, "expected a name after '"+tok.Text+"'")
		return tok
	}
	for isIdentContinueByte(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	return lx.emit(kind, start)
}
