package lexer

import (
	"lu/internal/diag"
	"lu/internal/token"
)

// scanNumber scans [0-9]+ or [0-9]+.[0-9]+. A dot not followed by a digit
// is left for the next token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	kind := token.IntLit
	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		kind = token.DecimalLit
	}
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		tok := lx.emit(token.Invalid, start)
		lx.errLex(diag.LexBadNumber, tok.Span, "malformed number literal '"+tok.Text+"'")
		return tok
	}
	return lx.emit(kind, start)
}
