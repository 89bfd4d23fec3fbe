package lexer

import (
	"lu/internal/diag"
	"lu/internal/token"
)

// scanString scans a double-quoted literal. Escapes are kept verbatim in
// Text and decoded by the parser; newlines inside the quotes are allowed.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Bump() {
		case '"':
			return lx.emit(token.StringLit, start)
		case '\\':
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "expected '\"' to close string literal")
	return tok
}
