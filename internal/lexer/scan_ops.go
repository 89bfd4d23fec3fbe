package lexer

import (
	"lu/internal/diag"
	"lu/internal/token"
)

// Two-byte operators first, then single bytes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	switch {
	case lx.try2(':', '='):
		return lx.emit(token.ColonAssign, start)
	case lx.try2('<', '-'):
		return lx.emit(token.LeftArrow, start)
	case lx.try2('-', '>'):
		return lx.emit(token.Arrow, start)
	}

	switch lx.cursor.Bump() {
	case '(':
		return lx.emit(token.LParen, start)
	case ')':
		return lx.emit(token.RParen, start)
	case '{':
		return lx.emit(token.LBrace, start)
	case '}':
		return lx.emit(token.RBrace, start)
	case ',':
		return lx.emit(token.Comma, start)
	case ';':
		return lx.emit(token.Semicolon, start)
	case '.':
		return lx.emit(token.Dot, start)
	case ':':
		return lx.emit(token.Colon, start)
	case '=':
		return lx.emit(token.Assign, start)
	}

	// sync to whitespace so one bad run yields one diagnostic
	for !lx.cursor.EOF() && !isSpace(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	tok := lx.emit(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, "invalid token '"+tok.Text+"'")
	return tok
}

func (lx *Lexer) try2(a, b byte) bool {
	if lx.cursor.Peek() == a && lx.cursor.PeekAt(1) == b {
		lx.cursor.Off += 2
		return true
	}
	return false
}
