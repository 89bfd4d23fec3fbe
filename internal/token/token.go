package token

import "lu/internal/source"

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a literal constant.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, IntLit, DecimalLit, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// IsEndOfExpr reports whether the token terminates an expression statement.
func (t Token) IsEndOfExpr() bool {
	return t.Kind == Semicolon || t.Kind == Newline || t.Kind == EOF
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwTrue, KwFalse, KwRet, KwBr:
		return true
	default:
		return false
	}
}
