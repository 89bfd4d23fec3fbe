package token

import "fmt"

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates an expression statement.
	Newline

	Ident

	// $name
	Intrinsic
	// @name
	Label

	StringLit
	IntLit
	DecimalLit

	KwTrue
	KwFalse
	KwRet
	KwBr

	LParen
	RParen
	LBrace
	RBrace
	Comma
	Semicolon
	Dot
	Colon
	ColonAssign // :=
	Assign      // =
	LeftArrow   // <-
	Arrow       // ->
)

var kindNames = [...]string{
	Invalid:     "invalid",
	EOF:         "end of file",
	Newline:     "newline",
	Ident:       "identifier",
	Intrinsic:   "intrinsic",
	Label:       "label",
	StringLit:   "string literal",
	IntLit:      "integer literal",
	DecimalLit:  "decimal literal",
	KwTrue:      "true",
	KwFalse:     "false",
	KwRet:       "ret",
	KwBr:        "br",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	Comma:       ",",
	Semicolon:   ";",
	Dot:         ".",
	Colon:       ":",
	ColonAssign: ":=",
	Assign:      "=",
	LeftArrow:   "<-",
	Arrow:       "->",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}
