// Package ast defines the untyped syntax tree handed from the parser to
// the analyzer: a fixed node vocabulary with positional child slots.
package ast

import "fmt"

// Kind is the syntactic category of a node.
type Kind uint8

const (
	Blank Kind = iota
	TrueLit
	FalseLit
	StringLit
	DecimalLit
	IntegerLit
	Intrinsic
	Variable
	TypedVariable
	Block
	Tuple
	Call
	Assign
	Function
	Param
	DefaultParam
	NamedType
	FunctionType
	TupleType
	Label
	Branch
	Return
)

// Child slot conventions.
const (
	AssignTarget = 0
	AssignRHS    = 1

	CallCallee = 0
	CallArgs   = 1

	FunctionParams = 0
	FunctionBody   = 1

	TypedVariableType = 0

	FunctionTypeParams = 0
	FunctionTypeResult = 1
)

var kindNames = [...]string{
	Blank:         "blank",
	TrueLit:       "true",
	FalseLit:      "false",
	StringLit:     "string",
	DecimalLit:    "decimal",
	IntegerLit:    "integer",
	Intrinsic:     "intrinsic",
	Variable:      "variable",
	TypedVariable: "typed-variable",
	Block:         "block",
	Tuple:         "tuple",
	Call:          "call",
	Assign:        "assign",
	Function:      "function",
	Param:         "param",
	DefaultParam:  "default-param",
	NamedType:     "named-type",
	FunctionType:  "function-type",
	TupleType:     "tuple-type",
	Label:         "label",
	Branch:        "branch",
	Return:        "return",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind maps a kind name back to its value.
func ParseKind(s string) (Kind, bool) {
	for k, n := range kindNames {
		if n == s {
			return Kind(k), true
		}
	}
	return Blank, false
}

// IsLiteral reports whether k is a literal constant.
func (k Kind) IsLiteral() bool {
	switch k {
	case TrueLit, FalseLit, StringLit, DecimalLit, IntegerLit:
		return true
	}
	return false
}

// IsVariable reports whether k names a variable, typed or not.
func (k Kind) IsVariable() bool { return k == Variable || k == TypedVariable }

// IsType reports whether k is a type expression.
func (k Kind) IsType() bool {
	return k == NamedType || k == FunctionType || k == TupleType
}
