package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedParen     Code = 2002
	SynUnclosedBrace     Code = 2003
	SynExpectExpression  Code = 2004
	SynInvalidTarget     Code = 2005
	SynExpectType        Code = 2006
	SynExpectLabelOrJump Code = 2007
	SynExpectIdentifier  Code = 2008

	// Семантические
	SemaInfo                 Code = 3000
	SemaNotConvertible       Code = 3010
	SemaNotCallable          Code = 3011
	SemaUnsupportedIntrinsic Code = 3015
	SemaAlreadyDeclared      Code = 3020
	SemaCallArityMismatch    Code = 3021 // reserved: call arity reports SemaTupleArityMismatch
	SemaTupleArityMismatch   Code = 3022
	SemaUnknownTypeName      Code = 3030
	SemaNotATypeName         Code = 3031
	SemaTupleTargetMismatch  Code = 3032
	SemaVariableUnused       Code = 3200
	SemaExprInfo             Code = 3900

	// Lowering
	LowerNotAddressable Code = 4010
	LowerInfo           Code = 4900

	// Исполнение
	VMIllegalInstruction Code = 5000
	VMRuntimeFailure     Code = 5001

	// I/O
	IOLoadFileError Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnknownChar:           "Unknown character",
	LexUnterminatedString:    "Unterminated string literal",
	LexBadNumber:             "Malformed number literal",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynUnclosedParen:         "Unclosed parenthesis",
	SynUnclosedBrace:         "Unclosed brace",
	SynExpectExpression:      "Expected expression",
	SynInvalidTarget:         "Invalid assignment target",
	SynExpectType:            "Expected type",
	SynExpectLabelOrJump:     "Expected label or condition",
	SynExpectIdentifier:      "Expected identifier",
	SemaInfo:                 "Semantic information",
	SemaNotConvertible:       "Type is not convertible",
	SemaNotCallable:          "Expression is not callable",
	SemaUnsupportedIntrinsic: "Unsupported intrinsic",
	SemaAlreadyDeclared:      "Variable already declared",
	SemaCallArityMismatch:    "Call arity mismatch",
	SemaTupleArityMismatch:   "Tuple arity mismatch",
	SemaUnknownTypeName:      "Unknown type name",
	SemaNotATypeName:         "Name does not denote a type",
	SemaTupleTargetMismatch:  "Tuple target does not match value",
	SemaVariableUnused:       "Variable is unused",
	SemaExprInfo:             "Analyzed expression",
	LowerNotAddressable:      "Intrinsic argument is not a variable",
	LowerInfo:                "Lowering information",
	VMIllegalInstruction:     "Illegal instruction",
	VMRuntimeFailure:         "Runtime failure",
	IOLoadFileError:          "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LOW%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("VM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
