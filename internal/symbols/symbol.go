package symbols

import (
	"lu/internal/intrinsic"
	"lu/internal/source"
	"lu/internal/types"
)

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint16

const (
	// SymbolStatic marks a binding with a compile-time value.
	SymbolStatic SymbolFlags = 1 << iota
	// SymbolGlobal marks a binding in the flat global namespace.
	SymbolGlobal
	// SymbolImplicit marks a variable declared by first use.
	SymbolImplicit
	// SymbolTyped marks a `name: Type` declaration.
	SymbolTyped
)

// Strings returns a slice of textual flag labels.
func (f SymbolFlags) Strings() []string {
	if f == 0 {
		return nil
	}
	labels := make([]string, 0, 4)
	if f&SymbolStatic != 0 {
		labels = append(labels, "static")
	}
	if f&SymbolGlobal != 0 {
		labels = append(labels, "global")
	}
	if f&SymbolImplicit != 0 {
		labels = append(labels, "implicit")
	}
	if f&SymbolTyped != 0 {
		labels = append(labels, "typed")
	}
	return labels
}

// Symbol is a declared name. Only Type may change after declaration.
type Symbol struct {
	ID    SymbolID
	Name  string
	Type  types.TypeID
	Flags SymbolFlags
	Scope ScopeID
	Span  source.Span
}

// Intrinsic is a registered native operation.
type Intrinsic struct {
	ID     IntrinsicID
	Name   string
	Op     intrinsic.Op
	Config types.IntrinsicConfig
	Type   types.TypeID
}
