package symbols

import "lu/internal/source"

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeFile               // root per compiled file
	ScopeFunction           // function body scope
	ScopeBlock              // `{ ... }` block
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeFile:
		return "file"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope is one node of the lexical scope tree. Parent is a handle, not
// an owning reference; children are listed in creation order.
type Scope struct {
	ID       ScopeID
	Kind     ScopeKind
	Parent   ScopeID
	Span     source.Span
	Names    map[string]SymbolID
	Symbols  []SymbolID
	Children []ScopeID
}
