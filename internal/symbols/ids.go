package symbols

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

const (
	// NoScope marks the absence of a scope reference (the root's parent).
	NoScope ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScope }

// SymbolID identifies a symbol inside the table arena.
type SymbolID uint32

const (
	// NoSymbol marks the absence of a symbol reference.
	NoSymbol SymbolID = 0
)

// IsValid reports whether the symbol ID refers to an allocated symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbol }

// IntrinsicID identifies a registered intrinsic.
type IntrinsicID uint32

const (
	// NoIntrinsic marks the absence of an intrinsic reference.
	NoIntrinsic IntrinsicID = 0
)

// IsValid reports whether the intrinsic ID refers to a registered entry.
func (id IntrinsicID) IsValid() bool { return id != NoIntrinsic }
