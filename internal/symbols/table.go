package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"

	"lu/internal/source"
	"lu/internal/types"
	"lu/internal/value"
)

// ErrAlreadyDeclared is returned when a name is already bound in the
// target namespace.
var ErrAlreadyDeclared = errors.New("already declared")

// Table owns every scope, symbol, intrinsic and static value of a session.
type Table struct {
	Scopes  *Scopes
	Symbols *Symbols

	root       ScopeID
	globals    map[string]SymbolID
	intrinsics []Intrinsic
	intrByName map[string]IntrinsicID
	statics    map[SymbolID]value.Value
	typed      map[SymbolID]bool
}

// NewTable builds a table with a single root file scope.
func NewTable() *Table {
	t := &Table{
		Scopes:     NewScopes(0),
		Symbols:    NewSymbols(0),
		globals:    make(map[string]SymbolID),
		intrinsics: make([]Intrinsic, 1), // index 0 reserved for NoIntrinsic
		intrByName: make(map[string]IntrinsicID),
		statics:    make(map[SymbolID]value.Value),
		typed:      make(map[SymbolID]bool),
	}
	t.root = t.Scopes.New(ScopeFile, NoScope, source.Span{})
	return t
}

// Root returns the file scope every other scope descends from.
func (t *Table) Root() ScopeID { return t.root }

// Push opens a child scope.
func (t *Table) Push(parent ScopeID, kind ScopeKind, span source.Span) ScopeID {
	return t.Scopes.New(kind, parent, span)
}

// Parent returns the enclosing scope, NoScope for the root.
func (t *Table) Parent(scope ScopeID) ScopeID {
	if s := t.Scopes.Get(scope); s != nil {
		return s.Parent
	}
	return NoScope
}

// DeclareLocal binds sym.Name in scope. Only the scope's own names are
// checked, so shadowing an outer binding is allowed.
func (t *Table) DeclareLocal(scope ScopeID, sym Symbol) (SymbolID, error) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbol, fmt.Errorf("declare %q: unknown scope %d", sym.Name, scope)
	}
	if prev, ok := s.Names[sym.Name]; ok {
		return prev, fmt.Errorf("%q: %w", sym.Name, ErrAlreadyDeclared)
	}
	sym.Scope = scope
	sym.Flags &^= SymbolGlobal
	id := t.Symbols.New(sym)
	s.Names[sym.Name] = id
	s.Symbols = append(s.Symbols, id)
	return id, nil
}

// DeclareGlobal binds sym.Name in the flat global namespace.
func (t *Table) DeclareGlobal(sym Symbol) (SymbolID, error) {
	if prev, ok := t.globals[sym.Name]; ok {
		return prev, fmt.Errorf("global %q: %w", sym.Name, ErrAlreadyDeclared)
	}
	sym.Scope = NoScope
	sym.Flags |= SymbolGlobal
	id := t.Symbols.New(sym)
	t.globals[sym.Name] = id
	return id, nil
}

// ResolveInnermost looks name up in the global namespace, then walks
// scope and its ancestors. A miss is not an error.
func (t *Table) ResolveInnermost(scope ScopeID, name string) (SymbolID, bool) {
	if id, ok := t.globals[name]; ok {
		return id, true
	}
	for cur := scope; cur.IsValid(); {
		s := t.Scopes.Get(cur)
		if s == nil {
			break
		}
		if id, ok := s.Names[name]; ok {
			return id, true
		}
		cur = s.Parent
	}
	return NoSymbol, false
}

// ResolveLocal looks name up in scope only.
func (t *Table) ResolveLocal(scope ScopeID, name string) (SymbolID, bool) {
	s := t.Scopes.Get(scope)
	if s == nil {
		return NoSymbol, false
	}
	id, ok := s.Names[name]
	return id, ok
}

// ResolveGlobal looks name up in the global namespace only.
func (t *Table) ResolveGlobal(name string) (SymbolID, bool) {
	id, ok := t.globals[name]
	return id, ok
}

// Symbol returns the symbol or nil.
func (t *Table) Symbol(id SymbolID) *Symbol { return t.Symbols.Get(id) }

// Len reports the number of declared symbols.
func (t *Table) Len() int { return t.Symbols.Len() }

// SetType assigns the type of a symbol. A symbol declared with a concrete
// type, or already updated once, cannot change.
func (t *Table) SetType(id SymbolID, ty types.TypeID) error {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return fmt.Errorf("set type: unknown symbol %d", id)
	}
	if t.typed[id] || (!sym.Type.IsUndefined() && sym.Type != ty) {
		return fmt.Errorf("set type: symbol %q already typed", sym.Name)
	}
	sym.Type = ty
	t.typed[id] = true
	return nil
}

// RegisterIntrinsic adds an intrinsic. Names are unique.
func (t *Table) RegisterIntrinsic(in Intrinsic) (IntrinsicID, error) {
	if _, ok := t.intrByName[in.Name]; ok {
		return NoIntrinsic, fmt.Errorf("intrinsic %q: %w", in.Name, ErrAlreadyDeclared)
	}
	n, err := safecast.Conv[uint32](len(t.intrinsics))
	if err != nil {
		panic(fmt.Errorf("intrinsic table overflow: %w", err))
	}
	in.ID = IntrinsicID(n)
	t.intrinsics = append(t.intrinsics, in)
	t.intrByName[in.Name] = in.ID
	return in.ID, nil
}

// LookupIntrinsic finds an intrinsic by name.
func (t *Table) LookupIntrinsic(name string) (IntrinsicID, bool) {
	id, ok := t.intrByName[name]
	return id, ok
}

// Intrinsic returns the registered entry or nil.
func (t *Table) Intrinsic(id IntrinsicID) *Intrinsic {
	if !id.IsValid() || int(id) >= len(t.intrinsics) {
		return nil
	}
	return &t.intrinsics[id]
}

// Intrinsics lists registered entries in registration order.
func (t *Table) Intrinsics() []Intrinsic {
	return append([]Intrinsic(nil), t.intrinsics[1:]...)
}

// SetStatic binds a compile-time value to a symbol and flags it static.
func (t *Table) SetStatic(id SymbolID, v value.Value) error {
	sym := t.Symbols.Get(id)
	if sym == nil {
		return fmt.Errorf("set static: unknown symbol %d", id)
	}
	sym.Flags |= SymbolStatic
	t.statics[id] = v
	return nil
}

// Static returns the compile-time value of a static symbol.
func (t *Table) Static(id SymbolID) (value.Value, bool) {
	v, ok := t.statics[id]
	return v, ok
}
