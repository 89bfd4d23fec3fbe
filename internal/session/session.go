// Package session bundles the per-compilation state threaded through
// analysis, lowering and execution.
package session

import (
	"fmt"

	"lu/internal/diag"
	"lu/internal/intrinsic"
	"lu/internal/symbols"
	"lu/internal/types"
	"lu/internal/value"
)

// Context owns the type registry and the symbol table (static values
// live in the table). Ownership moves between phases with Move.
type Context struct {
	types   *types.Registry
	symbols *symbols.Table
}

// New builds a context and seeds the fixed catalogues: void, literal
// kinds, builtins, intrinsics, and one global static binding per builtin
// name whose value is the builtin's own TypeID.
func New() (*Context, error) {
	reg := types.NewRegistry()
	table := symbols.NewTable()

	reg.VoidID()
	for _, k := range types.LiteralKinds() {
		reg.LiteralID(k)
	}
	for _, k := range types.Builtins() {
		reg.BuiltinID(k)
	}

	for _, def := range intrinsic.Catalogue() {
		sig, err := def.Signature(reg)
		if err != nil {
			return nil, fmt.Errorf("seed intrinsic %s: %w", def.Name, err)
		}
		if _, err := table.RegisterIntrinsic(symbols.Intrinsic{
			Name:   def.Name,
			Op:     def.Op,
			Config: def.Config,
			Type:   sig,
		}); err != nil {
			return nil, fmt.Errorf("seed intrinsic: %w", err)
		}
	}

	typeID := reg.BuiltinID(types.TypeIDKind)
	for _, k := range types.Builtins() {
		id, err := table.DeclareGlobal(symbols.Symbol{
			Name:  k.String(),
			Type:  typeID,
			Flags: symbols.SymbolStatic,
		})
		if err != nil {
			return nil, fmt.Errorf("seed builtin name: %w", err)
		}
		if err := table.SetStatic(id, value.TypeRef(typeID, reg.BuiltinID(k))); err != nil {
			return nil, err
		}
	}

	return &Context{types: reg, symbols: table}, nil
}

// Types returns the registry. It panics on a moved-from context.
func (c *Context) Types() *types.Registry {
	c.mustLive()
	return c.types
}

// Symbols returns the symbol table. It panics on a moved-from context.
func (c *Context) Symbols() *symbols.Table {
	c.mustLive()
	return c.symbols
}

// Move transfers ownership to a new context and empties c.
func (c *Context) Move() *Context {
	c.mustLive()
	out := &Context{types: c.types, symbols: c.symbols}
	c.types = nil
	c.symbols = nil
	return out
}

// Live reports whether c still owns its data.
func (c *Context) Live() bool {
	return c != nil && c.types != nil && c.symbols != nil
}

func (c *Context) mustLive() {
	if !c.Live() {
		panic(diag.Internalf("session: use of moved-from context"))
	}
}
