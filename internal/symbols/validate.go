package symbols

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate walks internal arenas checking structural invariants. Returns nil if
// everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	// Parent/children backlinks.
	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent >= scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			if !containsScope(t.Scopes.data[scope.Parent].Children, scopeID) {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		} else if scopeID != t.root {
			errs = append(errs, fmt.Errorf("scope %d is detached from the root", scopeID))
		}
		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || child == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}
		// Name index must cover exactly the scope's symbol list.
		if len(scope.Names) != len(scope.Symbols) {
			errs = append(errs, fmt.Errorf("scope %d names %d != symbols %d", scopeID, len(scope.Names), len(scope.Symbols)))
		}
		for name, id := range scope.Names {
			sym := t.Symbols.Get(id)
			if sym == nil || sym.Name != name || sym.Scope != scopeID {
				errs = append(errs, fmt.Errorf("scope %d name %q references foreign symbol %d", scopeID, name, id))
			}
		}
	}

	for idx := 1; idx < len(t.Symbols.data); idx++ {
		symbolID, err := toSymbolID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		symbol := t.Symbols.data[idx]
		if symbol.ID != symbolID {
			errs = append(errs, fmt.Errorf("symbol %d carries id %d", symbolID, symbol.ID))
		}
		if symbol.Flags&SymbolGlobal != 0 {
			if t.globals[symbol.Name] != symbolID {
				errs = append(errs, fmt.Errorf("global symbol %d (%q) missing from global map", symbolID, symbol.Name))
			}
			continue
		}
		if !symbol.Scope.IsValid() || int(symbol.Scope) >= len(t.Scopes.data) {
			errs = append(errs, fmt.Errorf("symbol %d has invalid scope %d", symbolID, symbol.Scope))
			continue
		}
		if t.Scopes.data[symbol.Scope].Names[symbol.Name] != symbolID {
			errs = append(errs, fmt.Errorf("symbol %d is missing from scope %d", symbolID, symbol.Scope))
		}
	}

	for id := range t.statics {
		if t.Symbols.Get(id) == nil {
			errs = append(errs, fmt.Errorf("static value bound to unknown symbol %d", id))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func containsScope(list []ScopeID, id ScopeID) bool {
	for _, c := range list {
		if c == id {
			return true
		}
	}
	return false
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScope, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}

func toSymbolID(idx int) (SymbolID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoSymbol, fmt.Errorf("symbol index %d overflow: %w", idx, err)
	}
	return SymbolID(value), nil
}
