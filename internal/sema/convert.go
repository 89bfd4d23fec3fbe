package sema

import (
	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/types"
)

// coerce sets e's eval type to target. A literal must fit the target's
// kind; any other type must match exactly. Syntactic tuples are coerced
// member by member so each member can be cast on its own.
func (a *analyzer) coerce(e *Expr, target types.TypeID) error {
	if e.Base == target {
		e.Eval = target
		return nil
	}
	if e.Kind == ast.Tuple {
		if tup, ok := a.reg.TupleOf(target); ok && len(tup.Members) == len(e.Subs) {
			for i, sub := range e.Subs {
				if err := a.coerce(sub, tup.Members[i].Type); err != nil {
					return err
				}
			}
			e.Eval = target
			return nil
		}
	}
	if a.literalFits(e.Base, target) {
		e.Eval = target
		return nil
	}
	return failf(diag.SemaNotConvertible, e.Span, "cannot convert from %s to %s", a.reg.Label(e.Base), a.reg.Label(target))
}

// literalFits reports whether a literal of type lit may be cast to target.
// Range checks happen later, in the cast itself.
func (a *analyzer) literalFits(lit, target types.TypeID) bool {
	if lit.Class() != types.ClassLiteral {
		return false
	}
	lt, err := a.reg.Resolve(lit)
	if err != nil {
		return false
	}
	kind := lt.(types.Literal).Kind
	if kind == types.LitEmptyTuple {
		n, ok := a.reg.TupleArity(target)
		return ok && n == 0
	}
	tt, err := a.reg.Resolve(target)
	if err != nil {
		return false
	}
	b, ok := tt.(types.Builtin)
	if !ok {
		return false
	}
	switch kind {
	case types.LitInteger:
		return b.Kind.Integer()
	case types.LitDecimal:
		return b.Kind == types.Float16 || b.Kind == types.Float32 || b.Kind == types.Float64
	case types.LitTrue, types.LitFalse:
		return b.Kind == types.Bool
	case types.LitString:
		return b.Kind == types.Ascii
	}
	return false
}
