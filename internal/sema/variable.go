package sema

import (
	"errors"
	"strings"

	"lu/internal/ast"
	"lu/internal/cast"
	"lu/internal/diag"
	"lu/internal/symbols"
	"lu/internal/types"
)

// variable analyzes a reference or a declaration. hint is the type the
// surrounding assignment offers; Undefined when there is none.
func (a *analyzer) variable(n *ast.Node, hint types.TypeID) (*Expr, error) {
	if n.Kind == ast.TypedVariable {
		return a.typedVariable(n)
	}

	if sid, ok := a.table.ResolveInnermost(a.scope, n.Text); ok {
		sym := a.table.Symbol(sid)
		if sym.Type.IsUndefined() && !hint.IsUndefined() {
			ty, err := cast.DefaultTypeOf(a.reg, hint)
			if err != nil {
				return nil, err
			}
			if err := a.table.SetType(sid, ty); err != nil {
				return nil, diag.Internalf("sema: %v", err)
			}
		}
		return a.symbolExpr(n, sid), nil
	}

	// первое упоминание: неявное объявление в текущей области
	ty, err := cast.DefaultTypeOf(a.reg, hint)
	if err != nil {
		return nil, err
	}
	sid, err := a.table.DeclareLocal(a.scope, symbols.Symbol{
		Name:  n.Text,
		Type:  ty,
		Flags: symbols.SymbolImplicit,
		Span:  n.Span,
	})
	if err != nil {
		return nil, diag.Internalf("sema: implicit declaration: %v", err)
	}
	return a.symbolExpr(n, sid), nil
}

// typedVariable is always a declaration. Only the current scope is
// checked for an earlier binding, so outer names may be shadowed.
func (a *analyzer) typedVariable(n *ast.Node) (*Expr, error) {
	_, exists := a.table.ResolveLocal(a.scope, n.Text)
	te, err := a.typeExpr(n.Child(ast.TypedVariableType))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, failf(diag.SemaAlreadyDeclared, n.Span, "symbol was previously declared '%s'", n.Text)
	}
	sid, err := a.table.DeclareLocal(a.scope, symbols.Symbol{
		Name:  n.Text,
		Type:  te.Expressed,
		Flags: symbols.SymbolTyped,
		Span:  n.Span,
	})
	if errors.Is(err, symbols.ErrAlreadyDeclared) {
		return nil, failf(diag.SemaAlreadyDeclared, n.Span, "symbol was previously declared '%s'", n.Text)
	}
	if err != nil {
		return nil, diag.Internalf("sema: %v", err)
	}
	e := a.symbolExpr(n, sid)
	e.Subs = []*Expr{te}
	return e, nil
}

func (a *analyzer) symbolExpr(n *ast.Node, sid symbols.SymbolID) *Expr {
	e := leaf(n, a.table.Symbol(sid).Type)
	e.Payload = PayloadSymbol
	e.Symbol = sid
	return e
}

// target analyzes the left side of an assignment against the type of
// the right side. Tuple targets unpack member by member and their type
// is rebuilt from the members' final types.
func (a *analyzer) target(n *ast.Node, rhs types.TypeID) (*Expr, error) {
	switch n.Kind {
	case ast.Variable, ast.TypedVariable:
		return a.variable(n, rhs)
	case ast.Tuple:
	default:
		return nil, diag.Internalf("sema: %s is not assignable", n.Kind)
	}

	src, ok := a.reg.TupleOf(rhs)
	if !ok {
		return nil, failf(diag.SemaTupleTargetMismatch, n.Span,
			"cannot unpack '%s' into %s", a.reg.Label(rhs), targetText(n))
	}
	if len(src.Members) != len(n.Children) {
		return nil, failf(diag.SemaTupleArityMismatch, n.Span,
			"tuples must be of same arity (size) %s <-> %s", targetText(n), a.reg.Label(rhs))
	}
	tup := src.Clone()
	e := leaf(n, types.Undefined)
	for i, c := range n.Children {
		sub, err := a.target(c, tup.Members[i].Type)
		if err != nil {
			return nil, err
		}
		tup.Members[i].Type = sub.Base
		e.Subs = append(e.Subs, sub)
	}
	id, err := a.reg.Intern(tup)
	if err != nil {
		return nil, err
	}
	e.Base, e.Eval = id, id
	return e, nil
}

// targetText spells a tuple target the way it was written, e.g. "(a, b)".
func targetText(n *ast.Node) string {
	if n.Kind != ast.Tuple {
		return n.Text
	}
	parts := make([]string, len(n.Children))
	for i, c := range n.Children {
		parts[i] = targetText(c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (a *analyzer) assign(n *ast.Node) (*Expr, error) {
	rhs, err := a.expr(n.Child(ast.AssignRHS))
	if err != nil {
		return nil, err
	}
	lhs, err := a.target(n.Child(ast.AssignTarget), rhs.Base)
	if err != nil {
		return nil, err
	}
	if err := a.coerce(rhs, lhs.Base); err != nil {
		return nil, err
	}
	e := leaf(n, lhs.Eval)
	e.Subs = []*Expr{lhs, rhs}
	return e, nil
}
