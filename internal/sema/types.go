package sema

import (
	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/types"
)

// typeExpr analyzes a type expression. Its own type is typeid; the type
// it names goes to Expressed.
func (a *analyzer) typeExpr(n *ast.Node) (*Expr, error) {
	if n == nil {
		return nil, diag.Internalf("sema: missing type expression")
	}
	var (
		id   types.TypeID
		subs []*Expr
		err  error
	)
	switch n.Kind {
	case ast.NamedType:
		id, err = a.namedType(n)
	case ast.TupleType:
		id, subs, err = a.tupleType(n)
	case ast.FunctionType:
		id, subs, err = a.functionType(n)
	default:
		return nil, diag.Internalf("sema: %s is not a type expression", n.Kind)
	}
	if err != nil {
		return nil, err
	}
	e := leaf(n, a.typeID)
	e.Payload = PayloadType
	e.Expressed = id
	e.Subs = subs
	return e, nil
}

// namedType reads the static value bound to a type name. Only globals
// carry static values, so locals are never consulted.
func (a *analyzer) namedType(n *ast.Node) (types.TypeID, error) {
	sid, ok := a.table.ResolveGlobal(n.Text)
	if !ok {
		return types.Undefined, failf(diag.SemaUnknownTypeName, n.Span, "unknown type name '%s'", n.Text)
	}
	sym := a.table.Symbol(sid)
	if sym.Type != a.typeID {
		return types.Undefined, failf(diag.SemaNotATypeName, n.Span, "'%s' is not a type name", n.Text)
	}
	v, ok := a.table.Static(sid)
	if !ok || v.Type != a.typeID {
		return types.Undefined, failf(diag.SemaNotATypeName, n.Span, "'%s' is not a type name", n.Text)
	}
	return v.TypeIDValue(), nil
}

func (a *analyzer) tupleType(n *ast.Node) (types.TypeID, []*Expr, error) {
	var (
		tup  types.Tuple
		subs []*Expr
	)
	for _, c := range n.Children {
		name := ""
		tn := c
		switch c.Kind {
		case ast.Param:
			name, tn = c.Text, c.Child(0)
		case ast.DefaultParam:
			return types.Undefined, nil, diag.Unimplemented("sema: default parameter values")
		}
		sub, err := a.typeExpr(tn)
		if err != nil {
			return types.Undefined, nil, err
		}
		subs = append(subs, sub)
		tup.Members = append(tup.Members, types.Member{Type: sub.Expressed, Name: name})
	}
	id, err := a.reg.Intern(tup)
	return id, subs, err
}

func (a *analyzer) functionType(n *ast.Node) (types.TypeID, []*Expr, error) {
	params, err := a.typeExpr(n.Child(ast.FunctionTypeParams))
	if err != nil {
		return types.Undefined, nil, err
	}
	result, err := a.typeExpr(n.Child(ast.FunctionTypeResult))
	if err != nil {
		return types.Undefined, nil, err
	}
	fn := types.Function{Result: result.Expressed}
	if tup, ok := a.reg.TupleOf(params.Expressed); ok && params.Kind == ast.TupleType {
		fn.Params = tup.Types()
	} else {
		fn.Params = []types.TypeID{params.Expressed}
	}
	id, err := a.reg.Intern(fn)
	return id, []*Expr{params, result}, err
}
