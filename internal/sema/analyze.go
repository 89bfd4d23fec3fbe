// Package sema annotates the syntax tree with types and symbols.
package sema

import (
	"context"
	"fmt"

	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/session"
	"lu/internal/source"
	"lu/internal/symbols"
	"lu/internal/trace"
	"lu/internal/types"
)

// Analyze walks the top-level units of tree in order. A unit that fails
// with a diagnostic is reported and skipped, unless the logger considers
// it fatal, in which case the walk stops. Internal errors are returned
// as err and end the walk at once. The units analyzed so far are
// returned in every case.
func Analyze(ctx context.Context, tree *ast.Tree, sess *session.Context, logger diag.Logger) (*Tree, diag.Status, error) {
	out := &Tree{File: tree.File}
	status := diag.StatusOK

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "sema", 0)
	defer func() { span.End(status.String()) }()

	a := &analyzer{
		reg:    sess.Types(),
		table:  sess.Symbols(),
		tracer: tracer,
		parent: span.ID(),
	}
	a.scope = a.table.Root()
	a.typeID = a.reg.BuiltinID(types.TypeIDKind)

	for _, unit := range tree.Units {
		if err := ctx.Err(); err != nil {
			status = diag.StatusFail
			return out, status, err
		}
		e, err := a.expr(unit)
		if err != nil {
			f, ok := diag.AsFailure(err)
			if !ok {
				status = diag.StatusFail
				return out, status, err
			}
			status = diag.StatusFail
			trace.Point(tracer, trace.ScopeError, "sema.fail", f.Error(), span.ID())
			if logger == nil {
				continue
			}
			diag.Push(logger, f.Diag)
			if logger.IsFatal(f.Diag.Severity) {
				break
			}
			continue
		}
		out.Units = append(out.Units, e)
		trace.Point(tracer, trace.ScopeNode, "unit", Format(e, a.reg), span.ID())
	}
	return out, status, nil
}

type analyzer struct {
	reg    *types.Registry
	table  *symbols.Table
	scope  symbols.ScopeID
	typeID types.TypeID // builtin typeid: the type of every type name

	tracer trace.Tracer
	parent uint64
}

func failf(code diag.Code, sp source.Span, format string, args ...any) error {
	return diag.Fail(diag.NewError(code, sp, fmt.Sprintf(format, args...)))
}

func leaf(n *ast.Node, ty types.TypeID) *Expr {
	return &Expr{Kind: n.Kind, Text: n.Text, Span: n.Span, Base: ty, Eval: ty}
}

func (a *analyzer) expr(n *ast.Node) (*Expr, error) {
	switch n.Kind {
	case ast.Blank:
		return &Expr{Kind: ast.Blank, Span: n.Span}, nil
	case ast.TrueLit, ast.FalseLit, ast.StringLit, ast.DecimalLit, ast.IntegerLit:
		return a.literal(n)
	case ast.Intrinsic:
		return a.intrinsic(n)
	case ast.Variable, ast.TypedVariable:
		return a.variable(n, types.Undefined)
	case ast.NamedType, ast.FunctionType, ast.TupleType:
		return a.typeExpr(n)
	case ast.Assign:
		return a.assign(n)
	case ast.Call:
		return a.call(n)
	case ast.Tuple:
		return a.tuple(n)
	case ast.Block:
		return a.block(n)
	case ast.Function:
		return a.function(n)
	case ast.Label, ast.Branch, ast.Return:
		return nil, diag.Unimplemented("sema: %s", n.Kind)
	}
	return nil, diag.Internalf("sema: unexpected %s node", n.Kind)
}

func (a *analyzer) literal(n *ast.Node) (*Expr, error) {
	var k types.LiteralKind
	switch n.Kind {
	case ast.TrueLit:
		k = types.LitTrue
	case ast.FalseLit:
		k = types.LitFalse
	case ast.StringLit:
		k = types.LitString
	case ast.DecimalLit:
		k = types.LitDecimal
	case ast.IntegerLit:
		k = types.LitInteger
	default:
		return nil, diag.Internalf("sema: %s is not a literal", n.Kind)
	}
	return leaf(n, a.reg.LiteralID(k)), nil
}

func (a *analyzer) tuple(n *ast.Node) (*Expr, error) {
	e := leaf(n, types.Undefined)
	ids := make([]types.TypeID, 0, len(n.Children))
	for _, c := range n.Children {
		sub, err := a.expr(c)
		if err != nil {
			return nil, err
		}
		e.Subs = append(e.Subs, sub)
		ids = append(ids, sub.Eval)
	}
	id, err := a.reg.Intern(types.TupleOf(ids...))
	if err != nil {
		return nil, err
	}
	e.Base, e.Eval = id, id
	return e, nil
}

// block opens a child scope for its statements; its own type is void.
func (a *analyzer) block(n *ast.Node) (*Expr, error) {
	outer := a.scope
	a.scope = a.table.Push(outer, symbols.ScopeBlock, n.Span)
	defer func() { a.scope = outer }()

	e := leaf(n, a.reg.VoidID())
	for _, c := range n.Children {
		sub, err := a.expr(c)
		if err != nil {
			return nil, err
		}
		e.Subs = append(e.Subs, sub)
	}
	return e, nil
}

func (a *analyzer) function(n *ast.Node) (*Expr, error) {
	return nil, diag.Unimplemented("sema: function parameter list at %s", n.Span)
}
