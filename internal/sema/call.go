package sema

import (
	"lu/internal/ast"
	"lu/internal/diag"
	"lu/internal/types"
)

// intrinsic resolves `$name` against the registered catalogue.
func (a *analyzer) intrinsic(n *ast.Node) (*Expr, error) {
	name := n.Text
	if len(name) > 0 && name[0] == '$' {
		name = name[1:]
	}
	iid, ok := a.table.LookupIntrinsic(name)
	if !ok {
		return nil, failf(diag.SemaUnsupportedIntrinsic, n.Span, "intrinsic function '%s' is not supported", n.Text)
	}
	e := leaf(n, a.table.Intrinsic(iid).Type)
	e.Payload = PayloadIntrinsic
	e.Intrinsic = iid
	return e, nil
}

func (a *analyzer) call(n *ast.Node) (*Expr, error) {
	callee, err := a.expr(n.Child(ast.CallCallee))
	if err != nil {
		return nil, err
	}
	if !a.reg.IsCallable(callee.Eval) {
		return nil, failf(diag.SemaNotCallable, n.Span,
			"callee in call expression must be callable but is '%s'", a.reg.Label(callee.Eval))
	}
	args, err := a.expr(n.Child(ast.CallArgs))
	if err != nil {
		return nil, err
	}
	ct, err := a.reg.Resolve(callee.Eval)
	if err != nil {
		return nil, err
	}
	sig, ok := ct.(types.IntrinsicSig)
	if !ok {
		return nil, diag.Unimplemented("sema: call to user function '%s'", callee.Text)
	}
	if err := a.checkIntrinsicArgs(n, callee, sig, args); err != nil {
		return nil, err
	}
	e := leaf(n, a.reg.VoidID())
	e.Subs = []*Expr{callee, args}
	return e, nil
}

// checkIntrinsicArgs requires the exact parameter count and exact
// parameter types; no implicit conversion applies.
func (a *analyzer) checkIntrinsicArgs(n *ast.Node, callee *Expr, sig types.IntrinsicSig, args *Expr) error {
	tup, ok := a.reg.TupleOf(args.Eval)
	if !ok {
		return diag.Internalf("sema: call arguments are %s", a.reg.Label(args.Eval))
	}
	params := sig.Params()
	if len(params) != sig.Config.ParamCount() {
		return diag.Internalf("sema: intrinsic config %s with %d params", sig.Config, len(params))
	}
	if len(tup.Members) != len(params) {
		return failf(diag.SemaTupleArityMismatch, n.Span,
			"call arguments must be of same arity as function parameters (size) %s <-> %s",
			a.reg.Label(callee.Eval), a.reg.Label(args.Eval))
	}
	for i, want := range params {
		if got := tup.Members[i].Type; got != want {
			return failf(diag.SemaNotConvertible, args.Sub(i).Span,
				"cannot convert from %s to %s", a.reg.Label(got), a.reg.Label(want))
		}
	}
	return nil
}
