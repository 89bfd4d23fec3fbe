package mir

import (
	"lu/internal/ast"
	"lu/internal/cast"
	"lu/internal/diag"
	"lu/internal/sema"
	"lu/internal/symbols"
	"lu/internal/types"
	"lu/internal/value"
)

// unit lowers one expression used as a statement.
func (l *lowerer) unit(e *sema.Expr) ([]Instr, error) {
	switch e.Kind {
	case ast.Blank, ast.Variable, ast.TypedVariable, ast.Intrinsic,
		ast.TrueLit, ast.FalseLit, ast.StringLit, ast.DecimalLit, ast.IntegerLit:
		return nil, nil
	case ast.NamedType, ast.TupleType, ast.FunctionType:
		return nil, diag.Unimplemented("lower: type expression %s used as a statement", e.Kind)
	case ast.Assign:
		return l.assign(e.Sub(ast.AssignTarget), e.Sub(ast.AssignRHS))
	case ast.Call:
		in, err := l.call(e)
		if err != nil {
			return nil, err
		}
		return []Instr{in}, nil
	case ast.Tuple, ast.Block:
		var out []Instr
		for _, sub := range e.Subs {
			instrs, err := l.unit(sub)
			if err != nil {
				return nil, err
			}
			out = append(out, instrs...)
		}
		return out, nil
	case ast.Function:
		return nil, diag.Unimplemented("lower: function value used as a statement")
	}
	return nil, diag.Internalf("lower: unexpected %s unit", e.Kind)
}

// assign emits one store per variable target. A tuple target with a
// syntactic tuple on the right is split pairwise, in source order.
func (l *lowerer) assign(target, rhs *sema.Expr) ([]Instr, error) {
	switch target.Kind {
	case ast.Variable, ast.TypedVariable:
		ev, err := l.eval(rhs)
		if err != nil {
			return nil, err
		}
		return []Instr{{Op: OpStoreSymbol, Symbol: target.Symbol, Eval: ev, Span: target.Span.Cover(rhs.Span)}}, nil
	case ast.Tuple:
		if rhs.Kind != ast.Tuple {
			return nil, diag.Unimplemented("lower: unpacking a tuple-typed %s", rhs.Kind)
		}
		if len(rhs.Subs) != len(target.Subs) {
			return nil, diag.Internalf("lower: tuple assignment %d <- %d", len(target.Subs), len(rhs.Subs))
		}
		var out []Instr
		for i := range target.Subs {
			instrs, err := l.assign(target.Subs[i], rhs.Subs[i])
			if err != nil {
				return nil, err
			}
			out = append(out, instrs...)
		}
		return out, nil
	}
	return nil, diag.Internalf("lower: %s is not a target", target.Kind)
}

// eval lowers an expression that produces a value.
func (l *lowerer) eval(e *sema.Expr) (*Instr, error) {
	switch e.Kind {
	case ast.TrueLit, ast.FalseLit, ast.StringLit, ast.DecimalLit, ast.IntegerLit:
		v, err := l.constant(e)
		if err != nil {
			return nil, err
		}
		return &Instr{Op: OpLoadConst, Const: v, Span: e.Span}, nil
	case ast.Variable, ast.TypedVariable:
		return &Instr{Op: OpLoadSymbol, Symbol: e.Symbol, Span: e.Span}, nil
	case ast.Tuple:
		in := &Instr{Op: OpTuple, Span: e.Span}
		for _, sub := range e.Subs {
			ev, err := l.eval(sub)
			if err != nil {
				return nil, err
			}
			in.Subs = append(in.Subs, *ev)
		}
		return in, nil
	case ast.Call:
		in, err := l.call(e)
		if err != nil {
			return nil, err
		}
		return &in, nil
	case ast.Block:
		instrs, err := l.unit(e)
		if err != nil {
			return nil, err
		}
		return &Instr{Op: OpBlock, Subs: instrs, Span: e.Span}, nil
	case ast.Assign:
		instrs, err := l.assign(e.Sub(ast.AssignTarget), e.Sub(ast.AssignRHS))
		if err != nil {
			return nil, err
		}
		return &Instr{Op: OpBlock, Subs: instrs, Span: e.Span}, nil
	case ast.Function:
		return nil, diag.Unimplemented("lower: function values")
	}
	return nil, diag.Internalf("lower: cannot evaluate %s", e.Kind)
}

// constant builds the literal value and casts it when an assignment
// fixed a concrete builtin type for it.
func (l *lowerer) constant(e *sema.Expr) (value.Value, error) {
	lt, err := l.reg.Resolve(e.Base)
	if err != nil {
		return value.Value{}, err
	}
	lit, ok := lt.(types.Literal)
	if !ok {
		return value.Value{}, diag.Internalf("lower: literal typed %s", l.reg.Label(e.Base))
	}
	v := value.FromLiteral(e.Base, lit.Kind, e.Text)
	if e.Eval == e.Base || e.Eval.Class() != types.ClassBuiltin {
		return v, nil
	}
	return cast.LiteralToBuiltin(l.reg, e.Eval, v)
}

// call lowers an intrinsic call. Arguments bind to the dest and op
// slots in order, as the intrinsic's config dictates.
func (l *lowerer) call(e *sema.Expr) (Instr, error) {
	callee := e.Sub(ast.CallCallee)
	if callee == nil || callee.Payload != sema.PayloadIntrinsic {
		return Instr{}, diag.Unimplemented("lower: call to user function")
	}
	intr := l.table.Intrinsic(callee.Intrinsic)
	if intr == nil {
		return Instr{}, diag.Internalf("lower: unknown intrinsic %d", callee.Intrinsic)
	}
	args := e.Sub(ast.CallArgs)
	in := Instr{Op: OpIntrinsic, Intrinsic: callee.Intrinsic, Native: intr.Op, Span: e.Span}
	next := 0
	if intr.Config.HasDest() {
		sid, err := slot(args.Sub(next), intr.Name)
		if err != nil {
			return Instr{}, err
		}
		in.Dest = sid
		next++
	}
	if intr.Config.HasOp() {
		sid, err := slot(args.Sub(next), intr.Name)
		if err != nil {
			return Instr{}, err
		}
		in.Operand = sid
	}
	return in, nil
}

func slot(arg *sema.Expr, name string) (symbols.SymbolID, error) {
	if arg == nil {
		return symbols.NoSymbol, diag.Internalf("lower: missing argument for $%s", name)
	}
	if arg.Payload != sema.PayloadSymbol {
		return symbols.NoSymbol, diag.Fail(diag.NewError(diag.LowerNotAddressable, arg.Span,
			"argument of '$"+name+"' must be a variable"))
	}
	return arg.Symbol, nil
}
