package mir

import (
	"context"
	"fmt"

	"lu/internal/diag"
	"lu/internal/sema"
	"lu/internal/session"
	"lu/internal/symbols"
	"lu/internal/trace"
	"lu/internal/types"
)

// Lower turns the analyzed tree into an instruction stream. sess must be
// the context the tree was analyzed with; the caller hands it over with
// Move. Failed units are reported and skipped under the same policy as
// analysis; internal errors abort. A single halt always ends the stream.
func Lower(ctx context.Context, tree *sema.Tree, sess *session.Context, logger diag.Logger) (*Program, diag.Status, error) {
	prog := &Program{}
	status := diag.StatusOK

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "lower", 0)
	defer func() { span.End(status.String()) }()

	l := &lowerer{reg: sess.Types(), table: sess.Symbols()}
	for _, unit := range tree.Units {
		if err := ctx.Err(); err != nil {
			status = diag.StatusFail
			return prog, status, err
		}
		instrs, err := l.unit(unit)
		if err != nil {
			f, ok := diag.AsFailure(err)
			if !ok {
				status = diag.StatusFail
				return prog, status, err
			}
			status = diag.StatusFail
			trace.Point(tracer, trace.ScopeError, "lower.fail", f.Error(), span.ID())
			if logger == nil {
				continue
			}
			diag.Push(logger, f.Diag)
			if logger.IsFatal(f.Diag.Severity) {
				break
			}
			continue
		}
		prog.Instrs = append(prog.Instrs, instrs...)
		trace.Point(tracer, trace.ScopeNode, "unit", fmt.Sprintf("%s: %d instrs", unit.Kind, len(instrs)), span.ID())
	}
	prog.Instrs = append(prog.Instrs, Instr{Op: OpHalt})
	prog.Symbols = symbolNames(l.table)
	return prog, status, nil
}

func symbolNames(table *symbols.Table) []string {
	names := make([]string, table.Len()+1)
	for _, sym := range table.Symbols.Data() {
		names[sym.ID] = sym.Name
	}
	return names
}

type lowerer struct {
	reg   *types.Registry
	table *symbols.Table
}
