package vm

import (
	"fmt"

	"lu/internal/diag"
	"lu/internal/mir"
	"lu/internal/symbols"
	"lu/internal/value"
)

// SlotWrite records a store performed by one instruction.
type SlotWrite struct {
	Slot  symbols.SymbolID
	Value value.Value
}

func (vm *VM) exec(in *mir.Instr) ([]SlotWrite, *VMError) {
	switch in.Op {
	case mir.OpHalt:
		vm.State = Halted
		return nil, nil
	case mir.OpStoreSymbol:
		v, vmErr := vm.eval(in, in.Eval)
		if vmErr != nil {
			return nil, vmErr
		}
		vm.write(int(in.Symbol), v)
		return []SlotWrite{{Slot: in.Symbol, Value: v}}, nil
	case mir.OpIntrinsic:
		return vm.intrinsic(in)
	case mir.OpLoadConst, mir.OpLoadSymbol:
		// A bare load has no effect.
		_, vmErr := vm.eval(in, in)
		return nil, vmErr
	case mir.OpCall, mir.OpTuple, mir.OpBlock, mir.OpReturn, mir.OpBranch:
		return nil, vm.eb.unimplemented(in, in.Op.String())
	}
	if vm.logger != nil {
		diag.ReportError(vm.logger, diag.VMIllegalInstruction, in.Span,
			fmt.Sprintf("illegal instruction %s at %d", in.Op, vm.IP)).Emit()
	}
	return nil, vm.eb.illegal(in)
}

// eval evaluates the operand embedded in a store. Only constants and
// symbol loads are executable.
func (vm *VM) eval(at, e *mir.Instr) (value.Value, *VMError) {
	if e == nil {
		return value.Value{}, vm.eb.unimplemented(at, "store without a value")
	}
	switch e.Op {
	case mir.OpLoadConst:
		return e.Const, nil
	case mir.OpLoadSymbol:
		v, ok := vm.Slot(int(e.Symbol))
		if !ok {
			return value.Value{}, vm.eb.useBeforeInit(at, vm.Prog.SymbolName(e.Symbol))
		}
		return v, nil
	}
	return value.Value{}, vm.eb.unimplemented(at, "evaluation of "+e.Op.String())
}
