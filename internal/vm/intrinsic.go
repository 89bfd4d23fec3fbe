package vm

import (
	"io"

	"lu/internal/intrinsic"
	"lu/internal/mir"
	"lu/internal/symbols"
	"lu/internal/types"
	"lu/internal/value"
)

func (vm *VM) intrinsic(in *mir.Instr) ([]SlotWrite, *VMError) {
	def, ok := intrinsic.ByOp(in.Native)
	if !ok {
		return nil, vm.eb.unsupportedIntrinsic(in, in.Native.String())
	}
	var dest, op value.Value
	if def.Config.HasDest() {
		v, vmErr := vm.operand(in, in.Dest, def.Dest)
		if vmErr != nil {
			return nil, vmErr
		}
		dest = v
	}
	if def.Config.HasOp() {
		v, vmErr := vm.operand(in, in.Operand, def.Operand)
		if vmErr != nil {
			return nil, vmErr
		}
		op = v
	}

	var out value.Value
	switch in.Native {
	case intrinsic.OpI32Print, intrinsic.OpI64Print, intrinsic.OpU32Print, intrinsic.OpU64Print,
		intrinsic.OpBoolPrint, intrinsic.OpAsciiPrint:
		if _, err := io.WriteString(vm.RT.Stdout(), op.String()); err != nil {
			return nil, vm.eb.runtimeFailure(in, err)
		}
		return nil, nil
	case intrinsic.OpI32Add:
		out = value.Int(dest.Type, types.Int32, int64(int32(dest.Int())+int32(op.Int()))) //nolint:gosec // wraps at width
	case intrinsic.OpI64Add:
		out = value.Int(dest.Type, types.Int64, dest.Int()+op.Int())
	case intrinsic.OpU32Add:
		out = value.Uint(dest.Type, types.Uint32, uint64(uint32(dest.Uint())+uint32(op.Uint()))) //nolint:gosec // wraps at width
	case intrinsic.OpU64Add:
		out = value.Uint(dest.Type, types.Uint64, dest.Uint()+op.Uint())
	case intrinsic.OpLogicalNeg:
		out = value.Bool(dest.Type, !dest.Bool())
	case intrinsic.OpLogicalAnd:
		out = value.Bool(dest.Type, dest.Bool() && op.Bool())
	case intrinsic.OpLogicalOr:
		out = value.Bool(dest.Type, dest.Bool() || op.Bool())
	default:
		return nil, vm.eb.unsupportedIntrinsic(in, def.Name)
	}
	vm.write(int(in.Dest), out)
	return []SlotWrite{{Slot: in.Dest, Value: out}}, nil
}

// operand reads a bound slot and checks it holds the builtin kind the
// intrinsic expects.
func (vm *VM) operand(in *mir.Instr, id symbols.SymbolID, want types.BuiltinKind) (value.Value, *VMError) {
	v, ok := vm.Slot(int(id))
	if !ok {
		return value.Value{}, vm.eb.useBeforeInit(in, vm.Prog.SymbolName(id))
	}
	if v.Kind() != types.ClassBuiltin || v.Builtin != want {
		return value.Value{}, vm.eb.typeMismatch(in, want.String(), describe(v))
	}
	return v, nil
}

func describe(v value.Value) string {
	if v.Kind() == types.ClassBuiltin {
		return v.Builtin.String()
	}
	return v.Kind().String()
}
