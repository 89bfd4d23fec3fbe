package mir

import (
	"fmt"

	"lu/internal/intrinsic"
)

// Validate checks structural invariants: known opcodes, operands present
// where the opcode needs them, and a trailing halt.
func (p *Program) Validate() error {
	if len(p.Instrs) == 0 || p.Instrs[len(p.Instrs)-1].Op != OpHalt {
		return fmt.Errorf("mir: program must end with halt")
	}
	for i := range p.Instrs {
		if err := p.validate(&p.Instrs[i]); err != nil {
			return fmt.Errorf("mir: instr %d: %w", i, err)
		}
	}
	return nil
}

func (p *Program) validate(in *Instr) error {
	if !in.Op.Valid() {
		return fmt.Errorf("invalid opcode %d", in.Op)
	}
	switch in.Op {
	case OpLoadSymbol:
		if !p.known(int(in.Symbol)) {
			return fmt.Errorf("load of unknown symbol %d", in.Symbol)
		}
	case OpStoreSymbol:
		if !p.known(int(in.Symbol)) {
			return fmt.Errorf("store to unknown symbol %d", in.Symbol)
		}
		if in.Eval == nil {
			return fmt.Errorf("store to %s without a value", p.SymbolName(in.Symbol))
		}
		return p.validate(in.Eval)
	case OpIntrinsic:
		if in.Native == intrinsic.OpInvalid {
			return fmt.Errorf("intrinsic without a native op")
		}
		if in.Dest.IsValid() && !p.known(int(in.Dest)) {
			return fmt.Errorf("intrinsic dest %d unknown", in.Dest)
		}
		if in.Operand.IsValid() && !p.known(int(in.Operand)) {
			return fmt.Errorf("intrinsic operand %d unknown", in.Operand)
		}
	case OpBlock, OpTuple:
		for i := range in.Subs {
			if err := p.validate(&in.Subs[i]); err != nil {
				return err
			}
		}
	case OpBranch:
		if in.Cond != nil {
			return p.validate(in.Cond)
		}
	}
	return nil
}

func (p *Program) known(idx int) bool {
	return idx > 0 && idx < len(p.Symbols)
}
