package mir

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"lu/internal/types"
)

// Dump writes one numbered line per top-level instruction.
func Dump(w io.Writer, p *Program) error {
	for i := range p.Instrs {
		if _, err := fmt.Fprintf(w, "%04d  %s\n", i, p.Format(&p.Instrs[i])); err != nil {
			return err
		}
	}
	return nil
}

// Format renders a single instruction, nested operands inline.
func (p *Program) Format(in *Instr) string {
	if in == nil {
		return "<nil>"
	}
	switch in.Op {
	case OpLoadConst:
		return "const " + constText(in)
	case OpLoadSymbol:
		return "load " + p.SymbolName(in.Symbol)
	case OpStoreSymbol:
		return fmt.Sprintf("store %s <- %s", p.SymbolName(in.Symbol), p.Format(in.Eval))
	case OpIntrinsic:
		var sb strings.Builder
		sb.WriteString("intrinsic ")
		sb.WriteString(in.Native.String())
		if in.Dest.IsValid() {
			sb.WriteString(" dest=" + p.SymbolName(in.Dest))
		}
		if in.Operand.IsValid() {
			sb.WriteString(" op=" + p.SymbolName(in.Operand))
		}
		return sb.String()
	case OpTuple:
		return "tuple(" + p.formatList(in.Subs, ", ") + ")"
	case OpBlock:
		return "block{" + p.formatList(in.Subs, "; ") + "}"
	case OpCall:
		return "call " + p.Format(in.Eval)
	case OpReturn:
		return strings.TrimSpace("ret " + in.Label)
	case OpBranch:
		target := in.Label
		if target == "" {
			sign := "+"
			if in.Negative {
				sign = "-"
			}
			target = sign + strconv.Itoa(int(in.Offset))
		}
		if in.Cond != nil {
			return fmt.Sprintf("br %s if %s", target, p.Format(in.Cond))
		}
		return "br " + target
	case OpHalt:
		return "halt"
	}
	return in.Op.String()
}

func (p *Program) formatList(list []Instr, sep string) string {
	parts := make([]string, len(list))
	for i := range list {
		parts[i] = p.Format(&list[i])
	}
	return strings.Join(parts, sep)
}

func constText(in *Instr) string {
	s := in.Const.String()
	switch in.Const.Kind() {
	case types.ClassLiteral:
		return strconv.Quote(s)
	case types.ClassBuiltin:
		return s + ":" + in.Const.Builtin.String()
	}
	return s
}
