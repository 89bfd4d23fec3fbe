// Package mir holds the flat instruction stream executed by the vm and
// the lowering that produces it from the analyzed tree.
package mir

import (
	"fmt"

	"lu/internal/intrinsic"
	"lu/internal/source"
	"lu/internal/symbols"
	"lu/internal/value"
)

// Op enumerates instruction kinds. The zero value is never emitted.
type Op uint8

const (
	OpInvalid Op = iota
	// OpLoadConst evaluates to Const.
	OpLoadConst
	// OpLoadSymbol evaluates to the value stored for Symbol.
	OpLoadSymbol
	// OpStoreSymbol evaluates Eval and writes it to Symbol.
	OpStoreSymbol
	// OpIntrinsic runs Native against the Dest and Operand slots.
	OpIntrinsic
	OpBlock
	OpTuple
	OpCall
	OpReturn
	// OpBranch jumps by a signed-magnitude Offset, or to Label, when Cond holds.
	OpBranch
	OpHalt
	opCount
)

var opNames = [...]string{
	OpInvalid:     "invalid",
	OpLoadConst:   "const",
	OpLoadSymbol:  "load",
	OpStoreSymbol: "store",
	OpIntrinsic:   "intrinsic",
	OpBlock:       "block",
	OpTuple:       "tuple",
	OpCall:        "call",
	OpReturn:      "ret",
	OpBranch:      "br",
	OpHalt:        "halt",
}

func (op Op) String() string {
	if op < opCount {
		return opNames[op]
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Valid reports whether op is a known, emittable opcode.
func (op Op) Valid() bool { return op > OpInvalid && op < opCount }

// Instr is one instruction. Only the fields named by Op are meaningful.
type Instr struct {
	Op Op

	Const  value.Value
	Symbol symbols.SymbolID
	Eval   *Instr

	Intrinsic symbols.IntrinsicID
	Native    intrinsic.Op
	Dest      symbols.SymbolID
	Operand   symbols.SymbolID

	Subs []Instr

	Offset   int32
	Negative bool
	Cond     *Instr
	Label    string

	Span source.Span
}

// Program is a lowered compilation unit. Symbols maps SymbolID to the
// declared name so dumps and vm errors can label slots.
type Program struct {
	Instrs  []Instr
	Symbols []string
}

// SymbolName returns the name of id, or a positional placeholder.
func (p *Program) SymbolName(id symbols.SymbolID) string {
	if p != nil && int(id) < len(p.Symbols) && p.Symbols[id] != "" {
		return p.Symbols[id]
	}
	return fmt.Sprintf("sym#%d", id)
}

// Len returns the number of top-level instructions.
func (p *Program) Len() int { return len(p.Instrs) }
