package vm

import (
	"fmt"
	"io"
	"strings"

	"lu/internal/mir"
	"lu/internal/source"
)

// Tracer outputs execution traces for debugging.
type Tracer struct {
	w     io.Writer
	files *source.FileSet
	prog  *mir.Program
}

// NewTracer creates a new tracer that writes to w.
func NewTracer(w io.Writer, files *source.FileSet) *Tracer {
	return &Tracer{w: w, files: files}
}

// TraceInstr traces execution of an instruction.
// Format: ip<ip> <instr> @ <file>:<line>:<col> [name=value ...]
func (t *Tracer) TraceInstr(ip int, in *mir.Instr, writes []SlotWrite) {
	if t == nil || t.w == nil {
		return
	}
	fmt.Fprintf(t.w, "ip%04d %s @ %s", ip, t.prog.Format(in), formatSpan(in.Span, t.files))
	if len(writes) > 0 {
		parts := make([]string, len(writes))
		for i, w := range writes {
			parts[i] = fmt.Sprintf("%s=%s", t.prog.SymbolName(w.Slot), w.Value)
		}
		fmt.Fprintf(t.w, " [%s]", strings.Join(parts, " "))
	}
	fmt.Fprintln(t.w)
}
