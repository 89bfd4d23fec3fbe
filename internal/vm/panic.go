package vm

import (
	"fmt"
	"strings"

	"lu/internal/mir"
	"lu/internal/source"
)

// PanicCode identifies the type of VM panic.
type PanicCode int

// Stable panic codes - do not change values.
const (
	PanicUseBeforeInit        PanicCode = 1001 // VM1001: load of a never-written slot
	PanicTypeMismatch         PanicCode = 1003 // VM1003: type mismatch
	PanicUnsupportedIntrinsic PanicCode = 1005 // VM1005: unsupported intrinsic
	PanicIllegalInstr         PanicCode = 1007 // VM1007: unknown opcode
	PanicRuntimeFailure       PanicCode = 1008 // VM1008: runtime sink failed
	PanicInterrupted          PanicCode = 1009 // VM1009: context cancelled
	PanicUnimplemented        PanicCode = 1999 // VM1999: unimplemented opcode
)

// String returns the code as "VM1001" format.
func (c PanicCode) String() string {
	return fmt.Sprintf("VM%d", c)
}

// VMError represents a runtime panic in the VM.
type VMError struct {
	Code    PanicCode
	Message string
	IP      int
	Instr   string      // rendered instruction, empty when not tied to one
	Span    source.Span // Location where panic occurred
}

// Error implements the error interface.
func (p *VMError) Error() string {
	return fmt.Sprintf("panic %s: %s", p.Code, p.Message)
}

// FormatWithFiles formats the panic with resolved file:line:col information.
func (p *VMError) FormatWithFiles(files *source.FileSet) string {
	var sb strings.Builder

	// Header: panic VM1001: <message>
	sb.WriteString(fmt.Sprintf("panic %s: %s\n", p.Code, p.Message))

	sb.WriteString("at ")
	sb.WriteString(formatSpan(p.Span, files))
	sb.WriteString("\n")

	if p.Instr != "" {
		sb.WriteString(fmt.Sprintf("  %04d: %s\n", p.IP, p.Instr))
	}
	return sb.String()
}

// formatSpan formats a span as "file:line:col" or "<no-span>" if empty.
func formatSpan(span source.Span, files *source.FileSet) string {
	if files == nil || (span.Start == 0 && span.End == 0) {
		return "<no-span>"
	}

	file := files.Get(span.File)
	if file == nil {
		return "<no-span>"
	}

	start, _ := files.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", file.Path, start.Line, start.Col)
}

// errorBuilder helps construct VMError values.
type errorBuilder struct {
	vm *VM
}

func (eb *errorBuilder) makeError(in *mir.Instr, code PanicCode, msg string) *VMError {
	e := &VMError{
		Code:    code,
		Message: msg,
		IP:      eb.vm.IP,
	}
	if in != nil {
		e.Span = in.Span
		e.Instr = eb.vm.Prog.Format(in)
	}
	return e
}

func (eb *errorBuilder) useBeforeInit(in *mir.Instr, name string) *VMError {
	return eb.makeError(in, PanicUseBeforeInit, fmt.Sprintf("%q used before initialization", name))
}

func (eb *errorBuilder) typeMismatch(in *mir.Instr, expected, got string) *VMError {
	return eb.makeError(in, PanicTypeMismatch, fmt.Sprintf("expected %s, got %s", expected, got))
}

func (eb *errorBuilder) unsupportedIntrinsic(in *mir.Instr, name string) *VMError {
	return eb.makeError(in, PanicUnsupportedIntrinsic, fmt.Sprintf("unsupported intrinsic: %s", name))
}

func (eb *errorBuilder) illegal(in *mir.Instr) *VMError {
	return eb.makeError(in, PanicIllegalInstr, fmt.Sprintf("illegal instruction: %s", in.Op))
}

func (eb *errorBuilder) runtimeFailure(in *mir.Instr, err error) *VMError {
	return eb.makeError(in, PanicRuntimeFailure, err.Error())
}

func (eb *errorBuilder) interrupted(err error) *VMError {
	return eb.makeError(nil, PanicInterrupted, err.Error())
}

func (eb *errorBuilder) unimplemented(in *mir.Instr, what string) *VMError {
	return eb.makeError(in, PanicUnimplemented, fmt.Sprintf("unimplemented: %s", what))
}
