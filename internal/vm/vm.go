// Package vm interprets lowered programs over a flat per-symbol store.
package vm

import (
	"context"
	"fmt"

	"lu/internal/diag"
	"lu/internal/mir"
	"lu/internal/source"
	"lu/internal/trace"
	"lu/internal/value"
)

// State is the execution state of a VM.
type State uint8

const (
	Running State = iota
	Halted
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", s)
}

// Options configures VM execution.
type Options struct {
	Trace bool            // Emit one trace event per executed instruction
	Exec  *Tracer         // Optional text execution trace
	Files *source.FileSet // For resolving spans in errors and traces
}

// Slot is one symbol's storage cell.
type Slot struct {
	Value value.Value
	Init  bool
}

// VM is a direct interpreter of a mir.Program.
type VM struct {
	Prog  *mir.Program
	RT    Runtime
	Store []Slot
	IP    int
	State State
	Steps uint64

	logger diag.Logger
	opts   Options
	tracer trace.Tracer
	parent uint64
	eb     *errorBuilder
}

// New creates a VM positioned at the first instruction.
func New(prog *mir.Program, rt Runtime, logger diag.Logger, opts Options) *VM {
	vm := &VM{
		Prog:   prog,
		RT:     rt,
		logger: logger,
		opts:   opts,
		tracer: trace.Nop,
	}
	vm.eb = &errorBuilder{vm: vm}
	if opts.Exec != nil {
		opts.Exec.prog = prog
	}
	return vm
}

// Run executes until halt or the first runtime panic. The context is
// checked between instructions; its tracer receives per-instruction
// events when Options.Trace is set.
func (vm *VM) Run(ctx context.Context) *VMError {
	if vm.opts.Trace {
		vm.tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(vm.tracer, trace.ScopePass, "vm", 0)
	vm.parent = span.ID()
	defer func() { span.End(vm.State.String()) }()

	for vm.State == Running {
		if err := ctx.Err(); err != nil {
			vm.State = Failed
			return vm.eb.interrupted(err)
		}
		if vmErr := vm.Step(); vmErr != nil {
			return vmErr
		}
	}
	return nil
}

// Step executes exactly one top-level instruction.
func (vm *VM) Step() (vmErr *VMError) {
	defer func() {
		if vmErr != nil {
			vm.State = Failed
		}
	}()
	if vm.State != Running {
		return nil
	}
	if vm.Prog == nil || vm.IP >= len(vm.Prog.Instrs) {
		// Ran off the end without a halt; lowering always appends one.
		vm.State = Halted
		return nil
	}
	in := &vm.Prog.Instrs[vm.IP]
	writes, vmErr := vm.exec(in)
	if vmErr != nil {
		return vmErr
	}
	vm.Steps++
	if vm.opts.Exec != nil {
		vm.opts.Exec.TraceInstr(vm.IP, in, writes)
	}
	if vm.tracer.Enabled() {
		trace.Point(vm.tracer, trace.ScopeNode, "vm.step", fmt.Sprintf("%04d %s", vm.IP, vm.Prog.Format(in)), vm.parent)
	}
	if vm.State == Running {
		vm.IP++
	}
	return nil
}

// Slot returns the stored value for symbol id, if written.
func (vm *VM) Slot(id int) (value.Value, bool) {
	if id <= 0 || id >= len(vm.Store) || !vm.Store[id].Init {
		return value.Value{}, false
	}
	return vm.Store[id].Value, true
}

func (vm *VM) write(id int, v value.Value) {
	if id >= len(vm.Store) {
		grown := make([]Slot, id+1, max(2*len(vm.Store), id+1))
		copy(grown, vm.Store)
		vm.Store = grown
	}
	vm.Store[id] = Slot{Value: v, Init: true}
}
