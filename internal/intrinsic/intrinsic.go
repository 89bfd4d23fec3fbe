// Package intrinsic lists the natively implemented operations that a
// program can call through `$name` references.
package intrinsic

import (
	"fmt"

	"lu/internal/types"
)

// Op is the native operation an intrinsic instruction performs.
type Op uint8

const (
	OpInvalid Op = iota
	OpI32Add
	OpI64Add
	OpU32Add
	OpU64Add
	OpI32Print
	OpI64Print
	OpU32Print
	OpU64Print
	OpBoolPrint
	OpAsciiPrint
	OpLogicalNeg
	OpLogicalAnd
	OpLogicalOr
)

func (op Op) String() string {
	for _, s := range catalogue {
		if s.Op == op {
			return s.Name
		}
	}
	return fmt.Sprintf("Op(%d)", op)
}

// Spec describes one catalogue entry. Dest and Operand name the builtin
// kind of each used slot; unused slots are ignored.
type Spec struct {
	Name    string
	Op      Op
	Config  types.IntrinsicConfig
	Dest    types.BuiltinKind
	Operand types.BuiltinKind
}

var catalogue = []Spec{
	{Name: "i32add", Op: OpI32Add, Config: types.ConfigBoth, Dest: types.Int32, Operand: types.Int32},
	{Name: "i64add", Op: OpI64Add, Config: types.ConfigBoth, Dest: types.Int64, Operand: types.Int64},
	{Name: "u32add", Op: OpU32Add, Config: types.ConfigBoth, Dest: types.Uint32, Operand: types.Uint32},
	{Name: "u64add", Op: OpU64Add, Config: types.ConfigBoth, Dest: types.Uint64, Operand: types.Uint64},
	{Name: "i32print", Op: OpI32Print, Config: types.ConfigOpOnly, Operand: types.Int32},
	{Name: "i64print", Op: OpI64Print, Config: types.ConfigOpOnly, Operand: types.Int64},
	{Name: "u32print", Op: OpU32Print, Config: types.ConfigOpOnly, Operand: types.Uint32},
	{Name: "u64print", Op: OpU64Print, Config: types.ConfigOpOnly, Operand: types.Uint64},
	{Name: "bprint", Op: OpBoolPrint, Config: types.ConfigOpOnly, Operand: types.Bool},
	{Name: "asciiprint", Op: OpAsciiPrint, Config: types.ConfigOpOnly, Operand: types.Ascii},
	{Name: "lneg", Op: OpLogicalNeg, Config: types.ConfigDestOnly, Dest: types.Bool},
	{Name: "land", Op: OpLogicalAnd, Config: types.ConfigBoth, Dest: types.Bool, Operand: types.Bool},
	{Name: "lor", Op: OpLogicalOr, Config: types.ConfigBoth, Dest: types.Bool, Operand: types.Bool},
}

// Catalogue returns a copy of every intrinsic in registration order.
func Catalogue() []Spec {
	return append([]Spec(nil), catalogue...)
}

// ByName finds a catalogue entry.
func ByName(name string) (Spec, bool) {
	for _, s := range catalogue {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// ByOp finds the catalogue entry implementing op.
func ByOp(op Op) (Spec, bool) {
	for _, s := range catalogue {
		if s.Op == op {
			return s, true
		}
	}
	return Spec{}, false
}

// Signature interns the intrinsic's type: its config plus the concrete
// parameter types, with unused slots left undefined.
func (s Spec) Signature(reg *types.Registry) (types.TypeID, error) {
	sig := types.IntrinsicSig{Config: s.Config}
	if s.Config.HasDest() {
		sig.Dest = reg.BuiltinID(s.Dest)
	}
	if s.Config.HasOp() {
		sig.Op = reg.BuiltinID(s.Operand)
	}
	return reg.Intern(sig)
}
