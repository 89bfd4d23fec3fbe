// Package value holds the runtime value variant shared by casting,
// lowering and the interpreter.
package value

import (
	"fmt"
	"math"
	"strconv"

	"lu/internal/types"
)

// Literal is the transient payload of an uncoerced constant.
type Literal struct {
	Kind types.LiteralKind
	Text string
}

// Value is a runtime value. Which payload field is live depends on
// Type.Class(); the constructors below keep that invariant.
type Value struct {
	Type types.TypeID
	Lit  Literal
	// Bits holds builtin scalars: integers sign-extended, floats as IEEE bits.
	Bits      uint64
	Builtin   types.BuiltinKind
	Fn        uint32
	Intrinsic uint32
	Elems     []Value
	Active    types.TypeID
	Boxed     *Value
}

// Kind returns the class that selects the live payload.
func (v Value) Kind() types.Class { return v.Type.Class() }

// FromLiteral wraps constant text typed by its literal type.
func FromLiteral(id types.TypeID, kind types.LiteralKind, text string) Value {
	return Value{Type: id, Lit: Literal{Kind: kind, Text: text}}
}

// Int builds a signed builtin scalar.
func Int(id types.TypeID, kind types.BuiltinKind, n int64) Value {
	return Value{Type: id, Builtin: kind, Bits: uint64(n)}
}

// Uint builds an unsigned builtin scalar.
func Uint(id types.TypeID, kind types.BuiltinKind, n uint64) Value {
	return Value{Type: id, Builtin: kind, Bits: n}
}

// Bool builds a bool scalar.
func Bool(id types.TypeID, b bool) Value {
	v := Value{Type: id, Builtin: types.Bool}
	if b {
		v.Bits = 1
	}
	return v
}

// Float builds a float scalar of the given kind.
func Float(id types.TypeID, kind types.BuiltinKind, f float64) Value {
	return Value{Type: id, Builtin: kind, Bits: math.Float64bits(f)}
}

// Ascii builds an ascii character scalar.
func Ascii(id types.TypeID, c byte) Value {
	return Value{Type: id, Builtin: types.Ascii, Bits: uint64(c)}
}

// TypeRef builds a typeid scalar naming t.
func TypeRef(id, t types.TypeID) Value {
	return Value{Type: id, Builtin: types.TypeIDKind, Bits: uint64(t)}
}

// Tuple builds a tuple value; elems are owned by the result.
func Tuple(id types.TypeID, elems ...Value) Value {
	return Value{Type: id, Elems: elems}
}

// Union builds a union value carrying one boxed member.
func Union(id, active types.TypeID, inner Value) Value {
	return Value{Type: id, Active: active, Boxed: &inner}
}

// Int reads a signed scalar.
func (v Value) Int() int64 { return int64(v.Bits) }

// Uint reads an unsigned scalar.
func (v Value) Uint() uint64 { return v.Bits }

// Bool reads a bool scalar.
func (v Value) Bool() bool { return v.Bits != 0 }

// Float reads a float scalar.
func (v Value) Float() float64 { return math.Float64frombits(v.Bits) }

// Ascii reads an ascii scalar.
func (v Value) Ascii() byte { return byte(v.Bits) }

// TypeIDValue reads a typeid scalar.
func (v Value) TypeIDValue() types.TypeID { return types.TypeID(v.Bits) }

// Validate checks that the live payload matches the class of Type.
func (v Value) Validate() error {
	switch v.Kind() {
	case types.ClassLiteral:
		if v.Elems != nil || v.Boxed != nil || v.Bits != 0 {
			return fmt.Errorf("value: literal %s carries a non-literal payload", v.Type)
		}
	case types.ClassBuiltin:
		if v.Lit.Text != "" || v.Elems != nil || v.Boxed != nil {
			return fmt.Errorf("value: builtin %s carries a non-scalar payload", v.Type)
		}
	case types.ClassTuple:
		if v.Lit.Text != "" || v.Boxed != nil || v.Bits != 0 {
			return fmt.Errorf("value: tuple %s carries a non-tuple payload", v.Type)
		}
		for i, e := range v.Elems {
			if err := e.Validate(); err != nil {
				return fmt.Errorf("value: tuple member %d: %w", i, err)
			}
		}
	case types.ClassUnion:
		if v.Boxed == nil {
			return fmt.Errorf("value: union %s has no active member", v.Type)
		}
		if v.Boxed.Type != v.Active {
			return fmt.Errorf("value: union active %s does not match boxed %s", v.Active, v.Boxed.Type)
		}
		return v.Boxed.Validate()
	case types.ClassFunction, types.ClassIntrinsic, types.ClassVoid, types.ClassUndefined:
		if v.Lit.Text != "" || v.Elems != nil || v.Boxed != nil {
			return fmt.Errorf("value: %s carries an unexpected payload", v.Type)
		}
	default:
		return fmt.Errorf("value: unsupported class %s", v.Kind())
	}
	return nil
}

// String renders the value the way print intrinsics do.
func (v Value) String() string {
	switch v.Kind() {
	case types.ClassLiteral:
		return v.Lit.Text
	case types.ClassBuiltin:
		switch v.Builtin {
		case types.Bool:
			return strconv.FormatBool(v.Bool())
		case types.Int8, types.Int16, types.Int32, types.Int64:
			return strconv.FormatInt(v.Int(), 10)
		case types.Float16, types.Float32, types.Float64:
			return strconv.FormatFloat(v.Float(), 'g', -1, 64)
		case types.Ascii:
			return string(rune(v.Ascii()))
		case types.Unicode:
			return string(rune(v.Bits))
		case types.TypeIDKind:
			return v.TypeIDValue().String()
		default:
			return strconv.FormatUint(v.Uint(), 10)
		}
	case types.ClassTuple:
		s := "("
		for i, e := range v.Elems {
			if i > 0 {
				s += ", "
			}
			s += e.String()
		}
		return s + ")"
	case types.ClassUnion:
		if v.Boxed != nil {
			return v.Boxed.String()
		}
	case types.ClassFunction:
		return fmt.Sprintf("fn@%d", v.Fn)
	case types.ClassIntrinsic:
		return fmt.Sprintf("intrinsic#%d", v.Intrinsic)
	case types.ClassVoid:
		return "()"
	}
	return "?"
}
