package types

import "fmt"

// Class partitions type identifiers; every class owns one dense table.
type Class uint8

const (
	ClassUndefined Class = iota
	ClassVoid
	ClassLiteral
	ClassBuiltin
	ClassFunction
	ClassIntrinsic
	ClassPointer
	ClassTuple
	ClassStruct
	ClassUnion
	ClassIntersect

	classCount
)

func (c Class) String() string {
	switch c {
	case ClassUndefined:
		return "undefined"
	case ClassVoid:
		return "void"
	case ClassLiteral:
		return "literal"
	case ClassBuiltin:
		return "builtin"
	case ClassFunction:
		return "function"
	case ClassIntrinsic:
		return "intrinsic"
	case ClassPointer:
		return "pointer"
	case ClassTuple:
		return "tuple"
	case ClassStruct:
		return "struct"
	case ClassUnion:
		return "union"
	case ClassIntersect:
		return "intersect"
	default:
		return fmt.Sprintf("Class(%d)", c)
	}
}

// Composite reports whether types of this class may be interned on demand.
func (c Class) Composite() bool {
	switch c {
	case ClassFunction, ClassIntrinsic, ClassTuple, ClassUnion:
		return true
	default:
		return false
	}
}

const (
	indexBits = 24
	indexMask = 1<<indexBits - 1
	// MaxIndex is the largest per-class index a TypeID can carry.
	MaxIndex = indexMask
)

// TypeID identifies one interned type: class in the high byte, dense index below.
// The zero value is the undefined type.
type TypeID uint32

// Undefined is the always-present "not yet known" type.
const Undefined TypeID = 0

// MakeID packs a class and an index. It panics if index does not fit.
func MakeID(c Class, index uint32) TypeID {
	if index > MaxIndex {
		panic(fmt.Errorf("types: index %d overflows class %s", index, c))
	}
	return TypeID(uint32(c)<<indexBits | index)
}

// Class returns the class tag of the identifier.
func (id TypeID) Class() Class {
	return Class(uint32(id) >> indexBits)
}

// Index returns the dense per-class index.
func (id TypeID) Index() uint32 {
	return uint32(id) & indexMask
}

// IsUndefined reports whether id is the undefined singleton.
func (id TypeID) IsUndefined() bool { return id == Undefined }

func (id TypeID) String() string {
	return fmt.Sprintf("%s#%d", id.Class(), id.Index())
}

// LiteralKind enumerates the provisional types of untyped constants.
type LiteralKind uint8

const (
	LitString LiteralKind = iota
	LitInteger
	LitDecimal
	LitTrue
	LitFalse
	LitEmptyTuple
)

// LiteralKinds lists every literal kind in seeding order.
func LiteralKinds() []LiteralKind {
	return []LiteralKind{LitString, LitInteger, LitDecimal, LitTrue, LitFalse, LitEmptyTuple}
}

func (k LiteralKind) String() string {
	switch k {
	case LitString:
		return "string"
	case LitInteger:
		return "integer"
	case LitDecimal:
		return "decimal"
	case LitTrue:
		return "true"
	case LitFalse:
		return "false"
	case LitEmptyTuple:
		return "empty tuple"
	default:
		return fmt.Sprintf("LiteralKind(%d)", k)
	}
}

// BuiltinKind enumerates the concrete scalar types.
type BuiltinKind uint8

const (
	Bool BuiltinKind = iota
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
	Byte
	Ascii
	Unicode
	TypeIDKind

	builtinCount
)

var builtinNames = [builtinCount]string{
	Bool:       "bool",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Float16:    "float16",
	Float32:    "float32",
	Float64:    "float64",
	Byte:       "byte",
	Ascii:      "ascii",
	Unicode:    "unicode",
	TypeIDKind: "typeid",
}

// Builtins returns every builtin kind in declaration order.
func Builtins() []BuiltinKind {
	out := make([]BuiltinKind, 0, builtinCount)
	for k := BuiltinKind(0); k < builtinCount; k++ {
		out = append(out, k)
	}
	return out
}

func (k BuiltinKind) String() string {
	if k < builtinCount {
		return builtinNames[k]
	}
	return fmt.Sprintf("BuiltinKind(%d)", k)
}

// BuiltinByName maps a source-level type name to its kind.
func BuiltinByName(name string) (BuiltinKind, bool) {
	for k, n := range builtinNames {
		if n == name {
			return BuiltinKind(k), true
		}
	}
	return 0, false
}

// Signed reports whether the kind is a signed integer.
func (k BuiltinKind) Signed() bool {
	switch k {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// Integer reports whether the kind is an integer of either signedness.
func (k BuiltinKind) Integer() bool {
	switch k {
	case Int8, Int16, Int32, Int64, Uint8, Uint16, Uint32, Uint64, Byte:
		return true
	}
	return false
}

// Width returns the bit width of numeric kinds, 0 otherwise.
func (k BuiltinKind) Width() int {
	switch k {
	case Int8, Uint8, Byte, Ascii:
		return 8
	case Int16, Uint16, Float16:
		return 16
	case Int32, Uint32, Float32, Unicode:
		return 32
	case Int64, Uint64, Float64:
		return 64
	}
	return 0
}

// IntrinsicConfig says which symbol slots an intrinsic binds.
type IntrinsicConfig uint8

const (
	ConfigNone IntrinsicConfig = iota
	ConfigDestOnly
	ConfigOpOnly
	ConfigBoth
)

// ParamCount is the exact argument count a call must supply.
func (c IntrinsicConfig) ParamCount() int {
	switch c {
	case ConfigDestOnly, ConfigOpOnly:
		return 1
	case ConfigBoth:
		return 2
	default:
		return 0
	}
}

// HasDest reports whether the first argument binds the dest slot.
func (c IntrinsicConfig) HasDest() bool { return c == ConfigDestOnly || c == ConfigBoth }

// HasOp reports whether an argument binds the op slot.
func (c IntrinsicConfig) HasOp() bool { return c == ConfigOpOnly || c == ConfigBoth }

func (c IntrinsicConfig) String() string {
	switch c {
	case ConfigNone:
		return "none"
	case ConfigDestOnly:
		return "dest"
	case ConfigOpOnly:
		return "op"
	case ConfigBoth:
		return "both"
	default:
		return fmt.Sprintf("IntrinsicConfig(%d)", c)
	}
}
