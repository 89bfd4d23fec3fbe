// Package cast converts untyped literal values into concrete builtin values.
package cast

import (
	"strconv"

	"fortio.org/safecast"

	"lu/internal/diag"
	"lu/internal/types"
	"lu/internal/value"
)

// DefaultType returns the concrete type a literal of kind k takes when
// nothing forces another one.
func DefaultType(reg *types.Registry, k types.LiteralKind) (types.TypeID, error) {
	switch k {
	case types.LitInteger:
		return reg.BuiltinID(types.Int64), nil
	case types.LitDecimal:
		return reg.BuiltinID(types.Float64), nil
	case types.LitTrue, types.LitFalse:
		return reg.BuiltinID(types.Bool), nil
	case types.LitEmptyTuple:
		return reg.Intern(types.Tuple{})
	case types.LitString:
		return types.Undefined, diag.Unimplemented("default type for string literal")
	}
	return types.Undefined, diag.Internalf("cast: unknown literal kind %d", k)
}

// DefaultTypeOf is DefaultType for a literal TypeID; other ids pass through.
func DefaultTypeOf(reg *types.Registry, id types.TypeID) (types.TypeID, error) {
	if id.Class() != types.ClassLiteral {
		return id, nil
	}
	t, err := reg.Resolve(id)
	if err != nil {
		return types.Undefined, err
	}
	return DefaultType(reg, t.(types.Literal).Kind)
}

// LiteralToBuiltin casts a literal value to the builtin type target.
func LiteralToBuiltin(reg *types.Registry, target types.TypeID, lit value.Value) (value.Value, error) {
	if lit.Kind() != types.ClassLiteral {
		return value.Value{}, diag.Internalf("cast: source %s is not a literal", reg.Label(lit.Type))
	}
	tt, err := reg.Resolve(target)
	if err != nil {
		return value.Value{}, err
	}
	bt, ok := tt.(types.Builtin)
	if !ok {
		return value.Value{}, diag.Internalf("cast: target %s is not a builtin", reg.Label(target))
	}
	switch lit.Lit.Kind {
	case types.LitInteger:
		return integer(target, bt.Kind, lit.Lit.Text)
	case types.LitTrue, types.LitFalse:
		if bt.Kind != types.Bool {
			return value.Value{}, diag.Internalf("cast: boolean literal to %s", bt.Kind)
		}
		return value.Bool(target, lit.Lit.Kind == types.LitTrue), nil
	case types.LitString:
		if bt.Kind != types.Ascii {
			return value.Value{}, diag.Internalf("cast: string literal to %s", bt.Kind)
		}
		if len(lit.Lit.Text) != 1 {
			return value.Value{}, diag.Unimplemented("cast: string %q to ascii needs exactly one character", lit.Lit.Text)
		}
		return value.Ascii(target, lit.Lit.Text[0]), nil
	case types.LitDecimal:
		return value.Value{}, diag.Unimplemented("cast: decimal literal %s to %s", lit.Lit.Text, bt.Kind)
	case types.LitEmptyTuple:
		return value.Value{}, diag.Unimplemented("cast: empty tuple to %s", bt.Kind)
	}
	return value.Value{}, diag.Internalf("cast: unknown literal kind %d", lit.Lit.Kind)
}

// integer parses the unsigned magnitude and range-checks it against the
// target. Literals never carry a sign, so only the upper bound can fail
// for signed targets.
func integer(target types.TypeID, kind types.BuiltinKind, text string) (value.Value, error) {
	mag, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return value.Value{}, diag.Unimplemented("cast: integer literal %s does not fit uint64", text)
	}
	var n int64
	switch kind {
	case types.Int8:
		var v int8
		v, err = safecast.Conv[int8](mag)
		n = int64(v)
	case types.Int16:
		var v int16
		v, err = safecast.Conv[int16](mag)
		n = int64(v)
	case types.Int32:
		var v int32
		v, err = safecast.Conv[int32](mag)
		n = int64(v)
	case types.Int64:
		n, err = safecast.Conv[int64](mag)
	case types.Uint8, types.Byte:
		_, err = safecast.Conv[uint8](mag)
	case types.Uint16:
		_, err = safecast.Conv[uint16](mag)
	case types.Uint32:
		_, err = safecast.Conv[uint32](mag)
	case types.Uint64:
	default:
		return value.Value{}, diag.Internalf("cast: integer literal to %s", kind)
	}
	if err != nil {
		return value.Value{}, diag.Unimplemented("cast: integer literal %s out of range for %s", text, kind)
	}
	if kind.Signed() {
		return value.Int(target, kind, n), nil
	}
	return value.Uint(target, kind, mag), nil
}
